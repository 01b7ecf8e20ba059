package apply_penalty

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// Request модель запроса на начисление штрафа
type Request struct {
	ReservationID int64      // ID бронирования
	UserID        int64      // ID владельца бронирования
	EventType     string     // modification или late_return
	OccurredAt    *time.Time // Время события, по умолчанию текущее
}

// Response модель ответа
type Response struct {
	Penalty *domain.Penalty // nil, если штраф не положен
	Charged bool
	Created bool // false, если штраф за это событие уже был начислен
}
