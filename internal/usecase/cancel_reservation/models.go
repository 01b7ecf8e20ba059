package cancel_reservation

import "github.com/m04kA/M4Y-RentalService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64   // ID бронирования
	UserID        int64   // ID владельца
	Reason        *string // Причина отмены (опционально)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	Reservation *domain.Reservation
	Penalty     *domain.Penalty // nil, если отмена бесплатная
}
