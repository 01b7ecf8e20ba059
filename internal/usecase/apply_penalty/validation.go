package apply_penalty

import (
	"fmt"
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает тип события
func validateRequest(req *Request, now time.Time) (domain.EventType, error) {
	if req.ReservationID <= 0 {
		return "", fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	event, err := domain.ParseEventType(req.EventType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, req.EventType)
	}

	// Отмена штрафуется только через отмену бронирования
	if event == domain.EventCancellation {
		return "", fmt.Errorf("%w: use reservation cancellation", ErrUnsupportedEvent)
	}

	if req.OccurredAt != nil && req.OccurredAt.After(now) {
		return "", fmt.Errorf("%w: occurredAt is in the future", ErrInvalidInput)
	}

	return event, nil
}
