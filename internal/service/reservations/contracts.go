package reservations

import (
	"context"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

// PenaltyRepository интерфейс репозитория штрафов
type PenaltyRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Penalty, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
