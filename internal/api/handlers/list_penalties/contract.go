package list_penalties

import (
	"context"

	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
)

type ReservationService interface {
	ListPenalties(ctx context.Context, reservationID int64, userID int64) (*models.PenaltyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
