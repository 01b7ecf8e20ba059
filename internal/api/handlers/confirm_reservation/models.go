package confirm_reservation

import (
	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
	confirmReservation "github.com/m04kA/M4Y-RentalService/internal/usecase/confirm_reservation"
)

// ConfirmReservationResponse HTTP response model
type ConfirmReservationResponse struct {
	*models.ReservationResponse
	AlreadyConfirmed bool `json:"alreadyConfirmed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmReservation.Response) *ConfirmReservationResponse {
	return &ConfirmReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		AlreadyConfirmed:    resp.AlreadyConfirmed,
	}
}
