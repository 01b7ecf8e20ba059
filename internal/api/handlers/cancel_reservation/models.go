package cancel_reservation

import (
	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
	cancelReservation "github.com/m04kA/M4Y-RentalService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model, тело запроса необязательно
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	Reservation *models.ReservationResponse `json:"reservation"`
	Penalty     *models.PenaltyResponse     `json:"penalty,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID, userID int64) *cancelReservation.Request {
	return &cancelReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
		Reason:        r.CancellationReason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		Reservation: models.FromDomainReservation(resp.Reservation),
		Penalty:     models.FromDomainPenalty(resp.Penalty),
	}
}
