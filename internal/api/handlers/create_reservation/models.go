package create_reservation

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
	createReservation "github.com/m04kA/M4Y-RentalService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
// ID клиента берется из заголовка X-User-ID, а не из тела
type CreateReservationRequest struct {
	VehicleID       int64   `json:"vehicleId"`
	PickupPlaceID   int64   `json:"pickupPlaceId"`
	DropoffPlaceID  int64   `json:"dropoffPlaceId"`
	PickupAt        string  `json:"pickupAt"`  // "2025-05-20T10:00:00Z"
	DropoffAt       string  `json:"dropoffAt"` // "2025-05-23T10:00:00Z"
	PaymentPolicyID *int64  `json:"paymentPolicyId,omitempty"`
	PromotionCode   *string `json:"promotionCode,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	DriverAgeVerified bool `json:"driverAgeVerified"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	pickupAt, err := time.Parse(time.RFC3339, r.PickupAt)
	if err != nil {
		return nil, err
	}

	dropoffAt, err := time.Parse(time.RFC3339, r.DropoffAt)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:          userID,
		VehicleID:       r.VehicleID,
		PickupPlaceID:   r.PickupPlaceID,
		DropoffPlaceID:  r.DropoffPlaceID,
		PickupAt:        pickupAt,
		DropoffAt:       dropoffAt,
		PaymentPolicyID: r.PaymentPolicyID,
		PromotionCode:   r.PromotionCode,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		DriverAgeVerified:   resp.DriverAgeVerified,
	}
}
