package apply_penalty

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
	applyPenalty "github.com/m04kA/M4Y-RentalService/internal/usecase/apply_penalty"
)

// ApplyPenaltyRequest HTTP request model
type ApplyPenaltyRequest struct {
	EventType  string  `json:"eventType"`            // "modification" | "late_return"
	OccurredAt *string `json:"occurredAt,omitempty"` // RFC 3339, по умолчанию текущее время
}

// ApplyPenaltyResponse HTTP response model
type ApplyPenaltyResponse struct {
	Charged bool                    `json:"charged"`
	Penalty *models.PenaltyResponse `json:"penalty,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyPenaltyRequest) ToUseCaseRequest(reservationID, userID int64) (*applyPenalty.Request, error) {
	var occurredAt *time.Time
	if r.OccurredAt != nil {
		t, err := time.Parse(time.RFC3339, *r.OccurredAt)
		if err != nil {
			return nil, err
		}
		occurredAt = &t
	}

	return &applyPenalty.Request{
		ReservationID: reservationID,
		UserID:        userID,
		EventType:     r.EventType,
		OccurredAt:    occurredAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyPenalty.Response) *ApplyPenaltyResponse {
	return &ApplyPenaltyResponse{
		Charged: resp.Charged,
		Penalty: models.FromDomainPenalty(resp.Penalty),
	}
}
