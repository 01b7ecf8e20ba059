package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// ReservationEventsQueue очередь доменных событий бронирований
const ReservationEventsQueue = "reservation_events"

// Type тип доменного события
type Type string

const (
	TypeReservationConfirmed Type = "reservation_confirmed"
	TypeReservationCancelled Type = "reservation_cancelled"
	TypePenaltyApplied       Type = "penalty_applied"
)

// Event конверт доменного события
type Event struct {
	ID         string      `json:"event_id"`
	Type       Type        `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// ReservationConfirmedPayload данные события подтверждения бронирования
type ReservationConfirmedPayload struct {
	ReservationID    int64  `json:"reservation_id"`
	UserID           int64  `json:"user_id"`
	VehicleID        int64  `json:"vehicle_id"`
	PickupAt         string `json:"pickup_at"`
	DropoffAt        string `json:"dropoff_at"`
	Days             int    `json:"days"`
	Subtotal         string `json:"subtotal"`
	Tax              string `json:"tax"`
	Total            string `json:"total"`
	PromotionApplied bool   `json:"promotion_applied"`
}

// ReservationCancelledPayload данные события отмены бронирования
type ReservationCancelledPayload struct {
	ReservationID int64   `json:"reservation_id"`
	UserID        int64   `json:"user_id"`
	Reason        *string `json:"reason,omitempty"`
	PenaltyAmount *string `json:"penalty_amount,omitempty"`
}

// PenaltyAppliedPayload данные события начисления штрафа
type PenaltyAppliedPayload struct {
	PenaltyID     int64  `json:"penalty_id"`
	ReservationID int64  `json:"reservation_id"`
	EventType     string `json:"penalty_event"`
	Amount        string `json:"amount"`
}

func newEvent(t Type, at time.Time, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: at.UTC(),
		Payload:    payload,
	}
}

// NewReservationConfirmed формирует событие подтверждения бронирования
func NewReservationConfirmed(r *domain.Reservation, at time.Time) Event {
	return newEvent(TypeReservationConfirmed, at, ReservationConfirmedPayload{
		ReservationID:    r.ID,
		UserID:           r.UserID,
		VehicleID:        r.VehicleID,
		PickupAt:         r.PickupAt.UTC().Format(domain.DateTimeFormat),
		DropoffAt:        r.DropoffAt.UTC().Format(domain.DateTimeFormat),
		Days:             r.Days,
		Subtotal:         r.Subtotal.StringFixed(domain.MoneyScale),
		Tax:              r.Tax.StringFixed(domain.MoneyScale),
		Total:            r.Total.StringFixed(domain.MoneyScale),
		PromotionApplied: r.PromotionApplied,
	})
}

// NewReservationCancelled формирует событие отмены бронирования
// penalty может быть nil, если отмена бесплатная
func NewReservationCancelled(r *domain.Reservation, penalty *domain.Penalty, at time.Time) Event {
	payload := ReservationCancelledPayload{
		ReservationID: r.ID,
		UserID:        r.UserID,
		Reason:        r.CancellationReason,
	}
	if penalty != nil {
		amount := penalty.Amount.StringFixed(domain.MoneyScale)
		payload.PenaltyAmount = &amount
	}
	return newEvent(TypeReservationCancelled, at, payload)
}

// NewPenaltyApplied формирует событие начисления штрафа
func NewPenaltyApplied(p *domain.Penalty) Event {
	return newEvent(TypePenaltyApplied, p.AppliedAt, PenaltyAppliedPayload{
		PenaltyID:     p.ID,
		ReservationID: p.ReservationID,
		EventType:     string(p.EventType),
		Amount:        p.Amount.StringFixed(domain.MoneyScale),
	})
}
