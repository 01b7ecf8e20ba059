package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// PriceBreakdown is the result of pricing a rental period
type PriceBreakdown struct {
	DailyRate              decimal.Decimal
	Days                   int
	SubtotalBeforeDiscount decimal.Decimal
	Discount               decimal.Decimal
	Subtotal               decimal.Decimal
	Tax                    decimal.Decimal
	Total                  decimal.Decimal
	DiscountApplied        bool
	PromotionID            *int64
}

// Reservation represents a vehicle rental booking
type Reservation struct {
	ID              int64
	UserID          int64
	VehicleID       int64
	PickupPlaceID   int64
	DropoffPlaceID  int64
	PickupAt        time.Time
	DropoffAt       time.Time
	PaymentPolicyID *int64
	PromotionID     *int64 // promotion requested at booking time
	Status          ReservationStatus

	// Price snapshot, filled once on confirmation and never re-resolved
	PricePerDay      decimal.Decimal
	Days             int
	Discount         decimal.Decimal
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	PromotionApplied bool

	Notes              *string
	CancellationReason *string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPriced returns true if the price snapshot has been stored
func (r *Reservation) IsPriced() bool {
	return r.ConfirmedAt != nil
}

// CanBeConfirmed returns true if the reservation is waiting for confirmation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation is not cancelled yet
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// ApplyPrice copies a price breakdown into the reservation snapshot
func (r *Reservation) ApplyPrice(p PriceBreakdown) {
	r.PricePerDay = p.DailyRate
	r.Days = p.Days
	r.Discount = p.Discount
	r.Subtotal = p.Subtotal
	r.Tax = p.Tax
	r.Total = p.Total
	r.PromotionApplied = p.DiscountApplied
}

// HoursBefore returns how many hours before pickup the given moment is.
// Negative values mean the moment is after pickup.
func (r *Reservation) HoursBefore(at time.Time) float64 {
	return r.PickupAt.Sub(at).Hours()
}

// Penalty is an applied penalty charge. Immutable once stored.
type Penalty struct {
	ID            int64
	ReservationID int64
	PenaltyTypeID int64
	EventType     EventType
	Amount        decimal.Decimal
	AppliedAt     time.Time
}
