package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// Tariff is a time-bounded daily rental rate for one vehicle.
// ValidUntil == nil means the tariff is open-ended.
type Tariff struct {
	ID          int64
	VehicleID   int64
	ValidFrom   types.Date
	ValidUntil  *types.Date
	PricePerDay decimal.Decimal
	CreatedAt   time.Time
}

// IsOpenEnded returns true if the tariff has no end date
func (t *Tariff) IsOpenEnded() bool {
	return t.ValidUntil == nil
}

// Covers returns true if the tariff is in force on the given date (both bounds inclusive)
func (t *Tariff) Covers(date types.Date) bool {
	if date.IsBefore(t.ValidFrom) {
		return false
	}
	return t.ValidUntil == nil || !date.IsAfter(*t.ValidUntil)
}
