package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// Promotion is a time-bounded, optionally usage-capped percentage discount
type Promotion struct {
	ID              int64
	Code            string
	Name            string
	DiscountPercent decimal.Decimal
	StartDate       types.Date
	EndDate         types.Date
	Active          bool
	UsageLimit      *int // nil = unlimited
	UsageCount      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasUsageCap returns true if the promotion limits the number of usages
func (p *Promotion) HasUsageCap() bool {
	return p.UsageLimit != nil
}

// IsExhausted returns true if the usage cap has been reached
func (p *Promotion) IsExhausted() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}

// WithinWindow returns true if today is inside [StartDate, EndDate]
func (p *Promotion) WithinWindow(today types.Date) bool {
	return !today.IsBefore(p.StartDate) && !today.IsAfter(p.EndDate)
}

// InEffect returns true if the promotion is active, within its window and not exhausted
func (p *Promotion) InEffect(today types.Date) bool {
	return p.Active && p.WithinWindow(today) && !p.IsExhausted()
}
