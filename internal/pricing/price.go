package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// Calculator turns a daily rate and a rental period into a PriceBreakdown
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator creates a calculator with the given tax rate (0.21 = 21%)
func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

// TaxRate returns the configured tax rate
func (c *Calculator) TaxRate() decimal.Decimal {
	return c.taxRate
}

// RentalDays returns the number of billable days: started 24h periods, at least one
func RentalDays(pickup, dropoff time.Time) (int, error) {
	if !dropoff.After(pickup) {
		return 0, ErrInvalidPeriod
	}
	return ceilDays(dropoff.Sub(pickup)), nil
}

// Price computes the price of renting at dailyRate from pickup to dropoff.
//
// promo may be nil. It is applied only when in effect on today. Intermediate
// values are kept unrounded; Total is rounded half-up to cents from the exact
// subtotal and tax. Tax is reported as Total minus the rounded Subtotal so the
// displayed figures always add up.
func (c *Calculator) Price(
	dailyRate decimal.Decimal,
	pickup, dropoff time.Time,
	promo *domain.Promotion,
	today types.Date,
) (domain.PriceBreakdown, error) {
	if dailyRate.IsNegative() {
		return domain.PriceBreakdown{}, ErrInvalidRate
	}

	days, err := RentalDays(pickup, dropoff)
	if err != nil {
		return domain.PriceBreakdown{}, err
	}

	beforeDiscount := dailyRate.Mul(decimal.NewFromInt(int64(days)))

	discount := decimal.Zero
	var promotionID *int64
	if promo != nil && promo.InEffect(today) {
		discount = beforeDiscount.Mul(clampPercent(promo.DiscountPercent)).Div(hundred)
		id := promo.ID
		promotionID = &id
	}

	subtotal := beforeDiscount.Sub(discount)
	tax := subtotal.Mul(c.taxRate)
	total := subtotal.Add(tax).Round(domain.MoneyScale)
	roundedSubtotal := subtotal.Round(domain.MoneyScale)

	return domain.PriceBreakdown{
		DailyRate:              dailyRate,
		Days:                   days,
		SubtotalBeforeDiscount: beforeDiscount.Round(domain.MoneyScale),
		Discount:               discount.Round(domain.MoneyScale),
		Subtotal:               roundedSubtotal,
		Tax:                    total.Sub(roundedSubtotal),
		Total:                  total,
		DiscountApplied:        promotionID != nil,
		PromotionID:            promotionID,
	}, nil
}

func clampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// ceilDays rounds a duration up to whole days
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	if d <= 0 {
		return 0
	}
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days
}
