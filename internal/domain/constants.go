package domain

import "github.com/shopspring/decimal"

// Money and tax defaults
const (
	MoneyScale = 2 // знаков после запятой в денежных суммах
)

// DefaultTaxRate ставка НДС по умолчанию (21%)
var DefaultTaxRate = decimal.RequireFromString("0.21")

// Business validation constants
const (
	MaxRentalDays               = 90
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxPromotionCodeLength      = 50
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// ActiveStatuses статусы бронирований, которые ещё можно отменить
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
