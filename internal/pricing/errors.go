package pricing

import "errors"

var (
	// ErrTariffNotFound no tariff covers the requested date for the vehicle
	ErrTariffNotFound = errors.New("pricing: tariff not found")

	// ErrInvalidPeriod drop-off is not strictly after pickup
	ErrInvalidPeriod = errors.New("pricing: invalid rental period")

	// ErrInvalidRate daily rate or penalty rate is negative or of unknown kind
	ErrInvalidRate = errors.New("pricing: invalid rate")

	// ErrPolicyNotFound the reservation has no payment policy attached
	ErrPolicyNotFound = errors.New("pricing: payment policy not found")
)
