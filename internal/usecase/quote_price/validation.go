package quote_price

import (
	"fmt"
	"strings"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.PickupAt.IsZero() || req.DropoffAt.IsZero() {
		return fmt.Errorf("%w: pickupAt and dropoffAt are required", ErrInvalidInput)
	}

	if !req.DropoffAt.After(req.PickupAt) {
		return ErrInvalidPeriod
	}

	if req.PromotionCode != nil {
		code := strings.TrimSpace(*req.PromotionCode)
		if code == "" || len(code) > domain.MaxPromotionCodeLength {
			return fmt.Errorf("%w: invalid promotion code", ErrInvalidInput)
		}
	}

	return nil
}
