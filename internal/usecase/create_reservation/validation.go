package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.PickupPlaceID <= 0 || req.DropoffPlaceID <= 0 {
		return fmt.Errorf("%w: pickupPlaceID and dropoffPlaceID must be positive", ErrInvalidInput)
	}

	if req.PaymentPolicyID != nil && *req.PaymentPolicyID <= 0 {
		return fmt.Errorf("%w: paymentPolicyID must be positive", ErrInvalidInput)
	}

	if req.PickupAt.IsZero() || req.DropoffAt.IsZero() {
		return fmt.Errorf("%w: pickupAt and dropoffAt are required", ErrInvalidInput)
	}

	if req.PromotionCode != nil {
		code := strings.TrimSpace(*req.PromotionCode)
		if code == "" || len(code) > domain.MaxPromotionCodeLength {
			return fmt.Errorf("%w: invalid promotion code", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validatePeriod проверяет период аренды относительно текущего времени
func validatePeriod(pickup, dropoff, now time.Time) error {
	days, err := pricing.RentalDays(pickup, dropoff)
	if err != nil {
		return ErrInvalidPeriod
	}

	if pickup.Before(now) {
		return ErrPickupInPast
	}

	if days > domain.MaxRentalDays {
		return fmt.Errorf("%w: %d days, maximum is %d", ErrRentalTooLong, days, domain.MaxRentalDays)
	}

	return nil
}
