package quote_price

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	promotionRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	vehicleRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// UseCase предварительный расчет цены без побочных эффектов
type UseCase struct {
	vehicleRepo   VehicleRepository
	promotionRepo PromotionRepository
	resolver      TariffResolver
	calculator    PriceCalculator
	taxRate       string
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vehicleRepo VehicleRepository,
	promotionRepo PromotionRepository,
	resolver TariffResolver,
	calculator PriceCalculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		vehicleRepo:   vehicleRepo,
		promotionRepo: promotionRepo,
		resolver:      resolver,
		calculator:    calculator,
		taxRate:       calculator.TaxRate().String(),
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute рассчитывает цену аренды по тарифу, действующему на дату выдачи
// Промокод, не действующий сегодня, не дает скидки, но и не считается ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: vehicle=%d, pickup=%s, dropoff=%s",
		req.VehicleID, req.PickupAt.Format(domain.DateTimeFormat), req.DropoffAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем автомобиль
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("QuotePrice: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("QuotePrice: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if !vehicle.Active {
		uc.logger.Warn("QuotePrice: vehicle id=%d is not active", req.VehicleID)
		return nil, ErrVehicleUnavailable
	}

	// 3. Тариф на дату выдачи
	tariff, err := uc.resolver.Resolve(ctx, req.VehicleID, types.DateOf(req.PickupAt.UTC()))
	if err != nil {
		if errors.Is(err, pricing.ErrTariffNotFound) {
			uc.logger.Warn("QuotePrice: no tariff for vehicle id=%d on %s", req.VehicleID, req.PickupAt.Format(domain.DateFormat))
			return nil, ErrVehicleUnavailable
		}
		uc.logger.Error("QuotePrice: failed to resolve tariff for vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to resolve tariff: %v", ErrInternal, err)
	}

	// 4. Промоакция (опционально)
	var promo *domain.Promotion
	if req.PromotionCode != nil {
		code := strings.TrimSpace(*req.PromotionCode)
		promo, err = uc.promotionRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
				uc.logger.Warn("QuotePrice: promotion code=%s not found", code)
				return nil, ErrPromotionNotFound
			}
			uc.logger.Error("QuotePrice: failed to get promotion code=%s: %v", code, err)
			return nil, fmt.Errorf("%w: failed to get promotion: %v", ErrInternal, err)
		}
	}

	// 5. Расчет
	today := types.DateOf(uc.timeProvider.Now().UTC())
	breakdown, err := uc.calculator.Price(tariff.PricePerDay, req.PickupAt, req.DropoffAt, promo, today)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidPeriod):
			return nil, ErrInvalidPeriod
		case errors.Is(err, pricing.ErrInvalidRate):
			uc.logger.Error("QuotePrice: tariff id=%d has invalid rate %s", tariff.ID, tariff.PricePerDay)
			return nil, fmt.Errorf("%w: tariff id=%d: %v", ErrInternal, tariff.ID, err)
		default:
			return nil, fmt.Errorf("%w: failed to price: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("QuotePrice: vehicle=%d, tariff=%d, days=%d, total=%s, discount=%t",
		req.VehicleID, tariff.ID, breakdown.Days, breakdown.Total.StringFixed(domain.MoneyScale), breakdown.DiscountApplied)

	return &Response{
		VehicleID:     req.VehicleID,
		TariffID:      tariff.ID,
		PickupAt:      req.PickupAt,
		DropoffAt:     req.DropoffAt,
		Price:         breakdown,
		PromotionCode: req.PromotionCode,
		TaxRate:       uc.taxRate,
	}, nil
}
