package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/storage/policy"
	"github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	"github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/M4Y-RentalService/internal/integrations/customerservice"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// UseCase use case для создания бронирования в статусе pending
type UseCase struct {
	reservationRepo ReservationRepository
	vehicleRepo     VehicleRepository
	policyRepo      PolicyRepository
	promotionRepo   PromotionRepository
	resolver        TariffResolver
	customerClient  CustomerServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// customerClient может быть nil, тогда возраст водителя не проверяется
func NewUseCase(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	policyRepo PolicyRepository,
	promotionRepo PromotionRepository,
	resolver TariffResolver,
	customerClient CustomerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		policyRepo:      policyRepo,
		promotionRepo:   promotionRepo,
		resolver:        resolver,
		customerClient:  customerClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает бронирование
// Цена не рассчитывается: она фиксируется при подтверждении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, vehicle=%d, pickup=%s, dropoff=%s",
		req.UserID, req.VehicleID, req.PickupAt.Format(domain.DateTimeFormat), req.DropoffAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validatePeriod(req.PickupAt, req.DropoffAt, now); err != nil {
		uc.logger.Warn("CreateReservation: period validation failed: %v", err)
		return nil, err
	}

	// 2. Автомобиль
	v, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			uc.logger.Warn("CreateReservation: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateReservation: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if !v.Active {
		uc.logger.Warn("CreateReservation: vehicle id=%d is not active", req.VehicleID)
		return nil, ErrVehicleUnavailable
	}

	// 3. Пункты выдачи и сдачи
	for _, placeID := range []int64{req.PickupPlaceID, req.DropoffPlaceID} {
		if _, err := uc.vehicleRepo.GetPlace(ctx, placeID); err != nil {
			if errors.Is(err, vehicle.ErrPlaceNotFound) {
				uc.logger.Warn("CreateReservation: place id=%d not found", placeID)
				return nil, ErrPlaceNotFound
			}
			uc.logger.Error("CreateReservation: failed to get place id=%d: %v", placeID, err)
			return nil, fmt.Errorf("%w: failed to get place: %v", ErrInternal, err)
		}
	}

	// 4. Тариф на дату выдачи должен существовать
	if _, err := uc.resolver.Resolve(ctx, req.VehicleID, types.DateOf(req.PickupAt.UTC())); err != nil {
		if errors.Is(err, pricing.ErrTariffNotFound) {
			uc.logger.Warn("CreateReservation: no tariff for vehicle id=%d on %s",
				req.VehicleID, req.PickupAt.Format(domain.DateFormat))
			return nil, ErrVehicleUnavailable
		}
		uc.logger.Error("CreateReservation: failed to resolve tariff for vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to resolve tariff: %v", ErrInternal, err)
	}

	// 5. Платежная политика (опционально)
	if req.PaymentPolicyID != nil {
		if err := uc.checkPolicy(ctx, *req.PaymentPolicyID); err != nil {
			return nil, err
		}
	}

	// 6. Промоакция (опционально), должна действовать сегодня
	var promotionID *int64
	if req.PromotionCode != nil {
		promo, err := uc.findPromotion(ctx, strings.TrimSpace(*req.PromotionCode), types.DateOf(now.UTC()))
		if err != nil {
			return nil, err
		}
		promotionID = &promo.ID
	}

	// 7. Возраст водителя
	verified, err := uc.checkDriverAge(ctx, req.UserID, v, types.DateOf(req.PickupAt.UTC()))
	if err != nil {
		return nil, err
	}

	// 8. Сохраняем бронирование
	created, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		PickupPlaceID:   req.PickupPlaceID,
		DropoffPlaceID:  req.DropoffPlaceID,
		PickupAt:        req.PickupAt.UTC(),
		DropoffAt:       req.DropoffAt.UTC(),
		PaymentPolicyID: req.PaymentPolicyID,
		PromotionID:     promotionID,
		Status:          domain.StatusPending,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, reservation.ErrInvalidReference) {
			uc.logger.Warn("CreateReservation: invalid reference for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d for user=%d", created.ID, req.UserID)

	return &Response{
		Reservation:       created,
		DriverAgeVerified: verified,
	}, nil
}

func (uc *UseCase) checkPolicy(ctx context.Context, policyID int64) error {
	p, err := uc.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			uc.logger.Warn("CreateReservation: policy id=%d not found", policyID)
			return ErrPolicyNotFound
		}
		uc.logger.Error("CreateReservation: failed to get policy id=%d: %v", policyID, err)
		return fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if !p.Active {
		uc.logger.Warn("CreateReservation: policy id=%d is not active", policyID)
		return ErrPolicyNotFound
	}
	return nil
}

func (uc *UseCase) findPromotion(ctx context.Context, code string, today types.Date) (*domain.Promotion, error) {
	promo, err := uc.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promotion.ErrPromotionNotFound) {
			uc.logger.Warn("CreateReservation: promotion code=%s not found", code)
			return nil, ErrPromotionNotFound
		}
		uc.logger.Error("CreateReservation: failed to get promotion code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get promotion: %v", ErrInternal, err)
	}
	if !promo.InEffect(today) {
		uc.logger.Warn("CreateReservation: promotion code=%s is not in effect on %s", code, today)
		return nil, ErrPromotionNotApplicable
	}
	return promo, nil
}

// checkDriverAge возвращает true, если возраст водителя проверен
// При недоступности CustomerService бронирование создается без проверки
func (uc *UseCase) checkDriverAge(ctx context.Context, userID int64, v *domain.Vehicle, pickupDate types.Date) (bool, error) {
	if uc.customerClient == nil {
		return false, nil
	}

	driver, err := uc.customerClient.GetDriverWithGracefulDegradation(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, customerservice.ErrDriverNotFound):
			uc.logger.Warn("CreateReservation: user=%d has no driver profile", userID)
			return false, ErrDriverNotFound
		case errors.Is(err, customerservice.ErrServiceDegraded):
			uc.logger.Warn("CreateReservation: driver age of user=%d not verified: %v", userID, err)
			return false, nil
		default:
			uc.logger.Error("CreateReservation: failed to get driver for user=%d: %v", userID, err)
			return false, fmt.Errorf("%w: failed to get driver: %v", ErrInternal, err)
		}
	}

	age := driver.AgeOn(pickupDate)
	if !v.AllowsDriverAge(age) {
		uc.logger.Warn("CreateReservation: driver age %d of user=%d is below %d for group %s",
			age, userID, v.Group.MinDriverAge, v.Group.Name)
		return false, fmt.Errorf("%w: minimum age is %d", ErrDriverTooYoung, v.Group.MinDriverAge)
	}

	return true, nil
}
