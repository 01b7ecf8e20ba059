package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	promotionRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// UseCase use case подтверждения бронирования с фиксацией цены
type UseCase struct {
	reservationRepo ReservationRepository
	promotionRepo   PromotionRepository
	resolver        TariffResolver
	calculator      PriceCalculator
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	promotionRepo PromotionRepository,
	resolver TariffResolver,
	calculator PriceCalculator,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		promotionRepo:   promotionRepo,
		resolver:        resolver,
		calculator:      calculator,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute рассчитывает цену по тарифу на дату выдачи и подтверждает бронирование
// Использует сериализуемую транзакцию: бронирование читается FOR UPDATE,
// использование промоакции засчитывается в той же транзакции.
// Повторное подтверждение возвращает сохраненный снимок цены без пересчета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result           *domain.Reservation
		alreadyConfirmed bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может повторяться, поэтому время и состояние берутся заново
		now := uc.timeProvider.Now().UTC()
		alreadyConfirmed = false

		// 1. Бронирование с блокировкой
		r, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ConfirmReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ConfirmReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if r.UserID != req.UserID {
			uc.logger.Warn("ConfirmReservation: access denied for user=%d to reservation id=%d", req.UserID, r.ID)
			return ErrAccessDenied
		}

		// 2. Повторное подтверждение
		if r.Status == domain.StatusConfirmed {
			uc.logger.Info("ConfirmReservation: reservation id=%d already confirmed, returning snapshot", r.ID)
			result = r
			alreadyConfirmed = true
			return nil
		}

		if !r.CanBeConfirmed() {
			uc.logger.Warn("ConfirmReservation: reservation id=%d cannot be confirmed, status=%s", r.ID, r.Status)
			return ErrCannotConfirm
		}

		// 3. Тариф на дату выдачи
		tariff, err := uc.resolver.Resolve(txCtx, r.VehicleID, types.DateOf(r.PickupAt.UTC()))
		if err != nil {
			if errors.Is(err, pricing.ErrTariffNotFound) {
				uc.logger.Warn("ConfirmReservation: no tariff for vehicle id=%d on %s",
					r.VehicleID, r.PickupAt.Format(domain.DateFormat))
				return ErrVehicleUnavailable
			}
			uc.logger.Error("ConfirmReservation: failed to resolve tariff for vehicle id=%d: %v", r.VehicleID, err)
			return fmt.Errorf("%w: failed to resolve tariff: %v", ErrInternal, err)
		}

		// 4. Промоакция засчитывается атомарно, иначе цена считается без скидки
		today := types.DateOf(now)
		promo, err := uc.claimPromotion(txCtx, r, today)
		if err != nil {
			return err
		}

		// 5. Расчет и сохранение снимка цены
		breakdown, err := uc.calculator.Price(tariff.PricePerDay, r.PickupAt, r.DropoffAt, promo, today)
		if err != nil {
			uc.logger.Error("ConfirmReservation: failed to price reservation id=%d: %v", r.ID, err)
			return fmt.Errorf("%w: failed to price: %v", ErrInternal, err)
		}

		r.ApplyPrice(breakdown)
		r.Status = domain.StatusConfirmed
		r.ConfirmedAt = &now

		if err := uc.reservationRepo.SaveConfirmation(txCtx, r); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				uc.logger.Warn("ConfirmReservation: reservation id=%d changed status concurrently", r.ID)
				return ErrCannotConfirm
			}
			uc.logger.Error("ConfirmReservation: failed to save confirmation of reservation id=%d: %v", r.ID, err)
			return fmt.Errorf("%w: failed to save confirmation: %v", ErrInternal, err)
		}

		result = r
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyConfirmed {
		uc.metrics.ObserveReservationConfirmed(result.PromotionApplied)
		if err := uc.publisher.Publish(ctx, events.NewReservationConfirmed(result, *result.ConfirmedAt)); err != nil {
			uc.logger.Error("ConfirmReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
		}
	}

	uc.logger.Info("ConfirmReservation: reservation id=%d confirmed, total=%s, promotion_applied=%t",
		result.ID, result.Total.StringFixed(domain.MoneyScale), result.PromotionApplied)

	return &Response{
		Reservation:      result,
		AlreadyConfirmed: alreadyConfirmed,
	}, nil
}

// claimPromotion возвращает промоакцию для расчета цены или nil,
// если бронирование без промокода или засчитать использование не удалось
func (uc *UseCase) claimPromotion(ctx context.Context, r *domain.Reservation, today types.Date) (*domain.Promotion, error) {
	if r.PromotionID == nil {
		return nil, nil
	}

	promo, err := uc.promotionRepo.GetByID(ctx, *r.PromotionID)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			uc.logger.Warn("ConfirmReservation: promotion id=%d of reservation id=%d no longer exists", *r.PromotionID, r.ID)
			return nil, nil
		}
		uc.logger.Error("ConfirmReservation: failed to get promotion id=%d: %v", *r.PromotionID, err)
		return nil, fmt.Errorf("%w: failed to get promotion: %v", ErrInternal, err)
	}

	claimed, err := uc.promotionRepo.ClaimUsage(ctx, promo.ID, r.ID, today)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrDuplicateUsage) {
			uc.logger.Warn("ConfirmReservation: promotion id=%d claimed concurrently for reservation id=%d", promo.ID, r.ID)
			return nil, ErrConcurrentConfirmation
		}
		uc.logger.Error("ConfirmReservation: failed to claim promotion id=%d: %v", promo.ID, err)
		return nil, fmt.Errorf("%w: failed to claim promotion: %v", ErrInternal, err)
	}

	if !claimed {
		uc.logger.Warn("ConfirmReservation: promotion id=%d is not in effect, pricing reservation id=%d without discount",
			promo.ID, r.ID)
		return nil, nil
	}

	// Слот использования уже занят этим бронированием, лимит для расчета не учитывается
	applicable := *promo
	applicable.UsageLimit = nil
	return &applicable, nil
}
