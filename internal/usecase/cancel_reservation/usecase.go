package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
)

// UseCase use case отмены бронирования со штрафом по платежной политике
type UseCase struct {
	reservationRepo ReservationRepository
	penalties       PenaltyService
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	penalties PenaltyService,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		penalties:       penalties,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет бронирование
// Штраф начисляется только за отмену подтвержденного бронирования,
// отмена pending бесплатна. cancelled - конечный статус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result     *domain.Reservation
		penalty    *domain.Penalty
		newPenalty bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now().UTC()
		penalty, newPenalty = nil, false

		// 1. Бронирование с блокировкой
		r, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if r.UserID != req.UserID {
			uc.logger.Warn("CancelReservation: access denied for user=%d to reservation id=%d", req.UserID, r.ID)
			return ErrAccessDenied
		}

		// 2. Проверяем статус
		if r.IsCancelled() {
			uc.logger.Warn("CancelReservation: reservation id=%d is already cancelled", r.ID)
			return ErrAlreadyCancelled
		}
		if !r.CanBeCancelled() {
			uc.logger.Warn("CancelReservation: reservation id=%d cannot be cancelled, status=%s", r.ID, r.Status)
			return ErrCannotCancel
		}

		// 3. Штраф за отмену подтвержденного бронирования
		if r.Status == domain.StatusConfirmed {
			penalty, newPenalty, err = uc.penalties.Assess(txCtx, r, domain.EventCancellation, now)
			if err != nil {
				uc.logger.Error("CancelReservation: failed to assess penalty for reservation id=%d: %v", r.ID, err)
				return fmt.Errorf("%w: failed to assess penalty: %v", ErrInternal, err)
			}
		}

		// 4. Отмена
		if err := uc.reservationRepo.Cancel(txCtx, r.ID, req.Reason, now); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				uc.logger.Warn("CancelReservation: reservation id=%d changed status concurrently", r.ID)
				return ErrCannotCancel
			}
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", r.ID, err)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}

		r.Status = domain.StatusCancelled
		r.CancellationReason = req.Reason
		r.CancelledAt = &now
		result = r
		return nil
	})

	if err != nil {
		return nil, err
	}

	if newPenalty {
		uc.penalties.Notify(ctx, penalty)
	}
	if err := uc.publisher.Publish(ctx, events.NewReservationCancelled(result, penalty, *result.CancelledAt)); err != nil {
		uc.logger.Error("CancelReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	if penalty != nil {
		uc.logger.Info("CancelReservation: reservation id=%d cancelled with penalty %s",
			result.ID, penalty.Amount.StringFixed(domain.MoneyScale))
	} else {
		uc.logger.Info("CancelReservation: reservation id=%d cancelled free of charge", result.ID)
	}

	return &Response{
		Reservation: result,
		Penalty:     penalty,
	}, nil
}
