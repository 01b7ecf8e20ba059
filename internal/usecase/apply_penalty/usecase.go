package apply_penalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
)

// UseCase use case начисления штрафа за изменение бронирования или поздний возврат
type UseCase struct {
	reservationRepo ReservationRepository
	penalties       PenaltyService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	penalties PenaltyService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		penalties:       penalties,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute начисляет штраф по правилам платежной политики бронирования
// Повторный вызов для того же события возвращает уже начисленный штраф
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyPenalty: reservation=%d, event=%s, user=%d", req.ReservationID, req.EventType, req.UserID)

	now := uc.timeProvider.Now().UTC()
	event, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("ApplyPenalty: validation failed: %v", err)
		return nil, err
	}

	at := now
	if req.OccurredAt != nil {
		at = req.OccurredAt.UTC()
	}

	resp := &Response{}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		r, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ApplyPenalty: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ApplyPenalty: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if r.UserID != req.UserID {
			uc.logger.Warn("ApplyPenalty: access denied for user=%d to reservation id=%d", req.UserID, r.ID)
			return ErrAccessDenied
		}

		if r.Status != domain.StatusConfirmed {
			uc.logger.Warn("ApplyPenalty: reservation id=%d is %s, penalties apply to confirmed reservations", r.ID, r.Status)
			return ErrNotConfirmed
		}

		penalty, created, err := uc.penalties.Assess(txCtx, r, event, at)
		if err != nil {
			uc.logger.Error("ApplyPenalty: failed to assess %s penalty for reservation id=%d: %v", event, r.ID, err)
			return fmt.Errorf("%w: failed to assess penalty: %v", ErrInternal, err)
		}

		resp.Penalty = penalty
		resp.Charged = penalty != nil
		resp.Created = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if resp.Created {
		uc.penalties.Notify(ctx, resp.Penalty)
	}

	uc.logger.Info("ApplyPenalty: reservation=%d, event=%s, charged=%t, created=%t",
		req.ReservationID, event, resp.Charged, resp.Created)

	return resp, nil
}
