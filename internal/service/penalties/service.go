package penalties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	policyRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/policy"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
)

// Service начисляет штрафы по событиям бронирования и сохраняет их идемпотентно
type Service struct {
	policyRepo  PolicyRepository
	penaltyRepo PenaltyRepository
	evaluator   Evaluator
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса штрафов
func NewService(
	policyRepo PolicyRepository,
	penaltyRepo PenaltyRepository,
	evaluator Evaluator,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		penaltyRepo: penaltyRepo,
		evaluator:   evaluator,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Assess рассчитывает штраф за событие и сохраняет его
// Вызывается внутри транзакции вызывающего (транзакция берется из ctx)
//
// Возвращает nil, если штраф не положен (бесплатная отмена, нет политики).
// created == false означает, что штраф за это событие уже был начислен ранее
// и возвращена существующая запись
func (s *Service) Assess(
	ctx context.Context,
	reservation *domain.Reservation,
	event domain.EventType,
	at time.Time,
) (penalty *domain.Penalty, created bool, err error) {
	policy, err := s.loadPolicy(ctx, reservation)
	if err != nil {
		return nil, false, err
	}

	hours := hoursBeforeEvent(reservation, event, at)

	evaluated, charged, err := s.evaluator.Evaluate(policy, event, hours, reservation, at)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrPolicyNotFound):
			s.logger.Warn("Assess: reservation id=%d has no payment policy, %s penalty waived", reservation.ID, event)
			return nil, false, nil
		case errors.Is(err, pricing.ErrInvalidRate):
			s.logger.Error("Assess: policy of reservation id=%d has invalid %s rate: %v", reservation.ID, event, err)
			return nil, false, fmt.Errorf("%w: reservation id=%d: %v", ErrInvalidPolicy, reservation.ID, err)
		default:
			return nil, false, fmt.Errorf("%w: Assess - evaluate: %v", ErrInternal, err)
		}
	}

	if !charged {
		s.logger.Info("Assess: no %s penalty for reservation id=%d (%.1fh notice)", event, reservation.ID, hours)
		return nil, false, nil
	}

	stored, created, err := s.penaltyRepo.CreateIdempotent(ctx, &evaluated)
	if err != nil {
		s.logger.Error("Assess: failed to store %s penalty for reservation id=%d: %v", event, reservation.ID, err)
		return nil, false, fmt.Errorf("%w: Assess - store penalty: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("Assess: %s penalty %s charged to reservation id=%d",
			event, stored.Amount.StringFixed(domain.MoneyScale), reservation.ID)
	} else {
		s.logger.Info("Assess: %s penalty for reservation id=%d already recorded as id=%d", event, reservation.ID, stored.ID)
	}

	return stored, created, nil
}

// Notify учитывает новый штраф в метриках и публикует событие
// Вызывается после фиксации транзакции. Ошибки публикации только логируются
func (s *Service) Notify(ctx context.Context, penalty *domain.Penalty) {
	if penalty == nil {
		return
	}

	s.metrics.ObservePenaltyApplied(string(penalty.EventType))

	if err := s.publisher.Publish(ctx, events.NewPenaltyApplied(penalty)); err != nil {
		s.logger.Error("Notify: failed to publish penalty_applied for penalty id=%d: %v", penalty.ID, err)
	}
}

func (s *Service) loadPolicy(ctx context.Context, reservation *domain.Reservation) (*domain.PaymentPolicy, error) {
	if reservation.PaymentPolicyID == nil {
		return nil, nil
	}

	policy, err := s.policyRepo.GetByID(ctx, *reservation.PaymentPolicyID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return nil, nil
		}
		s.logger.Error("Assess: failed to load policy id=%d: %v", *reservation.PaymentPolicyID, err)
		return nil, fmt.Errorf("%w: Assess - load policy: %v", ErrInternal, err)
	}
	return policy, nil
}

// hoursBeforeEvent часы запаса до события, к которому привязан штраф:
// для позднего возврата это плановое время сдачи, для остальных событий выдача автомобиля
func hoursBeforeEvent(reservation *domain.Reservation, event domain.EventType, at time.Time) float64 {
	switch event {
	case domain.EventLateReturn:
		return reservation.DropoffAt.Sub(at).Hours()
	case domain.EventCancellation, domain.EventModification:
		return reservation.HoursBefore(at)
	default:
		return reservation.HoursBefore(at)
	}
}
