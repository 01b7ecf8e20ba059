package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

const (
	jobDeactivateExpiredPromotions = "DeactivateExpiredPromotions"

	// jobTimeout ограничение времени одного запуска задачи
	jobTimeout = time.Minute
)

// JobRunner выполняет фоновые задачи сервиса
type JobRunner struct {
	promotionRepo PromotionRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewJobRunner создает исполнитель фоновых задач
func NewJobRunner(promotionRepo PromotionRepository, logger Logger) *JobRunner {
	return &JobRunner{
		promotionRepo: promotionRepo,
		timeProvider:  RealTimeProvider{},
		logger:        logger,
	}
}

// DeactivateExpiredPromotions выключает промоакции, срок действия которых закончился
func (jr *JobRunner) DeactivateExpiredPromotions() {
	jr.runWithRecovery(jobDeactivateExpiredPromotions, func(ctx context.Context) {
		today := types.DateOf(jr.timeProvider.Now().UTC())

		affected, err := jr.promotionRepo.DeactivateExpired(ctx, today)
		if err != nil {
			jr.logger.Error("%s: failed to deactivate promotions expired before %s: %v",
				jobDeactivateExpiredPromotions, today, err)
			return
		}

		jr.logger.Info("%s: deactivated %d promotions expired before %s",
			jobDeactivateExpiredPromotions, affected, today)
	})
}

// runWithRecovery запускает задачу с таймаутом и перехватом паники
func (jr *JobRunner) runWithRecovery(jobName string, job func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			jr.logger.Error("%s: job panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	jr.logger.Info("%s: starting job", jobName)
	job(ctx)
	jr.logger.Info("%s: job completed", jobName)
}
