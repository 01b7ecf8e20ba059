package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает задачи JobRunner по расписанию cron (UTC, с секундами)
type Scheduler struct {
	cron   *cron.Cron
	jobs   *JobRunner
	logger Logger
}

// Config расписания задач
type Config struct {
	ExpirePromotionsSpec string
}

// NewScheduler создает планировщик и регистрирует задачи
func NewScheduler(cfg Config, jobs *JobRunner, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(cfg.ExpirePromotionsSpec, s.jobs.DeactivateExpiredPromotions); err != nil {
		return nil, fmt.Errorf("failed to register %s job with spec %q: %w",
			jobDeactivateExpiredPromotions, cfg.ExpirePromotionsSpec, err)
	}

	s.logger.Info("Scheduler: %d jobs registered", len(s.cron.Entries()))
	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting")
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения выполняющихся задач
func (s *Scheduler) Stop() {
	s.logger.Info("Scheduler: stopping")
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}
