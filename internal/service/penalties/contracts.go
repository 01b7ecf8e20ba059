package penalties

import (
	"context"
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
)

// PolicyRepository интерфейс репозитория платежных политик
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentPolicy, error)
}

// PenaltyRepository интерфейс репозитория штрафов
type PenaltyRepository interface {
	CreateIdempotent(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, bool, error)
}

// Evaluator расчет штрафа по правилам политики
type Evaluator interface {
	Evaluate(
		policy *domain.PaymentPolicy,
		event domain.EventType,
		hoursBeforeEvent float64,
		reservation *domain.Reservation,
		at time.Time,
	) (domain.Penalty, bool, error)
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики штрафов
type Metrics interface {
	ObservePenaltyApplied(eventType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
