package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// PromotionRepository интерфейс для выключения истекших промоакций
type PromotionRepository interface {
	DeactivateExpired(ctx context.Context, today types.Date) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
