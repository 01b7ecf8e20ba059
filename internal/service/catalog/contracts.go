package catalog

import (
	"context"
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// TariffResolver выбор действующего тарифа на дату
type TariffResolver interface {
	Resolve(ctx context.Context, vehicleID int64, onDate types.Date) (*domain.Tariff, error)
}

// PolicyRepository интерфейс репозитория платежных политик
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentPolicy, error)
}

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
