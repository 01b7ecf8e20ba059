package quote_price

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
}

// TariffResolver выбор действующего тарифа на дату
type TariffResolver interface {
	Resolve(ctx context.Context, vehicleID int64, onDate types.Date) (*domain.Tariff, error)
}

// PriceCalculator расчет стоимости аренды
type PriceCalculator interface {
	Price(
		dailyRate decimal.Decimal,
		pickup, dropoff time.Time,
		promo *domain.Promotion,
		today types.Date,
	) (domain.PriceBreakdown, error)
	TaxRate() decimal.Decimal
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
