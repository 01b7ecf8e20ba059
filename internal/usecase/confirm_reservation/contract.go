package confirm_reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	SaveConfirmation(ctx context.Context, reservation *domain.Reservation) error
}

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	ClaimUsage(ctx context.Context, promotionID, reservationID int64, today types.Date) (bool, error)
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
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики подтверждений
type Metrics interface {
	ObserveReservationConfirmed(promotionApplied bool)
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
