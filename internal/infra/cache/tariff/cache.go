package tariff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// DefaultTTL время жизни закэшированного списка тарифов
const DefaultTTL = 5 * time.Minute

// Source первичный источник тарифов (репозиторий PostgreSQL)
type Source interface {
	GetTariffs(ctx context.Context, vehicleID int64) ([]domain.Tariff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache read-through кэш тарифов в Redis
// Ошибки Redis не прерывают запрос: тарифы читаются из источника
type Cache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш поверх источника тарифов
func NewCache(client *redis.Client, source Source, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedTariff struct {
	ID          int64           `json:"id"`
	VehicleID   int64           `json:"vehicle_id"`
	ValidFrom   types.Date      `json:"valid_from"`
	ValidUntil  *types.Date     `json:"valid_until"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	CreatedAt   time.Time       `json:"created_at"`
}

// GetTariffs возвращает тарифы автомобиля из кэша или из источника
func (c *Cache) GetTariffs(ctx context.Context, vehicleID int64) ([]domain.Tariff, error) {
	key := tariffsKey(vehicleID)

	tariffs, err := c.get(ctx, key)
	if err == nil {
		return tariffs, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Warn("TariffCache: failed to read key=%s, falling back to source: %v", key, err)
	}

	tariffs, err = c.source.GetTariffs(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, key, tariffs); err != nil {
		c.logger.Warn("TariffCache: failed to store key=%s: %v", key, err)
	}

	return tariffs, nil
}

func (c *Cache) get(ctx context.Context, key string) ([]domain.Tariff, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var payload []cachedTariff
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal cached tariffs: %w", err)
	}

	tariffs := make([]domain.Tariff, 0, len(payload))
	for _, p := range payload {
		tariffs = append(tariffs, domain.Tariff{
			ID:          p.ID,
			VehicleID:   p.VehicleID,
			ValidFrom:   p.ValidFrom,
			ValidUntil:  p.ValidUntil,
			PricePerDay: p.PricePerDay,
			CreatedAt:   p.CreatedAt,
		})
	}
	return tariffs, nil
}

func (c *Cache) set(ctx context.Context, key string, tariffs []domain.Tariff) error {
	payload := make([]cachedTariff, 0, len(tariffs))
	for _, t := range tariffs {
		payload = append(payload, cachedTariff{
			ID:          t.ID,
			VehicleID:   t.VehicleID,
			ValidFrom:   t.ValidFrom,
			ValidUntil:  t.ValidUntil,
			PricePerDay: t.PricePerDay,
			CreatedAt:   t.CreatedAt,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal tariffs for cache: %w", err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func tariffsKey(vehicleID int64) string {
	return fmt.Sprintf("tariffs:vehicle:%d", vehicleID)
}
