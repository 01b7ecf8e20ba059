package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// DefaultPath путь к конфигурации, если CONFIG_PATH не задан
const DefaultPath = "config.toml"

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
// Значения читаются из TOML файла и перекрываются переменными окружения
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Redis           RedisConfig           `toml:"redis"`
	RabbitMQ        RabbitMQConfig        `toml:"rabbitmq"`
	CustomerService CustomerServiceConfig `toml:"customer_service"`
	Pricing         PricingConfig         `toml:"pricing"`
	Scheduler       SchedulerConfig       `toml:"scheduler"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
}

// DSN возвращает строку подключения lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// RedisConfig настройки кэша тарифов
type RedisConfig struct {
	Enabled   bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Addr      string `toml:"addr" env:"REDIS_ADDR"`
	Password  string `toml:"password" env:"REDIS_PASSWORD"`
	DB        int    `toml:"db" env:"REDIS_DB"`
	TariffTTL int    `toml:"tariff_ttl" env:"REDIS_TARIFF_TTL"` // секунды
}

// TariffTTLDuration возвращает TTL кэша тарифов
func (c RedisConfig) TariffTTLDuration() time.Duration {
	return time.Duration(c.TariffTTL) * time.Second
}

// RabbitMQConfig настройки публикации доменных событий
type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL     string `toml:"url" env:"RABBITMQ_URL"`
	Queue   string `toml:"queue" env:"RABBITMQ_QUEUE"`
}

// CustomerServiceConfig настройки интеграции с CustomerService
type CustomerServiceConfig struct {
	Enabled bool   `toml:"enabled" env:"CUSTOMER_SERVICE_ENABLED"`
	URL     string `toml:"url" env:"CUSTOMER_SERVICE_URL"`
	Timeout int    `toml:"timeout" env:"CUSTOMER_SERVICE_TIMEOUT"` // секунды
}

// PricingConfig настройки расчета цены
type PricingConfig struct {
	TaxRate string `toml:"tax_rate" env:"PRICING_TAX_RATE"` // доля, например "0.21"
}

// TaxRateDecimal возвращает ставку налога
// Значение проверяется в Validate, поэтому здесь ошибка невозможна
func (c PricingConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.RequireFromString(c.TaxRate)
}

// SchedulerConfig настройки фоновых задач (cron с секундами, UTC)
type SchedulerConfig struct {
	Enabled              bool   `toml:"enabled" env:"SCHEDULER_ENABLED"`
	ExpirePromotionsSpec string `toml:"expire_promotions_spec" env:"SCHEDULER_EXPIRE_PROMOTIONS_SPEC"`
}

// Path возвращает путь к файлу конфигурации из CONFIG_PATH или DefaultPath
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает конфигурацию из TOML файла, применяет переменные окружения,
// заполняет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "rentalservice"
	}
	if c.Redis.TariffTTL == 0 {
		c.Redis.TariffTTL = 300
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "reservation_events"
	}
	if c.CustomerService.Timeout == 0 {
		c.CustomerService.Timeout = 5
	}
	if c.Pricing.TaxRate == "" {
		c.Pricing.TaxRate = "0.21"
	}
	if c.Scheduler.ExpirePromotionsSpec == "" {
		c.Scheduler.ExpirePromotionsSpec = "0 15 0 * * *"
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	rate, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return fmt.Errorf("%w: pricing.tax_rate is not a number: %v", ErrInvalidConfig, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: pricing.tax_rate must be in [0, 1], got %s", ErrInvalidConfig, c.Pricing.TaxRate)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	if c.CustomerService.Enabled && c.CustomerService.URL == "" {
		return fmt.Errorf("%w: customer_service.url is required when customer_service is enabled", ErrInvalidConfig)
	}

	if c.Scheduler.Enabled {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Scheduler.ExpirePromotionsSpec); err != nil {
			return fmt.Errorf("%w: scheduler.expire_promotions_spec: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}
