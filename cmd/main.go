package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	applyPenaltyHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/apply_penalty"
	cancelReservationHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/create_reservation"
	getPaymentPolicyHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/get_payment_policy"
	getPromotionHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/get_promotion"
	getReservationHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/get_reservation"
	getTariffHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/get_tariff"
	getUserReservationsHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/get_user_reservations"
	listPenaltiesHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/list_penalties"
	quotePriceHandler "github.com/m04kA/M4Y-RentalService/internal/api/handlers/quote_price"
	"github.com/m04kA/M4Y-RentalService/internal/api/middleware"
	"github.com/m04kA/M4Y-RentalService/internal/config"
	tariffCache "github.com/m04kA/M4Y-RentalService/internal/infra/cache/tariff"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	penaltyRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/penalty"
	policyRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/policy"
	promotionRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	vehicleRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/vehicle"
	customerServiceClient "github.com/m04kA/M4Y-RentalService/internal/integrations/customerservice"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/internal/scheduler"
	catalogService "github.com/m04kA/M4Y-RentalService/internal/service/catalog"
	penaltiesService "github.com/m04kA/M4Y-RentalService/internal/service/penalties"
	reservationsService "github.com/m04kA/M4Y-RentalService/internal/service/reservations"
	applyPenaltyUC "github.com/m04kA/M4Y-RentalService/internal/usecase/apply_penalty"
	cancelReservationUC "github.com/m04kA/M4Y-RentalService/internal/usecase/cancel_reservation"
	confirmReservationUC "github.com/m04kA/M4Y-RentalService/internal/usecase/confirm_reservation"
	createReservationUC "github.com/m04kA/M4Y-RentalService/internal/usecase/create_reservation"
	quotePriceUC "github.com/m04kA/M4Y-RentalService/internal/usecase/quote_price"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/logger"
	"github.com/m04kA/M4Y-RentalService/pkg/metrics"
	"github.com/m04kA/M4Y-RentalService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting M4Y-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	vehicleRepository := vehicleRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	penaltyRepository := penaltyRepo.NewRepository(wrappedDB)

	// Источник тарифов: PostgreSQL, опционально через кэш Redis
	var tariffSource pricing.TariffSource = vehicleRepository
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := tariffCache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, tariffs will be read from database: %v", err)
		} else {
			defer redisClient.Close()
			tariffSource = tariffCache.NewCache(redisClient, vehicleRepository, cfg.Redis.TariffTTLDuration(), log)
			log.Info("Tariff cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TariffTTL)
		}
	}

	// Ядро расчета цены и штрафов
	tariffResolver := pricing.NewTariffResolver(tariffSource)
	priceCalculator := pricing.NewCalculator(cfg.Pricing.TaxRateDecimal())
	penaltyEvaluator := pricing.NewPenaltyEvaluator()
	log.Info("Pricing initialized (tax_rate=%s)", cfg.Pricing.TaxRate)

	// Публикация доменных событий
	var publisher events.EventPublisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		conn, err := events.Connect(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		rabbitPublisher, err := events.NewPublisher(conn.Channel, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Fatal("Failed to initialize event publisher: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("Event publishing enabled (queue=%s)", cfg.RabbitMQ.Queue)
	} else {
		log.Info("RabbitMQ disabled, domain events will not be published")
	}

	// Инициализируем интеграционных клиентов
	var customerClient createReservationUC.CustomerServiceClient
	if cfg.CustomerService.Enabled {
		customerClient = customerServiceClient.NewClient(
			cfg.CustomerService.URL,
			time.Duration(cfg.CustomerService.Timeout)*time.Second,
			log,
		)
		log.Info("Integration clients initialized (CustomerService=%s timeout=%ds)",
			cfg.CustomerService.URL, cfg.CustomerService.Timeout)
	} else {
		log.Warn("CustomerService disabled, driver age will not be verified")
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		vehicleRepository,
		tariffResolver,
		policyRepository,
		promotionRepository,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		penaltyRepository,
		log,
	)
	penaltiesSvc := penaltiesService.NewService(
		policyRepository,
		penaltyRepository,
		penaltyEvaluator,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	quotePriceUseCase := quotePriceUC.NewUseCase(
		vehicleRepository,
		promotionRepository,
		tariffResolver,
		priceCalculator,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		vehicleRepository,
		policyRepository,
		promotionRepository,
		tariffResolver,
		customerClient,
		log,
	)
	confirmReservationUseCase := confirmReservationUC.NewUseCase(
		reservationRepository,
		promotionRepository,
		tariffResolver,
		priceCalculator,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		penaltiesSvc,
		txMgr,
		publisher,
		log,
	)
	applyPenaltyUseCase := applyPenaltyUC.NewUseCase(
		reservationRepository,
		penaltiesSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getTariff := getTariffHandler.NewHandler(catalogSvc, log)
	getPaymentPolicy := getPaymentPolicyHandler.NewHandler(catalogSvc, log)
	getPromotion := getPromotionHandler.NewHandler(catalogSvc, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	applyPenalty := applyPenaltyHandler.NewHandler(applyPenaltyUseCase, log)
	listPenalties := listPenaltiesHandler.NewHandler(reservationsSvc, log)

	// Фоновые задачи
	var jobScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobScheduler, err = scheduler.NewScheduler(
			scheduler.Config{ExpirePromotionsSpec: cfg.Scheduler.ExpirePromotionsSpec},
			scheduler.NewJobRunner(promotionRepository, log),
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize scheduler: %v", err)
		}
		jobScheduler.Start()
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Тариф автомобиля на дату
	api.HandleFunc("/vehicles/{vehicleId}/tariff", getTariff.Handle).Methods(http.MethodGet)

	// Предварительный расчет цены
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// Платежная политика с правилами штрафов
	api.HandleFunc("/payment-policies/{policyId}", getPaymentPolicy.Handle).Methods(http.MethodGet)

	// Промоакция по коду
	api.HandleFunc("/promotions/{code}", getPromotion.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Штрафы ---
	protected.HandleFunc("/reservations/{reservationId}/penalties", applyPenalty.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/penalties", listPenalties.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if jobScheduler != nil {
		jobScheduler.Stop()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
