package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-LandingBooking/internal/api/handlers/create_appointment"
	getAvailableDatesHandler "github.com/m04kA/SMC-LandingBooking/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-LandingBooking/internal/api/handlers/get_available_slots"
	healthHandler "github.com/m04kA/SMC-LandingBooking/internal/api/handlers/health"
	startVisitHandler "github.com/m04kA/SMC-LandingBooking/internal/api/handlers/start_visit"
	"github.com/m04kA/SMC-LandingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-LandingBooking/internal/config"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/events"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
	"github.com/m04kA/SMC-LandingBooking/internal/integrations/ipprovider"
	createAppointmentUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_slots"
	startVisitUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/start_visit"
	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
	"github.com/m04kA/SMC-LandingBooking/pkg/metrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/tracing"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
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

	log.Info("Starting SMC-LandingBooking...")
	log.Info("Configuration loaded from %s (storage=%s, visits=%s)", configPath, cfg.Storage.Driver, cfg.Visits.Store)

	location, err := cfg.Booking.LoadLocation()
	if err != nil {
		log.Fatal("Failed to load booking location: %v", err)
	}

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище записей и контактов
	store, err := newBackend(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Redis нужен для визитов и лимита запросов, если они настроены на redis
	var redisClient *redis.Client
	if cfg.Visits.Store == config.VisitStoreRedis || (cfg.RateLimit.Enabled && cfg.RateLimit.Store == config.VisitStoreRedis) {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		store.checks = append(store.checks, healthHandler.Check{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		log.Info("Connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Хранилище визитов
	var visits interface {
		startVisitUC.VisitStore
		createAppointmentUC.VisitStore
	}
	if cfg.Visits.Store == config.VisitStoreRedis {
		visits = visitstore.NewRedisStore(redisClient, cfg.Visits.KeyPrefix)
	} else {
		visits = visitstore.NewMemoryStore()
	}

	// Определение IP: ipify, затем ipapi, затем ipdata
	transport := tracing.NewTransport(http.DefaultTransport)
	timeout := cfg.IPDiscovery.Timeout()
	ipChain := identity.NewIPChain([]identity.IPProvider{
		ipprovider.NewClient(ipprovider.NameIpify, cfg.IPDiscovery.IpifyURL, timeout, transport, log),
		ipprovider.NewClient(ipprovider.NameIpapi, cfg.IPDiscovery.IpapiURL, timeout, transport, log),
		ipprovider.NewClient(ipprovider.NameIpdata, cfg.IPDiscovery.IpdataEndpoint(), timeout, transport, log),
	}, cfg.IPDiscovery.TrustForwarded, metricsCollector, log)
	log.Info("IP discovery chain initialized (timeout=%s, trust_forwarded=%t)", timeout, cfg.IPDiscovery.TrustForwarded)

	// Поиск личности по IP
	resolver := identity.NewLookupChain(
		identity.DefaultLookups(store.finder, store.contacts, cfg.Identity.UseRPC),
		metricsCollector,
		log,
	)

	// События о новых записях
	var publisher interface {
		createAppointmentUC.EventPublisher
		Close() error
	} = events.DisabledPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(
			events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			cfg.Kafka.Topic,
			metricsCollector,
			log,
		)
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Инициализируем use cases
	startVisitUseCase := startVisitUC.NewUseCase(
		store.snapshots,
		ipChain,
		resolver,
		visits,
		metricsCollector,
		startVisitUC.Config{
			TTL:       cfg.Visits.TTL(),
			GuestName: cfg.Booking.GuestName,
		},
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(visits, location, cfg.Booking.CalendarDays, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(visits, location, log)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		visits,
		store.activity,
		publisher,
		store.txManager,
		metricsCollector,
		createAppointmentUC.Config{
			GuestName:      cfg.Booking.GuestName,
			RecheckStorage: cfg.Booking.RecheckStorage,
			Location:       location,
		},
		log,
	)

	// Инициализируем handlers
	startVisit := startVisitHandler.NewHandler(startVisitUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	health := healthHandler.NewHandler(log, store.checks...)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		var counter middleware.Counter
		if cfg.RateLimit.Store == config.VisitStoreRedis {
			counter = middleware.NewRedisCounter(redisClient, cfg.RateLimit.Window(), "landing:rl")
		} else {
			counter = middleware.NewMemoryCounter(cfg.RateLimit.Window())
		}
		api.Use(middleware.NewRateLimit(counter, cfg.RateLimit.Requests, cfg.IPDiscovery.TrustForwarded,
			cfg.RateLimit.FailOpen, log).Middleware())
		log.Info("Rate limit enabled (store=%s, requests=%d per %s)",
			cfg.RateLimit.Store, cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	// Открытие страницы: снимок занятых слотов, IP и предзаполнение формы
	api.HandleFunc("/visits", startVisit.Handle).Methods(http.MethodPost)

	// Календарь и свободные слоты по снимку визита
	api.HandleFunc("/visits/{visitId}/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/visits/{visitId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/visits/{visitId}/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      tracing.WrapHandler(r, cfg.Metrics.ServiceName),
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
