package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers/health"
	"github.com/m04kA/SMC-LandingBooking/internal/config"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
	activityLogRepo "github.com/m04kA/SMC-LandingBooking/internal/infra/storage/activitylog"
	appointmentRepo "github.com/m04kA/SMC-LandingBooking/internal/infra/storage/appointment"
	contactRepo "github.com/m04kA/SMC-LandingBooking/internal/infra/storage/contact"
	supabaseRepo "github.com/m04kA/SMC-LandingBooking/internal/infra/supabase"
	createAppointmentUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/create_appointment"
	startVisitUC "github.com/m04kA/SMC-LandingBooking/internal/usecase/start_visit"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
	"github.com/m04kA/SMC-LandingBooking/pkg/metrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/txmanager"
)

// backend репозитории выбранного драйвера хранилища
type backend struct {
	appointments createAppointmentUC.AppointmentRepository
	snapshots    startVisitUC.SnapshotRepository
	finder       identity.AppointmentFinder
	contacts     identity.ContactFinder
	activity     createAppointmentUC.ActivityLog
	txManager    createAppointmentUC.TransactionManager
	checks       []health.Check
	close        func()
}

func newBackend(cfg *config.Config, metricsCollector *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSupabase:
		return newSupabaseBackend(cfg, log)
	default:
		return newPostgresBackend(cfg, metricsCollector, stopCh, log)
	}
}

func newPostgresBackend(cfg *config.Config, metricsCollector *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*backend, error) {
	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	appointments := appointmentRepo.NewRepository(wrappedDB)
	return &backend{
		appointments: appointments,
		snapshots:    appointments,
		finder:       appointments,
		contacts:     contactRepo.NewRepository(wrappedDB),
		activity:     activityLogRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		checks:       []health.Check{{Name: "database", Check: wrappedDB.PingContext}},
		close:        func() { _ = db.Close() },
	}, nil
}

func newSupabaseBackend(cfg *config.Config, log *logger.Logger) (*backend, error) {
	client, err := supabaseRepo.NewClient(cfg.Supabase.URL, cfg.Supabase.Key)
	if err != nil {
		return nil, err
	}
	log.Info("Supabase client initialized (url=%s)", cfg.Supabase.URL)

	repo := supabaseRepo.NewRepository(client)
	return &backend{
		appointments: repo,
		snapshots:    repo,
		finder:       repo,
		contacts:     repo,
		activity:     supabaseRepo.NewActivityLog(repo),
		// PostgREST не даёт транзакций между запросами
		txManager: txmanager.NoopManager{},
		close:     func() {},
	}, nil
}
