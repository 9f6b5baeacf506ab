package cli

import (
	"context"
	"errors"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"panda-server/internal/config"
	"panda-server/internal/localisation"
	"panda-server/internal/logger"
	"panda-server/internal/metrics"
	"panda-server/internal/models"
	"panda-server/internal/repository"
	"panda-server/internal/service"
	"panda-server/internal/tracer"
)

// app holds every long lived collaborator built from the configuration.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	translator   *localisation.Translator
	metrics      *metrics.Collector
	patients     *service.PatientService
	appointments *service.AppointmentService

	tp *sdktrace.TracerProvider
	db *gorm.DB
}

// newApp builds every collaborator in dependency order. When a step fails the
// ones already built are released before the error is returned.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	if a.log, err = logger.New(cfg.Log, cfg.Environment); err != nil {
		return nil, err
	}

	if a.tp, err = tracer.Init(ctx, cfg.Tracing, cfg.Environment); err != nil {
		return nil, err
	}

	if a.translator, err = localisation.LoadDir(cfg.LocalesDir, cfg.DefaultLanguage); err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	dbType := repository.DatabaseType(cfg.Database.Type)
	if dbType.NeedsConnection() {
		a.db, err = models.InitDB(models.DatabaseConfig{Driver: cfg.Database.Type, DSN: cfg.Database.DSN()})
		if err != nil {
			return nil, err
		}
	}

	patientRepo, appointmentRepo, err := repository.New(dbType, a.db)
	if err != nil {
		return nil, err
	}

	a.log.Info("storage ready", zap.String("database", cfg.Database.Type), zap.Strings("languages", a.translator.Languages()))

	a.metrics = metrics.NewCollector("panda")
	a.patients = service.NewPatientService(patientRepo, a.log)
	a.appointments = service.NewAppointmentService(appointmentRepo, a.log)
	return a, nil
}

// Close flushes spans and releases the database connection. It tolerates an
// app that was only partly built.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down tracer: %w", err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing database: %w", err))
			}
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return errors.Join(errs...)
}
