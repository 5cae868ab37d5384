package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-planner/internal/adapters/auth/odin"
	"pet-care-planner/internal/adapters/storage/sqlstore"
	"pet-care-planner/internal/config"
	"pet-care-planner/internal/digest"
	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/ports/auth"
	"pet-care-planner/internal/router"
)

// @title       Pet Care Planner API
// @description Mascotas, tareas de cuidado y plan diario dentro del tiempo disponible del dueño.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logger.Level),
		Format: logger.ParseFormat(cfg.Logger.Format),
		App:    cfg.App.Name,
	})
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	log.Info("storage ready", map[string]any{"driver": cfg.Storage.Driver})

	var verifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)
	if cfg.Auth.Enabled() {
		client, err := odin.NewClient(odin.Config{BaseURL: cfg.Auth.OdinBaseURL, APIKey: cfg.Auth.OdinAPIKey, Retries: 2})
		if err != nil {
			return fmt.Errorf("odin client: %w", err)
		}
		verifier = odin.NewVerifier(client, odin.VerifierOptions{})
	} else {
		log.Warn("auth disabled: identity comes from X-Debug-User-ID", nil)
	}

	opts := router.Options{
		Logger:               log,
		AuthVerifier:         verifier,
		DB:                   db,
		RateLimitPerMinute:   cfg.RateLimit.PerMinute,
		Chronological:        cfg.Scheduler.Chronological,
		DefaultTimeAvailable: cfg.Owner.DefaultTimeAvailable,
	}
	svc := router.NewServices(opts)

	if cfg.Digest.Enabled {
		job, err := digest.New(digest.Config{Spec: cfg.Digest.Spec, Timezone: cfg.Digest.Timezone},
			svc.Schedules, svc.Owners, svc.Pets, log)
		if err != nil {
			return err
		}
		if err := job.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			job.Stop(stopCtx)
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewHandler(opts, svc),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage devuelve nil para el driver en memoria.
func openStorage(cfg config.StorageConfig) (*sqlstore.DB, error) {
	var (
		db  *sqlstore.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = sqlstore.OpenPostgres(cfg.DSN)
	case config.DriverSQLite:
		db, err = sqlstore.OpenSQLite(cfg.SQLitePath)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if err := sqlstore.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
