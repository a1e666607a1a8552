package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hotel_climate/docs"
	"hotel_climate/internal/config"
	"hotel_climate/internal/handlers"
	"hotel_climate/internal/logger"
	"hotel_climate/internal/repository"
	"hotel_climate/internal/repository/db"
	"hotel_climate/internal/server"
	"hotel_climate/internal/service"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// @title           Hotel Climate API
// @version         1.0
// @description     Room occupancy and metered air-conditioning billing.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	if err := seedRooms(cfg, repos, log); err != nil {
		log.Fatalw("failed to seed rooms", "err", err)
	}

	services, err := newServices(cfg, repos, repository.NewTransactor(conn))
	if err != nil {
		log.Fatalw("invalid service configuration", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		RetryAttempts: cfg.Retry.Attempts,
		RetryBackoff:  cfg.Retry.Backoff,
		RateLimit:     rate.Limit(cfg.RateLimit.PerSec),
		RateBurst:     cfg.RateLimit.Burst,
		RateTTL:       cfg.RateLimit.TTL,
	})

	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// seedRooms creates the configured rooms on first start. Existing rooms keep their state.
func seedRooms(cfg *config.Config, repos *repository.Repository, log *logger.Logger) error {
	defaults, err := cfg.Rooms.DefaultSettings.Settings()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repos.Rooms.Seed(ctx, cfg.Rooms.Count, defaults); err != nil {
		return err
	}
	log.Infow("rooms ready", "count", cfg.Rooms.Count, "temperature", defaults.Temperature,
		"fan_speed", defaults.FanSpeed, "mode", defaults.Mode)
	return nil
}

func newServices(cfg *config.Config, repos *repository.Repository, tx repository.Transactor) (*service.Service, error) {
	policy, err := service.ParseSettingsPolicy(cfg.Billing.SettingsChange)
	if err != nil {
		return nil, err
	}
	tariff := service.DefaultTariff()
	tariff.HourlyRate = cfg.Tariff.HourlyRate
	tariff.BaselineTemp = cfg.Tariff.BaselineTemp
	tariff.PerDegree = cfg.Tariff.PerDegree

	return service.NewService(repos, tx, service.Config{
		Tariff:         tariff,
		SettingsPolicy: policy,
		SigningKey:     cfg.Auth.SigningKey,
		TokenTTL:       cfg.Auth.TokenTTL,
	}), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM and lets in-flight requests finish.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
