package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinops/console/internal/config"
	"github.com/clinops/console/internal/domain/appointments"
	"github.com/clinops/console/internal/domain/dashboard"
	"github.com/clinops/console/internal/domain/doctors"
	"github.com/clinops/console/internal/domain/patients"
	"github.com/clinops/console/internal/platform/auth"
	"github.com/clinops/console/internal/platform/metrics"
	"github.com/clinops/console/internal/platform/middleware"
	"github.com/clinops/console/internal/platform/treestore"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "console-server",
		Short: "Clinical booking operator console API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo doctors, patients and appointments into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StoreDriver == config.DriverMemory {
				return fmt.Errorf("seeding a memory store is pointless; it is seeded on serve in development")
			}

			ctx := context.Background()
			store, closeStore, err := newStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := treestore.Seed(ctx, store, time.Now()); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			logger.Info().Str("driver", cfg.StoreDriver).Msg("store seeded")
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// newStore builds the document store named by STORE_DRIVER. The
// returned close func is a no-op for drivers without a connection pool.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (treestore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverREST:
		httpClient := &http.Client{Timeout: 15 * time.Second}
		return treestore.NewRESTClient(cfg.StoreURL, cfg.StoreAuthToken, httpClient, logger), func() {}, nil
	case config.DriverPostgres:
		pg, err := treestore.NewPGStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return pg, pg.Close, nil
	case config.DriverMemory:
		return treestore.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	// A memory store starts empty; in development fill it with demo
	// records so the console has something to show.
	if cfg.StoreDriver == config.DriverMemory && cfg.IsDev() {
		if err := treestore.Seed(ctx, store, time.Now()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed memory store")
		}
		logger.Info().Msg("memory store seeded with demo data")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	mtx, metricsHandler := metrics.New()
	e.Use(mtx.Middleware())

	// Unauthenticated surface
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/metrics", metricsHandler)

	// API group
	apiV1 := e.Group("/api/v1")

	if cfg.IsDev() {
		apiV1.Use(auth.DevMiddleware())
	} else {
		apiV1.Use(auth.Middleware(auth.Config{Secret: []byte(cfg.SessionSecret)}))
	}

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 || rateLimitCfg.BurstSize <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	apiV1.GET("/session", auth.SessionHandler)

	// Domain services and handlers
	doctorSvc := doctors.NewService(doctors.NewTreeRepo(store), logger)
	apptSvc := appointments.NewService(appointments.NewTreeRepo(store), logger)
	patientSvc := patients.NewService(patients.NewTreeRepo(store), apptSvc, logger)
	dashSvc := dashboard.NewService(doctorSvc, patientSvc, apptSvc)

	doctors.NewHandler(doctorSvc, mtx).RegisterRoutes(apiV1)
	appointments.NewHandler(apptSvc, mtx).RegisterRoutes(apiV1)
	patients.NewHandler(patientSvc).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
