package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinite-experiment/consortium/internal/api"
	"infinite-experiment/consortium/internal/config"
	"infinite-experiment/consortium/internal/db"
	"infinite-experiment/consortium/internal/logging"
	"infinite-experiment/consortium/internal/metrics"
	"infinite-experiment/consortium/internal/routes"
	"infinite-experiment/consortium/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		logging.Info(fmt.Sprintf(format, v...), "component", "maxprocs")
	})); err != nil {
		logging.Warn("Failed to set GOMAXPROCS", "error", err.Error())
	}

	logging.Info("Consortium starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.Database.Driver,
		"cache_backend", cfg.CacheBackend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if err := run(cfg); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		_ = logging.Close()
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orm, err := db.InitORM(cfg.Database)
	if err != nil {
		return err
	}
	if _, err := db.InitSqlx(cfg.Database, orm); err != nil {
		return err
	}
	logging.Info("Connected to ledger database (sqlx)")

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logging.Warn("Failed to close dependencies", "error", err.Error())
		}
	}()

	if err := services.Bootstrap(ctx, deps.Services.Consortium, cfg.Governance); err != nil {
		return err
	}
	deps.Services.App.RefreshGauges(ctx)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, cfg, metricsReg, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "app_identity", deps.Services.App.Identity().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
