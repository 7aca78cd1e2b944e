package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/api"
	"github.com/certverify/verification/internal/config"
	"github.com/certverify/verification/internal/db"
	"github.com/certverify/verification/internal/logging"
	"github.com/certverify/verification/internal/metrics"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	godotenv.Load()

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := openPool(ctx, cfg, logger, *migrateFlag, *migrateDirFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if pool != nil {
		defer pool.Close()
		metrics.RegisterPgxPoolMetrics(pool)
	} else {
		logger.Info().Msg("no DATABASE_URL configured, verification logging disabled")
	}

	srv := api.NewServer(logger, pool, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting verification API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

// openPool connects to the audit database when DATABASE_URL is set,
// optionally running migrations first. Returns nil when no database is
// configured.
func openPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger, migrate bool, migrateDir string) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}

	if migrate {
		logger.Info().Str("dir", migrateDir).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, migrateDir); err != nil {
			return nil, err
		}
	}

	return db.NewPool(ctx, cfg.DatabaseURL)
}
