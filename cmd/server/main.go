// Command dogial-server starts the Dogial HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/and161185/dogial/internal/config"
	"github.com/and161185/dogial/internal/limiter"
	"github.com/and161185/dogial/internal/metrics"
	"github.com/and161185/dogial/internal/migrate"
	"github.com/and161185/dogial/internal/repository"
	"github.com/and161185/dogial/internal/repository/memory"
	"github.com/and161185/dogial/internal/repository/postgres"
	httpserver "github.com/and161185/dogial/internal/server/http"
	"github.com/and161185/dogial/internal/service"
	"github.com/and161185/dogial/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, prepares storage and serves HTTP until SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	if cfg.Dev {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.Bool("postgres", cfg.DSN != ""),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		users repository.UserRepository
		dogs  repository.DogRepository
		lim   limiter.Limiter
		ping  func(context.Context) error
	)
	if cfg.DSN != "" {
		db, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			logger.Fatal("postgres", zap.Error(err))
		}
		defer db.Close()
		if err := migrate.Up(ctx, cfg.DSN); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}

		users = postgres.NewUserRepo(db)
		dogs = postgres.NewDogRepo(db)
		lim = limiter.NewPG(db.Pool, cfg.Limiter)
		ping = db.Ping
	} else {
		logger.Warn("no DSN configured, using in-memory store")
		store := memory.NewStore()
		users = store.Users()
		dogs = store.Dogs()
		lim = limiter.NewMemory(cfg.Limiter)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		logger.Fatal("metrics", zap.Error(err))
	}

	issuer := token.NewIssuer(cfg.JWTKey, cfg.AccessTTL, cfg.Issuer)

	// Services
	authSvc := service.NewAuthService(users, issuer, lim, logger)
	userSvc := service.NewUserService(users, logger)
	dogSvc := service.NewDogService(dogs, users, logger)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpserver.New(httpserver.Deps{
			Auth:    authSvc,
			Users:   userSvc,
			Dogs:    dogSvc,
			Tokens:  issuer,
			Log:     logger,
			Metrics: m,
			Ping:    ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
