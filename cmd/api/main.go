package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petstat/internal/config"
	"petstat/internal/database"
	"petstat/internal/domain"
	"petstat/internal/logger"
	"petstat/internal/metrics"
	"petstat/internal/modules/auth"
	"petstat/internal/modules/pet"
	jwtsvc "petstat/internal/pkg/jwt"
	"petstat/internal/pkg/oauth"
	"petstat/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.SetupDefault(os.Stdout, cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrateSchema(db, cfg.DatabaseURL); err != nil {
		return err
	}

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	google := oauth.NewGoogleVerifier(oauth.GoogleConfig{
		ClientID: cfg.GoogleClientID,
		JWKSURL:  cfg.GoogleJWKSURL,
	}, oauth.NewHTTPClient(cfg.JWKSFetchTimeout, cfg.JWKSSafeClient))

	jwt := jwtsvc.New(cfg.JWTSignSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(
		repository.NewUserRepository(db),
		repository.NewUserTokenRepository(db, cfg.RefreshTTL),
		jwt,
		map[domain.ProviderType]oauth.Provider{domain.ProviderGoogle: google},
		cfg.RefreshKeyHashSecret,
		collector,
	)
	petService := pet.NewService(repository.NewPetRepository(db))

	r, stop := newRouter(routerDeps{
		cfg:       cfg,
		jwt:       jwt,
		auth:      auth.NewHandler(authService),
		pets:      pet.NewHandler(petService),
		collector: collector,
		gatherer:  reg,
	})
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.AppEnv))
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

	slog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// PostgreSQL uses versioned migrations; local SQLite files are auto-migrated.
func migrateSchema(db *gorm.DB, dsn string) error {
	if database.IsPostgres(dsn) {
		return database.RunMigrations(dsn)
	}
	return repository.AutoMigrate(db)
}
