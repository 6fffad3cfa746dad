package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/apconnect/directory-api/internal/config"
	"github.com/apconnect/directory-api/internal/email"
	adminHandler "github.com/apconnect/directory-api/internal/handler/admin"
	authHandler "github.com/apconnect/directory-api/internal/handler/auth"
	dashboardHandler "github.com/apconnect/directory-api/internal/handler/dashboard"
	healthHandler "github.com/apconnect/directory-api/internal/handler/health"
	referenceHandler "github.com/apconnect/directory-api/internal/handler/reference"
	searchHandler "github.com/apconnect/directory-api/internal/handler/search"
	"github.com/apconnect/directory-api/internal/middleware"
	"github.com/apconnect/directory-api/internal/repository/postgres"
	"github.com/apconnect/directory-api/internal/router"
	adminService "github.com/apconnect/directory-api/internal/service/admin"
	authService "github.com/apconnect/directory-api/internal/service/auth"
	practitionerService "github.com/apconnect/directory-api/internal/service/practitioner"
	referenceService "github.com/apconnect/directory-api/internal/service/reference"
	searchService "github.com/apconnect/directory-api/internal/service/search"
	"github.com/apconnect/directory-api/internal/storage"
	"github.com/apconnect/directory-api/internal/worker"
	"github.com/apconnect/directory-api/pkg/auth"
	"github.com/apconnect/directory-api/pkg/logger"
	"github.com/apconnect/directory-api/pkg/metrics"
	"github.com/apconnect/directory-api/pkg/security"
	"github.com/apconnect/directory-api/pkg/validator"
)

// Room for form fields sent alongside a photo upload.
const multipartOverhead = 64 << 10

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	if err := validator.RegisterBinding(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if _, err := postgres.Migrate(db, "up", 0); err != nil {
			return err
		}
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var reg prometheus.Registerer
	if cfg.Metrics.Enabled {
		reg = registry
	}
	domainMetrics := metrics.New(cfg.Metrics.Namespace, reg)
	httpMetrics := middleware.NewHTTPMetrics(cfg.Metrics.Namespace, reg)

	photoStore := storage.NewUnconfigured()
	if cfg.Storage.Endpoint != "" {
		photoStore, err = storage.NewMinio(ctx, cfg.Storage)
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("storage endpoint not set, photo uploads are disabled")
	}

	links := email.Links{SiteURL: cfg.Site.URL}
	var mailer email.Service = email.NewLogService(links)
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPService(cfg.SMTP, links)
	} else {
		log.Warn().Msg("smtp host not set, emails will only be logged")
	}

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	tokenRepo := postgres.NewTokenRepository(base)
	practitionerRepo := postgres.NewPractitionerRepository(base)
	locationRepo := postgres.NewLocationRepository(base)
	trainingRepo := postgres.NewTrainingRepository(base)
	referenceRepo := postgres.NewReferenceRepository(base)
	searchRepo := postgres.NewSearchRepository(base)
	adminRepo := postgres.NewAdminRepository(base)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry())
	authSvc := authService.NewService(
		userRepo,
		tokenRepo,
		jwtSvc,
		authService.NewRedisSessionStore(rdb),
		security.NewBcryptHasher(bcrypt.DefaultCost),
		mailer,
	)
	searchSvc := searchService.NewService(searchRepo, practitionerRepo, locationRepo, trainingRepo, domainMetrics)
	referenceSvc := referenceService.NewService(referenceRepo, cfg.Cache.ReferenceTTL)
	practitionerSvc := practitionerService.NewService(
		practitionerRepo,
		locationRepo,
		trainingRepo,
		photoStore,
		domainMetrics,
		cfg.Storage.MaxPhotoBytes,
	)
	adminSvc := adminService.NewService(adminRepo, practitionerRepo, trainingRepo, domainMetrics)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Health:    healthHandler.NewHandler(db, rdb, registry),
			Auth:      authHandler.NewHandler(authSvc),
			Search:    searchHandler.NewHandler(searchSvc),
			Reference: referenceHandler.NewHandler(referenceSvc),
			Dashboard: dashboardHandler.NewHandler(practitionerSvc),
			Admin:     adminHandler.NewHandler(adminSvc),
		},
		httpMetrics,
		router.RouterConfig{
			Mode:           serverMode(cfg.Server.Mode),
			RateLimit:      rate.Limit(cfg.Server.RateLimit),
			RateBurst:      cfg.Server.RateBurst,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			PublicMaxAge:   time.Duration(cfg.Cache.PublicMaxAge) * time.Second,
			MaxBodyBytes:   cfg.Storage.MaxPhotoBytes + multipartOverhead,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.NewTokenCleanupWorker(tokenRepo, cfg.Worker.TokenCleanupInterval).Start(workerCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		cancelWorker()
		wg.Wait()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	cancelWorker()
	wg.Wait()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func serverMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}
