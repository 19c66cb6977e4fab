package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/ammabio/amma-backend/api/routes"
	"github.com/ammabio/amma-backend/internal/auth"
	"github.com/ammabio/amma-backend/internal/documents"
	"github.com/ammabio/amma-backend/internal/memberships"
	"github.com/ammabio/amma-backend/internal/payments"
	"github.com/ammabio/amma-backend/internal/products"
	"github.com/ammabio/amma-backend/internal/quotations"
	"github.com/ammabio/amma-backend/internal/registrations"
	"github.com/ammabio/amma-backend/internal/users"
	"github.com/ammabio/amma-backend/pkg/auth/session"
	"github.com/ammabio/amma-backend/pkg/config"
	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/logger"
	"github.com/ammabio/amma-backend/pkg/metrics"
	"github.com/ammabio/amma-backend/pkg/migrate"
	"github.com/ammabio/amma-backend/pkg/redis"
	"github.com/ammabio/amma-backend/pkg/uploads"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	fileStore := uploads.NewStore(cfg.Uploads)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registrationRepo := registrations.NewRepository(dbClient.DB())
	registrationService, err := registrations.NewService(registrationRepo, users.NewRepository(dbClient.DB()), dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create registration service", err)
		os.Exit(1)
	}

	membershipService, err := memberships.NewService(memberships.NewRepository(dbClient.DB()), registrationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create membership service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(documents.NewRepository(dbClient.DB()), membershipService, fileStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create document service", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(payments.NewRepository(dbClient.DB()), membershipService, fileStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	quotationService, err := quotations.NewService(quotations.ServiceParams{
		Repo:        quotations.NewRepository(dbClient.DB()),
		Memberships: membershipService,
		Products:    productRepo,
		DB:          dbClient,
		Store:       fileStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			registrationService,
			membershipService,
			documentService,
			paymentService,
			productService,
			quotationService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
		logg.Error(ctx, "error closing resources", err)
	}
}
