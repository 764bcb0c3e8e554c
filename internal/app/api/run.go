package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	backofficeserver "github.com/Apurer/go-gin-backoffice/go"
	"github.com/Apurer/go-gin-backoffice/internal/app/backend"
	authapp "github.com/Apurer/go-gin-backoffice/internal/domains/auth/application"
	catalogstorage "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/storage"
	catalogapp "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/application"
	customerapp "github.com/Apurer/go-gin-backoffice/internal/domains/customers/application"
	dashboardapp "github.com/Apurer/go-gin-backoffice/internal/domains/dashboard/application"
	ordersobs "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-backoffice/internal/platform/observability"
)

const (
	serviceName     = "backoffice-api"
	shutdownTimeout = 10 * time.Second
)

// Run boots the back-office HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos, err := backend.Build(ctx, backend.Options{PostgresDSN: cfg.PostgresDSN, RunMigrations: cfg.RunMigrations}, logger)
	if err != nil {
		return err
	}
	defer cleanupRepos()

	if cfg.GeneratedSecret {
		logger.Warn("JWT_SECRET not set, using a per-process secret; tokens will not survive a restart")
	}
	tokens := authapp.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := authapp.NewService(repos.Users, tokens)
	if cfg.BootstrapAdminLogin != "" {
		if _, err := authService.EnsureUser(ctx, cfg.BootstrapAdminLogin, cfg.BootstrapAdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin user: %w", err)
		}
		if cfg.DevBootstrap {
			logger.Warn("using default admin credentials for in-memory mode", slog.String("login", cfg.BootstrapAdminLogin))
		}
	}

	orderService := ordersobs.New(
		ordersapp.NewService(repos.UnitOfWork, repos.Reader),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if !repos.Durable {
		// The worker cannot reach in-memory state.
		logger.Info("in-memory repositories, running checkout inline")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	images, err := catalogstorage.NewDiskImageStore(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return fmt.Errorf("prepare media root: %w", err)
	}

	handlers := backofficeserver.ApiHandleFunctions{
		AuthAPI:      backofficeserver.NewAuthAPI(authService),
		OrdersAPI:    backofficeserver.NewOrdersAPI(orderService, orderWorkflows),
		ProductsAPI:  backofficeserver.NewProductsAPI(catalogapp.NewService(repos.Products, catalogapp.WithImageStore(images))),
		CustomersAPI: backofficeserver.NewCustomersAPI(customerapp.NewService(repos.Customers)),
		DashboardAPI: backofficeserver.NewDashboardAPI(dashboardapp.NewService(repos.Orders, repos.Products, repos.Customers)),
	}
	router := backofficeserver.NewRouter(handlers, backofficeserver.RouterOptions{
		Verifier: tokens,
		Logger:   logger,
		Middleware: []gin.HandlerFunc{
			otelgin.Middleware(serviceName),
			instruments.HTTP.Middleware(),
		},
		Metrics:   instruments.HTTP.Handler(),
		Media:     images.FileSystem(),
		MediaPath: images.BaseURL(),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("back-office API listening", slog.String("addr", server.Addr), slog.Bool("durable", repos.Durable))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("back-office API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down back-office API")
	return server.Shutdown(shutdownCtx)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
