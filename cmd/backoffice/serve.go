package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/association_backoffice/internal/adapters/authz"
	"github.com/SscSPs/association_backoffice/internal/adapters/notify"
	"github.com/SscSPs/association_backoffice/internal/adapters/storage"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/core/services"
	"github.com/SscSPs/association_backoffice/internal/handlers"
	"github.com/SscSPs/association_backoffice/internal/middleware"
	"github.com/SscSPs/association_backoffice/internal/platform/config"
	"github.com/SscSPs/association_backoffice/internal/platform/metrics"
	"github.com/SscSPs/association_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/association_backoffice/internal/repositories/memory"
	"github.com/SscSPs/association_backoffice/internal/utils"
	"github.com/SscSPs/association_backoffice/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	var runMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if runMigrate {
				if err := runMigrations(cfg, logger, 0); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().BoolVar(&runMigrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, health, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	attachments, err := openAttachmentStore(ctx, cfg)
	if err != nil {
		return err
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	opts := []services.Option{
		services.WithAuthorizer(authz.NewStatic(cfg.TreasurerIDs)),
		services.WithNotifier(notify.NewPosthog(posthogClient)),
		services.WithMetrics(appMetrics),
	}
	if cfg.AssistanceCategories != nil {
		categories := make(domain.AssistanceCategories, len(cfg.AssistanceCategories))
		for assistanceType, category := range cfg.AssistanceCategories {
			categories[domain.AssistanceType(assistanceType)] = category
		}
		opts = append(opts, services.WithAssistanceCategories(categories))
	}
	serviceContainer := services.NewServiceContainer(repos, attachments, opts...)

	limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("configuring rate limiter: %w", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(limiterInstance), appMetrics.GinMiddleware(), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("setting trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, health)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openStore builds the repositories for the configured backend.
func openStore(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, handlers.HealthCheck, func(), error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		slog.Warn("Using the in-memory store. Data is lost on restart.")
		store := memory.NewStore()
		return portsrepo.RepositoryProvider{UnitOfWork: store, AuditRepo: store}, nil, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, nil, fmt.Errorf("initializing database pool: %w", err)
	}

	var health handlers.HealthCheck
	if cfg.EnableDBCheck {
		health = pingPool(dbPool)
	}
	return pgsql.NewRepositoryProvider(dbPool), health, func() { database.ClosePgxPool(dbPool) }, nil
}

func pingPool(dbPool *pgxpool.Pool) handlers.HealthCheck {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return dbPool.Ping(ctx)
	}
}

// openAttachmentStore builds the proof-of-transfer store for the configured backend.
func openAttachmentStore(ctx context.Context, cfg *config.Config) (portssvc.AttachmentStore, error) {
	switch cfg.AttachmentBackend {
	case config.AttachmentBackendGDrive:
		credentials, err := os.ReadFile(cfg.GDriveCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading drive credentials: %w", err)
		}
		drive, err := storage.NewDrive(ctx, credentials, cfg.GDriveFolderID)
		if err != nil {
			return nil, fmt.Errorf("initializing drive attachment store: %w", err)
		}
		return drive, nil
	default:
		local, err := storage.NewLocal(cfg.AttachmentDir, cfg.AttachmentMaxBytes)
		if err != nil {
			return nil, fmt.Errorf("initializing local attachment store: %w", err)
		}
		return local, nil
	}
}
