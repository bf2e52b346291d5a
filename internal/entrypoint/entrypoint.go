package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/libraries"
	"github.com/mrlokans/catalog/internal/events"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/readonly"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM and then shuts it down,
// giving in-flight requests the configured shutdown timeout.
func Serve(router http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before background workers go away
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("Server exiting")
}

// Run wires every component from cfg and serves until interrupted.
func Run(cfg *config.Config, version string) {
	log.Info().Str("version", version).Msg("Starting catalog")
	gin.SetMode(gin.ReleaseMode)

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	libraryRepo := libraries.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Libraries:      libraryRepo,
		Books:          bookRepo,
		Health:         db,
		LibraryPaging:  pageOptions(cfg.Pagination, libraries.SortFields, nil),
		BookPaging:     pageOptions(cfg.Pagination, books.SortFields, nil),
		AuditPaging:    pageOptions(cfg.Pagination, auditrepo.SortFields, auditrepo.DefaultSort),
		APIKeyHash:     cfg.Auth.APIKeyHash,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Version:        version,
	}

	var shutdowns []ShutdownFunc

	// Audit trail
	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditrepo.NewRepository(db.DB))
		routerCfg.Auditor = auditService
		routerCfg.AuditReader = auditService
	} else {
		log.Info().Msg("Audit trail disabled")
	}

	// Change events
	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize change events")
	}
	notifier := events.NewNotifier(publisher)
	routerCfg.Notifier = notifier
	shutdowns = append(shutdowns, func(ctx context.Context) {
		if err := notifier.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Pending change events were not delivered")
		}
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing change events publisher")
		}
	})

	// Task queue and retention schedule
	if cfg.Tasks.Enabled && auditService != nil {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		taskCtx, taskCancel := context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		retention := scheduler.NewAuditRetentionScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := retention.Start(taskCtx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start audit retention scheduler")
		}

		routerCfg.TaskQueue = taskClient
		routerCfg.AuditRetentionDays = cfg.Audit.RetentionDays

		shutdowns = append(shutdowns, func(ctx context.Context) {
			retention.Stop()
			taskClient.Stop(ctx)
			taskCancel()
		})
	}

	// Write protection
	if cfg.ReadOnly.Enabled {
		log.Info().Msg("Read-only mode enabled - write operations will be blocked")
		routerCfg.ReadOnly = readonly.NewMiddleware(true, "/api/admin/")
	}
	if cfg.Auth.APIKeyHash != "" {
		limiter := auth.NewRateLimiter(auth.RateLimitConfig{
			MaxAttempts:     cfg.Auth.MaxFailedAttempts,
			WindowDuration:  cfg.Auth.RateLimitWindow,
			LockoutDuration: cfg.Auth.LockoutDuration,
		})
		routerCfg.AuthLimiter = limiter
		shutdowns = append(shutdowns, func(context.Context) { limiter.Stop() })
		log.Info().Msg("API key required for write operations")
	} else {
		log.Warn().Msg("AUTH_API_KEY_HASH is not set, write operations are unauthenticated")
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, func(ctx context.Context) {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			shutdowns[i](ctx)
		}
	})
}

func pageOptions(cfg config.Pagination, sortFields map[string]string, defaultSort []catalog.SortOrder) catalog.PageOptions {
	return catalog.PageOptions{
		DefaultSize: cfg.DefaultSize,
		MaxSize:     cfg.MaxSize,
		SortFields:  sortFields,
		DefaultSort: defaultSort,
	}
}

func newPublisher(cfg config.Events) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Info().Msg("Change events disabled (EVENTS_AMQP_URL not set)")
		return events.Nop{}, nil
	}
	return events.NewRabbit(cfg.AMQPURL, cfg.Exchange)
}
