// Package runtime assembles the deployable server process: configuration,
// logging, persistence, external collaborators, the HTTP stack, and graceful
// shutdown.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	app "github.com/palisadeengineering/goal-achievement-dashboard/internal/app"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/httpapi"
	insightssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/insights"
	voicesvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/voice"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/postgres"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/middleware"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/platform/database"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/platform/migrations"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Application is the running server process.
type Application struct {
	cfg    *config.Config
	log    *logger.Logger
	handle *database.Handle
	app    *app.Application
	server *http.Server
}

// NewApplication loads configuration and wires the full stack. The database
// is optional: when unreachable at startup the process still serves with the
// in-memory store so development setups work out of the box.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePrefix: cfg.Logging.FilePrefix,
	}).WithField("module", "runtime")

	handle := database.NewHandle(cfg.Database)

	var stores app.Stores
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		db, err := handle.DB(ctx)
		if err == nil {
			err = migrations.Apply(ctx, db)
		}
		cancel()
		switch {
		case err == nil:
			pg := postgres.New(handle)
			stores = app.Stores{
				TimeAudit:      pg,
				Goals:          pg,
				Pomodoro:       pg,
				Metrics:        pg,
				Accountability: pg,
				Relationships:  pg,
				Planning:       pg,
				Insights:       pg,
				Voice:          pg,
			}
			log.Info("postgres store ready")
		case errors.Is(err, database.ErrUnavailable):
			log.WithError(err).Warn("database unavailable, falling back to in-memory store")
		default:
			return nil, fmt.Errorf("prepare database: %w", err)
		}
	} else {
		log.Warn("no database configured, using in-memory store")
	}

	var collab app.Collaborators
	if cfg.TextGen.URL != "" {
		collab.TextGen = insightssvc.NewChatGenerator(cfg.TextGen)
	}
	if cfg.BlobStore.URL != "" {
		collab.Blobs = voicesvc.NewHTTPBlobStore(cfg.BlobStore)
	}
	if cfg.Transcriber.URL != "" {
		collab.Transcriber = voicesvc.NewHTTPTranscriber(cfg.Transcriber)
	}

	application, err := app.New(stores, collab, log)
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}

	handler, err := httpapi.NewHandler(application, httpapi.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		AuditPath: os.Getenv("AUDIT_LOG_PATH"),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("build http handler: %w", err)
	}

	limiter := middleware.NewRateLimiter(50, 100, log)
	limiter.StartCleanup(5 * time.Minute)

	chain := middleware.NewCORSMiddleware([]string{"*"}).Handler(
		middleware.NewTracingMiddleware(log).Handler(
			limiter.Handler(handler)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           chain,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Application{cfg: cfg, log: log, handle: handle, app: application, server: server}, nil
}

// Run starts the lifecycle-managed services and serves HTTP until the context
// is cancelled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	a.log.WithField("addr", a.server.Addr).Info("http server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown()
	case err := <-errCh:
		_ = a.Shutdown()
		return fmt.Errorf("http server: %w", err)
	}
}

// Shutdown drains the HTTP server, stops services, and closes the database.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	if err := a.server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}
	if err := a.app.Stop(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("stop services: %w", err)
	}
	if err := a.handle.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close database: %w", err)
	}

	a.log.Info("server stopped")
	return firstErr
}
