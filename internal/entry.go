// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"confsched/internal/api"
	"confsched/internal/bookmarks"
	"confsched/internal/catalog"
	"confsched/internal/feed"
	"confsched/internal/mcpserver"
	"confsched/internal/schedule"
	"confsched/internal/scheduleservice"
	"confsched/internal/sse"
)

// runtime bundles the initialized collaborators shared by the HTTP and MCP
// entry points.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	marks  *bookmarks.Store
	db     *catalog.DB
	src    feed.Source
	core   *schedule.App
	svc    *scheduleservice.Service
}

func (rt *runtime) close() {
	rt.core.Close()
	_ = rt.db.Close()
	_ = rt.marks.Close()
}

// initRuntime opens the stores, loads the programme, and starts the
// application core. The feed is best-effort: when it cannot be loaded the
// last synced catalog contents are served instead.
func initRuntime(ctx context.Context, cfg *Config, logger *slog.Logger) (*runtime, error) {
	marks, err := bookmarks.Open(cfg.Agenda.Path)
	if err != nil {
		return nil, fmt.Errorf("init bookmark store: %w", err)
	}

	db, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		marks.Close()
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	var src feed.Source
	if cfg.Feed.URL != "" {
		src = feed.HTTPSource{URL: cfg.Feed.URL}
	} else {
		src = feed.FileSource{Path: cfg.Feed.Path}
	}

	proposals, _, err := feed.Sync(ctx, src, db, logger)
	if err != nil {
		logger.Warn("feed load failed, serving last synced catalog", slog.String("error", err.Error()))
		proposals, err = db.All()
		if err != nil {
			db.Close()
			marks.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	ids, err := marks.Load()
	if err != nil {
		logger.Warn("bookmark load failed, starting empty", slog.String("error", err.Error()))
		ids = []string{}
	}

	core := schedule.NewApp(schedule.NewState(proposals, ids, "/"))
	svc := scheduleservice.NewService(db, core, cfg.Feed.FirstDayDate())

	return &runtime{
		cfg:    cfg,
		logger: logger,
		marks:  marks,
		db:     db,
		src:    src,
		core:   core,
		svc:    svc,
	}, nil
}

func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(cfg)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("feed_path", cfg.Feed.Path),
		slog.String("feed_url", cfg.Feed.URL),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("agenda_path", cfg.Agenda.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	rt, err := initRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.close()

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	apiRouter := api.NewRouter(rt.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Consume core effects: persist bookmarks, notify SSE clients.
	g.Go(func() error {
		for {
			select {
			case <-gCtx.Done():
				return nil
			case eff := <-rt.core.Effects():
				switch e := eff.(type) {
				case schedule.PersistBookmarks:
					if err := rt.marks.Save(e.IDs); err != nil {
						logger.Warn("persist bookmarks failed", slog.String("error", err.Error()))
					}
					broker.PublishAgendaUpdated(e.IDs)
				}
			}
		}
	})

	// Watch a local feed file and resync on change.
	if path, ok := rt.src.LocalPath(); ok {
		g.Go(func() error {
			return feed.Watch(gCtx, path, logger, func() {
				proposals, changed, err := feed.Sync(gCtx, rt.src, rt.db, logger)
				if err != nil {
					logger.Warn("feed reload failed", slog.String("error", err.Error()))
					return
				}
				if changed {
					rt.svc.ReloadProposals(proposals)
					broker.PublishScheduleReloaded(len(proposals))
				}
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server with the given options.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Logs go to stderr: stdout is the MCP transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	rt, err := initRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.close()

	// Persist bookmark effects while the MCP session runs.
	effCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for {
			select {
			case <-effCtx.Done():
				return
			case eff := <-rt.core.Effects():
				if e, ok := eff.(schedule.PersistBookmarks); ok {
					if err := rt.marks.Save(e.IDs); err != nil {
						logger.Warn("persist bookmarks failed", slog.String("error", err.Error()))
					}
				}
			}
		}
	}()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(rt.svc).ServeStdio()
}
