package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdfgenie/genie/api"
	"github.com/pdfgenie/genie/api/middleware"
	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/config"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/render"
	"github.com/pdfgenie/genie/session"
	"github.com/pdfgenie/genie/store"
	"github.com/pdfgenie/genie/summary"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("genie starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"upstream", cfg.Upstream.BaseURL,
	)

	// ── 3. Stores ───────────────────────────────────────────────────
	archive := store.NewArchive(cfg.Store.DataDir)
	if err := archive.Load(); err != nil {
		slog.Error("failed to load archive", "error", err)
		os.Exit(1)
	}
	users := store.NewUsers(cfg.Store.DataDir)
	if err := users.Load(); err != nil {
		slog.Warn("ignoring unreadable user file", "error", err)
	}
	archive.Subscribe(func(items []store.ArchiveItem) {
		slog.Debug("archive changed", "items", len(items))
	})

	// ── 4. Caches and sessions ──────────────────────────────────────
	summaries := cache.New[*models.SummaryResponse](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	defer summaries.Close()
	sessionCache := cache.New[*session.Session](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	defer sessionCache.Close()

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(api.Deps{
		Config:    cfg,
		Upstream:  summary.NewClient(cfg.Upstream.BaseURL, nil),
		Renderer:  render.New(nil),
		Summaries: summaries,
		Sessions:  session.NewManager(sessionCache),
		Archive:   archive,
		Users:     users,
		Metrics:   middleware.NewMetrics(nil),
		StartTime: time.Now(),
	})

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("genie stopped")
}

// initLogger installs the default slog logger. Unknown levels fall back to
// info; debug logging also records the call site.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
