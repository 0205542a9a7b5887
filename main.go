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

	"mentionmates/config"
	"mentionmates/database"
	"mentionmates/handlers"
	"mentionmates/matching"
	"mentionmates/routes"
	"mentionmates/websocket"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("❌ Invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	slog.Info("🚀 Starting Mention Mates server...")

	if err := run(cfg); err != nil {
		slog.Error("❌ Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("👋 Server stopped gracefully")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ===== STORE =====
	store := database.NewStore()
	if cfg.SeedDemoData {
		n, err := database.Seed(store)
		if err != nil {
			return err
		}
		slog.Info("🌱 Demo creators loaded", "count", n)
	}

	// ===== GIN MODE =====
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
		slog.Info("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		slog.Info("⚙️ Running in DEBUG mode")
	}

	g, gctx := errgroup.WithContext(ctx)

	// ===== WEBSOCKET =====
	wsManager := websocket.NewManager(store, websocket.DefaultOptions())

	// ===== ROUTER =====
	h := handlers.New(store, matching.NewGenerator(store), wsManager)
	router := routes.SetupRouter(cfg, h, wsManager.Handler(gctx))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g.Go(func() error {
		wsManager.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("🌐 Server running", "port", cfg.Port, "ws", "/ws")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// ===== GRACEFUL SHUTDOWN =====
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("🛑 Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("❌ Forced shutdown", "error", err)
			return server.Close()
		}
		return nil
	})

	return g.Wait()
}
