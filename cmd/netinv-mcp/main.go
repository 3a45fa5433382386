package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/netinv-mcp/internal/config"
	"github.com/usestring/netinv-mcp/internal/controller"
	"github.com/usestring/netinv-mcp/internal/history"
	"github.com/usestring/netinv-mcp/internal/logging"
	"github.com/usestring/netinv-mcp/internal/mcp"
	"github.com/usestring/netinv-mcp/internal/mcp/tools"
	"github.com/usestring/netinv-mcp/internal/preview"
	"github.com/usestring/netinv-mcp/internal/query"
	"github.com/usestring/netinv-mcp/internal/store"
	"github.com/usestring/netinv-mcp/pkg/client"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration comes from environment variables (NETINV_BASE_URL,
	// SEARCH_TIMEOUT_MS, LOG_LEVEL, ...); see internal/config for the list.
	cfg := config.Load()

	logCleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		slog.Error("failed to setup logging", "error", err)
		os.Exit(1)
	}
	defer logCleanup()

	// Durable state (session, history) lives under STATE_DIR; the preview
	// cache entry is session-scoped and kept in memory only.
	kv, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		slog.Error("failed to open state store", "error", err)
		os.Exit(1)
	}

	inv := client.New(client.WithBaseURL(cfg.NetinvBaseURL))

	prev := preview.New(inv, store.NewMemStore(), preview.Config{
		TTL:            cfg.PreviewTTL,
		Limit:          cfg.PreviewLimit,
		PreviewTimeout: cfg.PreviewTimeout,
		InfoTimeout:    cfg.InfoTimeout,
	})

	hist := history.New(kv, cfg.HistoryMax)

	console := controller.New(cfg, inv, kv,
		controller.WithHistory(hist),
		controller.WithPreview(prev),
	)
	defer console.Close()

	server, err := mcp.NewServer(&tools.Deps{
		Config:  cfg,
		Console: console,
		Preview: prev,
		History: hist,
		Query:   query.NewEngine(),
	})
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}

	// Prime the preview and snapshot availability before the first tool
	// call; failures are advisory, the first search will retry.
	if err := prev.Warm(ctx); err != nil {
		slog.Warn("preview warm-up failed", "error", err)
	}

	slog.Info("starting netinv MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
