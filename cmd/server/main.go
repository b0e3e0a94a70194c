package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server"
	"bookshelf/internal/app/server/config"
	"bookshelf/internal/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
