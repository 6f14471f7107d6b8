package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"groweasy/internal/cli"
	"groweasy/internal/config"
	"groweasy/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg, zl, os.Args[1:]); err != nil {
		zl.Error("command failed", zap.Error(err))
		stop()
		_ = zl.Sync()
		os.Exit(1)
	}
}
