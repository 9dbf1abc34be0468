package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"filesmanager/backend/internal/blob"
	"filesmanager/backend/internal/config"
	"filesmanager/backend/internal/database"
	"filesmanager/backend/internal/store"
	"filesmanager/backend/internal/thumbnail"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run worker: %v", err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clients, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not connect to stores: %w", err)
	}
	defer func() {
		if err := clients.Close(context.Background()); err != nil {
			logger.Error("error disconnecting stores", "error", err)
		}
	}()

	fileStore := store.NewMongoFileStore(clients.DB)
	blobs := blob.NewStore(cfg.FolderPath)
	processor := thumbnail.NewProcessor(fileStore, blobs, thumbnail.BimgResizer{}, logger)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		asynq.Config{Concurrency: cfg.Concurrency},
	)

	logger.Info("worker starting", "concurrency", cfg.Concurrency)
	// Run blocks until SIGINT/SIGTERM and drains in-flight jobs.
	if err := srv.Run(thumbnail.NewMux(processor)); err != nil {
		return fmt.Errorf("worker error: %w", err)
	}
	return nil
}
