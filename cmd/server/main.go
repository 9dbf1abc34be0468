package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filesmanager/backend/internal/auth"
	"filesmanager/backend/internal/blob"
	"filesmanager/backend/internal/catalog"
	"filesmanager/backend/internal/config"
	"filesmanager/backend/internal/database"
	"filesmanager/backend/internal/handlers"
	"filesmanager/backend/internal/middleware"
	"filesmanager/backend/internal/session"
	"filesmanager/backend/internal/store"
	"filesmanager/backend/internal/thumbnail"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run server: %v", err)
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
	logger.Info("store connections established")

	queueClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer queueClient.Close()

	// Wire the application together. The queue client is injected into both
	// the catalog and the user handler; nothing reaches for globals.
	userStore := store.NewMongoUserStore(clients.DB)
	fileStore := store.NewMongoFileStore(clients.DB)
	sessions := session.NewStore(clients.Redis)
	guard := auth.NewGuard(sessions, userStore)
	blobs := blob.NewStore(cfg.FolderPath)
	queue := thumbnail.NewEnqueuer(queueClient)
	cat := catalog.NewManager(fileStore, blobs, queue, guard, logger)

	appHandler := handlers.NewAppHandler(clients, userStore, fileStore)
	userHandler := handlers.NewUserHandler(userStore, queue, logger)
	authHandler := handlers.NewAuthHandler(userStore, sessions, logger)
	fileHandler := handlers.NewFileHandler(cat, guard, fileStore, blobs, logger)

	router := gin.Default()

	router.GET("/status", appHandler.GetStatus)
	router.GET("/stats", appHandler.GetStats)
	router.POST("/users", userHandler.PostUsers)
	router.GET("/connect", authHandler.GetConnect)
	router.GET("/disconnect", authHandler.GetDisconnect)
	router.GET("/files/:id/data", fileHandler.GetFileData)

	protected := router.Group("/").Use(middleware.RequireAuth(guard))
	{
		protected.GET("/users/me", userHandler.GetMe)
		protected.POST("/files", fileHandler.PostUpload)
		protected.GET("/files", fileHandler.GetIndex)
		protected.GET("/files/:id", fileHandler.GetShow)
		protected.PUT("/files/:id/publish", fileHandler.PutPublish)
		protected.PUT("/files/:id/unpublish", fileHandler.PutUnpublish)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		shutdownErr <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-shutdownErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server shut down gracefully")
	return nil
}
