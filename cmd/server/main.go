package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/employee-be/internal/config"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/media"
	"github.com/hongminglow/employee-be/internal/server"
	"github.com/hongminglow/employee-be/internal/storage"
	"github.com/hongminglow/employee-be/internal/storage/memory"
	"github.com/hongminglow/employee-be/internal/storage/mongo"
	"github.com/hongminglow/employee-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewLogrusLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	var uploader media.Uploader
	if cfg.S3.Enabled() {
		s3Uploader, err := media.NewS3Uploader(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("init media uploader: %v", err)
		}
		uploader = s3Uploader
	} else {
		logger.Warn(context.Background(), "object storage not configured; photo uploads disabled")
	}

	srv := server.New(cfg, store, uploader, logger)

	go func() {
		logger.Info(context.Background(), "employee backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error(context.Background(), "graceful shutdown error", "err", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	kind, err := cfg.StoreKind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case config.StorePostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	case config.StoreMongo:
		return mongo.NewStore(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	case config.StoreMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store %q", kind)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
