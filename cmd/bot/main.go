package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/bot"
	"github.com/tkoide/memopad/internal/cache"
	"github.com/tkoide/memopad/internal/config"
	"github.com/tkoide/memopad/internal/database"
	"github.com/tkoide/memopad/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.DatabaseURI == "" {
		logrus.Fatal("DATABASE_URI is required")
	}
	if cfg.TelegramToken == "" {
		logrus.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logrus.Info("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	logrus.Info("Database migrations completed")

	var memoCache *cache.MemoCache
	if cfg.RedisAddr != "" {
		memoCache, err = cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logrus.Fatalf("Failed to connect to redis: %v", err)
		}
		defer memoCache.Close()
		logrus.Info("Connected to redis")
	}

	b, err := bot.New(cfg.TelegramToken, store.NewPostgres(db), memoCache)
	if err != nil {
		logrus.Fatalf("Failed to create bot: %v", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logrus.Info("Shutting down...")
		cancel()
	}()

	logrus.Info("Starting bot...")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatalf("Bot error: %v", err)
	}
}
