package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/ai"
	"github.com/tkoide/memopad/internal/api"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: Postgres when configured, in-memory otherwise (dev mode).
	var (
		memoStore store.MemoStore
		db        *database.DB
	)
	if cfg.DatabaseURI != "" {
		db, err = database.New(ctx, cfg.DatabaseURI)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logrus.Info("Connected to database")

		if err := db.Migrate(ctx); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Database migrations completed")

		memoStore = store.NewPostgres(db)
	} else {
		logrus.Warn("DATABASE_URI not set, using in-memory store; data will not survive a restart")
		memoStore = store.NewMemory()
	}

	// Listing cache (optional)
	var memoCache *cache.MemoCache
	if cfg.RedisAddr != "" {
		memoCache, err = cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logrus.Fatalf("Failed to connect to redis: %v", err)
		}
		defer memoCache.Close()
		logrus.Info("Connected to redis")
	}

	// Tag suggestion (optional)
	var tagger *ai.Client
	if cfg.AIAPIKey != "" {
		tagger = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		logrus.WithField("model", cfg.AIModel).Info("Tag suggestion enabled")
	} else {
		logrus.Info("AI_API_KEY not set, tag suggestion disabled")
	}

	var pinger api.Pinger
	if db != nil {
		pinger = db
	}
	handler := api.NewHandler(memoStore, memoCache, tagger, pinger)
	router := api.SetupRouter(handler)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logrus.Info("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logrus.WithField("addr", cfg.ListenAddr).Info("Starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("Server error: %v", err)
	}
}
