package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sandol-kakao-backend/internal/config"
	"sandol-kakao-backend/internal/db"
	"sandol-kakao-backend/internal/meal"
	"sandol-kakao-backend/internal/server"
	"sandol-kakao-backend/internal/store"
	"sandol-kakao-backend/internal/upstream"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	blocks, err := config.LoadBlocks(cfg.BlocksFile)
	if err != nil {
		logger.Fatal("failed to load block map", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure database schema", zap.Error(err))
	}

	users := store.NewUserStore(database, logger)
	if err := users.EnsureServiceAccount(ctx, cfg.ServiceID); err != nil {
		logger.Fatal("failed to ensure service account", zap.Error(err))
	}

	gateway := upstream.NewClient(cfg, logger)
	flow := meal.NewFlow(gateway, blocks, loc, logger)
	srv := server.NewServer(cfg, blocks, users, gateway, flow, loc, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
