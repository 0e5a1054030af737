package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"event-console/config"
	httpapi "event-console/stats-svc/internal/api/http"
	"event-console/stats-svc/internal/service"
	"event-console/stats-svc/internal/storage"
)

func main() {
	cfg, err := config.Load("stats-svc", ":8083")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.Database)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	redisStore := storage.NewRedisStore(rdb, cfg.Redis.CacheTTL)
	stats := service.NewStatsService(storage.NewPostgresStore(db), redisStore, redisStore, storage.Counters())

	if cfg.Kafka.Broker != "" {
		reader := config.NewKafkaReader(cfg.Kafka)
		defer reader.Close()
		go service.NewConsumer(reader, redisStore, redisStore).Start(ctx)
	} else {
		logger.Warn("KAFKA_BROKER not set, snapshot cache relies on TTL expiry only")
	}

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, httpapi.NewRouter(httpapi.NewHandler(stats))); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
