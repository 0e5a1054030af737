package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"event-console/config"
	httpapi "event-console/console-svc/internal/api/http"
	"event-console/console-svc/internal/service"
	"event-console/console-svc/internal/storage"
)

func main() {
	cfg, err := config.Load("console-svc", ":8081")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.Database)
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var publisher service.ActivityPublisher = storage.NopPublisher{}
	if writer := config.NewKafkaWriter(cfg.Kafka); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		logger.Info("publishing activity to kafka", slog.String("topic", cfg.Kafka.ActivityTopic))
	}

	repo := storage.NewPostgresRepository(db)
	photos := storage.NewDiskStore(cfg.UploadDir)

	auth := service.NewAuthService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err := auth.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	if cfg.Auth.Disabled {
		logger.Warn("authentication is disabled")
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Places:       service.NewPlaceService(repo, publisher),
		Venues:       service.NewVenueService(repo, service.DefaultQRGenerator{Size: 256}, publisher),
		Performances: service.NewPerformanceService(repo, photos, publisher),
		Experiences:  service.NewExperienceService(repo, photos, publisher),
		Menu:         service.NewMenuService(repo, publisher),
		Auth:         auth,
		Imports:      service.NewImportService(repo, repo, repo, repo, publisher),
	}, httpapi.Options{
		UploadDir:    cfg.UploadDir,
		AuthDisabled: cfg.Auth.Disabled,
		LoginRate:    cfg.Auth.LoginRate,
		LoginBurst:   cfg.Auth.LoginBurst,
	})

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, httpapi.NewRouter(handler)); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
