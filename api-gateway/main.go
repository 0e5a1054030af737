package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-console/api-gateway/internal/gateway"
	"event-console/config"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load("api-gateway", ":8080")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger := config.NewLogger(cfg)

	gw := gateway.NewGateway(gateway.Config{
		ConsoleSvcURL: cfg.Gateway.ConsoleSvcURL,
		StatsSvcURL:   cfg.Gateway.StatsSvcURL,
		FrontendDir:   cfg.Gateway.FrontendDir,
	}, &http.Client{Timeout: 60 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: c.Handler(gw.SetupRoutes()), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("api gateway starting",
		slog.String("addr", cfg.HTTPAddr),
		slog.String("console", cfg.Gateway.ConsoleSvcURL),
		slog.String("stats", cfg.Gateway.StatsSvcURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
