package main

import (
	"fmt"
	"log"
	"net/http"

	"msgvault/internal/api"
	"msgvault/internal/api/handlers"
	"msgvault/internal/engine/messages"
	"msgvault/internal/pkg/logger"
	"msgvault/internal/pkg/metrics"
	"msgvault/internal/platform/config"
	"msgvault/internal/platform/database"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := messages.NewRepository(db)
	if err := repo.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	svc := messages.NewService(repo)
	m := metrics.New()

	deps := &api.Dependencies{
		WebhookHandler: handlers.NewWebhookHandler(cfg.Webhook.Secret, repo, m),
		MessageHandler: handlers.NewMessageHandler(svc),
		StatsHandler:   handlers.NewStatsHandler(svc),
		HealthHandler:  handlers.NewHealthHandler(cfg.Webhook.Secret, repo),
		MetricsHandler: handlers.NewMetricsHandler(m),
		Metrics:        m,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
