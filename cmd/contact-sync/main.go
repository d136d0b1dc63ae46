package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ticketbridge/contact-sync/internal/brevoclient"
	"github.com/ticketbridge/contact-sync/internal/config"
	"github.com/ticketbridge/contact-sync/internal/dedup"
	"github.com/ticketbridge/contact-sync/internal/dlq"
	"github.com/ticketbridge/contact-sync/internal/guard"
	"github.com/ticketbridge/contact-sync/internal/handlers"
	"github.com/ticketbridge/contact-sync/internal/logging"
	"github.com/ticketbridge/contact-sync/internal/server"
	"github.com/ticketbridge/contact-sync/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("contact-sync"))
	logging.SetDefault(logger)

	slog.Info("Starting contact-sync service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
		slog.String("brevo_url", cfg.Brevo.BaseURL),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Initialize delivery dedup store
	var dedupStore dedup.Store
	if cfg.Redis.Enabled {
		store, err := dedup.NewRedisStore(cfg.Redis.URL, cfg.Redis.DedupTTL)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Redis dedup store: %v", err)
			log.Println("Continuing without redelivery suppression")
			dedupStore = &dedup.NoOpStore{}
		} else {
			dedupStore = store
			log.Printf("Redelivery suppression enabled (ttl: %s)", cfg.Redis.DedupTTL)
		}
	} else {
		dedupStore = &dedup.NoOpStore{}
		log.Println("Redis disabled - redelivery suppression not available")
	}
	defer dedupStore.Close()

	// Initialize Dead Letter Queue
	var dlqWriter dlq.Writer
	if cfg.DLQ.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		jsDLQ, err := dlq.NewJetStreamQueue(ctx, cfg.DLQ.NatsURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize JetStream DLQ: %v", err)
		}
		dlqWriter = jsDLQ
		defer jsDLQ.Close()
		log.Printf("Dead Letter Queue enabled (nats: %s)", cfg.DLQ.NatsURL)
	} else {
		log.Println("Dead Letter Queue disabled")
	}

	// Initialize contact store client
	storeClient := brevoclient.New(brevoclient.Config{
		BaseURL: cfg.Brevo.BaseURL,
		APIKey:  cfg.Brevo.APIKey,
		Timeout: cfg.Brevo.Timeout,
	})

	// Initialize reconciliation service
	phoneGuard := guard.New(storeClient)
	syncService := service.NewSyncService(storeClient, phoneGuard, dedupStore, dlqWriter)

	// Initialize HTTP handlers
	handler := handlers.NewWebhookHandler(syncService, cfg.Server.MaxBodySize)
	router := server.NewRouter(handler)

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("contact-sync service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
