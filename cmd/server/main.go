package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/api"
	"github.com/biomcp-go/biomcp/internal/config"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	log.Printf("Starting biomcp REST API server on %s:%d", cfg.Server.Host, cfg.Server.Port)

	logger := logrus.New()
	client, err := substrate.Get(logger)
	if err != nil {
		log.Fatalf("Failed to initialize substrate client: %v", err)
	}
	fleet := orchestrators.NewFleet(client, logger)

	// Create server
	server := api.NewServer(configManager, fleet)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}
