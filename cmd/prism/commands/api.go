package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/internal/api"
	"github.com/vivmac33/marketprism/internal/api/handlers"
	"github.com/vivmac33/marketprism/internal/refdata"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/database"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard API server",
	Long: `Starts the REST API server backing the dashboard.

Endpoints:
  GET  /health                        - Health check
  POST /api/v1/synthesize/{symbol}    - Fuse a submitted card batch
  POST /api/v1/evaluate               - Run builtin cards on raw data
  GET  /api/v1/composite/{symbol}     - Latest cached composite
  GET  /api/v1/cards                  - Card catalog
  GET  /api/v1/reference/funds        - Fund reference table
  GET  /api/v1/reference/concepts     - Concept glossary
  GET  /api/v1/reference/curriculum   - Ordered lessons
  GET  /api/v1/stream                 - Websocket composite stream

Example:
  go run ./cmd/prism api
  go run ./cmd/prism api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	cache := openCache(cfg, log)
	hub := api.NewHub(log)

	cmp, registry, err := buildComposer(cfg, log, cache, hub)
	if err != nil {
		return err
	}

	compositeHandler := handlers.NewCompositeHandler(cmp, log)
	cardsHandler := handlers.NewCardsHandler(registry, log)

	// Reference endpoints only come up when a database is configured.
	var refdataHandler *handlers.RefdataHandler
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		refdataHandler = handlers.NewRefdataHandler(refdata.NewRepository(db.Pool), log)
		log.Info("Connected to database")
	} else {
		log.Warn("DATABASE_URL not set, reference endpoints disabled")
	}

	router := api.NewRouter(compositeHandler, cardsHandler, refdataHandler, hub, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
