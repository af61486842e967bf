package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streamkas/streamkas/pkg/clock"
	"github.com/streamkas/streamkas/pkg/engine"
	"github.com/streamkas/streamkas/pkg/handlers"
	"github.com/streamkas/streamkas/pkg/metrics"
	"github.com/streamkas/streamkas/pkg/middleware"
	"github.com/streamkas/streamkas/pkg/price"
	"github.com/streamkas/streamkas/pkg/storage"
	dydbstore "github.com/streamkas/streamkas/pkg/storage/dynamodb"
	filestore "github.com/streamkas/streamkas/pkg/storage/file"
	"github.com/streamkas/streamkas/pkg/verifier"
	"github.com/streamkas/streamkas/pkg/wallet"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	bridgeURL := os.Getenv("KASWARE_BRIDGE_URL")
	if bridgeURL == "" {
		log.Fatal("KASWARE_BRIDGE_URL environment variable not set")
	}

	kaspaAPIURL := os.Getenv("KASPA_API_URL")
	if kaspaAPIURL == "" {
		log.Fatal("KASPA_API_URL environment variable not set")
	}

	// Streams persist to DynamoDB when a table is configured, otherwise to
	// a local JSON file.
	var store storage.StreamStore
	if table := os.Getenv("DYNAMODB_STREAMS_TABLE"); table != "" {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		store = dydbstore.New(awsdynamodb.NewFromConfig(cfg), table)
		logger.Info("using dynamodb stream store", "table", table)
	} else {
		path := os.Getenv("STREAMS_FILE")
		if path == "" {
			path = "streams.json"
		}
		store = filestore.New(path)
		logger.Info("using file stream store", "path", path)
	}

	clk := clock.NewSystem()
	gateway := wallet.NewBridgeClient(bridgeURL)

	eng := engine.New(engine.Config{
		Wallet:   gateway,
		Verifier: verifier.NewRESTClient(kaspaAPIURL),
		Store:    store,
		Clock:    clk,
		Logger:   logger,
		Metrics:  metrics.NewEngine(),
	})

	ctx := context.Background()
	if err := eng.Restore(ctx); err != nil {
		log.Fatalf("failed to restore streams: %v", err)
	}
	eng.Reconcile(ctx)

	prices := price.NewClient(os.Getenv("COINGECKO_API_URL"), clk, logger)

	// Create our handler
	handler := handlers.NewApiHandler(eng, gateway, prices, clk)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	server := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		logger.Info("starting server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM: stop accepting requests, then
	// stop the engine's timers.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	eng.Close()
}
