package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logisnap/internal/api"
	"logisnap/internal/assistant"
	"logisnap/internal/config"
	"logisnap/internal/monitoring"
	"logisnap/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	st, err := initializeStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	monitor := monitoring.NewMonitor()
	monitor.Register(prometheus.DefaultRegisterer)
	monitor.RecordMetric("store_backend", cfg.Database.Driver)

	warehouseAPI := api.NewWarehouseAPI(st, initializeAssistant(cfg, st), monitor, api.AuthConfig{
		Enabled: cfg.Auth.Enabled,
		Secret:  cfg.Auth.Secret,
	})

	go startMetricsServer(cfg.Server.MetricsPort, monitor)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: warehouseAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeStore(cfg *config.Config) (store.Store, error) {
	policy := store.ReceivingPolicy{AllowOverReceipt: cfg.Receiving.AllowOverReceipt}

	switch cfg.Database.Driver {
	case "memory":
		log.Println("No database configured, using seeded in-memory store")
		return store.NewDemo(policy), nil
	default:
		return store.OpenGorm(cfg.Database.Driver, cfg.Database.DSN, policy)
	}
}

func initializeAssistant(cfg *config.Config, st store.Store) *assistant.Assistant {
	if cfg.OpenAI.APIKey == "" {
		log.Println("No OpenAI key configured, assistant disabled")
		return nil
	}
	provider, err := assistant.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		log.Printf("Failed to initialize LLM provider, assistant disabled: %v", err)
		return nil
	}
	return assistant.New(st, provider)
}

func startMetricsServer(port int, monitor *monitoring.Monitor) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	metricsRouter.GET("/status", monitor.StatusHandler())

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
