package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/config"
	"github.com/RuvinSL/alt-audit/pkg/httpclient"
	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/logger"
	"github.com/RuvinSL/alt-audit/pkg/metrics"
	"github.com/RuvinSL/alt-audit/pkg/netguard"
	"github.com/RuvinSL/alt-audit/pkg/store"
	"github.com/RuvinSL/alt-audit/services/scanner/core"
	"github.com/RuvinSL/alt-audit/services/scanner/handlers"
	"github.com/RuvinSL/alt-audit/services/scanner/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "scanner"
	serviceVersion = "1.0.0"
	apiPrefix      = "/api/v1"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Server)

	if err := run(cfg, log); err != nil {
		log.Error("Scanner service stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.ServerConfig) interfaces.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogToFile {
		return logger.NewWithFiles(serviceName, level, cfg.LogDir)
	}
	return logger.New(serviceName, level)
}

func run(cfg *config.Config, log interfaces.Logger) error {
	// Initialize metrics
	metricsCollector := metrics.NewPrometheusCollector(serviceName)
	registry := prometheus.NewRegistry()
	registry.MustRegister(metricsCollector.GetCollectors()...)

	db, err := store.Open(cfg.Storage.DSN, log)
	if err != nil {
		return err
	}
	defer db.Close()

	scanner, err := newScanner(cfg, log, metricsCollector)
	if err != nil {
		return err
	}

	router := newRouter(cfg, log, metricsCollector, registry, scanner, db)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting scanner service",
			"port", cfg.Server.Port,
			"version", serviceVersion,
			"tls_fallback", cfg.Scanner.TLSFallback,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
	return nil
}

// newScanner wires the pipeline. The policy is shared by the validator and
// the fetcher's dial guard.
func newScanner(cfg *config.Config, log interfaces.Logger, collector interfaces.MetricsCollector) (*core.Scanner, error) {
	policy, err := netguard.NewPolicy(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to build network policy: %w", err)
	}

	resolver := netguard.NewDNSResolver(cfg.Scanner.DNSTimeout(), log)
	validator := netguard.NewValidator(policy, resolver, log, collector)

	fetcher := httpclient.New(httpclient.Options{
		Timeout:         cfg.Scanner.RequestTimeout(),
		MaxContentBytes: cfg.Scanner.MaxContentBytes,
		MaxRedirects:    cfg.Scanner.MaxRedirects,
		UserAgent:       cfg.Scanner.UserAgent,
		TLSFallback:     cfg.Scanner.TLSFallback,
	}, validator, policy, log, collector)

	analyzer := core.NewImageAnalyzer(log)

	return core.NewScanner(validator, fetcher, analyzer, log, collector), nil
}

func newRouter(
	cfg *config.Config,
	log interfaces.Logger,
	collector interfaces.MetricsCollector,
	gatherer prometheus.Gatherer,
	scanner interfaces.Scanner,
	scanStore interfaces.ScanStore,
) *mux.Router {
	scanHandler := handlers.NewScanHandler(scanner, scanStore, log, cfg.Scanner.MaxBatchSize, cfg.Scanner.BatchConcurrency)
	healthHandler := handlers.NewHealthHandler(serviceName, serviceVersion, scanStore)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// API routes sit on the root router so a method mismatch yields 405
	router.HandleFunc(apiPrefix+"/scans", scanHandler.CreateScan).Methods("POST", "OPTIONS")
	router.HandleFunc(apiPrefix+"/scans", scanHandler.ListScans).Methods("GET")
	router.HandleFunc(apiPrefix+"/scans/batch", scanHandler.BatchScan).Methods("POST", "OPTIONS")
	router.HandleFunc(apiPrefix+"/scans/{id}", scanHandler.GetScan).Methods("GET")
	router.HandleFunc(apiPrefix+"/scans/{id}", scanHandler.DeleteScan).Methods("DELETE", "OPTIONS")
	router.HandleFunc(apiPrefix+"/scans/{id}/rescan", scanHandler.RescanScan).Methods("POST", "OPTIONS")
	router.HandleFunc(apiPrefix+"/scans/{id}/images", scanHandler.ListImages).Methods("GET")
	router.HandleFunc(apiPrefix+"/scans/{id}/export.csv", scanHandler.ExportCSV).Methods("GET")

	// Health and monitoring routes
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// pprof routes for profiling
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
	router.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	router.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))

	return router
}
