package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justjobs360/fileconverter/internal/config"
	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/engine"
	"github.com/justjobs360/fileconverter/internal/handlers"
	"github.com/justjobs360/fileconverter/internal/logging"
	"github.com/justjobs360/fileconverter/internal/memory"
	"github.com/justjobs360/fileconverter/internal/metrics"
	"github.com/justjobs360/fileconverter/internal/middleware"
	"github.com/justjobs360/fileconverter/internal/router"
	"github.com/justjobs360/fileconverter/internal/startup"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	startTime := time.Now()

	// A missing .env file is the normal case in containers.
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded environment from .env")
	}

	memory.ConfigureFromEnv()

	startup.PrintBanner()
	startup.LogSystemInfo()

	cfg, err := config.Load()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Image pipeline: libvips when present, pure-Go otherwise.
	if err := convert.InitVips(); err != nil {
		logging.Debug("libvips initialization: %v", err)
	}
	defer convert.ShutdownVips()
	startup.LogImagePipelineInit(convert.IsVipsAvailable())

	// Media engine fallback for small server-side media jobs.
	var eng *engine.Engine
	startup.LogEngineInit(cfg.EngineEnabled)
	if cfg.EngineEnabled {
		eng = engine.New()
		defer eng.Close()
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	dispatcher := router.NewDispatcher(router.Limits{
		MaxUploadBytes:      cfg.MaxUploadBytes,
		MediaServerMaxBytes: cfg.MediaServerMaxBytes,
	}, eng)

	h := handlers.New(cfg, dispatcher, eng)

	apiRouter := setupRouter(h)
	startup.LogHTTPRoutes(apiRouter, cfg.LogHealthChecks)

	handler := buildMiddlewareChain(apiRouter, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              ":" + cfg.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv, eng)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            cfg.Port,
		MetricsPort:     cfg.MetricsPort,
		MetricsEnabled:  cfg.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health and version probes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Conversion API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/formats", h.GetFormats).Methods("GET")
	api.HandleFunc("/convert", h.Convert).Methods("POST")
	api.HandleFunc("/convert/images", h.ConvertImage).Methods("POST")
	api.HandleFunc("/convert/documents", h.ConvertDocument).Methods("POST")
	api.HandleFunc("/convert/pdf", h.ConvertImageToPDF).Methods("POST")
	api.HandleFunc("/convert/video", h.ConvertVideo).Methods("POST")
	api.HandleFunc("/convert/audio", h.ConvertAudio).Methods("POST")
	api.HandleFunc("/proxy", h.ProxyFile).Methods("POST")

	return r
}

// buildMiddlewareChain wraps the router with the full middleware stack.
// Order matters: recovery outermost so panics in other middleware are
// caught, CORS before anything that writes headers, logging and metrics
// around the actual handlers.
func buildMiddlewareChain(r *mux.Router, cfg *config.Config) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = cfg.LogHealthChecks

	var handler http.Handler = r
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	handler = middleware.Logger(loggingConfig)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.RequestID(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         3600,
	})
	handler = corsHandler.Handler(handler)

	return middleware.Recovery(handler)
}

func handleShutdown(srv, metricsSrv *http.Server, eng *engine.Engine) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if eng != nil {
		startup.LogShutdownStep("Removing engine scratch files")
		eng.Close()
		startup.LogShutdownStepComplete("Engine cleanup complete")
	}

	startup.LogShutdownComplete()
}
