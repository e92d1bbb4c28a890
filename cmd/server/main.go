package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/venturegrill/api/internal/config"
	"github.com/venturegrill/api/internal/database"
	"github.com/venturegrill/api/internal/handlers"
	"github.com/venturegrill/api/internal/logger"
	"github.com/venturegrill/api/internal/middleware"
	"github.com/venturegrill/api/internal/queue"
	"github.com/venturegrill/api/internal/services/ai"
	"github.com/venturegrill/api/internal/services/auth"
	"github.com/venturegrill/api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

const serviceName = "venturegrill-api"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.DebugMode || *debugFlag

	zapLogger, err := logger.New(cfg.Development, debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := logger.Sync(zapLogger); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry tracing, optional
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tp.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Database connection is the one hard dependency. Everything downstream
	// degrades gracefully; a broken database means the process must not start.
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	store := database.NewStore(db, zapLogger)

	// Redis rate limiting, optional
	var rateLimitMW func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("invalid_redis_url", zap.Error(err))
		}
		redisClient := redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()

		rateLimitMW, err = middleware.RateLimit(redisClient, cfg.RateLimit)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
		zapLogger.Info("rate_limiting_enabled", zap.String("rate", cfg.RateLimit))
	} else {
		zapLogger.Warn("redis_not_configured_rate_limiting_disabled")
	}

	// RabbitMQ event publishing, optional
	var publisher queue.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := queue.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			zapLogger.Warn("failed_to_connect_to_rabbitmq_events_disabled", zap.Error(err))
		} else {
			publisher = p
			zapLogger.Info("connected_to_rabbitmq")
			defer func() {
				if err := p.Close(); err != nil {
					zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
				}
			}()
		}
	}

	// AI roaster
	var roaster ai.Provider
	if cfg.OpenAIKey != "" {
		roaster = ai.NewOpenAIRoaster(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zapLogger, debugMode)
	} else {
		zapLogger.Warn("openai_key_not_configured_roasting_disabled")
	}

	// Google login
	var google *auth.Google
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		zapLogger.Warn("google_oauth_not_configured_login_disabled")
	}

	healthChecker := handlers.NewHealthChecker(store)
	statsHandler := handlers.NewStatsHandler(store)

	r := mux.NewRouter()

	// Middleware, outermost first
	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.Recover(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Public routes, no rate limiting for health checks
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	if rateLimitMW != nil {
		apiRouter.Use(rateLimitMW)
	}
	if google != nil {
		apiRouter.Use(middleware.Auth(google.Verifier(), store, zapLogger))
	}

	apiRouter.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	if roaster != nil {
		roastHandler := handlers.NewRoastHandler(roaster, store, publisher, zapLogger)
		roastHandler.RegisterRoutes(apiRouter)
	}

	if google != nil {
		authHandler := handlers.NewAuthHandler(google, store, zapLogger)
		authRouter := apiRouter.PathPrefix("/auth").Subrouter()
		authHandler.RegisterRoutes(authRouter)
	}

	// Preflight requests fall through to here after the CORS middleware has
	// set its headers
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
