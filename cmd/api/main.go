package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/greenstrikas/platform/internal/auth"
	"github.com/greenstrikas/platform/internal/config"
	"github.com/greenstrikas/platform/internal/demo"
	"github.com/greenstrikas/platform/internal/handlers"
	middlewareCustom "github.com/greenstrikas/platform/internal/middleware"
	"github.com/greenstrikas/platform/internal/routes"
	"github.com/greenstrikas/platform/internal/services"
	"github.com/greenstrikas/platform/internal/store"
	"github.com/greenstrikas/platform/internal/tokens"
	pkglogger "github.com/greenstrikas/platform/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// In-memory state: credential store and token tables
	accountStore := store.NewAccountStore()
	tokenIssuer := tokens.NewIssuer()

	// Notification gateway
	var notifier services.Notifier
	if cfg.Email.Mode == "ses" {
		sesNotifier, err := services.NewSESNotifier(
			cfg.Email.AWSRegion,
			cfg.Email.FromAddress,
			cfg.Email.LinkBaseURL,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize SES notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	} else {
		notifier = services.NewLogNotifier(logger)
	}

	// Account lifecycle manager
	auditLogger := pkglogger.NewAuditLogger(logger)
	accountService := services.NewAccountService(accountStore, tokenIssuer, notifier, logger, auditLogger)
	accountService.SetTokenTTLs(cfg.Auth.VerificationTTL, cfg.Auth.ResetTTL)

	// Session tokens for the UI layer
	sessionManager := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionExpiry)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService, sessionManager)
	demoHandler := handlers.NewDemoHandler(demo.NewGenerator())

	// CORS
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, authHandler, demoHandler, sessionManager)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
