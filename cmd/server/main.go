// Package main is the entry point for the agent-gateway server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edulab/agent-gateway/internal/config"
	"github.com/edulab/agent-gateway/internal/directory"
	"github.com/edulab/agent-gateway/internal/domain"
	"github.com/edulab/agent-gateway/internal/gateway"
	"github.com/edulab/agent-gateway/internal/handler"
	"github.com/edulab/agent-gateway/internal/prompt"
	"github.com/edulab/agent-gateway/internal/provider"
	"github.com/edulab/agent-gateway/internal/security"
	"github.com/edulab/agent-gateway/internal/ui"
)

func main() {
	ui.PrintBanner()

	logger := setupLogger()
	logger.Info("starting agent-gateway")

	cfg, err := config.GetConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.Int("personas", len(cfg.Personas)),
		slog.Bool("cache_enabled", cfg.Cache.Enabled),
	)
	ui.PrintGatewayInfo(fmt.Sprintf("Configuration loaded (%d personas)", len(cfg.Personas)))

	// Provider clients: one local, one cloud, shared across personas.
	local := provider.NewLocal(cfg.Providers.Local.Endpoint)
	cloud := provider.NewCloud(
		cfg.Providers.Cloud.APIKey,
		provider.WithCloudBaseURL(cfg.Providers.Cloud.BaseURL),
		provider.WithReferer(cfg.Providers.Cloud.Referer),
		provider.WithTitle(cfg.Providers.Cloud.Title),
	)

	// Persona routes from configuration.
	routes := make(map[domain.Persona]gateway.Route, len(cfg.Personas))
	personaNames := make([]string, 0, len(cfg.Personas))
	for name, pc := range cfg.Personas {
		temp := pc.Temperature
		route := gateway.Route{
			Model:       cfg.Providers.Local.Model,
			Client:      local,
			Temperature: &temp,
		}
		if pc.Provider == "cloud" {
			route.Client = cloud
			route.Model = cfg.Providers.Cloud.Model
		}
		routes[domain.Persona(name)] = route
		personaNames = append(personaNames, name)
	}

	builder := prompt.NewBuilder(cfg.PersonaPrompts(), prompt.WithLogger(logger))

	chatGateway := gateway.NewChatGateway(builder, routes, gateway.WithChatLogger(logger))
	analysisGateway := gateway.NewAnalysisGateway(
		builder,
		routes[domain.PersonaAcademicEvaluator],
		gateway.WithAnalysisLogger(logger),
	)

	students := directory.New()

	var replyCache *handler.ReplyCache
	if cfg.Cache.Enabled {
		replyCache = handler.NewReplyCache(
			handler.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
			handler.WithCacheLogger(logger),
		)
	}

	handlerOpts := []handler.GatewayHandlerOption{handler.WithLogger(logger)}
	if replyCache != nil {
		handlerOpts = append(handlerOpts, handler.WithReplyCache(replyCache))
	}
	gatewayHandler := handler.NewGatewayHandler(chatGateway, analysisGateway, students, handlerOpts...)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(cors.Default())
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggingMiddleware(logger))
	if replyCache != nil {
		router.Use(handler.CacheMiddleware(replyCache, logger))
	}

	router.POST("/chat", gatewayHandler.HandleChat)
	router.POST("/valuation", gatewayHandler.HandleValuation)
	router.GET("/students", gatewayHandler.HandleStudents)
	router.GET("/students/:id", gatewayHandler.HandleStudentByID)
	router.GET("/health", gatewayHandler.HandleHealth)
	router.GET("/", gatewayHandler.HandleRoot)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		ui.PrintStartupInfo(cfg.Server.Host, cfg.Server.Port, personaNames)
		logger.Info("server starting", slog.String("address", addr))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye()
}

// setupLogger creates a structured JSON logger with secret redaction.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	if envLevel := os.Getenv("AGENT_GATEWAY_LOGGING_LEVEL"); envLevel != "" {
		switch envLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Raw provider payloads and error strings can carry API keys; the
	// redacting handler scrubs them before they hit the output.
	inner := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(security.NewRedactedHandler(inner))

	slog.SetDefault(logger)

	return logger
}
