// File: cmd/app/main.go
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

	"ai-chat-backend/internal/config"
	"ai-chat-backend/internal/domain/ports/adapter"
	aiAdapters "ai-chat-backend/internal/infra/adapters/ai"
	pg "ai-chat-backend/internal/infra/db/postgres"
	"ai-chat-backend/internal/infra/logging"
	"ai-chat-backend/internal/infra/metrics"
	red "ai-chat-backend/internal/infra/redis"
	"ai-chat-backend/internal/infra/web"
	"ai-chat-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("postgres schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	historyRepo := pg.NewPostgresHistoryRepo(pool)
	sessionRepo := red.NewSessionRepo(redisClient, cfg.Session.TTL)

	// ---- AI adapter ----
	var ai adapter.CompletionClient
	switch cfg.AI.Provider {
	case "gemini":
		ai = aiAdapters.NewGeminiAdapter(cfg.AI.Key, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
	case "gemini-sdk":
		ai, err = aiAdapters.NewGenAIAdapter(ctx, cfg.AI.Key, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("genai adapter")
		}
	case "openai":
		ai = aiAdapters.NewOpenAIAdapter(cfg.AI.Key, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
	case "noop":
		ai = aiAdapters.NewNoopAdapter()
	default:
		logger.Fatal().Str("provider", cfg.AI.Provider).Msg("unknown ai provider")
	}
	if cfg.AI.Key == "" && cfg.AI.Provider != "noop" {
		// The service still starts; chat requests fail with a provider
		// error until a key is supplied.
		logger.Warn().Str("provider", cfg.AI.Provider).Msg("no AI key configured")
	}
	ai = aiAdapters.NewLimitedClient(ai, cfg.AI.ConcurrentLimit)
	logger.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("ai adapter ready")

	// ---- Use cases ----
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, 0, logger)
	chatUC := usecase.NewChatUseCase(sessionRepo, historyRepo, ai, logger)

	// ---- HTTP server ----
	authMgr := web.NewAuthManager(
		cfg.Session.Secret,
		cfg.Session.CookieName,
		cfg.Session.SecureCookie && !cfg.Runtime.Dev,
		cfg.Session.CookieDomain,
		cfg.Session.TTL,
	)
	srv := web.NewServer(authUC, chatUC, authMgr, cfg.CORS.AllowedOrigins, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
