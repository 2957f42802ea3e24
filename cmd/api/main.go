package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/justsurfingit/job-application-tracker/internal/auth"
	"github.com/justsurfingit/job-application-tracker/internal/config"
	"github.com/justsurfingit/job-application-tracker/internal/database"
	"github.com/justsurfingit/job-application-tracker/internal/handlers"
	"github.com/justsurfingit/job-application-tracker/internal/logging"
	"github.com/justsurfingit/job-application-tracker/internal/ratelimit"
	"github.com/justsurfingit/job-application-tracker/internal/repository"
	"github.com/justsurfingit/job-application-tracker/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}()

	// 3. Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, clockwork.NewRealClock())
	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		auth.NewPasswordHasher(cfg.BcryptCost),
		tokens,
	)
	applicationService := services.NewApplicationService(repository.NewApplicationRepository(db))

	var llmService *services.LLMService
	if cfg.ExtractionEnabled() {
		llmService, err = services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Warn("Posting extraction disabled", "error", err)
			llmService = nil
		}
	} else {
		slog.Info("GEMINI_API_KEY not set, posting extraction disabled")
	}

	// 4. Auth rate limiter
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("Redis unavailable, using in-process rate limiter", "error", err)
		} else {
			defer client.Close()
			limiter = ratelimit.NewRedisLimiter(client, "ratelimit:auth:", cfg.AuthRateLimit, cfg.AuthRateWindow)
			slog.Info("Using Redis rate limiter")
		}
	}

	// 5. Router
	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:           authService,
		Applications:   applicationService,
		LLM:            llmService,
		Tokens:         tokens,
		AuthLimiter:    limiter,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
