package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"golang.org/x/crypto/bcrypt"
)

const minJWTSecretLength = 16

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"3001"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	JWTSecret  string        `env:"JWT_SECRET"`
	JWTTTL     time.Duration `env:"JWT_TTL" default:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" default:"10"`

	// CORSAllowedOrigins is a comma separated list; empty allows every origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	RedisURL       string        `env:"REDIS_URL"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" default:"1m"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) ExtractionEnabled() bool {
	return c.GeminiAPIKey != ""
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if cfg.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.AuthRateLimit <= 0 || cfg.AuthRateWindow <= 0 {
		return errors.New("AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive")
	}
	return nil
}
