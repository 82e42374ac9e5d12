package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	TokenTTL           time.Duration
	AdminEmail         string
	AdminPassword      string
	OpenAIAPIKey       string
	AIModel            string
	AIMaxTokens        int
	AITimeout          time.Duration
	AssignmentCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CODEGRADER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "CodeGrader API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 1024)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("assignment.cache_ttl", "5m")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	aiTimeout, err := time.ParseDuration(v.GetString("ai.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("assignment.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid assignment cache ttl: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		JWTSecret:          v.GetString("jwt.secret"),
		TokenTTL:           tokenTTL,
		AdminEmail:         v.GetString("admin.email"),
		AdminPassword:      v.GetString("admin.password"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		AIModel:            v.GetString("ai.model"),
		AIMaxTokens:        v.GetInt("ai.max_tokens"),
		AITimeout:          aiTimeout,
		AssignmentCacheTTL: cacheTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 1024
	}

	return cfg, nil
}
