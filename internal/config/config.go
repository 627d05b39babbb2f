package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config carries all runtime settings. Everything comes from environment
// variables with sensible local-play defaults.
type Config struct {
	Environment string
	LogLevel    slog.Level

	// Narrator model settings
	LLMProvider     string // "ollama" or "anthropic"
	OllamaURL       string
	AnthropicAPIKey string
	ModelName       string

	// Persistence: Redis when REDIS_URL is set, otherwise a JSON save file
	RedisURL string
	SavePath string
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "ollama")),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		ModelName:       getEnv("MODEL_NAME", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		SavePath:        getEnv("SAVE_PATH", "game_save.json"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
