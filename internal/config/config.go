// Package config reads runtime configuration from the environment, after
// sourcing the optional ~/.config/albert/albert.env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/stupiduntilnot/albert/internal/assistant"
	"github.com/stupiduntilnot/albert/internal/ollama"
	"github.com/stupiduntilnot/albert/internal/prompt"
)

// Config holds runtime configuration for the albert CLI.
type Config struct {
	OllamaURL     string
	Model         string
	SessionsDir   string
	SystemPrompt  string
	HistoryWindow int
	Timeout       time.Duration
	LogLevel      string
}

// Load builds the configuration from environment variables, each with a
// sensible local default.
func Load() Config {
	if home, err := os.UserHomeDir(); err == nil {
		// Missing env file is fine; the environment still wins.
		_ = godotenv.Load(filepath.Join(home, ".config", "albert", "albert.env"))
	}

	return Config{
		OllamaURL:     envOrDefault("ALBERT_OLLAMA_URL", ollama.DefaultURL),
		Model:         envOrDefault("ALBERT_MODEL", ollama.DefaultModel),
		SessionsDir:   envOrDefault("ALBERT_SESSIONS_DIR", defaultSessionsDir()),
		SystemPrompt:  envOrDefault("ALBERT_SYSTEM_PROMPT", prompt.DefaultPreamble),
		HistoryWindow: envIntOrDefault("ALBERT_HISTORY_WINDOW", assistant.DefaultHistoryWindow),
		Timeout:       time.Duration(envIntOrDefault("ALBERT_TIMEOUT_SECONDS", 120)) * time.Second,
		LogLevel:      envOrDefault("ALBERT_LOG_LEVEL", "warn"),
	}
}

func defaultSessionsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".albert_sessions"
	}
	return filepath.Join(home, ".albert_sessions")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
