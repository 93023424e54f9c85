package config

import (
	"testing"
	"time"

	"github.com/stupiduntilnot/albert/internal/ollama"
	"github.com/stupiduntilnot/albert/internal/prompt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ALBERT_OLLAMA_URL", "ALBERT_MODEL", "ALBERT_SESSIONS_DIR",
		"ALBERT_SYSTEM_PROMPT", "ALBERT_HISTORY_WINDOW",
		"ALBERT_TIMEOUT_SECONDS", "ALBERT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.OllamaURL != ollama.DefaultURL {
		t.Errorf("unexpected url: %q", cfg.OllamaURL)
	}
	if cfg.Model != ollama.DefaultModel {
		t.Errorf("unexpected model: %q", cfg.Model)
	}
	if cfg.SystemPrompt != prompt.DefaultPreamble {
		t.Errorf("unexpected system prompt: %q", cfg.SystemPrompt)
	}
	if cfg.HistoryWindow != 20 {
		t.Errorf("expected history window 20, got %d", cfg.HistoryWindow)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("expected 120s timeout, got %v", cfg.Timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn level, got %q", cfg.LogLevel)
	}
	if cfg.SessionsDir == "" {
		t.Error("sessions dir must have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALBERT_OLLAMA_URL", "http://localhost:9999/api/generate")
	t.Setenv("ALBERT_MODEL", "qwen3:4b")
	t.Setenv("ALBERT_SESSIONS_DIR", "/tmp/albert-test-sessions")
	t.Setenv("ALBERT_SYSTEM_PROMPT", "You are terse.")
	t.Setenv("ALBERT_HISTORY_WINDOW", "8")
	t.Setenv("ALBERT_TIMEOUT_SECONDS", "30")
	t.Setenv("ALBERT_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.OllamaURL != "http://localhost:9999/api/generate" {
		t.Errorf("url override ignored: %q", cfg.OllamaURL)
	}
	if cfg.Model != "qwen3:4b" {
		t.Errorf("model override ignored: %q", cfg.Model)
	}
	if cfg.SessionsDir != "/tmp/albert-test-sessions" {
		t.Errorf("sessions dir override ignored: %q", cfg.SessionsDir)
	}
	if cfg.SystemPrompt != "You are terse." {
		t.Errorf("system prompt override ignored: %q", cfg.SystemPrompt)
	}
	if cfg.HistoryWindow != 8 {
		t.Errorf("history window override ignored: %d", cfg.HistoryWindow)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout override ignored: %v", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level override ignored: %q", cfg.LogLevel)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALBERT_HISTORY_WINDOW", "lots")

	if cfg := Load(); cfg.HistoryWindow != 20 {
		t.Errorf("expected fallback window 20, got %d", cfg.HistoryWindow)
	}
}
