package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stupiduntilnot/albert/internal/assistant"
	"github.com/stupiduntilnot/albert/internal/cli"
	"github.com/stupiduntilnot/albert/internal/config"
	"github.com/stupiduntilnot/albert/internal/ollama"
	"github.com/stupiduntilnot/albert/internal/prompt"
	"github.com/stupiduntilnot/albert/internal/session"
	"github.com/stupiduntilnot/albert/internal/ui"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	// The run id ties interleaved session appends from concurrent
	// invocations back to the process that wrote them.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("run", uuid.NewString()[:8]).
		Logger()

	store := session.NewStore(cfg.SessionsDir, logger)
	assembler := prompt.NewAssembler(cfg.SystemPrompt)
	client := ollama.NewClient(cfg.OllamaURL, cfg.Model, cfg.Timeout, logger)
	controller := assistant.NewController(store, assembler, client, cfg.HistoryWindow, logger)

	app := &cli.App{
		Config:     cfg,
		Store:      store,
		Controller: controller,
		Log:        logger,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
	}

	if err := cli.New(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}
