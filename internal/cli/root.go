// Package cli defines the albert command surface: a question as positional
// arguments plus session-management flags.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stupiduntilnot/albert/internal/assistant"
	"github.com/stupiduntilnot/albert/internal/config"
	"github.com/stupiduntilnot/albert/internal/prompt"
	"github.com/stupiduntilnot/albert/internal/session"
	"github.com/stupiduntilnot/albert/internal/sysinfo"
	"github.com/stupiduntilnot/albert/internal/ui"
)

// App bundles the wired dependencies the commands run against.
type App struct {
	Config     config.Config
	Store      *session.Store
	Controller *assistant.Controller
	Log        zerolog.Logger
	Out        io.Writer
	ErrOut     io.Writer
}

// New builds the albert root command.
func New(app *App) *cobra.Command {
	var (
		sessionName  string
		clearSession string
		noBanner     bool
	)

	cmd := &cobra.Command{
		Use:   "albert [question...]",
		Short: "Local terminal assistant (Ollama-backed)",
		Long: `Albert answers questions with a locally running Ollama model and keeps
per-session conversation history so follow-up questions have context.

Histories are stored as one JSONL file per session under ` + app.Config.SessionsDir + `.
Make sure Ollama and a model are running at ` + app.Config.OllamaURL + `.`,
		Example: `  albert how do I list open ports
  albert -s work summarize yesterday's notes
  albert --clear-history work
  albert --no-banner what is my shell`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("clear-history") {
				return runClear(app, clearSession)
			}
			if len(args) == 0 {
				return assistant.ErrEmptyQuestion
			}
			return runAsk(app, cmd, strings.Join(args, " "), sessionName, noBanner)
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session", "s", session.DefaultSession,
		"named conversation session to store/load history in")
	cmd.Flags().StringVar(&clearSession, "clear-history", "",
		"clear saved conversation history for the named session")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false,
		"suppress the banner for this run")

	return cmd
}

func runClear(app *App, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("--clear-history requires a session name")
	}
	if err := app.Store.Clear(name); err != nil {
		return fmt.Errorf("failed to clear history for session %q: %w", name, err)
	}
	fmt.Fprintln(app.Out, ui.Success(fmt.Sprintf("History for session %q cleared.", name)))
	return nil
}

func runAsk(app *App, cmd *cobra.Command, question, sessionName string, noBanner bool) error {
	info := sysinfo.Detect()

	if !noBanner {
		fmt.Fprintln(app.Out, ui.Banner(info, displayName(sessionName)))
	}

	env := prompt.EnvFacts{
		OS:         info.DistroOrOS(),
		Desktop:    info.Desktop,
		Session:    info.SessionLabel(),
		WorkingDir: info.WorkingDir,
		Shell:      info.Shell,
	}

	fmt.Fprintln(app.ErrOut, ui.Status("Generating response (local model)..."))

	answer, err := app.Controller.HandleQuestion(cmd.Context(), question, sessionName, env)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.Out, ui.Markdown(answer))
	return nil
}

// displayName mirrors the store's blank-name fallback for banner output.
func displayName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return session.DefaultSession
}
