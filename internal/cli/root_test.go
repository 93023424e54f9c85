package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stupiduntilnot/albert/internal/assistant"
	"github.com/stupiduntilnot/albert/internal/config"
	"github.com/stupiduntilnot/albert/internal/prompt"
	"github.com/stupiduntilnot/albert/internal/session"
)

type staticGenerator struct {
	reply string
	calls int
}

func (g *staticGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.reply, nil
}

func testApp(t *testing.T, gen assistant.Generator) (*App, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := session.NewStore(dir, zerolog.Nop())
	controller := assistant.NewController(store, prompt.NewAssembler("p"), gen, 20, zerolog.Nop())
	out := &bytes.Buffer{}
	app := &App{
		Config:     config.Config{SessionsDir: dir},
		Store:      store,
		Controller: controller,
		Log:        zerolog.Nop(),
		Out:        out,
		ErrOut:     &bytes.Buffer{},
	}
	return app, dir, out
}

func execute(app *App, args ...string) error {
	cmd := New(app)
	cmd.SetArgs(args)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.ErrOut)
	return cmd.Execute()
}

func TestNoArguments(t *testing.T) {
	gen := &staticGenerator{reply: "unused"}
	app, dir, _ := testApp(t, gen)

	err := execute(app)
	if !errors.Is(err, assistant.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times with no question", gen.calls)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no side effects, found %d files", len(entries))
	}
}

func TestAskPersistsSessionTurns(t *testing.T) {
	gen := &staticGenerator{reply: "ls -la"}
	app, _, out := testApp(t, gen)

	if err := execute(app, "-s", "work", "--no-banner", "list", "files"); err != nil {
		t.Fatal(err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generation, got %d", gen.calls)
	}

	turns := app.Store.LoadRecent("work", 20)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns in session 'work', got %d", len(turns))
	}
	if turns[0].Content != "list files" {
		t.Errorf("argument words not joined into one question: %q", turns[0].Content)
	}
	if !strings.Contains(out.String(), "ls -la") {
		t.Errorf("answer not rendered to output: %q", out.String())
	}
}

func TestClearHistory(t *testing.T) {
	gen := &staticGenerator{reply: "unused"}
	app, dir, out := testApp(t, gen)

	if err := app.Store.Append("work", session.RoleUser, "hi"); err != nil {
		t.Fatal(err)
	}
	if err := execute(app, "--clear-history", "work"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "work.jsonl")); !os.IsNotExist(err) {
		t.Errorf("expected session log removed, stat err = %v", err)
	}
	if !strings.Contains(out.String(), "cleared") {
		t.Errorf("expected confirmation message, got %q", out.String())
	}
	if gen.calls != 0 {
		t.Errorf("clear must not trigger generation, called %d times", gen.calls)
	}
}

func TestClearHistory_RequiresName(t *testing.T) {
	gen := &staticGenerator{reply: "unused"}
	app, _, _ := testApp(t, gen)

	if err := app.Store.Append("work", session.RoleUser, "hi"); err != nil {
		t.Fatal(err)
	}

	// A missing flag value is a parse error; an empty one is ours. Neither
	// may fall through to question handling.
	for _, args := range [][]string{
		{"--clear-history"},
		{"--clear-history", ""},
	} {
		if err := execute(app, args...); err == nil {
			t.Errorf("args %v: expected an error", args)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on usage errors", gen.calls)
	}
	if turns := app.Store.LoadRecent("work", 20); len(turns) != 1 {
		t.Errorf("usage errors must not touch session logs, got %d turns", len(turns))
	}
}

func TestClearHistory_IgnoresQuestionArgs(t *testing.T) {
	gen := &staticGenerator{reply: "unused"}
	app, _, _ := testApp(t, gen)

	if err := execute(app, "--clear-history", "work", "stray", "question"); err != nil {
		t.Fatal(err)
	}
	if gen.calls != 0 {
		t.Errorf("clear with trailing args still generated %d times", gen.calls)
	}
}

func TestSessionFlag_RequiresName(t *testing.T) {
	gen := &staticGenerator{reply: "unused"}
	app, dir, _ := testApp(t, gen)

	if err := execute(app, "--session"); err == nil {
		t.Fatal("expected a parse error for --session without a value")
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on usage error", gen.calls)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("usage error must have no side effects, found %d files", len(entries))
	}
}
