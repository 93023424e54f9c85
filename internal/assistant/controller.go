// Package assistant orchestrates one question/answer cycle: persist the
// user turn, assemble a context-window prompt, stream a generation from the
// local model, and persist the assistant turn.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stupiduntilnot/albert/internal/ollama"
	"github.com/stupiduntilnot/albert/internal/prompt"
	"github.com/stupiduntilnot/albert/internal/session"
)

// DefaultHistoryWindow is how many recent turns ground a new request.
const DefaultHistoryWindow = 20

var (
	// ErrEmptyQuestion means there was nothing to do: a blank question is
	// rejected before any side effect.
	ErrEmptyQuestion = errors.New("no question / command provided")

	// ErrNoAnswer means generation produced no text, either because the
	// backend failed or because it returned an empty answer.
	ErrNoAnswer = errors.New("no answer returned")
)

// Generator produces the answer text for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Controller wires the session store, prompt assembler, and generator into
// the per-invocation pipeline.
type Controller struct {
	store         *session.Store
	assembler     *prompt.Assembler
	gen           Generator
	historyWindow int
	log           zerolog.Logger
}

// NewController creates a controller. A non-positive historyWindow falls
// back to DefaultHistoryWindow.
func NewController(store *session.Store, assembler *prompt.Assembler, gen Generator, historyWindow int, log zerolog.Logger) *Controller {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Controller{
		store:         store,
		assembler:     assembler,
		gen:           gen,
		historyWindow: historyWindow,
		log:           log,
	}
}

// HandleQuestion runs one full cycle for a session and returns the answer
// text. A blank question returns ErrEmptyQuestion with no side effects.
// Failures to persist history are logged and swallowed: the user still gets
// the answer. A generation failure or empty answer returns ErrNoAnswer, and
// no assistant turn is written.
func (c *Controller) HandleQuestion(ctx context.Context, question, sessionID string, env prompt.EnvFacts) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", ErrEmptyQuestion
	}

	if err := c.store.Append(sessionID, session.RoleUser, q); err != nil {
		c.log.Warn().Err(err).Str("session", sessionID).Msg("user turn not persisted")
	}

	var answer string
	if canned, ok := ollama.CannedReply(q); ok {
		// Trivial acknowledgement: skip the model entirely.
		answer = canned
	} else {
		window := c.store.LoadRecent(sessionID, c.historyWindow)
		generated, err := c.gen.Generate(ctx, c.assembler.Assemble(env, window, q))
		if err != nil {
			c.log.Warn().Err(err).Str("session", sessionID).Msg("generation failed")
			return "", fmt.Errorf("%w: %v", ErrNoAnswer, err)
		}
		answer = generated
	}

	if answer == "" {
		return "", ErrNoAnswer
	}

	if err := c.store.Append(sessionID, session.RoleAssistant, session.TruncateContent(answer)); err != nil {
		c.log.Warn().Err(err).Str("session", sessionID).Msg("assistant turn not persisted")
	}
	return answer, nil
}
