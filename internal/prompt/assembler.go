package prompt

import (
	"strings"

	"github.com/stupiduntilnot/albert/internal/session"
)

// DefaultPreamble is the stock persona. The {os}, {desktop}, {session},
// {cwd} and {shell} placeholders are filled from EnvFacts at assembly time.
// Override via ALBERT_SYSTEM_PROMPT to serve a different persona.
const DefaultPreamble = "You are Albert, a friend and personal assistant who happens to be a " +
	"veteran Linux user and is always ready to chat or help. " +
	"You never hallucinate commands. Provide short, precise answers with code blocks when needed. " +
	"The user environment: {os}, {desktop} (session: {session}). " +
	"Current working directory: {cwd}. Shell: {shell}. " +
	"If asked for commands, provide exact, working commands and minimal explanation. " +
	"If unsure, say you don't know. " +
	"You are a friendly local assistant running on the user's device and may be concise or casual when appropriate."

// EnvFacts carries the display-context strings substituted into the
// preamble. They are supplied by the caller and passed through unmodified.
type EnvFacts struct {
	OS         string
	Desktop    string
	Session    string
	WorkingDir string
	Shell      string
}

// Assembler builds a single prompt string from a persona preamble, a window
// of prior turns, and the new question. It never truncates the result; any
// length limit is the backend's concern.
type Assembler struct {
	Preamble string
}

// NewAssembler creates an assembler, falling back to DefaultPreamble when
// the given preamble is empty.
func NewAssembler(preamble string) *Assembler {
	if preamble == "" {
		preamble = DefaultPreamble
	}
	return &Assembler{Preamble: preamble}
}

// Assemble renders:
//
//	<preamble>\n\n<Role: content per window turn>\nUser: <question>\nAssistant:
//
// Window turns must already be in chronological order, oldest first.
func (a *Assembler) Assemble(env EnvFacts, window []session.Turn, question string) string {
	var b strings.Builder
	b.WriteString(a.expandPreamble(env))
	b.WriteString("\n\n")
	for _, t := range window {
		b.WriteString(roleLabel(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteByte('\n')
	}
	b.WriteString("User: ")
	b.WriteString(question)
	b.WriteString("\nAssistant:")
	return b.String()
}

func (a *Assembler) expandPreamble(env EnvFacts) string {
	return strings.NewReplacer(
		"{os}", env.OS,
		"{desktop}", env.Desktop,
		"{session}", env.Session,
		"{cwd}", env.WorkingDir,
		"{shell}", env.Shell,
	).Replace(a.Preamble)
}

// roleLabel maps a stored role to its prompt label. Anything that is not a
// user turn renders as the assistant.
func roleLabel(r session.Role) string {
	if strings.EqualFold(string(r), string(session.RoleUser)) {
		return "User"
	}
	return "Assistant"
}
