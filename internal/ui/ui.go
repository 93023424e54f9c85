// Package ui renders the banner, styled status lines, and markdown answers
// for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stupiduntilnot/albert/internal/sysinfo"
)

const assistantTitle = "Albert The Friendly Helper"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// Banner renders the header panel: assistant name, detected environment,
// and the active session.
func Banner(info sysinfo.Info, sessionName string) string {
	badge := fmt.Sprintf("🧠  %s — %s • %s • %s",
		assistantTitle, info.DistroOrOS(), info.Desktop, info.SessionLabel())
	subtitle := fmt.Sprintf("%s @ %s  •  session: %s",
		info.User, info.WorkingDir, sessionName)
	return panelStyle.Render(badge + "\n" + subtitleStyle.Render(subtitle))
}

// Markdown renders answer text as terminal markdown, falling back to the
// raw text when rendering fails.
func Markdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// Status styles a progress line.
func Status(msg string) string { return statusStyle.Render(msg) }

// Notice styles an informational warning.
func Notice(msg string) string { return noticeStyle.Render(msg) }

// Error styles a failure message.
func Error(msg string) string { return errorStyle.Render(msg) }

// Success styles a confirmation message.
func Success(msg string) string { return successStyle.Render(msg) }
