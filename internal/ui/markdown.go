package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RenderMarkdown renders a complete markdown string for terminal output and
// returns the styled result. Returns the original string on any error.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// PlanNotes renders a plan description. Piped output gets the raw text,
// indented to line up with Kv values.
func PlanNotes(desc string, styled bool) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	if styled {
		return strings.TrimRight(RenderMarkdown(desc, 72), "\n")
	}
	lines := strings.Split(desc, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
