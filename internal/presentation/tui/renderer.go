package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Render policies accepted by ShouldRender.
const (
	RenderAuto   = "auto"
	RenderAlways = "always"
	RenderNever  = "never"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// ShouldRender reports whether output written to f should be rendered
// as styled markdown. "auto" renders only when f is a terminal.
func ShouldRender(policy string, f *os.File) (bool, error) {
	switch policy {
	case RenderAlways:
		return true, nil
	case RenderNever:
		return false, nil
	case RenderAuto, "":
		return f != nil && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown render policy %q (want auto, always or never)", policy)
	}
}
