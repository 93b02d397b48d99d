package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Scribe ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"  ___  ___ _ __(_) |__   ___ ", "#34d399"},
		{" / __|/ __| '__| | '_ \\ / _ \\", "#2dd4bf"},
		{" \\__ \\ (__| |  | | |_) |  __/", "#22d3ee"},
		{" |___/\\___|_|  |_|_.__/ \\___|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
