package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Strata banner, coloured from surface to depth.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"      _             _        ", "#fde68a"},
		{"  ___| |_ _ __ __ _| |_ __ _ ", "#fbbf24"},
		{" / __| __| '__/ _` | __/ _` |", "#d97706"},
		{" \\__ \\ |_| | | (_| | || (_| |", "#92400e"},
		{" |___/\\__|_|  \\__,_|\\__\\__,_|", "#78350f"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
