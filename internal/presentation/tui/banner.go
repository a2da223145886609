package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{"             _ _             ", "#818cf8"},
		{"  _ __   __| | |_ _ __ ___  ", "#a78bfa"},
		{" | '_ \\ / _` | __| '_ ` _ \\ ", "#c084fc"},
		{" | | | | (_| | |_| | | | | |", "#e879f9"},
		{" |_| |_|\\__,_|\\__|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Summary counts outputs per classification, colored with p.
func Summary(p termenv.Profile, outs domain.Outputs) string {
	part := func(c domain.Classification, color string) string {
		return p.String(fmt.Sprintf("%s: %d", c.Name(), outs.Count(c))).Foreground(p.Color(color)).String()
	}
	return fmt.Sprintf("%s, %s, %s (%d branches)",
		part(domain.Yes, "#22c55e"),
		part(domain.No, "#ef4444"),
		part(domain.Halt, "#eab308"),
		len(outs))
}
