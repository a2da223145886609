package compiler

import (
	"slices"
	"strings"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Format renders p in canonical form: the input line, then one line per
// option. States come initial-first then lexicographic, read tuples in symbol
// order (initial, blank, then by character), next states in state order and
// alternatives for the same next state in symbol order of their writes.
//
// Format(Parse(Format(p))) == Format(p).
func Format(p *Program) string {
	var sb strings.Builder
	sb.WriteString(p.Input)
	sb.WriteByte('\n')
	sb.WriteString(FormatTable(p.Table))
	return sb.String()
}

// FormatTable renders only the transition lines of t.
func FormatTable(t *domain.Table) string {
	d := t.Dialect()
	var sb strings.Builder
	for _, state := range t.States() {
		for _, entry := range t.Entries(state) {
			opts := slices.Clone(entry.Options)
			slices.SortStableFunc(opts, func(a, b domain.Option) int {
				if c := d.CompareStates(a.Next, b.Next); c != 0 {
					return c
				}
				return d.CompareSymbols(a.WriteSymbols(d), b.WriteSymbols(d))
			})
			for _, opt := range opts {
				writeLine(&sb, d, state, entry.Read, opt)
			}
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, d domain.Dialect, state string, read domain.Symbols, opt domain.Option) {
	sb.WriteString(state)
	sb.WriteString("; ")
	sb.WriteString(read.String())
	sb.WriteString("; (")
	sb.WriteString(opt.Next)
	for _, m := range opt.Moves {
		sb.WriteString(", ")
		sb.WriteRune(rune(m.Write))
		sb.WriteString(", ")
		sb.WriteRune(d.DirectionMarker(m.Dir))
	}
	sb.WriteString(")\n")
}
