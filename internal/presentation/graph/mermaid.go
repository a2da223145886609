package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Overlay contains run data to highlight on the diagram.
type Overlay struct {
	// Visited lists non-terminal states a run took a transition from.
	Visited []string
	// Halted lists terminal states reached by at least one branch.
	Halted []string
}

// GenerateMermaid produces a Mermaid flowchart of the transition table.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Terminal states: ([Stadium])
// - Next states with no transitions: {{Hexagon}}
// - Default: [Rectangle]
// Options sharing the same source and target are merged into one edge.
func GenerateMermaid(t *domain.Table, overlay *Overlay) string {
	d := t.Dialect()
	ids := make(map[string]string)
	var order []string
	id := func(state string) string {
		if v, ok := ids[state]; ok {
			return v
		}
		v := fmt.Sprintf("q%d", len(order))
		ids[state] = v
		order = append(order, state)
		return v
	}

	type edge struct{ from, to string }
	var edges []edge
	labels := make(map[edge][]string)

	for _, state := range t.States() {
		id(state)
		for _, entry := range t.Entries(state) {
			for _, opt := range entry.Options {
				id(opt.Next)
				e := edge{state, opt.Next}
				if _, ok := labels[e]; !ok {
					edges = append(edges, e)
				}
				labels[e] = append(labels[e], edgeLabel(d, entry.Read, opt))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range order {
		opener, closer := "[", "]"
		_, terminal := d.Classify(state)
		switch {
		case state == d.InitialState:
			opener, closer = "((", "))"
		case terminal:
			opener, closer = "([", "])"
		case !t.HasState(state):
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[state], opener, escape(state), closer)
	}

	for _, e := range edges {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[e.from], strings.Join(labels[e], "<br/>"), ids[e.to])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef halted fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		writeClass(&sb, ids, overlay.Visited, "visited")
		writeClass(&sb, ids, overlay.Halted, "halted")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids map[string]string, states []string, class string) {
	seen := make(map[string]bool)
	for _, state := range states {
		v, ok := ids[state]
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		fmt.Fprintf(sb, "    class %s %s;\n", v, class)
	}
}

// edgeLabel renders "r1,r2 / w1 d1, w2 d2" for one option.
func edgeLabel(d domain.Dialect, read domain.Symbols, opt domain.Option) string {
	reads := make([]string, len(read))
	for i, s := range read {
		reads[i] = s.String()
	}
	moves := make([]string, len(opt.Moves))
	for i, m := range opt.Moves {
		moves[i] = m.Write.String() + " " + string(d.DirectionMarker(m.Dir))
	}
	return escape(strings.Join(reads, ",")) + " / " + escape(strings.Join(moves, ", "))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
