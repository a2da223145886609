package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/ndtm/pkg/domain"
)

// FindingKind classifies a static problem in a table.
type FindingKind string

const (
	// MissingInitialState means no transition leaves the initial state.
	MissingInitialState FindingKind = "missing_initial_state"
	// DeadEnd is a non-terminal next state with no transitions; any branch
	// entering it fails with an undefined transition.
	DeadEnd FindingKind = "dead_end"
	// Unreachable is a state no option of the initial state's closure enters.
	Unreachable FindingKind = "unreachable"
)

// Finding is one problem reported by ValidateTable.
type Finding struct {
	Kind  FindingKind `json:"kind"`
	State string      `json:"state"`
	// From is the state whose option targets a dead end.
	From string `json:"from,omitempty"`
}

func (f Finding) String() string {
	switch f.Kind {
	case MissingInitialState:
		return fmt.Sprintf("initial state %q has no transitions", f.State)
	case DeadEnd:
		return fmt.Sprintf("state %q (entered from %q) is not terminal and has no transitions", f.State, f.From)
	case Unreachable:
		return fmt.Sprintf("state %q is unreachable from the initial state", f.State)
	}
	return string(f.Kind) + ": " + f.State
}

// ValidateTable crawls t breadth-first from the initial state.
// Findings are ordered: missing initial state, dead ends in crawl order,
// then unreachable states in table order.
func ValidateTable(t *domain.Table) []Finding {
	d := t.Dialect()
	var findings []Finding

	if !t.HasState(d.InitialState) {
		findings = append(findings, Finding{Kind: MissingInitialState, State: d.InitialState})
	}

	visited := map[string]bool{d.InitialState: true}
	reported := make(map[string]bool)
	queue := []string{d.InitialState}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, entry := range t.Entries(current) {
			for _, opt := range entry.Options {
				next := opt.Next
				if _, terminal := d.Classify(next); terminal {
					continue
				}
				if !t.HasState(next) {
					if !reported[next] {
						reported[next] = true
						findings = append(findings, Finding{Kind: DeadEnd, State: next, From: current})
					}
					continue
				}
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	for _, state := range t.States() {
		if !visited[state] {
			findings = append(findings, Finding{Kind: Unreachable, State: state})
		}
	}
	return findings
}

// Error folds findings into a single error, or nil if there are none.
func Error(findings []Finding) error {
	if len(findings) == 0 {
		return nil
	}
	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = f.String()
	}
	return fmt.Errorf("found %d problems:\n- %s", len(findings), strings.Join(lines, "\n- "))
}
