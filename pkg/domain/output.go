package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Output is the record of one branch that reached a terminal state.
type Output struct {
	Classification Classification `json:"classification"`
	Tapes          []string       `json:"tapes"`
	Heads          []int          `json:"heads"`
}

func (o Output) String() string {
	return fmt.Sprintf("{%s, [%s], %v}", o.Classification, strings.Join(o.Tapes, ", "), o.Heads)
}

func (o Output) equal(p Output) bool {
	return o.Classification == p.Classification &&
		slices.Equal(o.Tapes, p.Tapes) &&
		slices.Equal(o.Heads, p.Heads)
}

// Outputs is the full result of a run, in discovery order.
type Outputs []Output

// ContainsAtLeast reports whether at least one branch ended with c.
func (outs Outputs) ContainsAtLeast(c Classification) bool {
	return slices.ContainsFunc(outs, func(o Output) bool { return o.Classification == c })
}

// Count returns how many branches ended with c.
func (outs Outputs) Count(c Classification) int {
	n := 0
	for _, o := range outs {
		if o.Classification == c {
			n++
		}
	}
	return n
}

// Distinct drops repeated (classification, tapes, heads) triples, keeping the
// first occurrence of each.
func (outs Outputs) Distinct() Outputs {
	out := make(Outputs, 0, len(outs))
	for _, o := range outs {
		if !slices.ContainsFunc(out, o.equal) {
			out = append(out, o)
		}
	}
	return out
}
