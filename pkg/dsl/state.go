package dsl

import "github.com/aretw0/ndtm/pkg/domain"

// StateBuilder provides a fluent API for the rules of one state.
type StateBuilder struct {
	builder *Builder
	state   string
}

// On selects the read tuple, one character per tape.
func (s *StateBuilder) On(read string) *RuleBuilder {
	return &RuleBuilder{state: s, read: read}
}

// RuleBuilder adds options to one (state, read tuple) pair.
type RuleBuilder struct {
	state *StateBuilder
	read  string
}

// Go adds an option moving to next. Moves lists, for each tape, the symbol
// to write followed by its direction marker, e.g. ">R" or "a-_L".
// Calling Go several times on the same rule makes the machine non-deterministic.
func (r *RuleBuilder) Go(next, moves string) *RuleBuilder {
	b := r.state.builder
	b.rules = append(b.rules, rule{
		state: r.state.state,
		read:  r.read,
		next:  next,
		moves: moves,
	})
	return r
}

// On starts another read tuple of the same state.
func (r *RuleBuilder) On(read string) *RuleBuilder {
	return r.state.On(read)
}

// State starts rules for another state.
func (r *RuleBuilder) State(name string) *StateBuilder {
	return r.state.builder.State(name)
}

// Build compiles the whole table.
func (r *RuleBuilder) Build() (*domain.Table, error) {
	return r.state.builder.Build()
}
