package dsl

import (
	"fmt"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Builder manages the table construction.
// Rules are recorded in call order and only validated by Build.
type Builder struct {
	dialect domain.Dialect
	tapes   int
	rules   []rule
}

type rule struct {
	state string
	read  string
	next  string
	moves string
}

// New creates a table builder for a machine with the given number of tapes.
// A tape count of 0 lets the first rule decide.
func New(tapes int) *Builder {
	return &Builder{
		dialect: domain.DefaultDialect(),
		tapes:   tapes,
	}
}

// WithDialect changes the reserved markers used to read rules.
func (b *Builder) WithDialect(d domain.Dialect) *Builder {
	b.dialect = d
	return b
}

// State starts rules for a state.
func (b *Builder) State(name string) *StateBuilder {
	return &StateBuilder{builder: b, state: name}
}

// Build compiles the recorded rules into a table.
func (b *Builder) Build() (*domain.Table, error) {
	tb := domain.NewTableBuilder(b.dialect, b.tapes)
	for i, r := range b.rules {
		opt, err := b.option(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		if err := tb.Add(r.state, symbols(r.read), opt); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}

	table, err := tb.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return table, nil
}

func (b *Builder) option(r rule) (domain.Option, error) {
	runes := []rune(r.moves)
	if len(runes)%2 != 0 {
		return domain.Option{}, &domain.MachineError{
			Kind:   domain.KindMalformedProgram,
			State:  r.state,
			Detail: fmt.Sprintf("moves %q must be write/direction pairs", r.moves),
		}
	}

	opt := domain.Option{Next: r.next, Moves: make([]domain.Move, 0, len(runes)/2)}
	for i := 0; i < len(runes); i += 2 {
		dir, ok := b.dialect.ParseDirection(runes[i+1])
		if !ok {
			return domain.Option{}, &domain.MachineError{
				Kind:   domain.KindUnknownDirection,
				State:  r.state,
				Tape:   i / 2,
				Marker: runes[i+1],
			}
		}
		opt.Moves = append(opt.Moves, domain.Move{Write: domain.Symbol(runes[i]), Dir: dir})
	}
	return opt, nil
}

func symbols(s string) domain.Symbols {
	out := make(domain.Symbols, 0, len(s))
	for _, r := range s {
		out = append(out, domain.Symbol(r))
	}
	return out
}
