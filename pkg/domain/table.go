package domain

import (
	"fmt"
	"slices"
)

// Table is an immutable transition table. Build one with a TableBuilder.
type Table struct {
	dialect Dialect
	tapes   int
	// state -> read key -> options in insertion order
	entries map[string]map[string][]Option
	// read key -> decoded tuple, shared across states
	reads map[string]Symbols
}

// Entry is one (read tuple, options) pair of a state.
type Entry struct {
	Read    Symbols
	Options []Option
}

// Dialect returns the markers the table was built with.
func (t *Table) Dialect() Dialect { return t.dialect }

// Tapes returns the fixed tape count.
func (t *Table) Tapes() int { return t.tapes }

// Lookup returns the options for (state, read). The returned slice is shared
// with the table and must not be modified.
func (t *Table) Lookup(state string, read Symbols) ([]Option, bool) {
	byRead, ok := t.entries[state]
	if !ok {
		return nil, false
	}
	opts, ok := byRead[read.Key()]
	return opts, ok
}

// HasState reports whether any transition leaves state.
func (t *Table) HasState(state string) bool {
	_, ok := t.entries[state]
	return ok
}

// States returns every state with outgoing transitions, initial state first
// and the rest in lexicographic order.
func (t *Table) States() []string {
	states := make([]string, 0, len(t.entries))
	for s := range t.entries {
		states = append(states, s)
	}
	slices.SortFunc(states, t.dialect.CompareStates)
	return states
}

// Entries returns the transitions leaving state with read tuples in
// canonical symbol order. Options keep insertion order.
func (t *Table) Entries(state string) []Entry {
	byRead := t.entries[state]
	out := make([]Entry, 0, len(byRead))
	for key, opts := range byRead {
		out = append(out, Entry{Read: t.reads[key], Options: opts})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return t.dialect.CompareSymbols(a.Read, b.Read)
	})
	return out
}

// Len returns the number of options across the whole table.
func (t *Table) Len() int {
	n := 0
	for _, byRead := range t.entries {
		for _, opts := range byRead {
			n += len(opts)
		}
	}
	return n
}

// TableBuilder accumulates transitions and checks arity as they arrive.
type TableBuilder struct {
	dialect Dialect
	tapes   int
	entries map[string]map[string][]Option
	reads   map[string]Symbols
}

// NewTableBuilder starts a table for the given tape count. A tapes value of
// zero lets the first added transition fix it.
func NewTableBuilder(d Dialect, tapes int) *TableBuilder {
	return &TableBuilder{
		dialect: d,
		tapes:   tapes,
		entries: make(map[string]map[string][]Option),
		reads:   make(map[string]Symbols),
	}
}

// Tapes returns the tape count fixed so far (0 if none).
func (b *TableBuilder) Tapes() int { return b.tapes }

// Add appends opt to the options of (state, read).
func (b *TableBuilder) Add(state string, read Symbols, opt Option) error {
	if state == "" {
		return &MachineError{Kind: KindMalformedProgram, Detail: "empty state label"}
	}
	if opt.Next == "" {
		return &MachineError{Kind: KindMalformedProgram, State: state, Detail: "empty next state label"}
	}
	if len(read) == 0 {
		return &MachineError{Kind: KindMalformedProgram, State: state, Detail: "every Turing machine must have at least 1 tape"}
	}
	if b.tapes == 0 {
		b.tapes = len(read)
	}
	if len(read) != b.tapes {
		return &MachineError{
			Kind:   KindMalformedProgram,
			State:  state,
			Read:   read,
			Detail: fmt.Sprintf("the number of tapes must be the same in all the instructions (want %d, got %d)", b.tapes, len(read)),
		}
	}
	if len(opt.Moves) != b.tapes {
		return &MachineError{
			Kind:   KindMalformedProgram,
			State:  state,
			Read:   read,
			Detail: fmt.Sprintf("option for %s has %d moves, want %d", opt.Next, len(opt.Moves), b.tapes),
		}
	}
	for i, m := range opt.Moves {
		if m.Dir != Left && m.Dir != Right && m.Dir != Stay {
			return &MachineError{Kind: KindUnknownDirection, State: state, Tape: i, Marker: rune(m.Dir)}
		}
	}

	key := read.Key()
	if _, ok := b.reads[key]; !ok {
		b.reads[key] = slices.Clone(read)
	}
	byRead, ok := b.entries[state]
	if !ok {
		byRead = make(map[string][]Option)
		b.entries[state] = byRead
	}
	byRead[key] = append(byRead[key], opt.clone())
	return nil
}

// Build freezes the table. The builder must not be reused afterwards.
func (b *TableBuilder) Build() (*Table, error) {
	if err := b.dialect.Validate(); err != nil {
		return nil, &MachineError{Kind: KindMalformedProgram, Detail: err.Error()}
	}
	if b.tapes < 1 || len(b.entries) == 0 {
		return nil, &MachineError{Kind: KindMalformedProgram, Detail: "every Turing machine must have at least 1 tape"}
	}
	t := &Table{
		dialect: b.dialect,
		tapes:   b.tapes,
		entries: b.entries,
		reads:   b.reads,
	}
	b.entries, b.reads = nil, nil
	return t, nil
}
