package domain

// Move is the per-tape half of a transition: what to write under the head and
// where to move it afterwards.
type Move struct {
	Write Symbol    `json:"write"`
	Dir   Direction `json:"dir"`
}

// Option is one alternative the machine may take from a (state, read tuple)
// pair. Several options for the same pair encode non-determinism.
type Option struct {
	Next  string `json:"next"`
	Moves []Move `json:"moves"`
}

// WriteSymbols flattens the moves into write/direction markers, in tape order,
// as they appear in program text.
func (o Option) WriteSymbols(d Dialect) []Symbol {
	out := make([]Symbol, 0, 2*len(o.Moves))
	for _, m := range o.Moves {
		out = append(out, m.Write, Symbol(d.DirectionMarker(m.Dir)))
	}
	return out
}

func (o Option) clone() Option {
	moves := make([]Move, len(o.Moves))
	copy(moves, o.Moves)
	return Option{Next: o.Next, Moves: moves}
}
