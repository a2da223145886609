package domain

import "strings"

// Symbol is a single tape character.
type Symbol rune

func (s Symbol) String() string { return string(rune(s)) }

// Symbols is an ordered tuple with one symbol per tape.
type Symbols []Symbol

// String renders the tuple as "(a, b, c)".
func (ss Symbols) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, s := range ss {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteRune(rune(s))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Key encodes the tuple as a comparable map key.
func (ss Symbols) Key() string {
	rs := make([]rune, len(ss))
	for i, s := range ss {
		rs[i] = rune(s)
	}
	return string(rs)
}

// CompareSymbol orders symbols with the initial symbol first, the blank
// second and everything else by character value.
func (d Dialect) CompareSymbol(a, b Symbol) int {
	ra, rb := d.symbolRank(a), d.symbolRank(b)
	if ra != rb {
		return ra - rb
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Dialect) symbolRank(s Symbol) int {
	switch s {
	case d.Initial:
		return 0
	case d.Blank:
		return 1
	}
	return 2
}

// CompareSymbols compares tuples position by position; the first differing
// position decides and a shorter prefix sorts first.
func (d Dialect) CompareSymbols(a, b []Symbol) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := d.CompareSymbol(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// CompareStates orders state labels with the initial state first and the
// rest lexicographically.
func (d Dialect) CompareStates(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == d.InitialState:
		return -1
	case b == d.InitialState:
		return 1
	}
	return strings.Compare(a, b)
}
