package domain

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Default reserved markers.
const (
	DefaultBlank        Symbol = '_'
	DefaultInitial      Symbol = '>'
	DefaultLeft         rune   = 'L'
	DefaultRight        rune   = 'R'
	DefaultStay         rune   = '-'
	DefaultAccept       rune   = 'Y'
	DefaultReject       rune   = 'N'
	DefaultHalt         rune   = 'H'
	DefaultInitialState        = "s"
)

// Dialect holds every reserved character a program is written against.
// A Table carries the dialect it was built with, so parsing, simulation and
// printing always agree on the markers.
type Dialect struct {
	Blank   Symbol `yaml:"blank" mapstructure:"blank"`
	Initial Symbol `yaml:"initial" mapstructure:"initial"`

	Left  rune `yaml:"left" mapstructure:"left"`
	Right rune `yaml:"right" mapstructure:"right"`
	Stay  rune `yaml:"stay" mapstructure:"stay"`

	Accept rune `yaml:"accept" mapstructure:"accept"`
	Reject rune `yaml:"reject" mapstructure:"reject"`
	Halt   rune `yaml:"halt" mapstructure:"halt"`

	InitialState string `yaml:"initial_state" mapstructure:"initial_state"`

	// FoldDirections makes direction markers case-insensitive ('r' == 'R').
	FoldDirections bool `yaml:"fold_directions" mapstructure:"fold_directions"`
}

// DefaultDialect returns the markers used by the reference machine model.
func DefaultDialect() Dialect {
	return Dialect{
		Blank:        DefaultBlank,
		Initial:      DefaultInitial,
		Left:         DefaultLeft,
		Right:        DefaultRight,
		Stay:         DefaultStay,
		Accept:       DefaultAccept,
		Reject:       DefaultReject,
		Halt:         DefaultHalt,
		InitialState: DefaultInitialState,
	}
}

// Validate reports missing or clashing markers.
func (d Dialect) Validate() error {
	if d.InitialState == "" {
		return fmt.Errorf("dialect: initial state must not be empty")
	}
	if d.Blank == 0 || d.Initial == 0 {
		return fmt.Errorf("dialect: blank and initial symbols must be set")
	}
	if d.Blank == d.Initial {
		return fmt.Errorf("dialect: blank and initial symbols must differ (both %q)", rune(d.Blank))
	}

	dirs := map[rune]string{}
	for name, r := range map[string]rune{"left": d.Left, "right": d.Right, "stay": d.Stay} {
		if r == 0 {
			return fmt.Errorf("dialect: %s direction marker must be set", name)
		}
		key := r
		if d.FoldDirections {
			key = unicode.ToUpper(r)
		}
		if other, ok := dirs[key]; ok {
			return fmt.Errorf("dialect: %s and %s directions share marker %q", other, name, r)
		}
		dirs[key] = name
	}

	terms := map[rune]string{}
	for name, r := range map[string]rune{"accept": d.Accept, "reject": d.Reject, "halt": d.Halt} {
		if r == 0 {
			return fmt.Errorf("dialect: %s marker must be set", name)
		}
		if other, ok := terms[r]; ok {
			return fmt.Errorf("dialect: %s and %s share marker %q", other, name, r)
		}
		terms[r] = name
	}

	first, _ := utf8.DecodeRuneInString(d.InitialState)
	if name, ok := terms[first]; ok {
		return fmt.Errorf("dialect: initial state %q starts with the %s marker", d.InitialState, name)
	}
	return nil
}

// Classify reports the terminal classification of a state label.
// A label is terminal when its first character is one of the accept, reject
// or halt markers.
func (d Dialect) Classify(state string) (Classification, bool) {
	if state == "" {
		return 0, false
	}
	first, _ := utf8.DecodeRuneInString(state)
	switch first {
	case d.Accept:
		return Yes, true
	case d.Reject:
		return No, true
	case d.Halt:
		return Halt, true
	}
	return 0, false
}

// ParseDirection maps a marker to a Direction.
func (d Dialect) ParseDirection(r rune) (Direction, bool) {
	match := func(marker rune) bool {
		if d.FoldDirections {
			return unicode.ToUpper(r) == unicode.ToUpper(marker)
		}
		return r == marker
	}
	switch {
	case match(d.Left):
		return Left, true
	case match(d.Right):
		return Right, true
	case match(d.Stay):
		return Stay, true
	}
	return 0, false
}

// DirectionMarker returns the canonical marker for dir.
func (d Dialect) DirectionMarker(dir Direction) rune {
	switch dir {
	case Left:
		return d.Left
	case Right:
		return d.Right
	case Stay:
		return d.Stay
	}
	return '?'
}
