package domain

import (
	"errors"
	"fmt"
)

// ErrProgramNotFound is returned when a program name cannot be found in a store.
var ErrProgramNotFound = errors.New("program not found")

// ErrorKind tags the cause of a MachineError.
type ErrorKind int

const (
	// KindMalformedProgram is a structural violation in program text or
	// table construction. Never raised during simulation.
	KindMalformedProgram ErrorKind = iota + 1
	// KindUndefinedTransition means a reached (state, read tuple) has no entry.
	KindUndefinedTransition
	// KindTapeOrigin means a head tried to move left from index 0.
	KindTapeOrigin
	// KindUnknownDirection means a move used a marker outside the dialect.
	KindUnknownDirection
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedProgram:
		return "malformed program"
	case KindUndefinedTransition:
		return "undefined transition"
	case KindTapeOrigin:
		return "tape origin violation"
	case KindUnknownDirection:
		return "unknown direction"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. Every *MachineError matches the sentinel of its kind.
var (
	ErrMalformedProgram    = &MachineError{Kind: KindMalformedProgram}
	ErrUndefinedTransition = &MachineError{Kind: KindUndefinedTransition}
	ErrTapeOrigin          = &MachineError{Kind: KindTapeOrigin}
	ErrUnknownDirection    = &MachineError{Kind: KindUnknownDirection}
)

// MachineError is the single error type surfaced by parsing and simulation.
// Fields not relevant to the kind are left zero.
type MachineError struct {
	Kind ErrorKind

	// State is the state the machine was in (simulation) or the line's state (parsing).
	State string
	// Read is the symbol tuple under the heads.
	Read Symbols
	// Tape is the index of the offending tape for origin and direction errors.
	Tape int
	// Marker is the unrecognized direction marker.
	Marker rune

	// Line and LineNo locate parse errors in the program text.
	Line   string
	LineNo int

	// Detail is a free-form explanation.
	Detail string
}

func (e *MachineError) Error() string {
	switch e.Kind {
	case KindMalformedProgram:
		if e.Line != "" {
			return fmt.Sprintf("malformed program: %s (line %d: %q)", e.Detail, e.LineNo, e.Line)
		}
		return "malformed program: " + e.Detail
	case KindUndefinedTransition:
		return fmt.Sprintf("undefined transition from state %q with configuration %s", e.State, e.Read)
	case KindTapeOrigin:
		return fmt.Sprintf("tape origin violation: state %q moved head %d left of position 0", e.State, e.Tape)
	case KindUnknownDirection:
		msg := fmt.Sprintf("unknown direction marker %q on tape %d", e.Marker, e.Tape)
		if e.State != "" {
			msg += fmt.Sprintf(" in state %q", e.State)
		}
		if e.Line != "" {
			msg += fmt.Sprintf(" (line %d: %q)", e.LineNo, e.Line)
		}
		return msg
	}
	return e.Kind.String()
}

// Is matches any MachineError of the same kind.
func (e *MachineError) Is(target error) bool {
	t, ok := target.(*MachineError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of a MachineError found in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var me *MachineError
	if errors.As(err, &me) {
		return me.Kind
	}
	return 0
}
