/*
Package ndtm simulates non-deterministic multi-tape Turing machines.

A program lists its input on the first line and one transition per following
line. The engine explores every applicable sequence of moves depth-first and
reports, for each branch that reaches a terminal state, whether it accepted
(Y), rejected (N) or halted without a verdict (H), along with the final tapes
and head positions.

# Program Text

	abba
	s; (>); (q0, >, R)
	q0; (a); (ra, _, R)
	...

Each transition is STATE; (READ SYMBOLS); (NEXT STATE, WRITE, DIRECTION, ...),
with one symbol per tape in the read tuple and one write/direction pair per
tape in the relation. '>' marks the start of every tape, '_' is the blank and
directions are L, R and - (stay). Listing several relations for the same state
and read tuple makes the machine non-deterministic.

# Usage

	m, err := ndtm.Load("palindrome.tm")
	if err != nil {
		log.Fatal(err)
	}

	outs, err := m.Run(context.Background(), true)
	if err != nil {
		log.Fatal(err)
	}
	if outs.ContainsAtLeast(domain.Yes) {
		fmt.Println("accepted")
	}

Errors are *domain.MachineError values; match them with errors.Is against
domain.ErrMalformedProgram, domain.ErrUndefinedTransition,
domain.ErrTapeOrigin or domain.ErrUnknownDirection.
*/
package ndtm
