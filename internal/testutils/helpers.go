package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ndtm/internal/compiler"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Palindrome is a single-tape program where Y means "not a palindrome".
const Palindrome = `abba
s; (>); (q0, >, R)
q0; (a); (ra, _, R)
q0; (b); (rb, _, R)
q0; (_); (N, _, -)
ra; (a); (ra, a, R)
ra; (b); (ra, b, R)
ra; (_); (ca, _, L)
rb; (a); (rb, a, R)
rb; (b); (rb, b, R)
rb; (_); (cb, _, L)
ca; (a); (back, _, L)
ca; (b); (Y, b, -)
ca; (_); (N, _, -)
cb; (a); (Y, a, -)
cb; (b); (back, _, L)
cb; (_); (N, _, -)
back; (a); (back, a, L)
back; (b); (back, b, L)
back; (_); (q0, _, R)
`

// TwoTapeFork has two alternatives from its initial configuration, each
// ending in a different terminal state on a different tape.
const TwoTapeFork = `
s; (>, >); (q, >, R, >, R)
s; (>, >); (p, >, R, >, R)
q; (_, _); (Y, x, -, _, -)
p; (_, _); (N, _, -, y, -)
`

// Converging forks from the start and merges both branches into the same
// configuration before halting.
const Converging = `
s; (>); (a, >, R)
s; (>); (b, >, R)
a; (_); (m, _, -)
b; (_); (m, _, -)
m; (_); (Y, _, -)
`

// GuessOnes non-deterministically replaces each 1 of the input with 0 or
// keeps it, halting at the end of the input. It branches 2^n times for n ones.
const GuessOnes = `101
s; (>); (g, >, R)
g; (0); (g, 0, R)
g; (1); (g, 1, R)
g; (1); (g, 0, R)
g; (_); (H, _, -)
`

// MustParse parses text with the default dialect and fails the test on error.
func MustParse(t *testing.T, text string) *compiler.Program {
	t.Helper()
	p, err := compiler.NewParser(domain.DefaultDialect()).ParseString(text)
	require.NoError(t, err, "failed to parse test program")
	return p
}

// WriteProgram writes text to a temporary file and returns its path.
func WriteProgram(t *testing.T, name, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644), "failed to write test program")
	return path
}
