package compiler_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ndtm/internal/compiler"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Ordering(t *testing.T) {
	// Deliberately shuffled input.
	text := `xy
z; (b, a); (Y, b, -, a, -)
s; (a, a); (q, a, R, a, R)
q; (>, _); (N, >, -, _, -)
s; (_, >); (q, _, R, >, R)
s; (>, >); (q, >, R, >, L)
s; (>, >); (p, >, R, >, R)
s; (>, >); (q, >, R, >, -)
s; (>, >); (q, _, R, >, R)
a; (c, c); (H, c, -, c, -)
`
	got := compiler.Format(testutils.MustParse(t, text))

	want := `xy
s; (>, >); (p, >, R, >, R)
s; (>, >); (q, >, R, >, -)
s; (>, >); (q, >, R, >, L)
s; (>, >); (q, _, R, >, R)
s; (_, >); (q, _, R, >, R)
s; (a, a); (q, a, R, a, R)
a; (c, c); (H, c, -, c, -)
q; (>, _); (N, >, -, _, -)
z; (b, a); (Y, b, -, a, -)
`
	assert.Equal(t, want, got)
}

func TestFormat_Idempotent(t *testing.T) {
	programs := map[string]string{
		"palindrome": testutils.Palindrome,
		"fork":       testutils.TwoTapeFork,
		"converging": testutils.Converging,
		"guess":      testutils.GuessOnes,
	}

	for name, text := range programs {
		t.Run(name, func(t *testing.T) {
			first := compiler.Format(testutils.MustParse(t, text))
			second := compiler.Format(testutils.MustParse(t, first))
			assert.Equal(t, first, second)
		})
	}
}

func TestFormat_PreservesSemantics(t *testing.T) {
	orig := testutils.MustParse(t, testutils.GuessOnes)
	again := testutils.MustParse(t, compiler.Format(orig))

	assert.Equal(t, orig.Input, again.Input)
	assert.Equal(t, orig.Table.Tapes(), again.Table.Tapes())
	assert.Equal(t, orig.Table.Len(), again.Table.Len())

	for _, state := range orig.Table.States() {
		for _, e := range orig.Table.Entries(state) {
			opts, ok := again.Table.Lookup(state, e.Read)
			require.True(t, ok, "missing %s %s", state, e.Read)
			assert.ElementsMatch(t, e.Options, opts)
		}
	}
}

func TestFormat_UsesDialectMarkers(t *testing.T) {
	d := domain.DefaultDialect()
	d.FoldDirections = true
	p, err := compiler.NewParser(d).ParseString("\ns; (>); (H, >, r)\n")
	require.NoError(t, err)

	got := compiler.FormatTable(p.Table)
	assert.Equal(t, "s; (>); (H, >, R)\n", got)
	assert.True(t, strings.HasPrefix(compiler.Format(p), "\n"))
}
