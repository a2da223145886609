package dsl

import (
	"testing"

	"github.com/aretw0/ndtm/internal/compiler"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_MatchesParsedProgram(t *testing.T) {
	table, err := New(2).
		State("s").On(">>").
		Go("q", ">R>R").
		Go("p", ">R>R").
		State("q").On("__").Go("Y", "x-_-").
		State("p").On("__").Go("N", "_-y-").
		Build()
	require.NoError(t, err)

	parsed := testutils.MustParse(t, testutils.TwoTapeFork)
	assert.Equal(t, compiler.FormatTable(parsed.Table), compiler.FormatTable(table))
	assert.Equal(t, 2, table.Tapes())
}

func TestBuilder_KeepsOptionOrder(t *testing.T) {
	table, err := New(0).
		State("g").On("1").Go("g", "1R").Go("g", "0R").
		Build()
	require.NoError(t, err)

	opts, ok := table.Lookup("g", domain.Symbols{'1'})
	require.True(t, ok)
	require.Len(t, opts, 2)
	assert.Equal(t, domain.Symbol('1'), opts[0].Moves[0].Write)
	assert.Equal(t, domain.Symbol('0'), opts[1].Moves[0].Write)
	assert.Equal(t, domain.Right, opts[1].Moves[0].Dir)
}

func TestBuilder_Errors(t *testing.T) {
	tests := map[string]struct {
		build func() (*domain.Table, error)
		kind  domain.ErrorKind
	}{
		"odd moves": {
			build: func() (*domain.Table, error) { return New(1).State("s").On(">").Go("q", ">").Build() },
			kind:  domain.KindMalformedProgram,
		},
		"unknown direction": {
			build: func() (*domain.Table, error) { return New(1).State("s").On(">").Go("q", ">X").Build() },
			kind:  domain.KindUnknownDirection,
		},
		"tape mismatch": {
			build: func() (*domain.Table, error) { return New(2).State("s").On(">").Go("q", ">R").Build() },
			kind:  domain.KindMalformedProgram,
		},
		"empty": {
			build: func() (*domain.Table, error) { return New(1).Build() },
			kind:  domain.KindMalformedProgram,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := tt.build()
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

func TestBuilder_WithDialect(t *testing.T) {
	d := domain.DefaultDialect()
	d.FoldDirections = true

	table, err := New(1).WithDialect(d).
		State("s").On(">").Go("Y", ">r").
		Build()
	require.NoError(t, err)

	opts, ok := table.Lookup("s", domain.Symbols{'>'})
	require.True(t, ok)
	assert.Equal(t, domain.Right, opts[0].Moves[0].Dir)
	assert.True(t, table.Dialect().FoldDirections)
}
