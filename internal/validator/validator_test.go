package validator

import (
	"testing"

	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTable_Clean(t *testing.T) {
	for _, text := range []string{testutils.Palindrome, testutils.TwoTapeFork, testutils.Converging, testutils.GuessOnes} {
		p := testutils.MustParse(t, text)
		findings := ValidateTable(p.Table)
		assert.Empty(t, findings)
		assert.NoError(t, Error(findings))
	}
}

func TestValidateTable_Problems(t *testing.T) {
	p := testutils.MustParse(t, `
s; (>); (q, >, R)
s; (>); (gone, >, R)
q; (_); (Y, _, -)
q; (a); (gone, a, -)
orphan; (_); (N, _, -)
`)

	findings := ValidateTable(p.Table)
	assert.Equal(t, []Finding{
		{Kind: DeadEnd, State: "gone", From: "s"},
		{Kind: Unreachable, State: "orphan"},
	}, findings)

	err := Error(findings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 problems")
	assert.Contains(t, err.Error(), `state "orphan" is unreachable`)
}

func TestValidateTable_MissingInitialState(t *testing.T) {
	p := testutils.MustParse(t, "\nq; (>); (Y, >, -)\n")

	findings := ValidateTable(p.Table)
	assert.Equal(t, []Finding{
		{Kind: MissingInitialState, State: "s"},
		{Kind: Unreachable, State: "q"},
	}, findings)
}
