package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ndtm/internal/presentation/graph"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid_TwoTapeFork(t *testing.T) {
	table := testutils.MustParse(t, testutils.TwoTapeFork).Table

	want := `graph TD
    q0(("s"))
    q1["q"]
    q2["p"]
    q3(["N"])
    q4(["Y"])
    q0 -- ">,> / > R, > R" --> q1
    q0 -- ">,> / > R, > R" --> q2
    q2 -- "_,_ / _ -, y -" --> q3
    q1 -- "_,_ / x -, _ -" --> q4
`
	assert.Equal(t, want, graph.GenerateMermaid(table, nil))
}

func TestGenerateMermaid_MergesEdges(t *testing.T) {
	table := testutils.MustParse(t, testutils.GuessOnes).Table
	out := graph.GenerateMermaid(table, nil)

	assert.Contains(t, out, `q1 -- "0 / 0 R<br/>1 / 1 R<br/>1 / 0 R" --> q1`)
	assert.Equal(t, 2, strings.Count(out, "--> q1\n"), "the entry edge and one merged self loop")
}

func TestGenerateMermaid_DeadEndAndEscaping(t *testing.T) {
	table := testutils.MustParse(t, "\ns; (>); (a\"b, \", R)\n").Table
	out := graph.GenerateMermaid(table, nil)

	assert.Contains(t, out, `q1{{"a#quot;b"}}`)
	assert.Contains(t, out, `"> / #quot; R"`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	table := testutils.MustParse(t, testutils.Converging).Table
	out := graph.GenerateMermaid(table, &graph.Overlay{
		Visited: []string{"s", "a", "m", "a", "ghost"},
		Halted:  []string{"Y"},
	})

	assert.Contains(t, out, "classDef visited")
	assert.Contains(t, out, "class q0 visited;")
	assert.Equal(t, 1, strings.Count(out, "class q1 visited;"))
	assert.NotContains(t, out, "ghost")
	assert.Contains(t, out, "halted;")
}
