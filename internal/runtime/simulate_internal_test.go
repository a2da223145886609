package runtime

import (
	"testing"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *domain.Table {
	t.Helper()
	b := domain.NewTableBuilder(domain.DefaultDialect(), 1)
	require.NoError(t, b.Add("s", domain.Symbols{'>'}, domain.Option{Next: "Y", Moves: []domain.Move{{Write: '>', Dir: domain.Stay}}}))
	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func TestApply_UnknownDirection(t *testing.T) {
	r := &run{engine: NewEngine(testTable(t)), collector: NewCollector()}

	tk := task{
		state: "s",
		tapes: [][]domain.Symbol{{'>'}},
		heads: []int{0},
		opt:   &domain.Option{Next: "q", Moves: []domain.Move{{Write: 'a', Dir: domain.Direction(42)}}},
	}
	err := r.apply(&tk)
	assert.ErrorIs(t, err, domain.ErrUnknownDirection)
}

func TestApply_ClonesUnlessOwned(t *testing.T) {
	r := &run{engine: NewEngine(testTable(t)), collector: NewCollector()}
	parentTapes := [][]domain.Symbol{{'>', 'a'}}
	parentHeads := []int{1}
	opt := &domain.Option{Next: "q", Moves: []domain.Move{{Write: 'b', Dir: domain.Right}}}

	shared := task{state: "s", tapes: parentTapes, heads: parentHeads, opt: opt}
	require.NoError(t, r.apply(&shared))
	assert.Equal(t, []domain.Symbol{'>', 'a'}, parentTapes[0], "non-owning child must not touch the parent")
	assert.Equal(t, []int{1}, parentHeads)
	assert.Equal(t, []domain.Symbol{'>', 'b', '_'}, shared.tapes[0])
	assert.Equal(t, []int{2}, shared.heads)
	assert.Equal(t, "q", shared.state)
	assert.Nil(t, shared.opt)

	owned := task{state: "s", tapes: parentTapes, heads: parentHeads, opt: opt, own: true}
	require.NoError(t, r.apply(&owned))
	assert.Equal(t, []int{2}, parentHeads, "owning child reuses the parent's heads")
}

func TestInitialTask(t *testing.T) {
	b := domain.NewTableBuilder(domain.DefaultDialect(), 3)
	moves := []domain.Move{{Write: '>', Dir: domain.Stay}, {Write: '>', Dir: domain.Stay}, {Write: '>', Dir: domain.Stay}}
	require.NoError(t, b.Add("s", domain.Symbols{'>', '>', '>'}, domain.Option{Next: "H", Moves: moves}))
	table, err := b.Build()
	require.NoError(t, err)

	tk := NewEngine(table).initialTask("xy")
	assert.Equal(t, "s", tk.state)
	assert.Equal(t, [][]domain.Symbol{{'>', 'x', 'y'}, {'>'}, {'>'}}, tk.tapes)
	assert.Equal(t, []int{0, 0, 0}, tk.heads)
}
