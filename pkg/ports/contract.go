package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgramStoreContract runs a suite of tests to verify that a ProgramStore implementation
// adheres to the defined interface contract.
func RunProgramStoreContract(t *testing.T, store ProgramStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")
	text := "ab\ns; (>); (Y, >, -)\n"

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, text), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, text, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		updated := "ba\ns; (>); (N, >, -)\n"
		require.NoError(t, store.Save(ctx, name, updated))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, updated, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, text))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound, "Load after Delete should return ErrProgramNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing program should succeed")
	})

	t.Run("List", func(t *testing.T) {
		b := name + "-b"
		a := name + "-a"
		require.NoError(t, store.Save(ctx, b, text))
		require.NoError(t, store.Save(ctx, a, text))
		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Subset(t, names, []string{a, b})
		assert.IsNonDecreasing(t, names)
	})
}
