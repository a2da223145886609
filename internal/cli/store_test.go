package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/ndtm/internal/config"
	"github.com/aretw0/ndtm/internal/logging"
	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/aretw0/ndtm/pkg/adapters/file"
	"github.com/aretw0/ndtm/pkg/adapters/memory"
	"github.com/aretw0/ndtm/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	store, closeFn, err := OpenStore(context.Background(), config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &memory.Store{}, store)
}

func TestOpenStore_File(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Dir = t.TempDir()

	store, closeFn, err := OpenStore(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.IsType(t, &file.Store{}, store)
	require.NoError(t, store.Save(context.Background(), "x", "text"))
	assert.FileExists(t, filepath.Join(cfg.Store.Dir, "x.tm"))
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.Store.Dir = t.TempDir()

	store, closeFn, err := OpenStore(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &redis.Store{}, store)

	require.NoError(t, store.Save(context.Background(), "x", "text"))
	assert.True(t, mr.Exists("ndtm:program:x"))
}

func TestOpenStore_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = addr

	_, _, err := OpenStore(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fork.tm"), []byte(testutils.TwoTapeFork), 0644))

	svc := service.New(memory.NewStore())
	n, err := Seed(context.Background(), svc, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	names, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fork"}, names)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.tm"), []byte("\ns; (>\n"), 0644))
	_, err = Seed(context.Background(), svc, dir)
	assert.Error(t, err)
}
