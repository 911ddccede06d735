package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraincognita07/doze/internal/config"
	"github.com/terraincognita07/doze/internal/services"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "a", "3"))

	value, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3", value)

	require.NoError(t, store.RemoveMany(ctx, []string{"a", "missing"}))
	assert.Equal(t, []string{"b"}, store.Keys())
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(context.Background(), "shared", "x")
			_, _, _ = store.Get(context.Background(), "shared")
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"shared"}, store.Keys())
}

func TestOpenBackends(t *testing.T) {
	server := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "memory", cfg: config.Config{StorageBackend: config.BackendMemory}},
		{name: "sqlite", cfg: config.Config{StorageBackend: config.BackendSQLite, DBPath: filepath.Join(t.TempDir(), "doze.db")}},
		{name: "redis", cfg: config.Config{StorageBackend: config.BackendRedis, RedisAddr: server.Addr(), RedisPrefix: "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := Open(context.Background(), tt.cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeStore() })

			keys := services.DefaultCollectionKeys
			require.NoError(t, store.Set(context.Background(), keys.Caffeine, "[]"))
			value, found, err := store.Get(context.Background(), keys.Caffeine)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "[]", value)

			require.NoError(t, store.RemoveMany(context.Background(), keys.All()))
			_, found, err = store.Get(context.Background(), keys.Caffeine)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	_, _, err := Open(context.Background(), config.Config{StorageBackend: "etcd"}, nil)
	assert.Error(t, err)
}
