package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	storagePath := filepath.Join(t.TempDir(), "storage.toml")
	config := viper.New()
	config.Set(StoragePathKey, storagePath)

	store, err := NewStore(config)
	require.NoError(t, err)
	return store, storagePath
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "token", "abc"))
	require.NoError(t, store.Put(ctx, "user", `{"id":"1","firstName":"John"}`))

	token, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	user, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","firstName":"John"}`, user)
}

func TestStoreGetMissingKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDeleteRemovesOnlyThatEntry(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "token", "abc"))
	require.NoError(t, store.Put(ctx, "user", "{}"))
	require.NoError(t, store.Delete(ctx, "token"))
	require.NoError(t, store.Delete(ctx, "token"))

	_, err := store.Get(ctx, "token")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	user, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "{}", user)
}

func TestStoreWritesVersionedDocumentWithPrivatePermissions(t *testing.T) {
	t.Parallel()

	store, storagePath := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "token", "abc"))

	data, err := os.ReadFile(storagePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Regexp(t, `token = ['"]abc['"]`, string(data))

	info, err := os.Stat(storagePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(storageFileMode), info.Mode().Perm())
}

func TestStoreRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	store, storagePath := newTestStore(t)
	require.NoError(t, os.WriteFile(storagePath, []byte(strings.Join([]string{
		"version = 2",
		"",
		"[entries]",
		"token = \"abc\"",
	}, "\n")), 0o600))

	_, err := store.Get(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported storage schema version 2")
}

func TestStoreConcurrentWritersShareLock(t *testing.T) {
	t.Parallel()

	storagePath := filepath.Join(t.TempDir(), "storage.toml")
	config := viper.New()
	config.Set(StoragePathKey, storagePath)

	first, err := NewStore(config)
	require.NoError(t, err)
	second, err := NewStore(config)
	require.NoError(t, err)

	var wg sync.WaitGroup
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, key := range keys {
		store := first
		if i%2 == 1 {
			store = second
		}
		wg.Add(1)
		go func(store *Store, key string) {
			defer wg.Done()
			assert.NoError(t, store.Put(context.Background(), key, key+"-value"))
		}(store, key)
	}
	wg.Wait()

	for _, key := range keys {
		value, err := first.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, key+"-value", value)
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	err := store.Put(context.Background(), "  ", "value")
	require.Error(t, err)
	assert.ErrorContains(t, err, "storage key is empty")
}
