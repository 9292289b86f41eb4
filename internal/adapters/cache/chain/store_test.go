package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/walletdash/internal/adapters/cache/memory"
	passstore "github.com/bnema/walletdash/internal/adapters/cache/pass"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	portmocks "github.com/bnema/walletdash/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryMisses(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", domain.ErrKeyNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenBothBackendsMiss(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", domain.ErrKeyNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("", domain.ErrKeyNotFound).Once()

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "token", "abc").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, "token", "abc").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "token", "abc"))
}

func TestStorePutEvictsFallbackCopyWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "token", "abc").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, "token").Return(errors.New("read-only")).Once()

	require.NoError(t, store.Put(context.Background(), "token", "abc"))
}

func TestStoreNeverServesTokenWrittenDuringOutage(t *testing.T) {
	t.Parallel()

	primary := memory.NewStore()
	fallback := memory.NewStore()
	flaky := &unavailableOnce{KeyValueStore: primary}
	store := NewStore(flaky, fallback)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "token", "old"))
	old, err := fallback.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "old", old)

	require.NoError(t, store.Put(ctx, "token", "new"))
	_, err = fallback.Get(ctx, "token")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, primary.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStorePutReturnsContextErrorWithoutFallback(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "token", "abc").Return(context.DeadlineExceeded).Once()

	require.ErrorIs(t, store.Put(context.Background(), "token", "abc"), context.DeadlineExceeded)
}

func TestPassFirstStoreNamesBackendsInErrors(t *testing.T) {
	t.Parallel()

	store, err := NewPassFirstWithFileFallback("walletdash", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "pass", store.preferred.name)
	assert.Equal(t, "file", store.fallback.name)

	err = store.bothFailed("get", errors.New("gpg locked"), errors.New("disk full"))
	assert.EqualError(t, err, "pass backend get failed: gpg locked; file backend get failed: disk full")
}

// unavailableOnce fails the first Put like an unreachable pass store.
type unavailableOnce struct {
	ports.KeyValueStore
	failed bool
}

func (u *unavailableOnce) Put(ctx context.Context, key string, value string) error {
	if !u.failed {
		u.failed = true
		return passstore.ErrUnavailable
	}
	return u.KeyValueStore.Put(ctx, key, value)
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "token"))
}

func TestStoreDeleteToleratesUnavailablePrimary(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "token").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "token"))
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockKeyValueStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockKeyValueStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
