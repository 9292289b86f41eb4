package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/walletdash/internal/adapters/cache/file"
	passstore "github.com/bnema/walletdash/internal/adapters/cache/pass"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/rs/zerolog/log"
)

// Store layers a preferred cache over a fallback one. Writes land in the
// preferred tier whenever it is reachable and only then evict the fallback
// copy, so a session written during an outage of the preferred tier can never
// be read back once that tier holds a newer value or has forgotten it.
type Store struct {
	preferred tier
	fallback  tier
}

type tier struct {
	name  string
	store ports.KeyValueStore
}

var _ ports.KeyValueStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary cache store is nil")
	errNilFallbackStore = errors.New("fallback cache store is nil")
)

func NewStore(primary ports.KeyValueStore, fallback ports.KeyValueStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.KeyValueStore, fallback ports.KeyValueStore) (*Store, error) {
	return newNamedStore(tier{name: "primary", store: primary}, tier{name: "fallback", store: fallback})
}

// NewPassFirstWithFileFallback keeps entries in pass under namespace and
// falls back to one file per key under fileRoot.
func NewPassFirstWithFileFallback(namespace string, fileRoot string) (*Store, error) {
	return newNamedStore(
		tier{name: "pass", store: passstore.NewStore(namespace)},
		tier{name: "file", store: filestore.NewStore(fileRoot)},
	)
}

func newNamedStore(preferred tier, fallback tier) (*Store, error) {
	if preferred.store == nil {
		return nil, errNilPrimaryStore
	}
	if fallback.store == nil {
		return nil, errNilFallbackStore
	}

	return &Store{preferred: preferred, fallback: fallback}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.preferred.store.Put(ctx, key, value)
	if err == nil {
		s.evictFallback(ctx, key)
		return nil
	}
	if isContextError(err) {
		return err
	}

	if fallbackErr := s.fallback.store.Put(ctx, key, value); fallbackErr != nil {
		return s.bothFailed("put", err, fallbackErr)
	}

	log.Warn().Err(err).Str("key", key).Str("backend", s.fallback.name).Msg("cache write degraded to fallback")
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.preferred.store.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextError(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.store.Get(ctx, key)
	switch {
	case fallbackErr == nil:
		return value, nil
	case errors.Is(err, domain.ErrKeyNotFound) && errors.Is(fallbackErr, domain.ErrKeyNotFound):
		return "", fmt.Errorf("cache entry %q: %w", key, domain.ErrKeyNotFound)
	default:
		return "", s.bothFailed("get", err, fallbackErr)
	}
}

// Delete clears the key from both tiers. An unreachable pass store is not an
// error as long as the fallback copy is gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.preferred.store.Delete(ctx, key)
	if err != nil && isContextError(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	fallbackErr := s.fallback.store.Delete(ctx, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("%s backend delete failed: %w", s.fallback.name, fallbackErr)
	case fallbackErr == nil:
		return fmt.Errorf("%s backend delete failed: %w", s.preferred.name, err)
	default:
		return s.bothFailed("delete", err, fallbackErr)
	}
}

func (s *Store) evictFallback(ctx context.Context, key string) {
	if err := s.fallback.store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		log.Debug().Err(err).Str("key", key).Str("backend", s.fallback.name).Msg("evict stale fallback entry")
	}
}

func (s *Store) bothFailed(op string, preferredErr error, fallbackErr error) error {
	return fmt.Errorf("%s backend %s failed: %w; %s backend %s failed: %w",
		s.preferred.name, op, preferredErr, s.fallback.name, op, fallbackErr)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
