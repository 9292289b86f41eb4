// Package scoped guards a cache behind an availability check. Outside an
// available context reads miss and writes are dropped; nothing is surfaced
// to the caller as an error.
package scoped

import (
	"context"
	"fmt"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/rs/zerolog/log"
)

type Store struct {
	inner     ports.KeyValueStore
	available func() bool
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(inner ports.KeyValueStore, available func() bool) *Store {
	if available == nil {
		available = func() bool { return true }
	}
	return &Store{inner: inner, available: available}
}

// Always returns an availability check with a fixed answer.
func Always(available bool) func() bool {
	return func() bool { return available }
}

func (s *Store) Get(ctx context.Context, key string) (value string, err error) {
	if !s.usable() {
		return "", fmt.Errorf("cache unavailable for %q: %w", key, domain.ErrKeyNotFound)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("key", key).Msg("cache get panicked")
			value, err = "", fmt.Errorf("cache get %q: %w", key, domain.ErrKeyNotFound)
		}
	}()

	return s.inner.Get(ctx, key)
}

func (s *Store) Put(ctx context.Context, key string, value string) (err error) {
	if !s.usable() {
		log.Debug().Str("key", key).Msg("cache unavailable, dropping write")
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("key", key).Msg("cache put panicked")
			err = fmt.Errorf("cache put %q: panic: %v", key, r)
		}
	}()

	return s.inner.Put(ctx, key, value)
}

func (s *Store) Delete(ctx context.Context, key string) (err error) {
	if !s.usable() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("key", key).Msg("cache delete panicked")
			err = fmt.Errorf("cache delete %q: panic: %v", key, r)
		}
	}()

	return s.inner.Delete(ctx, key)
}

func (s *Store) usable() bool {
	return s.inner != nil && s.available()
}
