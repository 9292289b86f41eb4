package ports

import "context"

// KeyValueStore is the persistent client cache. Get returns
// domain.ErrKeyNotFound for absent keys and Delete is idempotent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
