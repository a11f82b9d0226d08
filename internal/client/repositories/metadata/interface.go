// Package metadata is a small key-value store inside the client database.
// It holds per-list sync cursors and other session state that has no
// dedicated table.
package metadata

import (
	"context"
)

// Repository is the metadata key-value surface. Get returns a nil value for
// an absent key, not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
