package records

import (
	"context"
)

// Store is durable keyed storage scoped per community (guild). Values are
// opaque encoded records; typed repositories decode them.
type Store interface {
	// Get retrieves a value, ErrNotFound when absent
	Get(ctx context.Context, community, key string) ([]byte, error)

	// Put stores a value and persists it before returning
	Put(ctx context.Context, community, key string, value []byte) error

	// Delete removes a value and persists the removal before returning
	Delete(ctx context.Context, community, key string) error

	// List returns every key and value stored for a community
	List(ctx context.Context, community string) (map[string][]byte, error)

	// Communities returns every community that has stored values
	Communities(ctx context.Context) ([]string, error)
}
