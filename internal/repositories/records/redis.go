package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jailbird:"

// ErrNotFound is returned when a key is absent from a community
var ErrNotFound = errors.New("record not found")

// Config holds configuration for the Redis record store
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Collection names the data kind, e.g. "quarantine"
	Collection string

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// community is the in-memory copy of one guild's slice of a collection. Once
// hydrated it is authoritative for the rest of the process lifetime.
type community struct {
	mu       sync.RWMutex
	hydrated bool
	entries  map[string][]byte
	deleted  map[string]struct{}
}

// redisStore implements Store with one Redis hash per community and a set
// indexing the communities of the collection
type redisStore struct {
	client      *redis.Client
	collection  string
	logger      *slog.Logger
	communities *xsync.MapOf[string, *community]
}

// NewRedis creates a new Redis-backed record store
func NewRedis(cfg *Config) (*redisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Collection == "" {
		return nil, errors.New("collection cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &redisStore{
		client:      cfg.RedisClient,
		collection:  cfg.Collection,
		logger:      logger.With("component", "records", "collection", cfg.Collection),
		communities: xsync.NewMapOf[string, *community](),
	}, nil
}

func (r *redisStore) hashKey(communityID string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, r.collection, communityID)
}

func (r *redisStore) indexKey() string {
	return fmt.Sprintf("%s%s:communities", keyPrefix, r.collection)
}

// load returns the hydrated in-memory community, reading Redis on first use.
// A failed read leaves the community unhydrated so the next access retries,
// while whatever was written in memory meanwhile keeps being served.
func (r *redisStore) load(ctx context.Context, communityID string) *community {
	c, _ := r.communities.LoadOrCompute(communityID, func() *community {
		return &community{
			entries: make(map[string][]byte),
			deleted: make(map[string]struct{}),
		}
	})

	c.mu.RLock()
	hydrated := c.hydrated
	c.mu.RUnlock()
	if hydrated {
		return c
	}

	stored, err := r.client.HGetAll(ctx, r.hashKey(communityID)).Result()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrated {
		return c
	}
	if err != nil {
		r.logger.Error("failed to hydrate community", "community", communityID, "err", err)
		persistFailures.WithLabelValues(r.collection, "hydrate").Inc()
		return c
	}
	for key, value := range stored {
		if _, gone := c.deleted[key]; gone {
			continue
		}
		if _, ok := c.entries[key]; ok {
			continue
		}
		c.entries[key] = []byte(value)
	}
	c.hydrated = true
	hydrations.WithLabelValues(r.collection).Inc()
	return c
}

// Get retrieves a value from the in-memory copy
func (r *redisStore) Get(ctx context.Context, communityID, key string) ([]byte, error) {
	if communityID == "" || key == "" {
		return nil, errors.New("community and key cannot be empty")
	}

	c := r.load(ctx, communityID)
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores the value in memory, then writes it through to Redis
func (r *redisStore) Put(ctx context.Context, communityID, key string, value []byte) error {
	if communityID == "" || key == "" {
		return errors.New("community and key cannot be empty")
	}

	c := r.load(ctx, communityID)
	c.mu.Lock()
	c.entries[key] = append([]byte(nil), value...)
	delete(c.deleted, key)
	c.mu.Unlock()

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, r.hashKey(communityID), key, value)
	pipe.SAdd(ctx, r.indexKey(), communityID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("failed to persist record", "community", communityID, "key", key, "err", err)
		persistFailures.WithLabelValues(r.collection, "put").Inc()
	}

	return nil
}

// Delete removes the value from memory, then from Redis
func (r *redisStore) Delete(ctx context.Context, communityID, key string) error {
	if communityID == "" || key == "" {
		return errors.New("community and key cannot be empty")
	}

	c := r.load(ctx, communityID)
	c.mu.Lock()
	delete(c.entries, key)
	c.deleted[key] = struct{}{}
	c.mu.Unlock()

	if err := r.client.HDel(ctx, r.hashKey(communityID), key).Err(); err != nil {
		r.logger.Error("failed to persist record deletion", "community", communityID, "key", key, "err", err)
		persistFailures.WithLabelValues(r.collection, "delete").Inc()
	}

	return nil
}

// List returns a copy of every entry of the community
func (r *redisStore) List(ctx context.Context, communityID string) (map[string][]byte, error) {
	if communityID == "" {
		return nil, errors.New("community cannot be empty")
	}

	c := r.load(ctx, communityID)
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]byte, len(c.entries))
	for key, value := range c.entries {
		out[key] = append([]byte(nil), value...)
	}
	return out, nil
}

// Communities returns the union of communities indexed in Redis and those
// held in memory
func (r *redisStore) Communities(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		r.logger.Error("failed to list communities", "err", err)
		persistFailures.WithLabelValues(r.collection, "communities").Inc()
	}
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	r.communities.Range(func(id string, c *community) bool {
		c.mu.RLock()
		if len(c.entries) > 0 {
			seen[id] = struct{}{}
		}
		c.mu.RUnlock()
		return true
	})

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
