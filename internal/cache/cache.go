// Package cache memoizes layout results so repeat requests for the
// same graph and config skip the pipeline entirely. Grounded on
// matzehuels-stacktower's pkg/cache: the same Get/Set/Delete/Close
// interface shape, but backed by Redis
// (redis/go-redis/v9, present in that project's go.mod but never wired
// to any code there) instead of the filesystem, since a service
// process benefits from a shared cache the way a CLI's local disk
// cache doesn't need to be.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
)

// DefaultTTL is how long a layout result stays cached when the caller
// doesn't ask for something else.
const DefaultTTL = time.Hour

// Cache stores and retrieves laid-out graphs by key.
type Cache interface {
	Get(ctx context.Context, key string) (*core.OutputGraph, bool)
	Set(ctx context.Context, key string, out *core.OutputGraph)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives a deterministic cache key from a graph and the config it
// would be laid out under, so a change to either invalidates the entry.
func Key(in *core.InputGraph, cfg config.Config) string {
	data, _ := json.Marshal(struct {
		Graph *core.InputGraph `json:"graph"`
		Cfg   config.Config    `json:"cfg"`
	}{in, cfg})
	sum := sha256.Sum256(data)
	return "layout:" + hex.EncodeToString(sum[:])
}

// NullCache never stores anything; every Get is a miss. Used when no
// Redis address is configured.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) (*core.OutputGraph, bool) { return nil, false }
func (NullCache) Set(context.Context, string, *core.OutputGraph)        {}
func (NullCache) Delete(context.Context, string) error                  { return nil }
func (NullCache) Close() error                                          { return nil }

// RedisCache is a Cache backed by a Redis server.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and returns a Cache with the given TTL.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*core.OutputGraph, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out core.OutputGraph
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *RedisCache) Set(ctx context.Context, key string, out *core.OutputGraph) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache = NullCache{}
	_ Cache = (*RedisCache)(nil)
)
