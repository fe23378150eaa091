// Package cache holds the list query cache shared by the content services.
package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is how long a cached list may be served before it is refetched.
const DefaultTTL = 60 * time.Second

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized query results under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Audience selects which variant of a resource list a key holds.
type Audience string

const (
	Admin  Audience = "admin"
	Public Audience = "public"
)

// Key returns the cache key of one list query, e.g. "content:projects:public".
func Key(resource string, audience Audience) string {
	return "content:" + resource + ":" + string(audience)
}

// Keys returns both keys of a resource type; a mutation invalidates them together.
func Keys(resource string) []string {
	return []string{Key(resource, Admin), Key(resource, Public)}
}
