package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Local is an in-process cache. Entries expire after the ttl given to
// NewLocal; the per-call expiration passed to Set is ignored.
type Local struct {
	lru *expirable.LRU[string, []byte]
}

func NewLocal(size int, ttl time.Duration) *Local {
	return &Local{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := l.lru.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (l *Local) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	l.lru.Add(key, value)
	return nil
}

func (l *Local) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		l.lru.Remove(key)
	}
	return nil
}
