// Package storage puts and removes the binary files referenced by content rows.
package storage

import (
	"context"
	"io"
	"time"
)

// Object is one stored file as returned by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is a bucket of files addressed by key.
type ObjectStore interface {
	// Put stores body under key. It never overwrites: an existing key yields
	// an errs.ErrObjectExists error.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
}
