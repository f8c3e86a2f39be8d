// Package kv provides the string key-value persistence primitive the library
// collections are stored in, with interchangeable backends.
package kv

import (
	"context"
	"errors"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a durable string map.
// Get reports ok=false when the key has never been set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// SetAll writes values through SetMany when the store supports it, falling
// back to one Set per key.
func SetAll(ctx context.Context, s Store, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if b, ok := s.(Batcher); ok {
		return b.SetMany(ctx, values)
	}
	var errs []error
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
