package kv

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string // file path for sqlite and bolt
	Redis   RedisOptions
}

// Open builds the Store named by opts.Backend. An empty backend means sqlite.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendBolt:
		return OpenBolt(opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, opts.Redis)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
