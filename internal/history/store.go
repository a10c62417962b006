package history

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Get for a missing key.
var ErrNotFound = errors.New("history: key not found")

// Store is a minimal key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendBadger, BackendRedis}

// Options selects and configures a Store.
type Options struct {
	Backend  string // file (default), badger, redis
	Dir      string // data directory for file and badger
	RedisURL string // redis://... for the redis backend
}

// Open returns the Store for opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, errors.New("history: file backend needs a directory")
		}

		return NewFileStore(opts.Dir), nil
	case BackendBadger:
		if opts.Dir == "" {
			return nil, errors.New("history: badger backend needs a directory")
		}

		return NewBadgerStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("history: unknown backend %q", opts.Backend)
	}
}
