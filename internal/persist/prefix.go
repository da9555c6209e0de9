package persist

import (
	"context"
	"time"
)

type prefixed struct {
	backend Backend
	prefix  string
}

// WithPrefix scopes a shared backend so that every key is stored under
// prefix. The server uses it to give each client vault its own keyspace.
func WithPrefix(b Backend, prefix string) Backend {
	return &prefixed{backend: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.backend.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return p.backend.Set(ctx, p.prefix+key, value, ttl)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.backend.Delete(ctx, p.prefix+key)
}
