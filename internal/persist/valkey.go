// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// valkeyKeyPrefix namespaces vault keys in Valkey to avoid collisions.
const valkeyKeyPrefix = "securepass:"

// Valkey is a Backend on a Valkey (Redis-compatible) server. Expiry is
// delegated to the server via SET ... EX.
type Valkey struct {
	client *redis.Client
}

// NewValkey wraps a connected client.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

// Get retrieves key. Returns ok=false on miss.
func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, valkeyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("valkey get: %w", err)
	}
	return val, true, nil
}

// Set stores key with the given ttl (0 = no expiry).
func (v *Valkey) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := v.client.Set(ctx, valkeyKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

// Delete removes key.
func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, valkeyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del: %w", err)
	}
	return nil
}
