// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist is the persistence adapter underneath the password and
// category stores. A Backend is a tiny expiring key/value port; a
// Collection binds one key of a backend to a JSON array of records.
//
// Every Collection call reads or writes the whole blob. Two clients that
// share a vault therefore race with last-writer-wins semantics: the second
// full snapshot silently replaces the first. There is no versioning.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrValueTooLarge is returned by backends with a hard size cap.
var ErrValueTooLarge = errors.New("persist: value too large")

// Backend is a client-scoped key/value medium with expiry attached at write
// time. Get reports ok=false for absent or expired keys.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Collection stores a JSON array of T under a single backend key.
type Collection[T any] struct {
	backend Backend
	key     string
	limit   int

	// Now is the clock used to compute expiry. Defaults to time.Now.
	Now func() time.Time
}

// NewCollection binds key on backend. A positive limit truncates saved
// arrays to their first limit elements; zero leaves them unbounded.
func NewCollection[T any](backend Backend, key string, limit int) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		key:     key,
		limit:   limit,
		Now:     time.Now,
	}
}

// Key returns the backend key this collection is bound to.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the collection. present is false only when the key has never
// been written (or has expired). Read and decode failures are logged and
// reported as an empty, present collection so callers never overwrite a
// blob they could not read.
func (c *Collection[T]) Load(ctx context.Context) (items []T, present bool) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		slog.Warn("collection read failed", "key", c.key, "error", err)
		return nil, true
	}
	if !ok {
		return nil, false
	}

	decoded, err := DecodeComponent(raw)
	if err != nil {
		slog.Warn("collection decode failed", "key", c.key, "error", err)
		return nil, true
	}

	if err := json.Unmarshal([]byte(decoded), &items); err != nil {
		slog.Warn("collection parse failed", "key", c.key, "error", err)
		return nil, true
	}
	return items, true
}

// Save replaces the collection with items, truncated to the limit, and
// sets the expiry one calendar year from now.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if c.limit > 0 && len(items) > c.limit {
		items = items[:c.limit]
	}
	if items == nil {
		items = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		slog.Error("collection encode failed", "key", c.key, "error", err)
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if err := c.backend.Set(ctx, c.key, EncodeComponent(string(payload)), c.ttl()); err != nil {
		slog.Error("collection write failed", "key", c.key, "error", err)
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// Clear removes the collection key entirely.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.backend.Delete(ctx, c.key); err != nil {
		slog.Error("collection clear failed", "key", c.key, "error", err)
		return fmt.Errorf("clear %s: %w", c.key, err)
	}
	return nil
}

// ttl is the distance to the same instant one year from now.
func (c *Collection[T]) ttl() time.Duration {
	now := c.Now()
	return now.AddDate(1, 0, 0).Sub(now)
}
