// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Postgres is a Backend on the vault_blobs table created by the
// database migrations. Expired rows read as absent and are removed by
// PurgeExpired.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgres returns a Backend over an open pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

// Get returns the value of key if it exists and has not expired.
func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM vault_blobs
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`,
		key, p.now(),
	).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get blob: %w", err)
	}
	return val, true, nil
}

// Set upserts key. Creates it if it doesn't exist.
func (p *Postgres) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	now := p.now()
	var expires sql.NullTime
	if ttl > 0 {
		expires = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO vault_blobs (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at,
		              updated_at = EXCLUDED.updated_at`,
		key, value, expires, now,
	)
	if err != nil {
		return fmt.Errorf("set blob: %w", err)
	}
	return nil
}

// Delete removes key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM vault_blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// PurgeExpired deletes rows whose expiry has passed and reports how many.
func (p *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM vault_blobs WHERE expires_at IS NOT NULL AND expires_at <= $1`, p.now())
	if err != nil {
		return 0, fmt.Errorf("purge blobs: %w", err)
	}
	return res.RowsAffected()
}
