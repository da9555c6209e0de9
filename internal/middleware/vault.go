// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"securepass/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const vaultKey contextKey = "vault"

// LoadVault binds every request to a client vault, issuing the vault
// cookie on first contact. Handlers read the id with VaultFromCtx.
func LoadVault(vaults *session.Vaults) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := vaults.Ensure(w, r)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), vaultKey, id)))
		})
	}
}

// VaultFromCtx returns the vault id bound by LoadVault.
func VaultFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(vaultKey).(uuid.UUID)
	return id, ok
}
