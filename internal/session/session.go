// Package session identifies the client vault a request belongs to.
// Shared backends (memory, Valkey, Postgres) keep every client's blobs in
// one place; the vault cookie tells them apart. The cookie backend needs
// no vault id because the blobs travel with the browser.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the name of the vault cookie sent to the browser.
	CookieName = "sp_vault"

	// DefaultTTL matches the one-year lifetime of the stored blobs.
	DefaultTTL = 365 * 24 * time.Hour
)

// Vaults issues and reads vault ids.
type Vaults struct {
	ttl    time.Duration
	secure bool
}

// NewVaults creates a vault issuer. secure marks cookies Secure for TLS
// deployments.
func NewVaults(secure bool) *Vaults {
	return &Vaults{
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Get returns the vault id carried by the request, if it holds a valid one.
func (v *Vaults) Get(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// Ensure returns the request's vault id, issuing a new one and setting the
// cookie when the request has none.
func (v *Vaults) Ensure(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if id, ok := v.Get(r); ok {
		return id
	}

	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(v.ttl.Seconds()),
		Expires:  time.Now().Add(v.ttl),
	})
	return id
}

// Prefix returns the backend key prefix for vault id.
func Prefix(id uuid.UUID) string {
	return "vault:" + id.String() + ":"
}
