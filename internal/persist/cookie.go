// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// MaxCookieSize is the per-cookie budget (name plus value) browsers honour.
const MaxCookieSize = 4096

// CookieJar is a Backend over the cookies of a single HTTP exchange. Reads
// come from the request; writes become Set-Cookie headers on the response
// and are also remembered, so a later read in the same request sees them.
//
// Cookies are Path=/, SameSite=Strict and HttpOnly. A CookieJar must not
// outlive its request.
type CookieJar struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	now    func() time.Time

	mu      sync.Mutex
	written map[string]*string // nil value marks a deleted key
}

// NewCookieJar wraps one request/response pair. Pass secure=true behind TLS.
func NewCookieJar(w http.ResponseWriter, r *http.Request, secure bool) *CookieJar {
	return &CookieJar{
		w:       w,
		r:       r,
		secure:  secure,
		now:     time.Now,
		written: make(map[string]*string),
	}
}

// Get returns the cookie value for key.
func (j *CookieJar) Get(_ context.Context, key string) (string, bool, error) {
	j.mu.Lock()
	v, seen := j.written[key]
	j.mu.Unlock()
	if seen {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	cookie, err := j.r.Cookie(key)
	if err != nil {
		return "", false, nil // No cookie = absent (not an error)
	}
	return cookie.Value, true, nil
}

// Set writes key as a cookie expiring after ttl. Values that would not fit
// in a browser cookie are refused and nothing is written.
func (j *CookieJar) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if len(key)+len(value) > MaxCookieSize {
		return fmt.Errorf("cookie %s: %d bytes: %w", key, len(key)+len(value), ErrValueTooLarge)
	}

	c := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if ttl > 0 {
		c.Expires = j.now().Add(ttl).UTC()
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(j.w, c)

	j.mu.Lock()
	j.written[key] = &value
	j.mu.Unlock()
	return nil
}

// Delete expires the cookie immediately.
func (j *CookieJar) Delete(_ context.Context, key string) error {
	http.SetCookie(j.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	})

	j.mu.Lock()
	j.written[key] = nil
	j.mu.Unlock()
	return nil
}
