// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the API handler
// tests. Every test runs against an in-memory backend and a pinned vault.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"securepass/internal/archive"
	"securepass/internal/middleware"
	"securepass/internal/models"
	"securepass/internal/persist"
	"securepass/internal/session"
	"securepass/internal/store"
)

// fakeArchiver records what would have been uploaded.
type fakeArchiver struct {
	vault, filename, contentType string
	data                         []byte
	err                          error
}

func (f *fakeArchiver) Store(_ context.Context, vault, filename, contentType string, data []byte) (archive.Receipt, error) {
	f.vault, f.filename, f.contentType, f.data = vault, filename, contentType, data
	if f.err != nil {
		return archive.Receipt{}, f.err
	}
	return archive.Receipt{
		Key:       archive.ObjectKey(vault, filename),
		URL:       "https://s3.test/" + filename + "?sig=1",
		ExpiresAt: time.Date(2026, 5, 1, 12, 15, 0, 0, time.UTC),
	}, nil
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	API     *API
	Memory  *persist.Memory
	Vaults  *session.Vaults
	VaultID uuid.UUID
	now     time.Time
}

// newTestEnv creates an API over a shared memory backend whose clock
// advances one second per read.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Memory:  persist.NewMemory(),
		Vaults:  session.NewVaults(false),
		VaultID: uuid.New(),
		now:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	env.API = NewAPI(SharedBackend(env.Memory), nil)
	env.API.SetClock(func() time.Time {
		env.now = env.now.Add(time.Second)
		return env.now
	}, time.UTC)
	return env
}

// do runs h for one request bound to the env's vault. params are chi URL
// parameter key/value pairs.
func (e *testEnv) do(t *testing.T, h http.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, e.VaultID, h, method, target, body, params...)
}

func (e *testEnv) doAs(t *testing.T, vault uuid.UUID, h http.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: vault.String()})
	req = withChiURLParams(req, params...)

	rr := httptest.NewRecorder()
	middleware.LoadVault(e.Vaults)(h).ServeHTTP(rr, req)
	return rr
}

// passwords opens the env vault's password store directly.
func (e *testEnv) passwords() *store.PasswordStore {
	return store.NewPasswordStore(persist.WithPrefix(e.Memory, session.Prefix(e.VaultID)))
}

// seed stores records through the store, bypassing the handlers.
func (e *testEnv) seed(t *testing.T, drafts ...models.PasswordDraft) []models.PasswordRecord {
	t.Helper()
	ps := e.passwords()
	var out []models.PasswordRecord
	for _, d := range drafts {
		rec, err := ps.Save(context.Background(), d)
		if err != nil {
			t.Fatalf("seed %q: %v", d.Label, err)
		}
		out = append(out, rec)
	}
	return out
}

// withChiURLParams adds chi URL parameters to a request.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	if len(kv) == 0 {
		return r
	}
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

// wantStatus fails the test when the response code differs.
func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}
