package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"securepass/internal/models"
	"securepass/internal/store"
)

func TestCreatePassword(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, env.API.CreatePassword, http.MethodPost, "/api/passwords",
		`{"label":"  Gmail ","password":"Abcdefgh1!","category":"Personal"}`)
	wantStatus(t, rr, http.StatusCreated)

	var rec models.PasswordRecord
	decode(t, rr, &rec)
	if rec.ID == "" || rec.Label != "Gmail" || rec.Category != "Personal" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Strength != 80 || rec.Length != 10 {
		t.Errorf("derived strength/length: got %d/%d, want 80/10", rec.Strength, rec.Length)
	}
	if rec.Settings != models.DefaultSettings() {
		t.Errorf("settings: %+v", rec.Settings)
	}

	list := env.passwords().List(context.Background())
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Errorf("stored list: %+v", list)
	}
}

func TestCreatePasswordExplicitFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, env.API.CreatePassword, http.MethodPost, "/api/passwords",
		`{"label":"Bank","password":"abc","strength":0,"length":32,"settings":{"includeNumbers":true}}`)
	wantStatus(t, rr, http.StatusCreated)

	var rec models.PasswordRecord
	decode(t, rr, &rec)
	if rec.Strength != 0 || rec.Length != 32 || rec.Settings.IncludeUppercase || !rec.Settings.IncludeNumbers {
		t.Errorf("explicit fields not kept: %+v", rec)
	}
}

func TestCreatePasswordValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing label", `{"password":"x"}`},
		{"missing password", `{"label":"x"}`},
		{"strength too high", `{"label":"x","password":"y","strength":101}`},
		{"negative length", `{"label":"x","password":"y","length":-4}`},
		{"unknown field", `{"label":"x","password":"y","id":"forged"}`},
		{"trailing data", `{"label":"x","password":"y"} {}`},
		{"not json", `label=x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rr := env.do(t, env.API.CreatePassword, http.MethodPost, "/api/passwords", tt.body)
			wantStatus(t, rr, http.StatusBadRequest)
			if env.Memory.Len() != 0 {
				t.Error("rejected request must not write")
			}
			var body map[string]string
			decode(t, rr, &body)
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestListPasswordsQuery(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t,
		models.PasswordDraft{Label: "weak mail", Password: "a", Strength: 10},
		models.PasswordDraft{Label: "Strong Bank", Password: "b", Strength: 90, Category: "Banking"},
		models.PasswordDraft{Label: "fair mail", Password: "c", Strength: 45},
	)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"default order", "/api/passwords", []string{"fair mail", "Strong Bank", "weak mail"}},
		{"search", "/api/passwords?q=MAIL", []string{"fair mail", "weak mail"}},
		{"strength", "/api/passwords?strength=strong", []string{"Strong Bank"}},
		{"category", "/api/passwords?category=Banking", []string{"Strong Bank"}},
		{"uncategorized", "/api/passwords?category=uncategorized", []string{"fair mail", "weak mail"}},
		{"sort strength asc", "/api/passwords?sort=strength&order=asc", []string{"weak mail", "fair mail", "Strong Bank"}},
		{"sort label desc", "/api/passwords?sort=label", []string{"weak mail", "Strong Bank", "fair mail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, env.API.ListPasswords, http.MethodGet, tt.target, "")
			wantStatus(t, rr, http.StatusOK)

			var got []models.PasswordRecord
			decode(t, rr, &got)
			var labels []string
			for _, r := range got {
				labels = append(labels, r.Label)
			}
			if strings.Join(labels, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %v, want %v", labels, tt.want)
			}
		})
	}
}

func TestListPasswordsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, env.API.ListPasswords, http.MethodGet, "/api/passwords", "")
	wantStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body: got %q, want []", got)
	}
}

func TestListPasswordsBadParams(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{
		"/api/passwords?sort=color",
		"/api/passwords?strength=epic",
		"/api/passwords?order=sideways",
	} {
		rr := env.do(t, env.API.ListPasswords, http.MethodGet, target, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", target, rr.Code)
		}
	}
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	recs := env.seed(t, models.PasswordDraft{Label: "old", Password: "pw", Strength: 20, Length: 2})

	rr := env.do(t, env.API.UpdatePassword, http.MethodPatch, "/api/passwords/"+recs[0].ID,
		`{"label":"new","category":"Work"}`, "id", recs[0].ID)
	wantStatus(t, rr, http.StatusNoContent)

	got := env.passwords().Find(context.Background(), recs[0].ID)
	if got.Label != "new" || got.Category != "Work" || got.Password != "pw" || got.Strength != 20 {
		t.Errorf("unexpected record after patch: %+v", got)
	}

	rr = env.do(t, env.API.UpdatePassword, http.MethodPatch, "/api/passwords/missing",
		`{"label":"x"}`, "id", "missing")
	wantStatus(t, rr, http.StatusNoContent)

	rr = env.do(t, env.API.UpdatePassword, http.MethodPatch, "/api/passwords/"+recs[0].ID,
		`{"strength":500}`, "id", recs[0].ID)
	wantStatus(t, rr, http.StatusBadRequest)
}

func TestDeletePassword(t *testing.T) {
	env := newTestEnv(t)
	recs := env.seed(t,
		models.PasswordDraft{Label: "a", Password: "1"},
		models.PasswordDraft{Label: "b", Password: "2"},
	)

	rr := env.do(t, env.API.DeletePassword, http.MethodDelete, "/api/passwords/"+recs[0].ID, "", "id", recs[0].ID)
	wantStatus(t, rr, http.StatusNoContent)

	list := env.passwords().List(context.Background())
	if len(list) != 1 || list[0].ID != recs[1].ID {
		t.Errorf("unexpected list: %+v", list)
	}

	rr = env.do(t, env.API.DeletePassword, http.MethodDelete, "/api/passwords/nope", "", "id", "nope")
	wantStatus(t, rr, http.StatusNoContent)
}

func TestClearPasswords(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, models.PasswordDraft{Label: "a", Password: "1"})

	rr := env.do(t, env.API.ClearPasswords, http.MethodDelete, "/api/passwords", "")
	wantStatus(t, rr, http.StatusNoContent)

	if n := len(env.passwords().List(context.Background())); n != 0 {
		t.Errorf("expected empty vault, got %d", n)
	}
}

func TestBulkCategory(t *testing.T) {
	env := newTestEnv(t)
	recs := env.seed(t,
		models.PasswordDraft{Label: "a", Password: "1"},
		models.PasswordDraft{Label: "b", Password: "2"},
	)

	rr := env.do(t, env.API.BulkCategory, http.MethodPost, "/api/passwords/bulk-category",
		`{"ids":["`+recs[1].ID+`"],"category":"Shopping"}`)
	wantStatus(t, rr, http.StatusNoContent)

	ps := env.passwords()
	if got := ps.Find(context.Background(), recs[1].ID); got.Category != "Shopping" {
		t.Errorf("b category: %q", got.Category)
	}
	if got := ps.Find(context.Background(), recs[0].ID); got.Category != "" {
		t.Errorf("a category: %q", got.Category)
	}

	rr = env.do(t, env.API.BulkCategory, http.MethodPost, "/api/passwords/bulk-category", `{"ids":[],"category":"x"}`)
	wantStatus(t, rr, http.StatusBadRequest)
}

func TestSharedBackendIsolatesVaults(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, models.PasswordDraft{Label: "mine", Password: "1"})

	rr := env.doAs(t, uuid.New(), env.API.ListPasswords, http.MethodGet, "/api/passwords", "")
	wantStatus(t, rr, http.StatusOK)

	var got []models.PasswordRecord
	decode(t, rr, &got)
	if len(got) != 0 {
		t.Errorf("another vault saw %d records", len(got))
	}
}

func TestSharedBackendWithoutVault(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.API.ListPasswords(rr, httptest.NewRequest(http.MethodGet, "/api/passwords", nil))
	wantStatus(t, rr, http.StatusInternalServerError)
}

func TestCookieBackendRoundTrip(t *testing.T) {
	api := NewAPI(CookieBackend(false), nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/passwords", strings.NewReader(`{"label":"Gmail","password":"pw"}`))
	api.CreatePassword(rr, req)
	wantStatus(t, rr, http.StatusCreated)

	var jar []*http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == store.PasswordsKey {
			jar = append(jar, c)
			if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
				t.Errorf("cookie attributes: %+v", c)
			}
		}
	}
	if len(jar) != 1 {
		t.Fatalf("expected one %s cookie, got %d", store.PasswordsKey, len(jar))
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/passwords", nil)
	req.AddCookie(&http.Cookie{Name: jar[0].Name, Value: jar[0].Value})
	api.ListPasswords(rr, req)
	wantStatus(t, rr, http.StatusOK)

	var got []models.PasswordRecord
	decode(t, rr, &got)
	if len(got) != 1 || got[0].Label != "Gmail" {
		t.Errorf("unexpected list: %+v", got)
	}
}
