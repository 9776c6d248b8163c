// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the in-memory design store and a stub generator.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mockupstudio/internal/auth"
	"mockupstudio/internal/designs"
	"mockupstudio/internal/designs/designstest"
	"mockupstudio/internal/middleware"
	"mockupstudio/internal/models"
)

// testUserHeader carries the caller's subject in tests in place of a
// verified bearer token.
const testUserHeader = "X-Test-User"

// testEnv holds the dependencies of one handler test.
type testEnv struct {
	store     *designstest.MemoryStore
	gen       *designstest.StubGenerator
	limiter   *designstest.StubLimiter
	publisher *designstest.MemoryPublisher
	router    chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     designstest.NewMemoryStore(),
		gen:       &designstest.StubGenerator{},
		limiter:   &designstest.StubLimiter{},
		publisher: &designstest.MemoryPublisher{},
	}
	svc := designs.NewService(env.store, env.gen, designs.Config{
		GenerationTimeout: 2 * time.Second,
		Limiter:           env.limiter,
		Publisher:         env.publisher,
	})
	h := NewDesigns(svc)

	r := chi.NewRouter()
	r.Use(fakeAuth)
	r.Post("/api/designs/generate", h.Generate)
	r.Get("/api/designs/all", h.List)
	r.Get("/api/designs/{id}", h.Get)
	r.Delete("/api/designs/{id}", h.Delete)
	r.Post("/api/designs/{id}/screens", h.AddScreen)
	r.Patch("/api/designs/{id}/theme", h.SetTheme)
	r.Patch("/api/designs/{id}/project-name", h.RenameProject)
	r.Post("/api/designs/{id}/export", h.Export)
	r.Post("/api/users/sync", SyncUser)
	r.Get("/api/dashboard", Dashboard)
	r.Get("/api/themes", Themes)
	env.router = r
	return env
}

// fakeAuth stores the X-Test-User subject the way Authenticate would.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sub := r.Header.Get(testUserHeader); sub != "" {
			user := &models.User{ID: uuid.New(), ExternalID: sub, Role: models.RoleUser}
			r = r.WithContext(middleware.WithIdentity(r.Context(), auth.Identity{Subject: sub}, user))
		}
		next.ServeHTTP(w, r)
	})
}

// do sends a request as user and returns the recorded response.
func (env *testEnv) do(t *testing.T, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// generate creates a design for user through the API.
func (env *testEnv) generate(t *testing.T, user, body string) models.Design {
	t.Helper()
	rr := env.do(t, http.MethodPost, "/api/designs/generate", user, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("generate: status %d, body %s", rr.Code, rr.Body.String())
	}
	return decode[models.Design](t, rr)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body %s)", v, err, rr.Body.String())
	}
	return v
}

// assertError checks the status and the code of the error envelope.
func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Errorf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	body := decode[errorBody](t, rr)
	if body.Code != code {
		t.Errorf("code: got %q, want %q", body.Code, code)
	}
	if body.Error == "" {
		t.Error("error message should not be empty")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}
