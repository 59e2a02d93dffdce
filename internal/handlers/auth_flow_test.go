package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
	"mongolshop/internal/repo"
	"mongolshop/internal/session"
)

// authFixture builds the auth handler group over offline repositories.
// The session backend is unreachable, which only matters for the paths
// that reach session creation.
func authFixture(t *testing.T) *Auth {
	t.Helper()
	tracker := connectivity.New(context.Background(), connectivity.NewMemoryStore())
	tracker.ReportFailure(errors.New("test: forced offline"))
	accessor := database.NewAccessor(
		"mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		"mongolshop_test", tracker)

	users := repo.NewUserRepo(accessor, tracker)
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "", false, session.DefaultTTL)
	return NewAuth(sessions, users)
}

func authRouter(a *Auth) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/auth/login", a.Login)
	r.Post("/api/auth/register", a.Register)
	r.Get("/api/auth/me", a.Me)
	r.Post("/api/auth/2fa/setup", a.TwoFASetup)
	return r
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := authRouter(authFixture(t))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"email":"` + models.SampleAdminEmail + `","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.mn","password":"whatever"}`, http.StatusUnauthorized},
		{"malformed", `{"email":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(tc.body)))
		if rr.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rr.Code, tc.want)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	r := authRouter(authFixture(t))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"email":"new@example.mn","password":"secret123"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Шинэ","email":"not-an-email","password":"secret123"}`, http.StatusUnprocessableEntity},
		{"short password", `{"name":"Шинэ","email":"new@example.mn","password":"123"}`, http.StatusUnprocessableEntity},
		{"taken email", `{"name":"Шинэ","email":"` + models.SampleAdminEmail + `","password":"secret123"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(tc.body)))
		if rr.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rr.Code, tc.want)
		}
	}
}

func TestMeWithoutSession(t *testing.T) {
	r := authRouter(authFixture(t))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/auth/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestTwoFASetupRequiresAdminSession(t *testing.T) {
	r := authRouter(authFixture(t))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/api/auth/2fa/setup", nil))
	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}
