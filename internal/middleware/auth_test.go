package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mongolshop/internal/models"
	"mongolshop/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// withSession injects session data into the request context the way
// LoadSession would.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, data))
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/admin/stores", nil)

	RequireAuth(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	r := withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID: "user1", Email: "a@b.mn", Role: models.RoleUser,
	})

	RequireAuth(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequire2FABlocksPendingSecondFactor(t *testing.T) {
	w := httptest.NewRecorder()
	r := withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID: "admin1", Email: "admin@b.mn", Role: models.RoleAdmin, TwoFADone: false,
	})

	Require2FA(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name string
		data *session.Data
		want int
	}{
		{"anonymous", nil, http.StatusForbidden},
		{"regular user", &session.Data{UserID: "u", Email: "u@b.mn", Role: models.RoleUser}, http.StatusForbidden},
		{"editor", &session.Data{UserID: "e", Email: "e@b.mn", Role: models.RoleEditor, TwoFADone: true}, http.StatusForbidden},
		{"admin pending 2fa", &session.Data{UserID: "a", Email: "a@b.mn", Role: models.RoleAdmin}, http.StatusForbidden},
		{"admin", &session.Data{UserID: "a", Email: "a@b.mn", Role: models.RoleAdmin, TwoFADone: true}, http.StatusOK},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		if tc.data != nil {
			r = withSession(r, tc.data)
		}

		RequireAdmin(okHandler()).ServeHTTP(w, r)

		if w.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("expected nil session from empty context")
	}
}
