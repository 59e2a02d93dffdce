package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"mongolshop/internal/models"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test keys.
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestDataValidate(t *testing.T) {
	valid := Data{UserID: "user1", Email: "a@b.mn", Role: models.RoleUser}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	cases := []struct {
		name string
		data Data
	}{
		{"missing user id", Data{Email: "a@b.mn", Role: models.RoleUser}},
		{"missing email", Data{UserID: "user1", Role: models.RoleUser}},
		{"unknown role", Data{UserID: "user1", Email: "a@b.mn", Role: "superadmin"}},
		{"empty role", Data{UserID: "user1", Email: "a@b.mn"}},
	}
	for _, tc := range cases {
		if err := tc.data.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestIsAdminRequiresTwoFA(t *testing.T) {
	d := Data{UserID: "u", Email: "a@b.mn", Role: models.RoleAdmin}
	if d.IsAdmin() {
		t.Error("admin with pending 2FA must not count as admin")
	}
	d.TwoFADone = true
	if !d.IsAdmin() {
		t.Error("admin with completed 2FA should count as admin")
	}
	d.Role = models.RoleUser
	if d.IsAdmin() {
		t.Error("regular user must not count as admin")
	}
}

func TestConfiguredCookieName(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "msid", false, 0)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := &Data{UserID: "user1", Email: "named@session.local", Name: "N", Role: models.RoleUser}
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "msid" {
			cookie = c
		}
		if c.Name == CookieName {
			t.Errorf("default cookie name used despite configured name")
		}
	}
	if cookie == nil {
		t.Fatal("expected msid cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	got, err := store.Get(ctx, req)
	if err != nil || got == nil {
		t.Fatalf("Get = (%v, %v), want session", got, err)
	}
	if got.Email != "named@session.local" {
		t.Errorf("Email = %q", got.Email)
	}
}

func TestSessionCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID:    "user1",
		Email:     "test@session.local",
		Name:      "Test User",
		Role:      models.RoleAdmin,
		TwoFADone: false,
	}

	sessionID, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}

	// Verify cookie was set.
	resp := w.Result()
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if sessionCookie.Secure {
		t.Error("expected Secure=false for non-secure store")
	}

	// Get the session back.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)

	retrieved, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session data, got nil")
	}
	if retrieved.Email != "test@session.local" {
		t.Errorf("email: got %q, want %q", retrieved.Email, "test@session.local")
	}
	if retrieved.UserID != "user1" {
		t.Errorf("userID: got %s, want user1", retrieved.UserID)
	}
	if retrieved.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want admin", retrieved.Role)
	}
}

func TestSessionCreateRejectsIncompletePayload(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, &Data{Email: "no-id@session.local"}); err == nil {
		t.Error("expected error creating session without a user id")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	req := httptest.NewRequest("GET", "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (no cookie): %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without session cookie")
	}
}

func TestSessionGetExpired(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonexistent-session-id"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (expired): %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired/nonexistent session")
	}
}

func TestSessionGetFailsClosedOnMalformedPayload(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)
	ctx := context.Background()

	for name, payload := range map[string]string{
		"garbage":      "not-json{{",
		"missing role": `{"user_id":"u1","email":"a@b.mn"}`,
		"bogus role":   `{"user_id":"u1","email":"a@b.mn","role":"root"}`,
	} {
		client.Set(ctx, keyPrefix+"tampered", payload, 0)

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})

		data, err := store.Get(ctx, req)
		if err != nil {
			t.Fatalf("%s: Get: %v", name, err)
		}
		if data != nil {
			t.Errorf("%s: tampered session yielded an identity: %+v", name, data)
		}
		// the bad payload must also have been discarded
		if exists, _ := client.Exists(ctx, keyPrefix+"tampered").Result(); exists != 0 {
			t.Errorf("%s: tampered session key was not deleted", name)
		}
	}
}

func TestSessionUpdate(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID: "user2",
		Email:  "update@session.local",
		Name:   "Update User",
		Role:   models.RoleAdmin,
	}

	store.Create(ctx, w, data)
	cookie := w.Result().Cookies()[0]

	// Update: set 2FA done.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	data.TwoFADone = true
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	retrieved, _ := store.Get(ctx, req)
	if retrieved == nil {
		t.Fatal("expected session after update")
	}
	if !retrieved.TwoFADone {
		t.Error("expected TwoFADone=true after update")
	}
}

func TestSessionUpdateNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	req := httptest.NewRequest("GET", "/", nil)
	err := store.Update(context.Background(), req, &Data{UserID: "u", Email: "a@b.mn", Role: models.RoleUser})
	if err == nil {
		t.Error("expected error when updating without cookie")
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID: "user3",
		Email:  "destroy@session.local",
		Name:   "Destroy User",
		Role:   models.RoleAdmin,
	}

	store.Create(ctx, w, data)
	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// Verify cookie is expired.
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Error("expected MaxAge=-1 on destroyed cookie")
		}
	}

	// Verify session is gone from Valkey.
	retrieved, _ := store.Get(ctx, req)
	if retrieved != nil {
		t.Error("expected nil after destroy")
	}
}

func TestSessionDestroyNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", false, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Errorf("Destroy (no cookie): %v", err)
	}
}

func TestSessionSecureCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, "", true, 0) // secure = true

	w := httptest.NewRecorder()
	store.Create(context.Background(), w, &Data{
		UserID: "user4", Email: "secure@test.local",
		Name: "Secure", Role: models.RoleAdmin,
	})

	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			if !c.Secure {
				t.Error("expected Secure=true for secure store")
			}
			return
		}
	}
	t.Error("session cookie not found")
}
