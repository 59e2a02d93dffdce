// Package session provides Valkey-backed HTTP session management.
// Sessions are identified by a secure cookie and stored as JSON in Valkey
// with automatic TTL expiry. Stored payloads are validated on every read
// and discarded when malformed, so a corrupted or tampered session can
// never yield an authenticated identity.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"mongolshop/internal/models"
)

const (
	// CookieName is the default name of the session cookie.
	CookieName = "mongolshop_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Valkey. It contains the
// authenticated user's identity and 2FA completion status.
type Data struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	TwoFADone bool        `json:"two_fa_done"`
	CreatedAt time.Time   `json:"created_at"`
}

// Validate checks that a stored payload carries a complete identity.
// A payload missing its user ID or carrying an unknown role is rejected.
func (d *Data) Validate() error {
	if d.UserID == "" {
		return fmt.Errorf("session payload: missing user id")
	}
	if d.Email == "" {
		return fmt.Errorf("session payload: missing email")
	}
	switch d.Role {
	case models.RoleAdmin, models.RoleUser, models.RoleEditor:
	default:
		return fmt.Errorf("session payload: unknown role %q", d.Role)
	}
	return nil
}

// IsAdmin reports whether the session belongs to a fully authenticated
// admin. Admins with pending 2FA are not admins yet.
func (d *Data) IsAdmin() bool {
	return d.Role == models.RoleAdmin && d.TwoFADone
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	name   string
	secure bool
	ttl    time.Duration
}

// NewStore creates a session store backed by the given Valkey client.
// name is the session cookie name, defaulting to CookieName when empty;
// secure controls the cookie's Secure flag; set it behind TLS.
func NewStore(client *redis.Client, name string, secure bool, ttl time.Duration) *Store {
	if name == "" {
		name = CookieName
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, name: name, secure: secure, ttl: ttl}
}

// Create generates a new session, stores it in Valkey, and sets the
// session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()
	if err := data.Validate(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data from Valkey using the session ID from the
// request cookie. Returns nil if no valid session exists. A payload that
// fails to decode or validate is deleted and treated as no session.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		s.client.Del(ctx, keyPrefix+cookie.Value)
		return nil, nil // fail closed on malformed payloads
	}
	if err := data.Validate(); err != nil {
		s.client.Del(ctx, keyPrefix+cookie.Value)
		return nil, nil
	}

	return &data, nil
}

// Update replaces the session data in Valkey without changing the session
// ID or cookie. Resets the TTL.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return fmt.Errorf("session update: no cookie")
	}

	if err := data.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+cookie.Value, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session update: %w", err)
	}

	return nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
