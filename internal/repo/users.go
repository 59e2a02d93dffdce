// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is not active")
	ErrNotAdmin           = errors.New("admin role required")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserRepo manages user accounts and credential checks.
type UserRepo struct {
	coll *Collection[models.User]
}

func NewUserRepo(accessor *database.Accessor, tracker *connectivity.Tracker) *UserRepo {
	return &UserRepo{
		coll: NewCollection(
			accessor, tracker,
			database.UsersCollection,
			models.SampleUsers,
			models.OfflineUserID,
			func(u *models.User) string { return u.ID },
			func(u *models.User, id string) { u.ID = id },
		),
	}
}

// All returns every user with credentials stripped.
func (r *UserRepo) All(ctx context.Context) []models.User {
	users := r.coll.List(ctx)
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.WithoutSecrets()
	}
	return out
}

// Get returns the user with the given id, credentials stripped.
func (r *UserRepo) Get(ctx context.Context, id string) *models.User {
	u := r.coll.Get(ctx, id)
	if u == nil {
		return nil
	}
	clean := u.WithoutSecrets()
	return &clean
}

// GetWithSecrets returns the full user record including the password hash
// and TOTP secret. For credential and 2FA checks only.
func (r *UserRepo) GetWithSecrets(ctx context.Context, id string) *models.User {
	return r.coll.Get(ctx, id)
}

// ByEmail resolves a user by email, case-insensitively. The returned record
// still carries the password hash; callers that hand it out must strip it.
//
// Unlike the listing reads, an online miss is final: sample accounts are
// consulted only when the remote gave no answer at all. A reachable database
// that does not know the email must never authenticate a sample credential.
func (r *UserRepo) ByEmail(ctx context.Context, email string) *models.User {
	email = strings.TrimSpace(email)
	match := func(u *models.User) bool { return strings.EqualFold(u.Email, email) }

	items, ok := r.coll.QueryWhere(ctx, "email", strings.ToLower(email), database.UserEmailIndex, match)
	if !ok {
		items = filterItems(models.SampleUsers(), match)
	}
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// Authenticate checks an email/password pair against the stored bcrypt hash.
// Disabled accounts are rejected even with a valid password. The returned
// user has credentials stripped.
func (r *UserRepo) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u := r.ByEmail(ctx, email)
	if u == nil {
		// burn a comparison so unknown emails cost the same as wrong passwords
		bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGZLcjQczmrzXMIxdzPVZdY9l6wHeEjO"), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrAccountDisabled
	}
	clean := u.WithoutSecrets()
	return &clean, nil
}

// AuthenticateAdmin is Authenticate restricted to the admin role.
func (r *UserRepo) AuthenticateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	u, err := r.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return u, nil
}

// Register creates a new account after checking the email is free. The
// password is hashed before anything is stored. Returns the new user id.
func (r *UserRepo) Register(ctx context.Context, u models.User, password string) (string, error) {
	if existing := r.ByEmail(ctx, u.Email); existing != nil {
		return "", ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = string(hash)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	u.CreatedAt = time.Now().Format("2006-01-02")
	return r.coll.Add(ctx, u)
}

// Update merges the supplied profile fields over the existing user. Unset
// fields keep their stored value. Credentials are managed separately through
// UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, id string, u models.User) bool {
	changes := map[string]any{}
	setNonZero(changes, "name", u.Name)
	setNonZero(changes, "email", strings.ToLower(strings.TrimSpace(u.Email)))
	setNonZero(changes, "role", string(u.Role))
	setNonZero(changes, "status", string(u.Status))
	setNonZero(changes, "phone", u.Phone)
	setNonZero(changes, "avatar", u.Avatar)
	if len(changes) == 0 {
		return true
	}
	return r.coll.Update(ctx, id, changes)
}

// UpdatePassword hashes and stores a new password for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if !r.coll.Update(ctx, id, map[string]any{"password": string(hash)}) {
		return errors.New("password update failed")
	}
	return nil
}

// SetTOTP stores or clears a user's TOTP secret and enabled flag.
func (r *UserRepo) SetTOTP(ctx context.Context, id string, secret *string, enabled bool) bool {
	return r.coll.Update(ctx, id, map[string]any{
		"totpSecret":  secret,
		"totpEnabled": enabled,
	})
}

// Delete removes a user account.
func (r *UserRepo) Delete(ctx context.Context, id string) bool {
	return r.coll.Delete(ctx, id)
}
