// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
)

// Status is a user account state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// User is a registered account. Email is the logical unique key, matched
// case-insensitively. PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           string  `json:"id" bson:"_id,omitempty"`
	Name         string  `json:"name" bson:"name"`
	Email        string  `json:"email" bson:"email"`
	Role         Role    `json:"role" bson:"role"`
	Status       Status  `json:"status" bson:"status"`
	Phone        string  `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string  `json:"-" bson:"password,omitempty"`
	Avatar       string  `json:"avatar,omitempty" bson:"avatar,omitempty"`
	TOTPSecret   *string `json:"-" bson:"totpSecret,omitempty"` // nullable; set during 2FA setup
	TOTPEnabled  bool    `json:"totpEnabled,omitempty" bson:"totpEnabled,omitempty"`
	CreatedAt    string  `json:"createdAt" bson:"createdAt"` // display string, YYYY-MM-DD
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true unless the account is inactive or blocked.
func (u *User) IsActive() bool {
	return u.Status == StatusActive || u.Status == ""
}

// WithoutSecrets returns a copy safe to hand to clients: the password hash
// and TOTP secret are stripped.
func (u User) WithoutSecrets() User {
	u.PasswordHash = ""
	u.TOTPSecret = nil
	return u
}
