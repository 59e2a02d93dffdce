package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"mongolshop/internal/middleware"
	"mongolshop/internal/models"
	"mongolshop/internal/repo"
	"mongolshop/internal/session"
)

// totpIssuer is the issuer label shown in authenticator apps.
const totpIssuer = "МонголШоп"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions *session.Store
	users    *repo.UserRepo
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *repo.UserRepo) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an email/password pair and opens a session.
// Admin accounts get a session with 2FA pending and must verify a TOTP
// code before the admin surface opens up.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login payload")
		return
	}

	user, err := a.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrAccountDisabled):
			writeError(w, http.StatusForbidden, "Таны бүртгэл идэвхгүй байна.")
		default:
			writeError(w, http.StatusUnauthorized, "Имэйл эсвэл нууц үг буруу байна.")
		}
		return
	}

	// Regular users are done; admins still owe a TOTP code.
	twoFADone := !user.IsAdmin()
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		TwoFADone: twoFADone,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	full := a.users.GetWithSecrets(r.Context(), user.ID)
	needsSetup := full != nil && full.TOTPSecret == nil

	writeJSON(w, http.StatusOK, map[string]any{
		"user":              user,
		"twoFactorRequired": !twoFADone,
		"twoFactorSetup":    !twoFADone && needsSetup,
	})
}

// Register creates a new user account and opens a session for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration payload")
		return
	}
	if msg := validateCredentials(req.Name, req.Email, req.Password); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := a.users.Register(r.Context(), models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Энэ имэйл хаяг бүртгэлтэй байна.")
			return
		}
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    id,
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleUser,
		TwoFADone: true,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Me returns the current session's identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        sess.UserID,
		"email":     sess.Email,
		"name":      sess.Name,
		"role":      sess.Role,
		"twoFADone": sess.TwoFADone,
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TwoFASetup generates a TOTP secret for the logged-in admin and returns
// it with a QR code for authenticator apps.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	secret := key.Secret()
	if !a.users.SetTOTP(r.Context(), sess.UserID, &secret, false) {
		writeError(w, http.StatusBadGateway, "could not store the 2FA secret")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": secret,
		"qr":     base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates a TOTP code and completes admin authentication.
// On the first successful verification the secret is marked enabled.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user := a.users.GetWithSecrets(r.Context(), sess.UserID)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "two-factor authentication is not set up")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "Код буруу байна. Дахин оролдоно уу.")
		return
	}

	if !user.TOTPEnabled {
		a.users.SetTOTP(r.Context(), user.ID, user.TOTPSecret, true)
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
