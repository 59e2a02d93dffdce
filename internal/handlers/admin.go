// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mongolshop/internal/cache"
	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
	"mongolshop/internal/repo"
	"mongolshop/internal/storage"
)

// Admin groups the authenticated admin HTTP handlers: directory CRUD,
// user management, settings, connection control, and media uploads.
type Admin struct {
	stores     *repo.StoreRepo
	categories *repo.CategoryRepo
	reviews    *repo.ReviewRepo
	users      *repo.UserRepo
	settings   *repo.SettingsRepo
	listings   *cache.ListingCache
	accessor   *database.Accessor
	tracker    *connectivity.Tracker
	media      *storage.Client
}

// NewAdmin creates the admin handler group. media may be nil when object
// storage is not configured.
func NewAdmin(
	stores *repo.StoreRepo,
	categories *repo.CategoryRepo,
	reviews *repo.ReviewRepo,
	users *repo.UserRepo,
	settings *repo.SettingsRepo,
	listings *cache.ListingCache,
	accessor *database.Accessor,
	tracker *connectivity.Tracker,
	media *storage.Client,
) *Admin {
	return &Admin{
		stores:     stores,
		categories: categories,
		reviews:    reviews,
		users:      users,
		settings:   settings,
		listings:   listings,
		accessor:   accessor,
		tracker:    tracker,
		media:      media,
	}
}

// CreateStore adds a store to the directory.
func (a *Admin) CreateStore(w http.ResponseWriter, r *http.Request) {
	var store models.Store
	if err := decodeJSON(r, &store); err != nil {
		writeError(w, http.StatusBadRequest, "invalid store payload")
		return
	}
	if msg := validateStore(&store); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := a.stores.Add(r.Context(), store)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store could not be saved")
		return
	}

	a.categories.RecomputeStoreCount(r.Context(), store.Category)
	a.invalidateDirectory(r)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateStore replaces the mutable fields of a store.
func (a *Admin) UpdateStore(w http.ResponseWriter, r *http.Request) {
	var store models.Store
	if err := decodeJSON(r, &store); err != nil {
		writeError(w, http.StatusBadRequest, "invalid store payload")
		return
	}
	if msg := validateStore(&store); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	prev := a.stores.Get(r.Context(), chi.URLParam(r, "id"))
	if !a.stores.Update(r.Context(), chi.URLParam(r, "id"), store) {
		writeError(w, http.StatusBadGateway, "store could not be updated")
		return
	}

	a.categories.RecomputeStoreCount(r.Context(), store.Category)
	if prev != nil && prev.Category != store.Category {
		a.categories.RecomputeStoreCount(r.Context(), prev.Category)
	}
	a.invalidateDirectory(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteStore removes a store. Its reviews are kept and must be handled
// by consumers as pointing at a missing store.
func (a *Admin) DeleteStore(w http.ResponseWriter, r *http.Request) {
	prev := a.stores.Get(r.Context(), chi.URLParam(r, "id"))
	if !a.stores.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusBadGateway, "store could not be deleted")
		return
	}
	if prev != nil {
		a.categories.RecomputeStoreCount(r.Context(), prev.Category)
	}
	a.invalidateDirectory(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCategory adds a category.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category payload")
		return
	}
	if msg := validateCategory(&category); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := a.categories.Add(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusBadGateway, "category could not be saved")
		return
	}

	a.listings.Invalidate(r.Context(), cache.CategoriesKey())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateCategory replaces the mutable fields of a category.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category payload")
		return
	}
	if msg := validateCategory(&category); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if !a.categories.Update(r.Context(), chi.URLParam(r, "id"), category) {
		writeError(w, http.StatusBadGateway, "category could not be updated")
		return
	}

	a.listings.Invalidate(r.Context(), cache.CategoriesKey())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteCategory removes a category. Stores keep their denormalized
// category name.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !a.categories.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusBadGateway, "category could not be deleted")
		return
	}
	a.listings.Invalidate(r.Context(), cache.CategoriesKey())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RecountCategories refreshes the derived store counts of all categories.
func (a *Admin) RecountCategories(w http.ResponseWriter, r *http.Request) {
	a.categories.RecomputeStoreCounts(r.Context())
	a.listings.Invalidate(r.Context(), cache.CategoriesKey())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteReview removes a review and refreshes the store's rating.
func (a *Admin) DeleteReview(w http.ResponseWriter, r *http.Request) {
	review := a.reviews.Get(r.Context(), chi.URLParam(r, "id"))
	if !a.reviews.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusBadGateway, "review could not be deleted")
		return
	}
	if review != nil {
		a.listings.Invalidate(r.Context(), cache.StoreReviewsKey(review.StoreID))
	}
	a.listings.Invalidate(r.Context(), cache.StoresKey())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListUsers returns every user account, credentials stripped.
func (a *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.users.All(r.Context()))
}

// GetUser returns one user account.
func (a *Admin) GetUser(w http.ResponseWriter, r *http.Request) {
	user := a.users.Get(r.Context(), chi.URLParam(r, "id"))
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser registers an account on behalf of an admin.
func (a *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.User
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user payload")
		return
	}
	if msg := validateCredentials(req.Name, req.Email, req.Password); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := a.users.Register(r.Context(), req.User, req.Password)
	if err != nil {
		if err == repo.ErrEmailTaken {
			writeError(w, http.StatusConflict, "Энэ имэйл хаяг бүртгэлтэй байна.")
			return
		}
		slog.Error("admin user create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateUser replaces the profile fields of a user.
func (a *Admin) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user payload")
		return
	}
	if !a.users.Update(r.Context(), chi.URLParam(r, "id"), user) {
		writeError(w, http.StatusBadGateway, "user could not be updated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UpdateUserPassword sets a new password for a user.
func (a *Admin) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusUnprocessableEntity, "Нууц үг дор хаяж 6 тэмдэгт байх ёстой.")
		return
	}
	if err := a.users.UpdatePassword(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		writeError(w, http.StatusBadGateway, "password could not be updated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteUser removes a user account.
func (a *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !a.users.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusBadGateway, "user could not be deleted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSettings returns the site settings for the admin form, creating the
// default record on first use.
func (a *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.settings.GetOrCreate(r.Context()))
}

// SaveSettings upserts the site settings.
func (a *Admin) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s models.SiteSettings
	if err := decodeJSON(r, &s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings payload")
		return
	}
	if s.SiteName == "" {
		writeError(w, http.StatusUnprocessableEntity, "Сайтын нэр шаардлагатай.")
		return
	}
	if !a.settings.Save(r.Context(), s) {
		writeError(w, http.StatusBadGateway, "settings could not be saved")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ConnectionStatus reports the tracked database connection state.
func (a *Admin) ConnectionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.tracker.Snapshot())
}

// Reconnect resets the bounded attempt counter and probes the database.
func (a *Admin) Reconnect(w http.ResponseWriter, r *http.Request) {
	connected := a.accessor.Reconnect(r.Context())
	if connected {
		// remote data may have diverged while serving samples
		a.listings.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": connected,
		"status":    a.tracker.Snapshot(),
	})
}

// SeedData pushes the built-in sample datasets into empty collections.
func (a *Admin) SeedData(w http.ResponseWriter, r *http.Request) {
	db := a.accessor.Handle()
	if db == nil {
		writeError(w, http.StatusServiceUnavailable, "database is offline")
		return
	}
	if err := database.Seed(r.Context(), db); err != nil {
		slog.Error("seeding failed", "error", err)
		writeError(w, http.StatusBadGateway, "seeding failed")
		return
	}
	a.listings.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// invalidateDirectory drops the cached listings affected by a store write.
func (a *Admin) invalidateDirectory(r *http.Request) {
	a.listings.Invalidate(r.Context(), cache.StoresKey())
	a.listings.Invalidate(r.Context(), cache.CategoriesKey())
}
