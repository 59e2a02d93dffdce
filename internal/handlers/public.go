// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mongolshop/internal/cache"
	"mongolshop/internal/geo"
	"mongolshop/internal/models"
	"mongolshop/internal/repo"
)

// Public groups the unauthenticated directory endpoints.
type Public struct {
	stores     *repo.StoreRepo
	categories *repo.CategoryRepo
	reviews    *repo.ReviewRepo
	settings   *repo.SettingsRepo
	listings   *cache.ListingCache
}

// NewPublic creates the public handler group.
func NewPublic(stores *repo.StoreRepo, categories *repo.CategoryRepo, reviews *repo.ReviewRepo, settings *repo.SettingsRepo, listings *cache.ListingCache) *Public {
	return &Public{
		stores:     stores,
		categories: categories,
		reviews:    reviews,
		settings:   settings,
		listings:   listings,
	}
}

// ListStores returns every store in the directory.
func (p *Public) ListStores(w http.ResponseWriter, r *http.Request) {
	p.cached(w, r, cache.StoresKey(), func(ctx context.Context) any {
		return p.stores.All(ctx)
	})
}

// GetStore returns one store by id, falling back to slug lookup so both
// /api/stores/abc123 and /api/stores/ulsyn-ikh-delguur resolve.
func (p *Public) GetStore(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	store := p.stores.Get(r.Context(), key)
	if store == nil {
		store = p.stores.GetBySlug(r.Context(), key)
	}
	if store == nil {
		writeError(w, http.StatusNotFound, "store not found")
		return
	}
	writeJSON(w, http.StatusOK, store)
}

// SearchStores matches stores against the q query parameter.
func (p *Public) SearchStores(w http.ResponseWriter, r *http.Request) {
	results := p.stores.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, results)
}

// ListCategories returns every category.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	p.cached(w, r, cache.CategoriesKey(), func(ctx context.Context) any {
		return p.categories.All(ctx)
	})
}

// GetCategory returns one category by id.
func (p *Public) GetCategory(w http.ResponseWriter, r *http.Request) {
	category := p.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryStores returns the stores belonging to a category, resolved by
// the category's denormalized name.
func (p *Public) CategoryStores(w http.ResponseWriter, r *http.Request) {
	category := p.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, p.stores.ByCategory(r.Context(), category.Name))
}

// StoreReviews returns the reviews for one store, newest first.
func (p *Public) StoreReviews(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	p.cached(w, r, cache.StoreReviewsKey(storeID), func(ctx context.Context) any {
		return p.reviews.ByStore(ctx, storeID)
	})
}

// AddReview accepts a visitor review for a store.
func (p *Public) AddReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		writeError(w, http.StatusBadRequest, "invalid review payload")
		return
	}
	review.StoreID = chi.URLParam(r, "id")
	review.ID = ""

	if msg := validateReview(&review); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := p.reviews.Add(r.Context(), review)
	if err != nil {
		writeError(w, http.StatusBadGateway, "review could not be saved")
		return
	}

	p.listings.Invalidate(r.Context(), cache.StoreReviewsKey(review.StoreID))
	p.listings.Invalidate(r.Context(), cache.StoresKey())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListReviews returns all reviews, optionally filtered by the author
// display name (?author=). The author name is a weak key: matching is
// exact and carries no ownership guarantee.
func (p *Public) ListReviews(w http.ResponseWriter, r *http.Request) {
	if author := r.URL.Query().Get("author"); author != "" {
		writeJSON(w, http.StatusOK, p.reviews.ByAuthor(r.Context(), author))
		return
	}
	writeJSON(w, http.StatusOK, p.reviews.All(r.Context()))
}

// GetSettings returns the public site settings.
func (p *Public) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.settings.Get(r.Context()))
}

// EmbedMapLink converts a pasted map link into coordinates and an
// embeddable URL. Used by the frontend's live map preview.
func (p *Public) EmbedMapLink(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")

	coords, ok := geo.ExtractCoordinates(link)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"valid": false,
			"embed": geo.EmbedURL(link),
		})
		return
	}
	n := geo.Normalize(coords)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"location": n,
		"mapLink":  geo.MapLink(n.Lat, n.Lng),
		"embed":    geo.EmbedURL(link),
	})
}

// Health is the liveness endpoint.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cached serves a listing from the Valkey cache when possible, otherwise
// builds it, serves it, and stores the serialized payload.
func (p *Public) cached(w http.ResponseWriter, r *http.Request, key string, build func(ctx context.Context) any) {
	if payload, ok := p.listings.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	v := build(r.Context())
	payload, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	p.listings.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
