// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repo

import (
	"context"
	"strings"
	"time"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/geo"
	"mongolshop/internal/models"
	"mongolshop/internal/slug"
)

// StoreRepo manages the store directory.
type StoreRepo struct {
	coll *Collection[models.Store]
}

func NewStoreRepo(accessor *database.Accessor, tracker *connectivity.Tracker) *StoreRepo {
	return &StoreRepo{
		coll: NewCollection(
			accessor, tracker,
			database.StoresCollection,
			models.SampleStores,
			models.OfflineStoreID,
			func(s *models.Store) string { return s.ID },
			func(s *models.Store, id string) { s.ID = id },
		),
	}
}

// All returns every store.
func (r *StoreRepo) All(ctx context.Context) []models.Store {
	return r.coll.List(ctx)
}

// Get returns the store with the given id, or nil when unknown.
func (r *StoreRepo) Get(ctx context.Context, id string) *models.Store {
	return r.coll.Get(ctx, id)
}

// GetBySlug resolves a store by its URL slug.
func (r *StoreRepo) GetBySlug(ctx context.Context, s string) *models.Store {
	for _, store := range r.coll.List(ctx) {
		if store.Slug == s {
			return &store
		}
	}
	return nil
}

// ByCategory returns the stores in the given category. The query is hinted
// at the category index and degrades to a scan with client-side filtering
// when the index is missing.
func (r *StoreRepo) ByCategory(ctx context.Context, category string) []models.Store {
	return r.coll.ListWhere(ctx, "category", category, database.StoreCategoryIndex,
		func(s *models.Store) bool { return s.Category == category })
}

// Search matches stores by name, description, or address, case-insensitive.
func (r *StoreRepo) Search(ctx context.Context, query string) []models.Store {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.coll.List(ctx)
	}
	var out []models.Store
	for _, s := range r.coll.List(ctx) {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Description), query) ||
			strings.Contains(strings.ToLower(s.Address), query) {
			out = append(out, s)
		}
	}
	return out
}

// Add inserts a new store. The slug is derived from the name when absent,
// coordinates are resolved from the location and map link, and timestamps
// are set server-side. Returns the new store id.
func (r *StoreRepo) Add(ctx context.Context, s models.Store) (string, error) {
	if s.Slug == "" {
		s.Slug = slug.Generate(s.Name)
	}
	r.resolveLocation(&s)
	now := time.Now().UnixMilli()
	s.CreatedAt = now
	s.UpdatedAt = now
	return r.coll.Add(ctx, s)
}

// Update merges the supplied fields over the existing store. Fields the
// caller left unset keep their stored value; an empty partial refreshes only
// updatedAt. Returns false when the store does not exist.
func (r *StoreRepo) Update(ctx context.Context, id string, s models.Store) bool {
	if s.Slug == "" && s.Name != "" {
		s.Slug = slug.Generate(s.Name)
	}
	if s.Location != nil || s.MapLink != "" {
		r.resolveLocation(&s)
	}
	s.UpdatedAt = time.Now().UnixMilli()
	return r.coll.Update(ctx, id, changedStoreFields(s))
}

// Delete removes a store.
func (r *StoreRepo) Delete(ctx context.Context, id string) bool {
	return r.coll.Delete(ctx, id)
}

// resolveLocation fills Location and MapLink from whichever of the two the
// caller supplied, normalizing out-of-range and swapped coordinates.
func (r *StoreRepo) resolveLocation(s *models.Store) {
	s.MapLink = geo.Resolve(s.Location, s.MapLink)
	if c, ok := geo.ExtractCoordinates(s.MapLink); ok {
		n := geo.Normalize(c)
		s.Location = &n
	}
}

// changedStoreFields builds the partial update document for a store. Only
// fields the caller supplied make it into the document, so stored values
// survive a partial payload. Identity and creation metadata never do.
func changedStoreFields(s models.Store) map[string]any {
	changes := map[string]any{"updatedAt": s.UpdatedAt}
	setNonZero(changes, "name", s.Name)
	setNonZero(changes, "slug", s.Slug)
	setNonZero(changes, "category", s.Category)
	setNonZero(changes, "description", s.Description)
	setNonZero(changes, "fullDescription", s.FullDescription)
	setNonZero(changes, "address", s.Address)
	setNonZero(changes, "phone", s.Phone)
	setNonZero(changes, "hours", s.Hours)
	setNonZero(changes, "website", s.Website)
	setNonZero(changes, "email", s.Email)
	setNonZero(changes, "image", s.Image)
	setNonZero(changes, "mapLink", s.MapLink)
	if s.Gallery != nil {
		changes["gallery"] = s.Gallery
	}
	if s.Location != nil {
		changes["location"] = s.Location
	}
	if s.Services != nil {
		changes["services"] = s.Services
	}
	return changes
}

// setNonZero adds a string field to the update document only when the caller
// supplied it.
func setNonZero(changes map[string]any, key, value string) {
	if value != "" {
		changes[key] = value
	}
}
