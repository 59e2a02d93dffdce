// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repo

import (
	"context"
	"time"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
	"mongolshop/internal/slug"
)

// CategoryRepo manages the store categories. Stores reference categories by
// denormalized name, so lookups by name matter as much as lookups by id.
type CategoryRepo struct {
	coll   *Collection[models.Category]
	stores *StoreRepo
}

func NewCategoryRepo(accessor *database.Accessor, tracker *connectivity.Tracker, stores *StoreRepo) *CategoryRepo {
	return &CategoryRepo{
		coll: NewCollection(
			accessor, tracker,
			database.CategoriesCollection,
			models.SampleCategories,
			models.OfflineCategoryID,
			func(c *models.Category) string { return c.ID },
			func(c *models.Category, id string) { c.ID = id },
		),
		stores: stores,
	}
}

// All returns every category.
func (r *CategoryRepo) All(ctx context.Context) []models.Category {
	return r.coll.List(ctx)
}

// Get returns the category with the given id, or nil when unknown.
func (r *CategoryRepo) Get(ctx context.Context, id string) *models.Category {
	return r.coll.Get(ctx, id)
}

// GetByName resolves a category by its exact name. The query is hinted at
// the name index with a scan fallback.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) *models.Category {
	items := r.coll.ListWhere(ctx, "name", name, database.CategoryNameIndex,
		func(c *models.Category) bool { return c.Name == name })
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// Add inserts a new category and returns its id.
func (r *CategoryRepo) Add(ctx context.Context, c models.Category) (string, error) {
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	now := time.Now().UnixMilli()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.coll.Add(ctx, c)
}

// Update merges the supplied fields over the existing category. Unset
// fields keep their stored value. Returns false when the category does not
// exist.
func (r *CategoryRepo) Update(ctx context.Context, id string, c models.Category) bool {
	if c.Slug == "" && c.Name != "" {
		c.Slug = slug.Generate(c.Name)
	}
	changes := map[string]any{"updatedAt": time.Now().UnixMilli()}
	setNonZero(changes, "name", c.Name)
	setNonZero(changes, "slug", c.Slug)
	setNonZero(changes, "description", c.Description)
	setNonZero(changes, "image", c.Image)
	return r.coll.Update(ctx, id, changes)
}

// Delete removes a category. Stores referencing it keep their denormalized
// category name.
func (r *CategoryRepo) Delete(ctx context.Context, id string) bool {
	return r.coll.Delete(ctx, id)
}

// RecomputeStoreCount refreshes the derived StoreCount of the named category
// from a live count of matching stores. Best-effort: offline mode and
// unknown names leave everything untouched.
func (r *CategoryRepo) RecomputeStoreCount(ctx context.Context, name string) {
	c := r.GetByName(ctx, name)
	if c == nil {
		return
	}
	n := len(r.stores.ByCategory(ctx, name))
	if n != c.StoreCount {
		r.coll.Update(ctx, c.ID, map[string]any{"storeCount": n})
	}
}

// RecomputeStoreCounts refreshes the derived StoreCount of every category
// from a live count of matching stores. Best-effort: failures on individual
// categories are skipped, and offline mode leaves everything untouched.
func (r *CategoryRepo) RecomputeStoreCounts(ctx context.Context) {
	stores := r.stores.All(ctx)
	counts := make(map[string]int, len(stores))
	for _, s := range stores {
		counts[s.Category]++
	}
	for _, c := range r.coll.List(ctx) {
		n := counts[c.Name]
		if n == c.StoreCount {
			continue
		}
		r.coll.Update(ctx, c.ID, map[string]any{"storeCount": n})
	}
}
