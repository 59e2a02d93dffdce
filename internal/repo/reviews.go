// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repo

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
)

// ReviewRepo manages store reviews. Writes trigger a best-effort
// recomputation of the parent store's aggregate rating.
type ReviewRepo struct {
	coll   *Collection[models.Review]
	stores *StoreRepo
}

func NewReviewRepo(accessor *database.Accessor, tracker *connectivity.Tracker, stores *StoreRepo) *ReviewRepo {
	return &ReviewRepo{
		coll: NewCollection(
			accessor, tracker,
			database.ReviewsCollection,
			models.SampleReviews,
			models.OfflineReviewID,
			func(v *models.Review) string { return v.ID },
			func(v *models.Review, id string) { v.ID = id },
		),
		stores: stores,
	}
}

// All returns every review, newest first. Reviews pointing at a store that
// no longer exists are labeled as such.
func (r *ReviewRepo) All(ctx context.Context) []models.Review {
	return r.labelMissingStores(ctx, sortNewest(r.coll.List(ctx)))
}

// Get returns the review with the given id, or nil when unknown.
func (r *ReviewRepo) Get(ctx context.Context, id string) *models.Review {
	return r.coll.Get(ctx, id)
}

// ByStore returns the reviews for one store, newest first. The query is
// hinted at the storeId index with a scan fallback.
func (r *ReviewRepo) ByStore(ctx context.Context, storeID string) []models.Review {
	return sortNewest(r.coll.ListWhere(ctx, "storeId", storeID, database.ReviewStoreIndex,
		func(v *models.Review) bool { return v.StoreID == storeID }))
}

// ByAuthor returns the reviews written under the given display name.
// Name is a weak ownership key, not a user reference.
func (r *ReviewRepo) ByAuthor(ctx context.Context, name string) []models.Review {
	var out []models.Review
	for _, v := range r.coll.List(ctx) {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return r.labelMissingStores(ctx, sortNewest(out))
}

// labelMissingStores overwrites the denormalized store name of reviews whose
// store has been deleted. The reviews themselves are kept.
func (r *ReviewRepo) labelMissingStores(ctx context.Context, reviews []models.Review) []models.Review {
	if len(reviews) == 0 {
		return reviews
	}
	known := make(map[string]bool)
	for _, s := range r.stores.All(ctx) {
		known[s.ID] = true
	}
	for i := range reviews {
		if !known[reviews[i].StoreID] {
			reviews[i].Store = "Устгагдсан дэлгүүр"
		}
	}
	return reviews
}

// Add inserts a review, stamping the date server-side, and refreshes the
// store's aggregate rating. Returns the new review id.
func (r *ReviewRepo) Add(ctx context.Context, v models.Review) (string, error) {
	now := time.Now()
	v.Date = now.Format("2006-01-02")
	v.CreatedAt = now.UnixMilli()
	if v.Store == "" {
		if s := r.stores.Get(ctx, v.StoreID); s != nil {
			v.Store = s.Name
		}
	}
	id, err := r.coll.Add(ctx, v)
	if err != nil {
		return "", err
	}
	r.refreshRating(ctx, v.StoreID)
	return id, nil
}

// Delete removes a review and refreshes the store's aggregate rating.
func (r *ReviewRepo) Delete(ctx context.Context, id string) bool {
	review := r.coll.Get(ctx, id)
	if !r.coll.Delete(ctx, id) {
		return false
	}
	if review != nil {
		r.refreshRating(ctx, review.StoreID)
	}
	return true
}

// refreshRating recomputes the store's stored rating and review count from
// the current reviews. Best-effort: nothing is retried and offline mode is
// a no-op, so the aggregates can lag behind the source reviews.
func (r *ReviewRepo) refreshRating(ctx context.Context, storeID string) {
	reviews := r.ByStore(ctx, storeID)

	var rating float64
	if len(reviews) > 0 {
		sum := 0
		for _, v := range reviews {
			sum += v.Rating
		}
		rating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	r.stores.coll.Update(ctx, storeID, map[string]any{
		"rating":  rating,
		"reviews": len(reviews),
	})
}

func sortNewest(reviews []models.Review) []models.Review {
	slices.SortStableFunc(reviews, func(a, b models.Review) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return reviews
}
