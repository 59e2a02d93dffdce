// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// listing.go provides a Valkey-backed cache for serialized public listings.
// Store and category listings change rarely compared to how often they are
// read, so their JSON payloads are cached and invalidated on admin writes.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listingKeyPrefix is the Valkey key prefix for cached listings.
	listingKeyPrefix = "listing:"

	// DefaultListingTTL caps staleness even when an invalidation is missed.
	DefaultListingTTL = 5 * time.Minute
)

// ListingCache manages serialized listing payloads in Valkey. A nil
// *ListingCache is a valid no-op cache, used when Valkey is unavailable.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or error.
func (lc *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	val, err := lc.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized payload with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, key string, payload []byte) {
	if lc == nil {
		return
	}
	if err := lc.client.Set(ctx, listingKeyPrefix+key, payload, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// Invalidate removes one cached listing.
func (lc *ListingCache) Invalidate(ctx context.Context, key string) {
	if lc == nil {
		return
	}
	if err := lc.client.Del(ctx, listingKeyPrefix+key).Err(); err != nil {
		slog.Warn("listing cache invalidate error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing by scanning for the prefix.
// Used after bulk operations like reseeding the database.
func (lc *ListingCache) InvalidateAll(ctx context.Context) {
	if lc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listingKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("listing cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("listing cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("listing cache cleared", "deleted", deleted)
	}
}

// StoresKey is the cache key for the full store listing.
func StoresKey() string { return "stores" }

// CategoriesKey is the cache key for the category listing.
func CategoriesKey() string { return "categories" }

// StoreReviewsKey is the cache key for one store's reviews.
func StoreReviewsKey(storeID string) string { return "reviews:" + storeID }
