// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups stores by their denormalized category name.
// Lookups happen by name, not just ID. StoreCount is derived from a live
// count of matching stores and recomputed on demand; like Store.Rating it
// is best-effort, not transactional.
type Category struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug,omitempty" bson:"slug,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	StoreCount  int    `json:"storeCount" bson:"storeCount"`
	CreatedAt   int64  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
