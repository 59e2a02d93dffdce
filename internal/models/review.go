// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Review is a visitor rating of a store. Name doubles as a weak ownership
// key for "my reviews" listings — it is a display name, not a user ID.
// Store holds the denormalized store name at the time of writing; StoreID
// references the store and is not cascaded on store deletion, so consumers
// must handle reviews pointing at a missing store.
type Review struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Store     string `json:"store" bson:"store"`
	StoreID   string `json:"storeId" bson:"storeId"`
	Rating    int    `json:"rating" bson:"rating"`
	Comment   string `json:"comment" bson:"comment"`
	Date      string `json:"date" bson:"date"` // display string, YYYY-MM-DD
	CreatedAt int64  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
