// Package models defines the data structures stored in the stores database
// and provides the core types used throughout the application.
package models

import "mongolshop/internal/geo"

// Store is a single business listing in the directory.
//
// Category is denormalized: it holds the category name and is matched by
// equality, not by foreign key. Rating and Reviews are derived from the
// review collection and recomputed after every review write; they can drift
// if a recomputation is interrupted.
type Store struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	Name            string           `json:"name" bson:"name"`
	Slug            string           `json:"slug,omitempty" bson:"slug,omitempty"`
	Category        string           `json:"category" bson:"category"`
	Description     string           `json:"description" bson:"description"`
	FullDescription string           `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Address         string           `json:"address" bson:"address"`
	Phone           string           `json:"phone" bson:"phone"`
	Hours           string           `json:"hours" bson:"hours"`
	Website         string           `json:"website,omitempty" bson:"website,omitempty"`
	Email           string           `json:"email,omitempty" bson:"email,omitempty"`
	Image           string           `json:"image,omitempty" bson:"image,omitempty"`
	Gallery         []string         `json:"gallery,omitempty" bson:"gallery,omitempty"`
	Location        *geo.Coordinates `json:"location,omitempty" bson:"location,omitempty"`
	MapLink         string           `json:"mapLink,omitempty" bson:"mapLink,omitempty"`
	Rating          float64          `json:"rating" bson:"rating"`
	Reviews         int              `json:"reviews" bson:"reviews"`
	Services        []string         `json:"services,omitempty" bson:"services,omitempty"`
	CreatedAt       int64            `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       int64            `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// MapsURL returns the best available Google Maps link for the store.
func (s *Store) MapsURL() string {
	return geo.Resolve(s.Location, s.MapLink)
}
