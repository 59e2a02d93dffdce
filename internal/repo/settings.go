// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/models"
)

// settingsKey is the fixed document id of the singleton settings record.
const settingsKey = "settings1"

// SettingsRepo manages the singleton site settings record.
type SettingsRepo struct {
	accessor *database.Accessor
	tracker  *connectivity.Tracker
}

func NewSettingsRepo(accessor *database.Accessor, tracker *connectivity.Tracker) *SettingsRepo {
	return &SettingsRepo{accessor: accessor, tracker: tracker}
}

// Get returns the current site settings, falling back to the sample record
// when offline or the record does not exist yet.
func (r *SettingsRepo) Get(ctx context.Context) models.SiteSettings {
	if r.tracker.Offline() {
		return models.SampleSettings()
	}
	db := r.accessor.Handle()
	if db == nil {
		return models.SampleSettings()
	}

	var s models.SiteSettings
	err := db.Collection(database.SettingsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: settingsKey}}).Decode(&s)
	switch {
	case err == mongo.ErrNoDocuments:
		r.tracker.ReportSuccess()
		return models.SampleSettings()
	case err != nil:
		slog.Warn("settings read failed, using samples", "error", err)
		r.tracker.ReportFailure(err)
		return models.SampleSettings()
	}
	r.tracker.ReportSuccess()
	return s
}

// GetOrCreate returns the current settings, writing the defaults first when
// no record exists yet. Offline mode reads the samples without writing.
func (r *SettingsRepo) GetOrCreate(ctx context.Context) models.SiteSettings {
	if r.tracker.Offline() {
		return models.SampleSettings()
	}
	db := r.accessor.Handle()
	if db == nil {
		return models.SampleSettings()
	}

	var s models.SiteSettings
	err := db.Collection(database.SettingsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: settingsKey}}).Decode(&s)
	switch {
	case err == mongo.ErrNoDocuments:
		defaults := models.DefaultSettings()
		r.Save(ctx, defaults)
		return defaults
	case err != nil:
		slog.Warn("settings read failed, using samples", "error", err)
		r.tracker.ReportFailure(err)
		return models.SampleSettings()
	}
	r.tracker.ReportSuccess()
	return s
}

// Save upserts the settings record. Offline mode reports optimistic success;
// an uninitialized handle reports failure.
func (r *SettingsRepo) Save(ctx context.Context, s models.SiteSettings) bool {
	if r.tracker.Offline() {
		return true
	}
	db := r.accessor.Handle()
	if db == nil {
		return false
	}

	s.ID = settingsKey
	s.UpdatedAt = time.Now().UnixMilli()
	if s.CreatedAt == 0 {
		s.CreatedAt = s.UpdatedAt
	}
	_, err := db.Collection(database.SettingsCollection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: settingsKey}}, s, options.Replace().SetUpsert(true))
	if err != nil {
		slog.Warn("settings save failed", "error", err)
		r.tracker.ReportFailure(err)
		return false
	}
	r.tracker.ReportSuccess()
	return true
}
