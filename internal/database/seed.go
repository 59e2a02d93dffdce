package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"mongolshop/internal/models"
)

// Seed populates empty collections with the built-in sample datasets.
// Collections that already hold documents are left untouched, so the seeder
// is safe to run on every startup in development.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedCollection(ctx, db, StoresCollection, toAny(models.SampleStores())); err != nil {
		return err
	}
	if err := seedCollection(ctx, db, CategoriesCollection, toAny(models.SampleCategories())); err != nil {
		return err
	}
	if err := seedCollection(ctx, db, ReviewsCollection, toAny(models.SampleReviews())); err != nil {
		return err
	}
	if err := seedCollection(ctx, db, UsersCollection, toAny(models.SampleUsers())); err != nil {
		return err
	}
	if err := seedCollection(ctx, db, SettingsCollection, []any{models.SampleSettings()}); err != nil {
		return err
	}
	return nil
}

func seedCollection(ctx context.Context, db *mongo.Database, name string, docs []any) error {
	coll := db.Collection(name)

	count, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("seed %s: count: %w", name, err)
	}
	if count > 0 {
		return nil
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed %s: insert: %w", name, err)
	}
	slog.Info("seeded collection", "collection", name, "documents", len(docs))
	return nil
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
