// Package repo implements the offline-first data access layer. Every
// repository reads through the shared database handle and falls back to the
// built-in sample datasets whenever the application is offline, the handle
// could not be initialized, or the remote collection is empty. Reads never
// fail: the caller always gets usable data.
package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
)

// Collection is the generic accessor shared by all repositories. It carries
// the entity-specific pieces: the collection name, the sample dataset, the
// placeholder id returned by writes in offline mode, and the id accessors.
type Collection[T any] struct {
	accessor  *database.Accessor
	tracker   *connectivity.Tracker
	name      string
	samples   func() []T
	offlineID string
	id        func(*T) string
	setID     func(*T, string)
}

// NewCollection wires a generic accessor for one collection.
func NewCollection[T any](
	accessor *database.Accessor,
	tracker *connectivity.Tracker,
	name string,
	samples func() []T,
	offlineID string,
	id func(*T) string,
	setID func(*T, string),
) *Collection[T] {
	return &Collection[T]{
		accessor:  accessor,
		tracker:   tracker,
		name:      name,
		samples:   samples,
		offlineID: offlineID,
		id:        id,
		setID:     setID,
	}
}

// handle snapshots the offline flag once at call start, then resolves the
// database handle. Returns nil in offline mode or when initialization is
// exhausted; the boolean distinguishes the two cases for write semantics.
func (c *Collection[T]) handle() (db *mongo.Database, offline bool) {
	if c.tracker.Offline() {
		return nil, true
	}
	return c.accessor.Handle(), false
}

// List returns every document in the collection, or the sample dataset when
// offline, unreachable, or the remote collection is empty.
func (c *Collection[T]) List(ctx context.Context) []T {
	db, offline := c.handle()
	if offline || db == nil {
		return c.samples()
	}

	items, err := c.find(ctx, db, bson.D{}, nil)
	if err != nil {
		slog.Warn("list failed, using samples", "collection", c.name, "error", err)
		c.tracker.ReportFailure(err)
		return c.samples()
	}
	c.tracker.ReportSuccess()
	if len(items) == 0 {
		return c.samples()
	}
	return items
}

// QueryWhere runs an equality query hinted at a named index and reports
// whether the remote answered. A hinted query against a missing index fails,
// in which case the collection is scanned and filtered client-side with
// match. ok is false in offline mode, with no handle, or when both the query
// and the scan failed; a remote answer with zero matches is ok with an empty
// slice. Callers pick their own fallback, which is what keeps sample records
// out of online results.
func (c *Collection[T]) QueryWhere(ctx context.Context, field string, value any, hint string, match func(*T) bool) ([]T, bool) {
	db, offline := c.handle()
	if offline || db == nil {
		return nil, false
	}

	items, err := c.find(ctx, db, bson.D{{Key: field, Value: value}}, options.Find().SetHint(hint))
	if err != nil {
		slog.Debug("indexed query failed, scanning",
			"collection", c.name, "field", field, "error", err)
		items, err = c.find(ctx, db, bson.D{}, nil)
		if err != nil {
			c.tracker.ReportFailure(err)
			return nil, false
		}
		items = filterItems(items, match)
	}
	c.tracker.ReportSuccess()
	return items, true
}

// ListWhere is QueryWhere with the read fallback chain: no remote answer
// serves the filtered samples, and a zero-match answer serves them only when
// the remote collection holds no documents at all. A query that legitimately
// matches nothing against a populated collection stays empty.
func (c *Collection[T]) ListWhere(ctx context.Context, field string, value any, hint string, match func(*T) bool) []T {
	items, ok := c.QueryWhere(ctx, field, value, hint, match)
	if !ok {
		return filterItems(c.samples(), match)
	}
	if len(items) == 0 && c.remoteEmpty(ctx) {
		return filterItems(c.samples(), match)
	}
	return items
}

// remoteEmpty reports whether the collection has no documents at all. Count
// errors read as non-empty so a transient failure cannot promote sample
// records into an otherwise healthy listing.
func (c *Collection[T]) remoteEmpty(ctx context.Context) bool {
	db := c.accessor.Handle()
	if db == nil {
		return false
	}
	n, err := db.Collection(c.name).EstimatedDocumentCount(ctx)
	return err == nil && n == 0
}

// Get returns the document with the given id, searching the sample dataset
// when the remote is unavailable or reports a miss. Returns nil only when
// the id is unknown to both.
func (c *Collection[T]) Get(ctx context.Context, id string) *T {
	db, offline := c.handle()
	if offline || db == nil {
		return c.sampleByID(id)
	}

	var item T
	err := db.Collection(c.name).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	switch {
	case err == mongo.ErrNoDocuments:
		c.tracker.ReportSuccess()
		return c.sampleByID(id)
	case err != nil:
		slog.Warn("get failed, searching samples", "collection", c.name, "id", id, "error", err)
		c.tracker.ReportFailure(err)
		return c.sampleByID(id)
	}
	c.tracker.ReportSuccess()
	return &item
}

// Add inserts a document under a fresh server-generated key and returns the
// key. In offline mode, or when the handle never initialized, the write is
// not performed and the collection's placeholder id is returned so callers
// can proceed optimistically.
func (c *Collection[T]) Add(ctx context.Context, item T) (string, error) {
	db, offline := c.handle()
	if offline || db == nil {
		return c.offlineID, nil
	}

	id := uuid.NewString()
	c.setID(&item, id)
	if _, err := db.Collection(c.name).InsertOne(ctx, item); err != nil {
		c.tracker.ReportFailure(err)
		return "", err
	}
	c.tracker.ReportSuccess()
	return id, nil
}

// Update applies a partial update to the document with the given id.
// Offline mode reports optimistic success; an uninitialized handle reports
// failure because nothing was, or will be, written. Updating an id that does
// not exist is not a remote error but still returns false.
func (c *Collection[T]) Update(ctx context.Context, id string, changes any) bool {
	db, offline := c.handle()
	if offline {
		return true
	}
	if db == nil {
		return false
	}

	res, err := db.Collection(c.name).UpdateByID(ctx, id, bson.D{{Key: "$set", Value: changes}})
	if err != nil {
		slog.Warn("update failed", "collection", c.name, "id", id, "error", err)
		c.tracker.ReportFailure(err)
		return false
	}
	c.tracker.ReportSuccess()
	return res.MatchedCount > 0
}

// Delete removes the document with the given id. Same offline semantics as
// Update, including false for an id that does not exist.
func (c *Collection[T]) Delete(ctx context.Context, id string) bool {
	db, offline := c.handle()
	if offline {
		return true
	}
	if db == nil {
		return false
	}

	res, err := db.Collection(c.name).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		slog.Warn("delete failed", "collection", c.name, "id", id, "error", err)
		c.tracker.ReportFailure(err)
		return false
	}
	c.tracker.ReportSuccess()
	return res.DeletedCount > 0
}

func (c *Collection[T]) find(ctx context.Context, db *mongo.Database, filter any, opts *options.FindOptions) ([]T, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = db.Collection(c.name).Find(ctx, filter, opts)
	} else {
		cur, err = db.Collection(c.name).Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) sampleByID(id string) *T {
	for _, item := range c.samples() {
		if c.id(&item) == id {
			return &item
		}
	}
	return nil
}

func filterItems[T any](items []T, match func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(&item) {
			out = append(out, item)
		}
	}
	return out
}
