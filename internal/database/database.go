// Package database manages the MongoDB connection to the remote stores
// database. The handle is created lazily with a bounded number of
// initialization attempts; once the bound is exhausted the application
// latches into offline mode until an explicit reconnect. A background
// watcher keeps the connectivity tracker in sync with actual reachability.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mongolshop/internal/connectivity"
)

const (
	// maxInitAttempts bounds lazy initialization retries.
	maxInitAttempts = 3
	// retryDelay is the fixed delay before a scheduled re-initialization.
	retryDelay = 2 * time.Second
	// connectTimeout bounds a single initialization attempt.
	connectTimeout = 5 * time.Second
)

// Collection names in the remote database.
const (
	StoresCollection     = "stores"
	CategoriesCollection = "categories"
	ReviewsCollection    = "reviews"
	UsersCollection      = "users"
	SettingsCollection   = "settings"
)

// Accessor lazily produces the shared database handle.
type Accessor struct {
	mu       sync.Mutex
	uri      string
	dbName   string
	client   *mongo.Client
	db       *mongo.Database
	attempts int
	tracker  *connectivity.Tracker
}

// NewAccessor creates an accessor for the given MongoDB URI and database
// name. No connection is made until the first Handle call.
func NewAccessor(uri, dbName string, tracker *connectivity.Tracker) *Accessor {
	return &Accessor{uri: uri, dbName: dbName, tracker: tracker}
}

// Handle returns the shared database handle, initializing it on first use.
// Returns nil while the connection cannot be established; under the attempt
// bound a delayed retry is scheduled, beyond it the accessor stays nil (and
// the tracker offline) until Reconnect resets the counter.
func (a *Accessor) Handle() *mongo.Database {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db != nil {
		return a.db
	}
	if a.attempts >= maxInitAttempts {
		return nil
	}

	if err := a.initLocked(); err != nil {
		a.attempts++
		slog.Warn("database: initialization failed",
			"attempt", a.attempts,
			"max", maxInitAttempts,
			"error", err,
		)
		a.tracker.ReportFailure(err)
		if a.attempts < maxInitAttempts {
			time.AfterFunc(retryDelay, func() { a.Handle() })
		} else {
			slog.Error("database: initialization attempts exhausted, staying offline until explicit reconnect")
		}
		return nil
	}

	a.attempts = 0
	a.tracker.ReportSuccess()
	slog.Info("database connected", "database", a.dbName)
	return a.db
}

// initLocked connects and verifies the connection with a ping.
// Callers must hold a.mu.
func (a *Accessor) initLocked() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.uri))
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("database ping: %w", err)
	}

	a.client = client
	a.db = client.Database(a.dbName)
	return nil
}

// Probe is the low-level connectivity check used by the tracker: a ping
// against the primary, establishing the connection first if needed.
func (a *Accessor) Probe(ctx context.Context) error {
	a.mu.Lock()
	client := a.client
	a.mu.Unlock()

	if client == nil {
		a.mu.Lock()
		err := a.initLocked()
		a.mu.Unlock()
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Reconnect resets the bounded attempt counter and runs an explicit
// reconnection attempt through the tracker. Returns true on success.
func (a *Accessor) Reconnect(ctx context.Context) bool {
	a.mu.Lock()
	a.attempts = 0
	a.mu.Unlock()
	return a.tracker.Reconnect(ctx, a.Probe)
}

// Watch periodically probes the database and flips the tracker between
// connected and offline as reachability changes. This is the server-side
// analog of the realtime SDK's reachability listener; it runs until ctx is
// cancelled.
func (a *Accessor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			err := a.Probe(probeCtx)
			cancel()

			wasOffline := a.tracker.Offline()
			if err != nil {
				if !wasOffline {
					slog.Warn("database: reachability lost", "error", err)
				}
				a.tracker.ReportFailure(err)
				continue
			}
			if wasOffline {
				slog.Info("database: reachability restored")
			}
			a.tracker.ReportSuccess()
		}
	}
}

// Close disconnects the underlying client.
func (a *Accessor) Close(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			slog.Warn("database: disconnect failed", "error", err)
		}
		a.client = nil
		a.db = nil
	}
}

// Index names used as hints by the repositories' equality queries. A query
// hinted at a missing index fails, which triggers the full-scan fallback.
const (
	StoreCategoryIndex = "category_1"
	CategoryNameIndex  = "name_1"
	ReviewStoreIndex   = "storeId_1"
	UserEmailIndex     = "email_1"
)

// EnsureIndexes creates the equality-query indexes. Failures are returned
// so the caller can log and continue — missing indexes degrade queries to
// full scans instead of breaking them.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		key        string
	}{
		{StoresCollection, "category"},
		{CategoriesCollection, "name"},
		{ReviewsCollection, "storeId"},
		{UsersCollection, "email"},
	}

	for _, idx := range indexes {
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: idx.key, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("ensure index %s.%s: %w", idx.collection, idx.key, err)
		}
	}
	return nil
}
