package database

import (
	"context"
	"os"
	"testing"
	"time"

	"mongolshop/internal/connectivity"
)

// unreachableURI fails fast so exhaustion tests stay quick.
const unreachableURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

func newTracker() *connectivity.Tracker {
	return connectivity.New(context.Background(), connectivity.NewMemoryStore())
}

func TestHandleExhaustsAttemptsAndLatchesOffline(t *testing.T) {
	tracker := newTracker()
	acc := NewAccessor(unreachableURI, "mongolshop_test", tracker)

	for i := 0; i < maxInitAttempts; i++ {
		if db := acc.Handle(); db != nil {
			t.Fatalf("attempt %d: expected nil handle", i+1)
		}
	}
	if !tracker.Offline() {
		t.Error("tracker should be offline after failed attempts")
	}

	// Exhausted: further calls return nil without a new attempt.
	start := time.Now()
	if db := acc.Handle(); db != nil {
		t.Error("expected nil handle after exhaustion")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("exhausted Handle took %v, should not retry the network", elapsed)
	}

	snap := tracker.Snapshot()
	if snap.LastError == "" {
		t.Error("tracker should record the last error")
	}
}

func TestReconnectResetsAttemptCounter(t *testing.T) {
	tracker := newTracker()
	acc := NewAccessor(unreachableURI, "mongolshop_test", tracker)

	for i := 0; i < maxInitAttempts; i++ {
		acc.Handle()
	}

	before := tracker.Snapshot().ConnectionAttempts
	if acc.Reconnect(context.Background()) {
		t.Fatal("reconnect against an unreachable server should fail")
	}
	after := tracker.Snapshot()
	if after.ConnectionAttempts != before+1 {
		t.Errorf("ConnectionAttempts = %d, want %d", after.ConnectionAttempts, before+1)
	}
	if !after.IsOfflineMode {
		t.Error("still unreachable, should remain offline")
	}
}

// testMongoURI returns the URI for integration tests, skipping when no
// server is reachable.
func testMongoURI(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	tracker := newTracker()
	acc := NewAccessor(uri, "mongolshop_test", tracker)
	defer acc.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := acc.Probe(ctx); err != nil {
		t.Skipf("skipping integration test: MongoDB not reachable: %v", err)
	}
	return uri
}

func TestHandleConnectsAndSeeds(t *testing.T) {
	uri := testMongoURI(t)

	tracker := newTracker()
	acc := NewAccessor(uri, "mongolshop_seed_test", tracker)
	defer acc.Close(context.Background())

	db := acc.Handle()
	if db == nil {
		t.Fatal("expected a live handle")
	}
	if tracker.Offline() {
		t.Error("tracker should be online after a successful connect")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// idempotent on populated collections
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	count, err := db.Collection(StoresCollection).EstimatedDocumentCount(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count == 0 {
		t.Error("stores collection is empty after seeding")
	}

	t.Cleanup(func() {
		db.Drop(context.Background())
	})
}
