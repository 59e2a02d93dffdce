// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package connectivity tracks whether the remote stores database is
// reachable. Every repository consults the tracker before touching the
// network: in offline mode the remote call is skipped entirely and the
// fixed sample dataset is served instead.
//
// The tracker is an explicit, injectable object rather than a package-level
// singleton so tests can substitute a fake status store. Callers snapshot
// Offline() once at the start of an operation; a concurrent flip by the
// reachability watcher does not affect an in-flight call.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Status is the persisted connection state record.
type Status struct {
	IsConnected              bool   `json:"isConnected"`
	IsOfflineMode            bool   `json:"isOfflineMode"`
	LastError                string `json:"lastError,omitempty"`
	LastAttempt              int64  `json:"lastAttempt"`              // epoch ms
	ConnectionAttempts       int    `json:"connectionAttempts"`       // explicit reconnect attempts
	SuccessfulConnections    int    `json:"successfulConnections"`
	LastSuccessfulConnection int64  `json:"lastSuccessfulConnection"` // epoch ms
}

// defaultStatus is the optimistic state assumed when nothing is persisted:
// connected, online. The first failed call corrects it.
func defaultStatus() Status {
	now := time.Now().UnixMilli()
	return Status{
		IsConnected:              true,
		IsOfflineMode:            false,
		LastAttempt:              now,
		LastSuccessfulConnection: now,
	}
}

// StatusStore persists the tracker state so a process restart keeps the
// last-known status.
type StatusStore interface {
	// Load returns the persisted status, or nil if none has been saved.
	Load(ctx context.Context) (*Status, error)
	// Save replaces the persisted status.
	Save(ctx context.Context, s Status) error
}

// Probe is a low-level connectivity check against the remote database.
type Probe func(ctx context.Context) error

// Tracker is the process-wide connection state record.
type Tracker struct {
	mu     sync.Mutex
	status Status
	store  StatusStore
}

// New creates a tracker, restoring persisted state when available and
// defaulting to the optimistic connected state otherwise.
func New(ctx context.Context, store StatusStore) *Tracker {
	t := &Tracker{status: defaultStatus(), store: store}
	if store == nil {
		return t
	}
	saved, err := store.Load(ctx)
	if err != nil {
		slog.Warn("connectivity: loading persisted status failed", "error", err)
		return t
	}
	if saved != nil {
		t.status = *saved
	}
	return t
}

// Offline reports whether the tracker is in offline mode. Repositories call
// this exactly once per operation, at the start.
func (t *Tracker) Offline() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status.IsOfflineMode
}

// Snapshot returns a copy of the current status record.
func (t *Tracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// ReportSuccess records a successful connectivity probe: connected, online,
// error cleared.
func (t *Tracker) ReportSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now().UnixMilli()
	t.status.IsConnected = true
	t.status.IsOfflineMode = false
	t.status.LastError = ""
	t.status.LastAttempt = now
	t.status.SuccessfulConnections++
	t.status.LastSuccessfulConnection = now
	t.persistLocked()
}

// ReportFailure records a failed probe or initialization error and switches
// to offline mode.
func (t *Tracker) ReportFailure(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.IsConnected = false
	t.status.IsOfflineMode = true
	if err != nil {
		t.status.LastError = err.Error()
	}
	t.status.LastAttempt = time.Now().UnixMilli()
	t.persistLocked()
}

// Reconnect runs an explicit reconnection attempt: the attempt counter is
// incremented, the probe runs, and the matching transition is applied.
// Returns true if the probe succeeded.
func (t *Tracker) Reconnect(ctx context.Context, probe Probe) bool {
	t.mu.Lock()
	t.status.ConnectionAttempts++
	t.persistLocked()
	t.mu.Unlock()

	if probe == nil {
		t.ReportFailure(nil)
		return false
	}
	if err := probe(ctx); err != nil {
		slog.Warn("connectivity: reconnect probe failed", "error", err)
		t.ReportFailure(err)
		return false
	}
	t.ReportSuccess()
	return true
}

// persistLocked saves the current status. Best effort: persistence failures
// are logged, never propagated — losing the record only costs one optimistic
// default on the next start.
func (t *Tracker) persistLocked() {
	if t.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := t.store.Save(ctx, t.status); err != nil {
		slog.Warn("connectivity: persisting status failed", "error", err)
	}
}
