// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package connectivity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// statusKey is the Valkey key holding the JSON-serialized status record.
const statusKey = "connectivity:status"

// ValkeyStore persists the tracker status in Valkey.
type ValkeyStore struct {
	client *redis.Client
}

// NewValkeyStore returns a status store backed by the given Valkey client.
func NewValkeyStore(client *redis.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

// Load reads the persisted status. A malformed record is discarded rather
// than trusted — the caller falls back to the optimistic default.
func (s *ValkeyStore) Load(ctx context.Context) (*Status, error) {
	payload, err := s.client.Get(ctx, statusKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("connectivity status get: %w", err)
	}

	var st Status
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("connectivity status unmarshal: %w", err)
	}
	return &st, nil
}

// Save writes the status record. The record has no TTL — last-known status
// survives restarts indefinitely.
func (s *ValkeyStore) Save(ctx context.Context, st Status) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("connectivity status marshal: %w", err)
	}
	if err := s.client.Set(ctx, statusKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("connectivity status set: %w", err)
	}
	return nil
}

// MemoryStore is an in-process StatusStore for tests and for running
// without Valkey.
type MemoryStore struct {
	saved *Status
}

// NewMemoryStore returns an empty in-memory status store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load returns the last saved status, or nil if nothing was saved.
func (m *MemoryStore) Load(context.Context) (*Status, error) {
	if m.saved == nil {
		return nil, nil
	}
	st := *m.saved
	return &st, nil
}

// Save keeps a copy of the status in memory.
func (m *MemoryStore) Save(_ context.Context, st Status) error {
	m.saved = &st
	return nil
}
