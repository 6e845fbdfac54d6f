// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// memorySweepInterval bounds how often Save scans for expired entries.
const memorySweepInterval = time.Minute

// MemoryStore is a process-local [Store] used in development and tests.
//
// Expired entries are dropped when loaded, and at most once per
// memorySweepInterval a Save scans the whole map, so abandoned sessions do
// not accumulate.
//
// # Concurrency
//
// All methods are safe for concurrent use. Payloads are copied on the way in
// and out so callers cannot mutate stored sessions through shared maps.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load implements [Store].
func (store *MemoryStore) Load(_ context.Context, sessionID string) (Data, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, found := store.entries[sessionID]
	if !found {
		return Data{}, nil
	}

	if !store.now().Before(entry.expiresAt) {
		delete(store.entries, sessionID)
		return Data{}, nil
	}

	return copyData(entry.data), nil
}

// Save implements [Store].
func (store *MemoryStore) Save(_ context.Context, sessionID string, data Data, timeToLive time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	if !now.Before(store.nextSweep) {
		store.sweep(now)
		store.nextSweep = now.Add(memorySweepInterval)
	}

	store.entries[sessionID] = memoryEntry{
		data:      copyData(data),
		expiresAt: now.Add(timeToLive),
	}
	return nil
}

// sweep drops every expired entry. The caller holds mu.
func (store *MemoryStore) sweep(now time.Time) {
	for sessionID, entry := range store.entries {
		if !now.Before(entry.expiresAt) {
			delete(store.entries, sessionID)
		}
	}
}

// Destroy implements [Store].
func (store *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, sessionID)
	return nil
}

func copyData(data Data) Data {
	clone := make(Data, len(data))
	for key, value := range data {
		clone[key] = append(json.RawMessage(nil), value...)
	}
	return clone
}
