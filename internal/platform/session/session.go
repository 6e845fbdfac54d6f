// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session provides server-side, cookie-referenced session state.

Every request gets its own [*Session] handle, attached to the request context
by [Manager.Load]. Handlers read and write it explicitly and persist changes
with [Manager.Commit]. There is no package-level session state.

Architecture:

  - Store: pluggable persistence (Redis in production, memory in tests).
  - Session: per-request view over the stored [Data], tracking modifications.
  - Manager: cookie handling, signing and the load/commit lifecycle.
*/
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/sec"
)

// Record is the identity stored under the "info" key once a user logs in.
type Record struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  sec.Role `json:"role"`
}

// Session is the per-request handle over one stored session.
//
// # Concurrency
//
// A Session belongs to a single request and is not safe for concurrent use.
type Session struct {
	id         string
	values     Data
	timeToLive time.Duration
	dirty      bool
	cleared    bool
	loadErr    error
}

// New returns an empty, unsaved session.
func New() *Session {
	return &Session{values: Data{}, timeToLive: constants.SessionTTL}
}

// ID returns the session identifier, or an empty string for a new session.
func (session *Session) ID() string { return session.id }

// Err returns the error encountered while loading the session, if any.
// A session that failed to load behaves as empty.
func (session *Session) Err() error {
	if session == nil {
		return nil
	}
	return session.loadErr
}

// Get decodes the value stored under key into dest. It reports whether the key existed.
func (session *Session) Get(key string, dest any) (bool, error) {
	raw, found := session.values[key]
	if !found {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("session: decode %q: %w", key, err)
	}
	return true, nil
}

// Set encodes value and stores it under key.
func (session *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", key, err)
	}

	session.values[key] = raw
	session.dirty = true
	return nil
}

// Delete removes key from the session.
func (session *Session) Delete(key string) {
	if _, found := session.values[key]; found {
		delete(session.values, key)
		session.dirty = true
	}
}

// Clear drops every value and marks the stored session for destruction.
// The next commit issues a fresh identifier if anything is written afterwards.
func (session *Session) Clear() {
	session.values = Data{}
	session.cleared = true
	session.dirty = true
}

// SetExpiry changes how long the session lives after the next commit.
func (session *Session) SetExpiry(timeToLive time.Duration) {
	session.timeToLive = timeToLive
	session.dirty = true
}

// Expiry returns the lifetime applied on commit.
func (session *Session) Expiry() time.Duration { return session.timeToLive }

/*
Truthy reports whether key holds a non-empty value. A nil session holds nothing.

Null, false, zero, the empty string, the empty list and the empty object all
count as empty.
*/
func (session *Session) Truthy(key string) bool {
	if session == nil {
		return false
	}

	raw, found := session.values[key]
	if !found {
		return false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case float64:
		return typed != 0
	case string:
		return typed != ""
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	default:
		return true
	}
}

// Info returns the logged-in user record, if any.
func (session *Session) Info() (Record, bool) {
	if !session.Truthy(constants.SessionKeyInfo) {
		return Record{}, false
	}

	var record Record
	if _, err := session.Get(constants.SessionKeyInfo, &record); err != nil {
		return Record{}, false
	}
	return record, true
}

// # Context Plumbing

type contextKey struct{}

// WithSession returns a new context carrying the session handle.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// FromContext returns the session handle attached by [Manager.Load], or nil.
func FromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(contextKey{}).(*Session)
	return session
}
