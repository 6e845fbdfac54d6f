// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"time"
)

// Data is the serialized key/value content of one session.
//
// Values are kept as raw JSON so that the store never needs to know the
// concrete types written by handlers.
type Data map[string]json.RawMessage

// Store defines the persistence contract for server-side session data.
//
// # Semantics
//
//   - Load returns an empty [Data] (and no error) for unknown or expired ids.
//   - Any other error means the backend is unavailable or the payload is corrupt;
//     callers must treat the session as empty.
type Store interface {
	Load(context context.Context, sessionID string) (Data, error)
	Save(context context.Context, sessionID string, data Data, timeToLive time.Duration) error
	Destroy(context context.Context, sessionID string) error
}
