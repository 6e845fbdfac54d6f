// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
	"github.com/taibuivan/rmc/internal/platform/sec"
)

// Manager ties a [Store] to the signed session cookie.
type Manager struct {
	store  Store
	tokens *sec.SessionTokens
	secure bool
}

// NewManager creates a new session [Manager].
//
// # Parameters
//   - store: Backend holding session payloads.
//   - tokens: Signer for the cookie value.
//   - secure: Whether the cookie is restricted to HTTPS.
func NewManager(store Store, tokens *sec.SessionTokens, secure bool) *Manager {
	return &Manager{store: store, tokens: tokens, secure: secure}
}

/*
Load attaches a [*Session] to every request.

Flow:
 1. Read the session cookie and verify its signature and expiry.
 2. Fetch the payload from the store.
 3. On any failure the handle is empty; store errors are kept on the handle
    and logged so downstream checks fail closed.
*/
func (manager *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		session := manager.read(request)
		ctx := WithSession(request.Context(), session)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (manager *Manager) read(request *http.Request) *Session {
	session := New()

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return session
	}

	sessionID, err := manager.tokens.Verify(cookie.Value)
	if err != nil {
		return session
	}

	data, err := manager.store.Load(request.Context(), sessionID)
	if err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_load_failed",
			slog.Any("error", err),
		)
		session.loadErr = err
		return session
	}

	session.id = sessionID
	session.values = data
	return session
}

/*
Commit persists the request's session and refreshes the cookie.

It must be called before the response header is written (in particular
before redirects). Unmodified sessions are left alone.

Returns:
  - error: Store or signing failures
*/
func (manager *Manager) Commit(writer http.ResponseWriter, request *http.Request) error {
	session := FromContext(request.Context())
	if session == nil {
		return errors.New("session: no session in request context")
	}
	return manager.commit(request.Context(), writer, session)
}

func (manager *Manager) commit(context context.Context, writer http.ResponseWriter, session *Session) error {
	if !session.dirty {
		return nil
	}

	// 1. A cleared session never keeps its old identifier
	if session.cleared && session.id != "" {
		if err := manager.store.Destroy(context, session.id); err != nil {
			return err
		}
		session.id = ""
	}

	// 2. Nothing left to store: drop the stored copy and the cookie
	if len(session.values) == 0 {
		if session.id != "" {
			if err := manager.store.Destroy(context, session.id); err != nil {
				return err
			}
			session.id = ""
		}
		manager.expireCookie(writer)
		session.dirty, session.cleared = false, false
		return nil
	}

	if session.id == "" {
		session.id = uuid.NewString()
	}

	// 3. Persist and re-issue the signed cookie with the new lifetime
	if err := manager.store.Save(context, session.id, session.values, session.timeToLive); err != nil {
		return err
	}

	token, err := manager.tokens.Sign(session.id, session.timeToLive)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.timeToLive / time.Second),
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})

	session.dirty, session.cleared = false, false
	return nil
}

func (manager *Manager) expireCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
