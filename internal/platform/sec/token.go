// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, cookie signing) from
// the domain logic. The session cookie never carries session data, only an
// opaque identifier wrapped in a signed, expiring token.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tampered, expired or malformed session tokens.
var ErrInvalidToken = errors.New("sec: invalid session token")

// SessionClaims is the payload of the session cookie token.
//
// The session identifier is carried in the standard 'jti' claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionTokens signs and verifies session identifiers using HS256.
type SessionTokens struct {
	secret []byte
	issuer string
}

// NewSessionTokens creates a new [SessionTokens] keyed by secret.
func NewSessionTokens(secret, issuer string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), issuer: issuer}
}

// Sign wraps a session identifier into a token that expires after timeToLive.
func (tokens *SessionTokens) Sign(sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    tokens.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(tokens.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token and returns the session identifier.
func (tokens *SessionTokens) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return tokens.secret, nil
	}, jwt.WithIssuer(tokens.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.ID, nil
}
