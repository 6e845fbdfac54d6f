// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, session lifetimes and the well-known
paths that the access gate and the login flow agree on.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie naming, session keys and time-to-live values.
  - Routes: Login landing pages shared by handlers and middleware.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "rmc"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// SessionCookieName carries the signed session identifier.
	SessionCookieName = "rmc_session"

	// SessionTTL is the lifetime of a logged-in session.
	SessionTTL = 24 * time.Hour

	// CaptchaTTL is the lifetime of a session that only holds a verification code.
	CaptchaTTL = 60 * time.Second

	// SessionKeyInfo holds the session record of a logged-in user.
	SessionKeyInfo = "info"

	// SessionKeyCaptcha holds the last verification code shown to the client.
	SessionKeyCaptcha = "captcha"

	// CSRFCookieName and CSRFFieldName implement the double-submit token.
	CSRFCookieName = "csrftoken"
	CSRFFieldName  = "csrfmiddlewaretoken"
	CSRFHeaderName = "X-CSRFToken"

	// CSRFTokenTTL is the lifetime of the CSRF cookie.
	CSRFTokenTTL = 365 * 24 * time.Hour
)

// # Routes

const (
	LoginPath             = "/login/"
	StaffLoginPath        = "/staff-login/"
	RegistrationPath      = "/registration/"
	StaffRegistrationPath = "/staff-registration/"
	CaptchaPath           = "/captcha/"
	AdminPath             = "/admin/"

	StudentHomePath = "/student-info/"
	StaffHomePath   = "/data-visualisation/"
)

// # Pagination

const (
	// DefaultPageSize is the number of rows rendered per listing page.
	DefaultPageSize = 10
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData   = "data"
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldTips   = "tips"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "session:"
)
