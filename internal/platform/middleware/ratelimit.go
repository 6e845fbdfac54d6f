// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/rmc/internal/platform/constants"
)

// visitor is the token bucket of one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors tracks one bucket per client IP.
type visitors struct {
	mu      sync.Mutex
	clients map[string]*visitor
	limit   rate.Limit
	burst   int
}

func newVisitors(requestsPerSecond float64, burst int) *visitors {
	return &visitors{
		clients: make(map[string]*visitor),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// reserve takes a token for ip and reports how long the client must wait
// when none is left.
func (set *visitors) reserve(ip string, now time.Time) (bool, time.Duration) {
	set.mu.Lock()
	defer set.mu.Unlock()

	client, found := set.clients[ip]
	if !found {
		client = &visitor{limiter: rate.NewLimiter(set.limit, set.burst)}
		set.clients[ip] = client
	}
	client.lastSeen = now

	if client.limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := client.limiter.ReserveN(now, 1)
	wait := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return false, wait
}

// sweep forgets clients idle for longer than ttl.
func (set *visitors) sweep(now time.Time, ttl time.Duration) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, client := range set.clients {
		if now.Sub(client.lastSeen) > ttl {
			delete(set.clients, ip)
		}
	}
}

func (set *visitors) size() int {
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.clients)
}

/*
RateLimit limits requests per client IP with a token bucket.

Rejected requests get 429 and a Retry-After header in whole seconds. Idle
clients are forgotten by a sweeper that stops when ctx is cancelled.
*/
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	set := newVisitors(requestsPerSecond, burst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				set.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, wait := set.reserve(RealIP(request), time.Now())
			if !allowed {
				writer.Header().Set("Retry-After", retryAfter(wait))
				writeError(writer, http.StatusTooManyRequests, "Too many requests. Please slow down.")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// retryAfter rounds wait up to whole seconds, at least one.
func retryAfter(wait time.Duration) string {
	seconds := max(1, int(math.Ceil(wait.Seconds())))
	return strconv.Itoa(seconds)
}
