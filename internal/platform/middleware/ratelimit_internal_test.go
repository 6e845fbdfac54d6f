// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitors_ReserveAndSweep(t *testing.T) {
	set := newVisitors(1, 1)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	allowed, _ := set.reserve("192.0.2.1", now)
	assert.True(t, allowed)

	allowed, wait := set.reserve("192.0.2.1", now)
	assert.False(t, allowed)
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.01)

	allowed, _ = set.reserve("192.0.2.1", now.Add(time.Second))
	assert.True(t, allowed)

	set.reserve("192.0.2.2", now.Add(time.Minute))
	set.sweep(now.Add(2*time.Minute), 90*time.Second)
	assert.Equal(t, 1, set.size())
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, "1", retryAfter(0))
	assert.Equal(t, "1", retryAfter(200*time.Millisecond))
	assert.Equal(t, "3", retryAfter(2100*time.Millisecond))
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"))
	assert.True(t, validRequestID("upstream-id"))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID("has space"))
	assert.False(t, validRequestID("line\nbreak"))
	assert.False(t, validRequestID(string(make([]byte, 65))))
}
