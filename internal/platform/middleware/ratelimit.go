// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. The server runs two:
// a global one and a stricter one in front of login and register.
type IPRateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewIPRateLimiter starts a janitor that drops idle buckets until ctx ends.
func NewIPRateLimiter(ctx context.Context, rps float64, burst int) *IPRateLimiter {
	limiter := &IPRateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				limiter.evict(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// Wait reports how long ip must wait before its next request is admitted.
// Zero means the request is admitted now and a token is spent.
func (limiter *IPRateLimiter) Wait(ip string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, ok := limiter.buckets[ip]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.buckets[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Duration(math.MaxInt64)
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	return delay
}

func (limiter *IPRateLimiter) evict(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, entry := range limiter.buckets {
		if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.buckets, ip)
		}
	}
}

// Handler rejects over-budget requests with 429 RATE_LIMITED and a
// Retry-After of whole seconds.
func (limiter *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if wait := limiter.Wait(RealIP(request), time.Now()); wait > 0 {
			respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds(wait)))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func retryAfterSeconds(wait time.Duration) int {
	const ceiling = int(time.Hour / time.Second)
	if wait >= time.Hour {
		return ceiling
	}
	return max(1, int(math.Ceil(wait.Seconds())))
}
