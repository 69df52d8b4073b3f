// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
)

// # Rate Limiting

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// limiter keeps one token bucket per client IP.
type limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func (limiter *limiter) allow(ip string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, ok := limiter.visitors[ip]
	if !ok {
		entry = &visitor{bucket: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.visitors[ip] = entry
	}
	entry.lastSeen = now
	return entry.bucket.AllowN(now, 1)
}

func (limiter *limiter) evict(idle time.Duration, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, entry := range limiter.visitors {
		if now.Sub(entry.lastSeen) > idle {
			delete(limiter.visitors, ip)
		}
	}
}

/*
RateLimit answers 429 RATE_LIMITED once a client IP exceeds rps sustained or
burst at once.

Idle buckets are evicted on [constants.RateLimitCleanupInterval] until context
is cancelled. Every call owns its own buckets.
*/
func RateLimit(context context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	buckets := &limiter{visitors: map[string]*visitor{}, rps: rate.Limit(rps), burst: burst}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				buckets.evict(constants.RateLimitClientTTL, now)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !buckets.allow(ClientIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited(1))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
