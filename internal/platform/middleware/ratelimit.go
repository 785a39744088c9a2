// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxutil"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

// Limiter decides whether the client identified by key may proceed.
// When it may not, retryAfter says how long to wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// # Local Token Bucket

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is a per-process token bucket per client key.
type LocalLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

// NewLocalLimiter creates a LocalLimiter. Call [LocalLimiter.Cleanup] in a
// goroutine to evict idle clients.
func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateLimitClient),
	}
}

// Allow implements [Limiter].
func (limiter *LocalLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	clientInfo, found := limiter.clients[key]

	// Initialize a new bucket if this is a fresh client
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.clients[key] = clientInfo
	}

	// Update the activity timestamp
	clientInfo.lastSeen = time.Now()

	reservation := clientInfo.limiter.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}

// Cleanup evicts idle clients until ctx is cancelled.
func (limiter *LocalLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.evictIdle(time.Now())
		case <-ctx.Done():
			return
		}
	}
}

func (limiter *LocalLimiter) evictIdle(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for key, clientInfo := range limiter.clients {
		if now.Sub(clientInfo.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, key)
		}
	}
}

// # Middleware

// RateLimit limits requests per client IP. Proxy headers pick the client
// only when trustProxy is set; see [ClientIP].
//
// A limiter failure (e.g. redis unreachable) lets the request through.
func RateLimit(limiter Limiter, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			allowed, retryAfter, err := limiter.Allow(request.Context(), ClientIP(request, trustProxy))
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "rate_limiter_unavailable",
					slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
