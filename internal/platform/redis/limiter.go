// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package redis

import (
	stdctx "context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
)

// WindowLimiter is a fixed-window request counter shared through Redis.
//
// Each client key gets one counter per window; the first hit sets its expiry.
type WindowLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

// NewWindowLimiter allows limit requests per window for each key.
func NewWindowLimiter(client redis.Cmdable, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: constants.RedisPrefixRateLimit,
	}
}

// Allow implements middleware.Limiter.
func (limiter *WindowLimiter) Allow(context stdctx.Context, key string) (bool, time.Duration, error) {
	redisKey := limiter.prefix + key

	var count *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := limiter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(context, redisKey)
		pipe.ExpireNX(context, redisKey, limiter.window)
		ttl = pipe.PTTL(context, redisKey)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("redis: rate limit window: %w", err)
	}

	if count.Val() <= limiter.limit {
		return true, 0, nil
	}

	retryAfter := ttl.Val()
	if retryAfter <= 0 {
		retryAfter = limiter.window
	}
	return false, retryAfter, nil
}
