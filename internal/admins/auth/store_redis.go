// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/navigant/backoffice/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] with INCR + EXPIRE.
type RedisAttemptLimiter struct {
	client redis.UniversalClient
	window time.Duration
}

// NewRedisAttemptLimiter creates a limiter whose counters expire after window.
func NewRedisAttemptLimiter(client redis.UniversalClient, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, window: window}
}

func attemptKey(email string) string {
	return constants.RedisPrefixLoginAttempts + NormalizeEmail(email)
}

/*
Failures reads the counter and its remaining TTL in one round trip.

Returns:
  - int: Failures inside the window (0 when the key is absent)
  - time.Duration: Remaining TTL
  - error: Connectivity errors
*/
func (limiter *RedisAttemptLimiter) Failures(ctx context.Context, email string) (int, time.Duration, error) {
	key := attemptKey(email)

	pipe := limiter.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	raw, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("redis_login_attempts_corrupt: %w", err)
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = limiter.window
	}
	return count, ttl, nil
}

/*
RecordFailure increments the counter and refreshes its expiry.
*/
func (limiter *RedisAttemptLimiter) RecordFailure(ctx context.Context, email string) error {
	key := attemptKey(email)

	pipe := limiter.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, limiter.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}
	return nil
}

/*
Reset deletes the counter.
*/
func (limiter *RedisAttemptLimiter) Reset(ctx context.Context, email string) error {
	if err := limiter.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_reset_failed: %w", err)
	}
	return nil
}
