package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krm/catalog-api/internal/core/ports"
)

const keyPrefix = "authfail"

var _ ports.AttemptThrottle = (*FailureThrottle)(nil)

// FailureThrottle counts failed logins per submitted username in a fixed
// window. Key format: authfail:<username>
type FailureThrottle struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

func NewFailureThrottle(client *redis.Client, maxFailures int, window time.Duration) *FailureThrottle {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &FailureThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Blocked reports whether username reached the failure limit and how long
// until the window closes.
func (t *FailureThrottle) Blocked(ctx context.Context, username string) (bool, time.Duration, error) {
	key := t.key(username)
	n, err := t.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("throttle get: %w", err)
	}
	if n < t.maxFailures {
		return false, 0, nil
	}

	ttl, err := t.client.TTL(ctx, key).Result()
	if err != nil {
		return true, t.window, fmt.Errorf("throttle ttl: %w", err)
	}
	if ttl <= 0 {
		ttl = t.window
	}
	return true, ttl, nil
}

// RecordFailure increments the counter; the first failure opens the window.
func (t *FailureThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

func (t *FailureThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *FailureThrottle) key(username string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, username)
}
