// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const quotaPrefix = "quota:generate:"

// Quota is a fixed-window counter per user: at most Limit generations in
// each Window. Windows start at the first request after the previous key
// expired.
type Quota struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewQuota returns a quota backed by client. A limit <= 0 disables it.
func NewQuota(client *redis.Client, limit int, window time.Duration) *Quota {
	return &Quota{client: client, limit: int64(limit), window: window}
}

// Allow counts one generation for ownerID and reports whether it is within
// the quota. Callers decide what to do with an error; the count is not
// consumed when Valkey fails.
func (q *Quota) Allow(ctx context.Context, ownerID string) (bool, error) {
	if q == nil || q.limit <= 0 {
		return true, nil
	}

	key := quotaPrefix + ownerID

	pipe := q.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, q.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("quota incr %s: %w", ownerID, err)
	}

	return incr.Val() <= q.limit, nil
}

// Remaining returns how many generations ownerID has left in the current
// window.
func (q *Quota) Remaining(ctx context.Context, ownerID string) (int, error) {
	if q == nil || q.limit <= 0 {
		return -1, nil
	}

	used, err := q.client.Get(ctx, quotaPrefix+ownerID).Int64()
	if err == redis.Nil {
		return int(q.limit), nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota get %s: %w", ownerID, err)
	}
	if used >= q.limit {
		return 0, nil
	}
	return int(q.limit - used), nil
}

// Reset clears ownerID's counter.
func (q *Quota) Reset(ctx context.Context, ownerID string) error {
	if err := q.client.Del(ctx, quotaPrefix+ownerID).Err(); err != nil {
		return fmt.Errorf("quota reset %s: %w", ownerID, err)
	}
	return nil
}
