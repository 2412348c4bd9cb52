// Package cache holds the cached listing view of the memo collection.
// A successful create, update, or delete marks the listing stale by
// dropping the cached entry; the next listing read repopulates it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/models"
)

// listKey is the collection-root key the listing view is cached under.
const listKey = "memos:all"

const defaultTTL = 5 * time.Minute

type MemoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and verifies the connection. addr may point at any
// reachable redis instance; password may be empty.
func New(ctx context.Context, addr, password string) (*MemoCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &MemoCache{rdb: rdb, ttl: defaultTTL}, nil
}

// GetList returns the cached listing, or false when the cache is absent,
// stale, or disabled. Cache failures degrade to a miss.
func (c *MemoCache) GetList(ctx context.Context) ([]models.Memo, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("Failed to read memo list cache")
		}
		return nil, false
	}

	var memos []models.Memo
	if err := json.Unmarshal(data, &memos); err != nil {
		logrus.WithError(err).Warn("Failed to decode memo list cache")
		return nil, false
	}
	return memos, true
}

// SetList stores the listing view. Failures are logged and ignored; the
// cache is an optimization, not a source of truth.
func (c *MemoCache) SetList(ctx context.Context, memos []models.Memo) {
	if c == nil {
		return
	}

	data, err := json.Marshal(memos)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode memo list cache")
		return
	}
	if err := c.rdb.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to write memo list cache")
	}
}

// Invalidate drops the cached listing after a mutation.
func (c *MemoCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, listKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate memo list cache")
	}
}

func (c *MemoCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// HealthCheck reports whether redis is reachable.
func (c *MemoCache) HealthCheck(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
