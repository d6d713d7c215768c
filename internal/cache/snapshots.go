package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

// Snapshots is a read-through cache for rendered table snapshots. A nil
// *Snapshots is legal and caches nothing; the registry stays correct
// without Redis, just slower for observers.
type Snapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Snapshots {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Snapshots{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl: ttl,
	}
}

// NewWithClient wraps an existing client. Used by tests with miniredis.
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Snapshots{rdb: rdb, ttl: ttl}
}

func snapshotKey(tableID string) string {
	return "poker:snapshot:" + tableID
}

func (c *Snapshots) Put(ctx context.Context, tableID string, payload []byte) error {
	if c == nil {
		return nil
	}
	return c.rdb.Set(ctx, snapshotKey(tableID), payload, c.ttl).Err()
}

func (c *Snapshots) Get(ctx context.Context, tableID string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	payload, err := c.rdb.Get(ctx, snapshotKey(tableID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *Snapshots) Invalidate(ctx context.Context, tableID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, snapshotKey(tableID)).Err()
}

func (c *Snapshots) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
