// latestcache wraps the Postgres ServiceLatest projection with a
// write-through Redis cache, grounded in the teacher's redis_queue.go use
// of go-redis/v9 (swapped here from a work queue to a simple key/value
// cache, since the core has no distributed-agent queue to carry over).
package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"svctopo/internal/domain"
)

const latestCacheTTL = 10 * time.Minute

// LatestCache decorates a Store with a Redis read-through/write-through
// cache for ServiceLatest, so GET /api/services/diagram/:id (the
// out-of-scope UI's polling path) doesn't round-trip Postgres on every
// request while the scheduler is updating rows every few seconds.
type LatestCache struct {
	*Store
	rdb *redis.Client
	log *slog.Logger
}

func NewLatestCache(store *Store, rdb *redis.Client, log *slog.Logger) *LatestCache {
	return &LatestCache{Store: store, rdb: rdb, log: log}
}

func cacheKey(serviceID int) string {
	return "svctopo:latest:" + strconv.Itoa(serviceID)
}

// UpdateLatest satisfies runner.SpecStore: writes Postgres first (the
// durable record), then best-effort refreshes the cache entry. A cache
// write failure is logged, never returned — the Postgres write already
// succeeded and is what invariant 2 depends on.
func (c *LatestCache) UpdateLatest(ctx context.Context, serviceID int, status domain.ServiceStatus, checkedAt time.Time) error {
	if err := c.Store.UpdateLatest(ctx, serviceID, status, checkedAt); err != nil {
		return err
	}

	latest := domain.ServiceLatest{ServiceID: serviceID, CurrentStatus: status, LastCheckedAt: &checkedAt}
	payload, err := json.Marshal(latest)
	if err != nil {
		c.log.Warn("latestcache: marshal failed", "service_id", serviceID, "error", err)
		return nil
	}
	if err := c.rdb.Set(ctx, cacheKey(serviceID), payload, latestCacheTTL).Err(); err != nil {
		c.log.Warn("latestcache: write-through failed", "service_id", serviceID, "error", err)
	}
	return nil
}

// GetLatest reads through the cache, falling back to Postgres on a miss
// or a Redis error and repopulating the cache on that path.
func (c *LatestCache) GetLatest(ctx context.Context, serviceID int) (domain.ServiceLatest, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(serviceID)).Bytes()
	if err == nil {
		var latest domain.ServiceLatest
		if jerr := json.Unmarshal(raw, &latest); jerr == nil {
			return latest, nil
		}
	}

	latest, err := c.Store.GetLatest(ctx, serviceID)
	if err != nil {
		return domain.ServiceLatest{}, err
	}

	if payload, jerr := json.Marshal(latest); jerr == nil {
		if serr := c.rdb.Set(ctx, cacheKey(serviceID), payload, latestCacheTTL).Err(); serr != nil {
			c.log.Warn("latestcache: repopulate failed", "service_id", serviceID, "error", serr)
		}
	}
	return latest, nil
}

func (c *LatestCache) Close() {
	c.Store.Close()
	if err := c.rdb.Close(); err != nil {
		c.log.Warn("latestcache: redis close failed", "error", err)
	}
}
