package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"parkmonitor/internal/models"
)

// QualityRateCache keeps computed quality-rate reports in redis for a short
// TTL; the report is the widest join in the system and tolerates slightly
// stale results.
type QualityRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQualityRateCache returns redis-backed cache.
func NewQualityRateCache(client *redis.Client, ttl time.Duration) *QualityRateCache {
	return &QualityRateCache{client: client, ttl: ttl}
}

func (c *QualityRateCache) key(days int) string {
	return fmt.Sprintf("reports:quality-rate:%d", days)
}

// Get returns the cached report for the window, or ok=false on miss or any
// redis failure.
func (c *QualityRateCache) Get(ctx context.Context, days int) ([]models.DeviceQualityRate, bool) {
	raw, err := c.client.Get(ctx, c.key(days)).Result()
	if err != nil {
		return nil, false
	}
	var report []models.DeviceQualityRate
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, false
	}
	return report, true
}

// Save caches the report; failures are swallowed, the cache is best effort.
func (c *QualityRateCache) Save(ctx context.Context, days int, report []models.DeviceQualityRate) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(days), data, c.ttl)
}
