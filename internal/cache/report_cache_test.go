package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkmonitor/internal/models"
)

func setupCache(t *testing.T) *QualityRateCache {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewQualityRateCache(client, time.Minute)
}

func TestQualityRateCacheRoundTrip(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, 90)
	assert.False(t, ok)

	report := []models.DeviceQualityRate{
		{DeviceID: 1, DeviceType: "air_quality", AreaName: "North valley", TotalCount: 3, QualifiedCount: 2, QualifiedRate: 66.67},
	}
	c.Save(ctx, 90, report)

	cached, ok := c.Get(ctx, 90)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, report[0], cached[0])

	// windows cache independently
	_, ok = c.Get(ctx, 30)
	assert.False(t, ok)
}
