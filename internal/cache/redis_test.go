package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestinationsKey(t *testing.T) {
	assert.Equal(t, "cache:destinations:featured", destinationsKey("featured"))
	assert.Equal(t, "cache:destinations:all", destinationsKey("all"))
}

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(config.RedisConfig{Addr: addr}, time.Minute)
	defer c.Close()
	require.NoError(t, c.Ping(ctx))

	key := "test-" + time.Now().Format("150405.000000")
	defer c.client.Del(ctx, destinationsKey(key))

	miss, err := c.GetDestinations(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, miss)

	list := []domain.Destination{{ID: 2, Name: "Maldives", Location: "Indian Ocean", PriceCents: 250000, Featured: true}}
	require.NoError(t, c.SetDestinations(ctx, key, list))

	hit, err := c.GetDestinations(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, list, hit)

	ttl, err := c.client.TTL(ctx, destinationsKey(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
