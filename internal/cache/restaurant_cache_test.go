package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibites/campus-bites/internal/models"
)

func setupCache(t *testing.T) (*RestaurantCache, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRestaurantCacheWithClient(client, time.Minute), server
}

func TestRestaurantCache_MissThenHit(t *testing.T) {
	c, _ := setupCache(t)

	_, hit, err := c.GetTopRated(10)
	assert.NoError(t, err)
	assert.False(t, hit)

	restaurants := []models.Restaurant{
		{ID: "r1", Name: "Best Cafe", AverageRating: 4.8, TotalReviews: 12},
		{ID: "r2", Name: "Mid Cafe", AverageRating: 3.5, TotalReviews: 4},
	}
	require.NoError(t, c.SetTopRated(10, restaurants))

	cached, hit, err := c.GetTopRated(10)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, cached, 2)
	assert.Equal(t, "Best Cafe", cached[0].Name)
	assert.Equal(t, 4.8, cached[0].AverageRating)
}

func TestRestaurantCache_KeysArePerLimit(t *testing.T) {
	c, _ := setupCache(t)

	require.NoError(t, c.SetTopRated(5, []models.Restaurant{{ID: "r1"}}))

	_, hit, err := c.GetTopRated(10)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestRestaurantCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)

	require.NoError(t, c.SetTopRated(5, []models.Restaurant{{ID: "r1"}}))
	require.NoError(t, c.SetTopRated(10, []models.Restaurant{{ID: "r1"}, {ID: "r2"}}))

	require.NoError(t, c.InvalidateTopRated())

	_, hit, err := c.GetTopRated(5)
	assert.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = c.GetTopRated(10)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestRestaurantCache_EntriesExpire(t *testing.T) {
	c, server := setupCache(t)

	require.NoError(t, c.SetTopRated(10, []models.Restaurant{{ID: "r1"}}))
	server.FastForward(2 * time.Minute)

	_, hit, err := c.GetTopRated(10)
	assert.NoError(t, err)
	assert.False(t, hit)
}
