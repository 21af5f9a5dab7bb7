package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unibites/campus-bites/internal/models"
)

// RestaurantCache keeps the top-rated listing in Redis so the hot public
// endpoint does not hit the database on every request. Entries are
// invalidated whenever a rating aggregate or approval flag changes.
type RestaurantCache struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

func NewRestaurantCache(redisURL string, ttl time.Duration) (*RestaurantCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RestaurantCache{
		client: client,
		ttl:    ttl,
		ctx:    ctx,
	}, nil
}

// NewRestaurantCacheWithClient wraps an existing client, sharing the
// connection with the rate limiter.
func NewRestaurantCacheWithClient(client *redis.Client, ttl time.Duration) *RestaurantCache {
	return &RestaurantCache{
		client: client,
		ttl:    ttl,
		ctx:    context.Background(),
	}
}

func topRatedKey(limit int) string {
	return fmt.Sprintf("restaurants:top-rated:%d", limit)
}

// GetTopRated returns the cached listing and whether the key was warm.
func (c *RestaurantCache) GetTopRated(limit int) ([]models.Restaurant, bool, error) {
	data, err := c.client.Get(c.ctx, topRatedKey(limit)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var restaurants []models.Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, false, err
	}

	return restaurants, true, nil
}

func (c *RestaurantCache) SetTopRated(limit int, restaurants []models.Restaurant) error {
	data, err := json.Marshal(restaurants)
	if err != nil {
		return err
	}

	return c.client.Set(c.ctx, topRatedKey(limit), data, c.ttl).Err()
}

// InvalidateTopRated drops every cached top-rated listing, regardless of
// the limit it was stored under.
func (c *RestaurantCache) InvalidateTopRated() error {
	iter := c.client.Scan(c.ctx, 0, "restaurants:top-rated:*", 0).Iterator()
	for iter.Next(c.ctx) {
		if err := c.client.Del(c.ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RestaurantCache) Close() error {
	return c.client.Close()
}
