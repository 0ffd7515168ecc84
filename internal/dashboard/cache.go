package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "dashboard:stats"

// Cache stores the computed stats payload in Redis so the polling
// dashboard does not re-run the aggregate battery on every request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get loads cached stats. The second return is false on a miss.
func (c *Cache) Get(ctx context.Context) (Stats, bool, error) {
	if c == nil || c.client == nil {
		return Stats{}, false, nil
	}
	payload, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Stats{}, false, nil
		}
		return Stats{}, false, err
	}
	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return Stats{}, false, err
	}
	return stats, true, nil
}

// Set stores stats with the configured TTL.
func (c *Cache) Set(ctx context.Context, stats Stats) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsCacheKey, data, c.ttl).Err()
}
