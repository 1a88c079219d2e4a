package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vrouter:routestate:"

// RouteStateCache shares route states across router instances through
// Redis. Safe to share because the cache is advisory: every read is
// re-validated against the live configuration version, so another
// instance's capture can at worst trigger a fresh resolution. Entries
// outliving a process are flushed when a service starts, since the
// version counter they were captured under restarts with it.
type RouteStateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRouteStateCache(client *redis.Client, ttl time.Duration) ports.RouteStateCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RouteStateCache{client: client, ttl: ttl}
}

func stateKey(name string) string {
	return keyPrefix + strings.ToLower(name)
}

func (c *RouteStateCache) Get(ctx context.Context, name string) (*domain.RouteState, bool) {
	data, err := c.client.Get(ctx, stateKey(name)).Bytes()
	if err != nil {
		return nil, false
	}

	var state domain.RouteState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return &state, true
}

func (c *RouteStateCache) Put(ctx context.Context, state domain.RouteState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode route state: %w", err)
	}
	return c.client.Set(ctx, stateKey(state.VirtualModelName), data, c.ttl).Err()
}

func (c *RouteStateCache) Clear(ctx context.Context, name string) error {
	err := c.client.Del(ctx, stateKey(name)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *RouteStateCache) ClearAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RouteStateCache) All(ctx context.Context) ([]domain.RouteState, error) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var out []domain.RouteState
	for iter.Next(ctx) {
		data, err := c.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // expired between scan and get
		}
		var state domain.RouteState
		if err := json.Unmarshal(data, &state); err != nil {
			continue
		}
		out = append(out, state)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
