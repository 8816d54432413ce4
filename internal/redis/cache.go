package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RosterCache keeps the serialized day roster in Redis so the matcher can run
// on every keystroke without hitting Postgres each time.
type RosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	return &RosterCache{
		client: client,
		ttl:    ttl,
	}
}

func rosterKey(date string) string {
	return fmt.Sprintf("roster:%s", date)
}

// GetRoster returns the cached payload for a date, or nil on a miss.
func (c *RosterCache) GetRoster(ctx context.Context, date string) ([]byte, error) {
	payload, err := c.client.Get(ctx, rosterKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get roster cache: %w", err)
	}
	return payload, nil
}

func (c *RosterCache) SetRoster(ctx context.Context, date string, payload []byte) error {
	if err := c.client.Set(ctx, rosterKey(date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set roster cache: %w", err)
	}
	return nil
}

func (c *RosterCache) InvalidateRoster(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, rosterKey(date)).Err(); err != nil {
		return fmt.Errorf("invalidate roster cache: %w", err)
	}
	return nil
}
