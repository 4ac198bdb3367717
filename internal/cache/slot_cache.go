package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"openstage/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to Redis and returns nil when the server is
// unreachable; callers degrade to uncached reads.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, slot cache disabled")
		return nil
	}
	return client
}

// SlotCache keeps the available-slot list per event. Every slot
// mutation invalidates the event's entry, so a cached read is never
// staler than the TTL even if an invalidation is lost.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(eventID int64) string {
	return fmt.Sprintf("slots:available:%d", eventID)
}

func (c *SlotCache) GetAvailable(ctx context.Context, eventID int64) ([]domain.Slot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, slotKey(eventID)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []domain.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) SetAvailable(ctx context.Context, eventID int64, slots []domain.Slot) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(eventID), data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("slot cache set failed")
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, eventID int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, slotKey(eventID)).Err(); err != nil {
		logrus.WithError(err).Debug("slot cache invalidate failed")
	}
}
