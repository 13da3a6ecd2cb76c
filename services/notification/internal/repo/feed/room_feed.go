package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel-ops/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

// Channel is both the Redis list key and the pub/sub channel of a room's feed.
func Channel(roomID int64) string {
	return fmt.Sprintf("notifications:room:%d", roomID)
}

// RoomFeed caches recent notifications per room and publishes them to live subscribers.
type RoomFeed struct {
	client *redis.Client
	length int64
	ttl    time.Duration
}

func NewRoomFeed(client *redis.Client, length int64, ttl time.Duration) *RoomFeed {
	if length <= 0 {
		length = 100
	}
	return &RoomFeed{client: client, length: length, ttl: ttl}
}

func (f *RoomFeed) DeliverBatch(ctx context.Context, fanoutID string, notifications []entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	pipe := f.client.Pipeline()
	for i := range notifications {
		payload, err := json.Marshal(notifications[i])
		if err != nil {
			return fmt.Errorf("failed to marshal notification %d: %w", notifications[i].ID, err)
		}
		key := Channel(notifications[i].RoomID)
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, f.length-1)
		if f.ttl > 0 {
			pipe.Expire(ctx, key, f.ttl)
		}
		pipe.Publish(ctx, key, payload)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push %d notifications to room feeds: %w", len(notifications), err)
	}
	return nil
}

func (f *RoomFeed) Recent(ctx context.Context, roomID int64, limit int64) ([]entity.Notification, error) {
	if limit <= 0 || limit > f.length {
		limit = f.length
	}

	items, err := f.client.LRange(ctx, Channel(roomID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed for room %d: %w", roomID, err)
	}

	notifications := make([]entity.Notification, 0, len(items))
	for _, item := range items {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err == nil {
			notifications = append(notifications, notification)
		}
	}
	return notifications, nil
}

// Subscribe opens a pub/sub subscription on the room's channel.
func (f *RoomFeed) Subscribe(ctx context.Context, roomID int64) *redis.PubSub {
	return f.client.Subscribe(ctx, Channel(roomID))
}
