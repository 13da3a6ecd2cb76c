package push

import (
	"context"
	"errors"

	"hotel-ops/pkg/queue"
	"hotel-ops/services/notification/internal/entity"
)

type Publisher interface {
	PublishPushTask(ctx context.Context, task queue.PushTask, priority int) error
}

// QueuePusher hands each stored notification to the device push service queue.
type QueuePusher struct {
	publisher Publisher
}

func NewQueuePusher(publisher Publisher) *QueuePusher {
	return &QueuePusher{publisher: publisher}
}

// DeliverBatch publishes every notification and returns the joined publish errors.
func (p *QueuePusher) DeliverBatch(ctx context.Context, fanoutID string, notifications []entity.Notification) error {
	var errs []error
	for _, n := range notifications {
		task := queue.PushTask{
			FanoutID:       fanoutID,
			NotificationID: n.ID,
			RoomID:         n.RoomID,
			Message:        n.Message,
			Priority:       string(n.Type),
			CreatedTime:    n.CreatedTime,
		}
		if err := p.publisher.PublishPushTask(ctx, task, n.Type.QueuePriority()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
