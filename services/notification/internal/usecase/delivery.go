package usecase

import (
	"context"

	"hotel-ops/pkg/logger"
	"hotel-ops/services/notification/internal/entity"
)

// Deliverer hands stored notifications to real-time channels. Delivery is best
// effort: stored notifications stay stored whatever Deliver returns.
type Deliverer interface {
	DeliverBatch(ctx context.Context, fanoutID string, notifications []entity.Notification) error
}

// MultiDeliverer runs every deliverer and logs the ones that fail.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *logger.Logger
}

func NewMultiDeliverer(log *logger.Logger, deliverers ...Deliverer) *MultiDeliverer {
	return &MultiDeliverer{deliverers: deliverers, logger: log}
}

func (m *MultiDeliverer) DeliverBatch(ctx context.Context, fanoutID string, notifications []entity.Notification) error {
	for i, d := range m.deliverers {
		if err := d.DeliverBatch(ctx, fanoutID, notifications); err != nil {
			m.logger.Warn("Fan-out %s: deliverer %d failed for %d notifications: %v", fanoutID, i, len(notifications), err)
		}
	}
	return nil
}

type NoOpDeliverer struct{}

func (NoOpDeliverer) DeliverBatch(context.Context, string, []entity.Notification) error {
	return nil
}
