package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-ops/pkg/logger"
	"hotel-ops/services/notification/internal/entity"

	"github.com/google/uuid"
)

const (
	MessageAllSent      = "All notifications sent successfully"
	MessageNoRecipients = "No rooms matched the target"
)

type FanoutUseCase interface {
	Send(ctx context.Context, req FanoutRequest) (*entity.FanoutOutcome, error)
}

type fanoutUseCase struct {
	resolver  *TargetResolver
	writer    *NotificationWriter
	deliverer Deliverer
	logger    *logger.Logger
	now       func() time.Time
}

func NewFanoutUseCase(resolver *TargetResolver, writer *NotificationWriter, deliverer Deliverer, logger *logger.Logger) FanoutUseCase {
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}
	return &fanoutUseCase{
		resolver:  resolver,
		writer:    writer,
		deliverer: deliverer,
		logger:    logger,
		now:       storedNow,
	}
}

// storedNow is the current time at the precision postgres keeps, so returned
// notifications match what a later read returns.
func storedNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Send validates req, resolves its recipients and writes one notification per room.
// Validation and resolution failures abort before any write. Once writing starts
// every room gets an attempt and the result is always an outcome, never an error.
func (uc *fanoutUseCase) Send(ctx context.Context, req FanoutRequest) (*entity.FanoutOutcome, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, invalid("message", "message is required")
	}
	target, err := ParseTarget(req.Target, req.TargetID)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	fanoutID := uuid.New().String()

	roomIDs, err := uc.resolver.Resolve(ctx, target, req.HotelID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			uc.logger.Warn("Fan-out %s: %s target not resolved: %v", fanoutID, target.Kind(), err)
			return nil, err
		}
		uc.logger.Error("Fan-out %s: failed to resolve %s target: %v", fanoutID, target.Kind(), err)
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	outcome := &entity.FanoutOutcome{
		FanoutID:      fanoutID,
		FailedTargets: []int64{},
		Notifications: []entity.Notification{},
	}

	if len(roomIDs) == 0 {
		uc.logger.Info("Fan-out %s: %s target matched no rooms", fanoutID, target.Kind())
		outcome.Success = true
		outcome.Message = MessageNoRecipients
		return outcome, nil
	}

	uc.logger.Info("Fan-out %s: writing %s notification to %d rooms (target=%s)", fanoutID, priority, len(roomIDs), target.Kind())

	// Stored notifications are never undone, so a caller abort must not stop the loop.
	writeCtx := context.WithoutCancel(ctx)
	createdTime := uc.now()

	for _, roomID := range roomIDs {
		notification, err := uc.writer.Write(writeCtx, roomID, req.Message, priority, createdTime)
		if err != nil {
			uc.logger.Error("Fan-out %s: failed to write notification for room %d: %v", fanoutID, roomID, err)
			outcome.Failures = append(outcome.Failures, entity.WriteFailure{RoomID: roomID, Err: err})
			outcome.FailedTargets = append(outcome.FailedTargets, roomID)
			continue
		}
		outcome.Notifications = append(outcome.Notifications, *notification)
	}

	outcome.SentCount = len(outcome.Notifications)
	outcome.FailedCount = len(outcome.FailedTargets)

	switch {
	case outcome.FailedCount == 0:
		outcome.Success = true
		outcome.Message = MessageAllSent
	case outcome.SentCount > 0:
		outcome.Success = true
		outcome.Message = fmt.Sprintf("Notifications sent with %d failures", outcome.FailedCount)
	default:
		outcome.Success = false
		outcome.Message = "Failed to send notifications to all targets"
	}

	if outcome.SentCount > 0 {
		if err := uc.deliverer.DeliverBatch(writeCtx, fanoutID, outcome.Notifications); err != nil {
			uc.logger.Warn("Fan-out %s: delivery failed, notifications remain stored: %v", fanoutID, err)
		}
	}

	uc.logger.Info("Fan-out %s: sent=%d failed=%d", fanoutID, outcome.SentCount, outcome.FailedCount)
	return outcome, nil
}
