package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-ops/pkg/logger"
	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/repo/persistent"
)

// FeedReader returns the most recent notifications cached for a room.
type FeedReader interface {
	Recent(ctx context.Context, roomID int64, limit int64) ([]entity.Notification, error)
}

// QueueInspector reports how many push tasks wait for the device push service.
type QueueInspector interface {
	GetQueueLength() (int, error)
}

type NotificationUseCase interface {
	CreateNotification(ctx context.Context, roomID int64, message, priority string, hotelID *int64) (*entity.Notification, error)
	GetNotification(ctx context.Context, id int64, hotelID *int64) (*entity.Notification, error)
	ListNotifications(ctx context.Context, hotelID *int64, limit, offset int) ([]entity.Notification, int64, error)
	ListRoomNotifications(ctx context.Context, roomID int64, hotelID *int64) ([]entity.Notification, error)
	RecentRoomNotifications(ctx context.Context, roomID int64, hotelID *int64, limit int64) ([]entity.Notification, error)
	SetReadState(ctx context.Context, id int64, isRead bool, hotelID *int64) (*entity.Notification, error)
	DeleteNotification(ctx context.Context, id int64, hotelID *int64) error
	EnsureRoom(ctx context.Context, roomID int64, hotelID *int64) error
	PushQueueLength() (int, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	rooms            persistent.RoomDirectory
	writer           *NotificationWriter
	deliverer        Deliverer
	feed             FeedReader
	queue            QueueInspector
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	rooms persistent.RoomDirectory,
	writer *NotificationWriter,
	deliverer Deliverer,
	feed FeedReader,
	queue QueueInspector,
	logger *logger.Logger,
) NotificationUseCase {
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		rooms:            rooms,
		writer:           writer,
		deliverer:        deliverer,
		feed:             feed,
		queue:            queue,
		logger:           logger,
	}
}

func (uc *notificationUseCase) CreateNotification(ctx context.Context, roomID int64, message, priority string, hotelID *int64) (*entity.Notification, error) {
	if roomID <= 0 {
		return nil, invalid("room_id", "room_id must be a valid positive integer")
	}
	if strings.TrimSpace(message) == "" {
		return nil, invalid("message", "message is required")
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	if err := uc.requireRoom(ctx, roomID, hotelID); err != nil {
		return nil, err
	}

	notification, err := uc.writer.Write(ctx, roomID, message, p, storedNow())
	if err != nil {
		if errors.Is(err, ErrRoomMissing) {
			return nil, &NotFoundError{Resource: "room", ID: roomID}
		}
		return nil, err
	}

	if err := uc.deliverer.DeliverBatch(context.WithoutCancel(ctx), "", []entity.Notification{*notification}); err != nil {
		uc.logger.Warn("Delivery failed for notification %d: %v", notification.ID, err)
	}

	uc.logger.Info("Notification %d created for room %d", notification.ID, roomID)
	return notification, nil
}

func (uc *notificationUseCase) GetNotification(ctx context.Context, id int64, hotelID *int64) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, &NotFoundError{Resource: "notification", ID: id}
	}
	if err != nil {
		return nil, err
	}

	// Notifications of rooms outside the caller's hotel are reported as missing.
	if hotelID != nil {
		ok, err := uc.rooms.RoomExists(ctx, notification.RoomID, hotelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotFoundError{Resource: "notification", ID: id}
		}
	}
	return notification, nil
}

func (uc *notificationUseCase) ListNotifications(ctx context.Context, hotelID *int64, limit, offset int) ([]entity.Notification, int64, error) {
	return uc.notificationRepo.List(ctx, hotelID, limit, offset)
}

func (uc *notificationUseCase) ListRoomNotifications(ctx context.Context, roomID int64, hotelID *int64) ([]entity.Notification, error) {
	if err := uc.requireRoom(ctx, roomID, hotelID); err != nil {
		return nil, err
	}
	return uc.notificationRepo.ListByRoom(ctx, roomID)
}

func (uc *notificationUseCase) RecentRoomNotifications(ctx context.Context, roomID int64, hotelID *int64, limit int64) ([]entity.Notification, error) {
	if err := uc.requireRoom(ctx, roomID, hotelID); err != nil {
		return nil, err
	}
	if uc.feed == nil {
		return []entity.Notification{}, nil
	}
	return uc.feed.Recent(ctx, roomID, limit)
}

func (uc *notificationUseCase) SetReadState(ctx context.Context, id int64, isRead bool, hotelID *int64) (*entity.Notification, error) {
	if _, err := uc.GetNotification(ctx, id, hotelID); err != nil {
		return nil, err
	}
	if err := uc.notificationRepo.UpdateReadState(ctx, id, isRead); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, &NotFoundError{Resource: "notification", ID: id}
		}
		return nil, err
	}
	return uc.GetNotification(ctx, id, hotelID)
}

func (uc *notificationUseCase) DeleteNotification(ctx context.Context, id int64, hotelID *int64) error {
	if _, err := uc.GetNotification(ctx, id, hotelID); err != nil {
		return err
	}
	if err := uc.notificationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return &NotFoundError{Resource: "notification", ID: id}
		}
		return err
	}
	uc.logger.Info("Notification %d deleted", id)
	return nil
}

// EnsureRoom fails with a NotFoundError unless the room exists within hotelID.
func (uc *notificationUseCase) EnsureRoom(ctx context.Context, roomID int64, hotelID *int64) error {
	return uc.requireRoom(ctx, roomID, hotelID)
}

func (uc *notificationUseCase) PushQueueLength() (int, error) {
	if uc.queue == nil {
		return 0, fmt.Errorf("push queue is not available")
	}
	return uc.queue.GetQueueLength()
}

func (uc *notificationUseCase) requireRoom(ctx context.Context, roomID int64, hotelID *int64) error {
	ok, err := uc.rooms.RoomExists(ctx, roomID, hotelID)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "room", ID: roomID}
	}
	return nil
}
