package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/repo/persistent"
)

var ErrRoomMissing = errors.New("room does not exist")

// WriteError is returned by NotificationWriter for the single room it failed on.
type WriteError struct {
	RoomID int64
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("room %d: %v", e.RoomID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NotificationWriter stores one notification for one room. Calls are independent:
// a failure never affects other rooms of the same fan-out.
type NotificationWriter struct {
	rooms         persistent.RoomDirectory
	notifications persistent.NotificationRepository
}

func NewNotificationWriter(rooms persistent.RoomDirectory, notifications persistent.NotificationRepository) *NotificationWriter {
	return &NotificationWriter{rooms: rooms, notifications: notifications}
}

func (w *NotificationWriter) Write(ctx context.Context, roomID int64, message string, priority entity.Priority, createdTime time.Time) (*entity.Notification, error) {
	ok, err := w.rooms.RoomExists(ctx, roomID, nil)
	if err != nil {
		return nil, &WriteError{RoomID: roomID, Err: err}
	}
	if !ok {
		return nil, &WriteError{RoomID: roomID, Err: ErrRoomMissing}
	}

	notification := &entity.Notification{
		RoomID:      roomID,
		Message:     message,
		Type:        priority,
		CreatedTime: createdTime,
		IsRead:      false,
	}
	if err := w.notifications.Create(ctx, notification); err != nil {
		return nil, &WriteError{RoomID: roomID, Err: err}
	}
	return notification, nil
}
