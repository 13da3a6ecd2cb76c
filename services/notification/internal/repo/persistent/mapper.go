package persistent

import (
	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:          m.ID,
		RoomID:      m.RoomID,
		Message:     m.Message,
		Type:        entity.Priority(m.Type),
		CreatedTime: m.CreatedTime,
		IsRead:      m.IsRead,
	}
}

func ToNotificationModel(e *entity.Notification) *model.NotificationModel {
	if e == nil {
		return nil
	}
	return &model.NotificationModel{
		ID:          e.ID,
		RoomID:      e.RoomID,
		Message:     e.Message,
		Type:        string(e.Type),
		CreatedTime: e.CreatedTime,
		IsRead:      e.IsRead,
	}
}

func ToNotificationEntities(models []model.NotificationModel) []entity.Notification {
	notifications := make([]entity.Notification, len(models))
	for i := range models {
		notifications[i] = *ToNotificationEntity(&models[i])
	}
	return notifications
}
