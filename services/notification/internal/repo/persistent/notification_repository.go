package persistent

import (
	"context"
	"errors"
	"fmt"

	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/model"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	List(ctx context.Context, hotelID *int64, limit, offset int) ([]entity.Notification, int64, error)
	ListByRoom(ctx context.Context, roomID int64) ([]entity.Notification, error)
	UpdateReadState(ctx context.Context, id int64, isRead bool) error
	Delete(ctx context.Context, id int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationModel := ToNotificationModel(notification)
	notificationModel.ID = 0
	if err := r.db.WithContext(ctx).Create(notificationModel).Error; err != nil {
		return fmt.Errorf("failed to insert notification for room %d: %w", notification.RoomID, err)
	}
	*notification = *ToNotificationEntity(notificationModel)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var notificationModel model.NotificationModel
	err := r.db.WithContext(ctx).Where("notification_id = ?", id).First(&notificationModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification %d: %w", id, err)
	}
	return ToNotificationEntity(&notificationModel), nil
}

func (r *notificationRepository) List(ctx context.Context, hotelID *int64, limit, offset int) ([]entity.Notification, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&model.NotificationModel{})
		if hotelID != nil {
			query = query.
				Joins("JOIN rooms ON rooms.room_id = notifications.room_id").
				Where("rooms.hotel_id = ?", *hotelID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notificationModels []model.NotificationModel
	err := scoped().
		Select("notifications.*").
		Order("notifications.created_time DESC").
		Order("notifications.notification_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&notificationModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return ToNotificationEntities(notificationModels), total, nil
}

func (r *notificationRepository) ListByRoom(ctx context.Context, roomID int64) ([]entity.Notification, error) {
	var notificationModels []model.NotificationModel
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_time DESC").
		Order("notification_id DESC").
		Find(&notificationModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for room %d: %w", roomID, err)
	}
	return ToNotificationEntities(notificationModels), nil
}

func (r *notificationRepository) UpdateReadState(ctx context.Context, id int64, isRead bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Update("is_read", isRead)
	if result.Error != nil {
		return fmt.Errorf("failed to update notification %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.NotificationModel{}, "notification_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
