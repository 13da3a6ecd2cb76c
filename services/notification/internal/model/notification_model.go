package model

import "time"

type NotificationModel struct {
	ID          int64     `gorm:"column:notification_id;primaryKey;autoIncrement"`
	RoomID      int64     `gorm:"column:room_id;not null"`
	Message     string    `gorm:"column:message;type:text;not null"`
	Type        string    `gorm:"column:type;type:varchar(20);not null"`
	CreatedTime time.Time `gorm:"column:created_time;not null"`
	IsRead      bool      `gorm:"column:is_read;default:false"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
