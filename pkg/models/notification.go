package models

import "time"

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID          int64     `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	RoomID      int64     `gorm:"not null;index" json:"room_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	CreatedTime time.Time `gorm:"not null" json:"created_time"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	Room        *Room     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
