package model

import "time"

type ReservationModel struct {
	ID          int64     `gorm:"column:reservation_id;primaryKey"`
	GuestID     int64     `gorm:"column:guest_id;not null"`
	RoomID      int64     `gorm:"column:room_id;not null"`
	CheckInTime time.Time `gorm:"column:check_in_time;not null"`
	IsCheckedIn bool      `gorm:"column:is_checked_in"`
}

func (ReservationModel) TableName() string {
	return "reservations"
}
