package models

import "time"

// Reservation ties a guest to a room. A reservation is active while IsCheckedIn is true.
type Reservation struct {
	ID           int64     `gorm:"column:reservation_id;primaryKey;autoIncrement" json:"reservation_id"`
	GuestID      int64     `gorm:"not null;index" json:"guest_id"`
	RoomID       int64     `gorm:"not null;index" json:"room_id"`
	CheckInTime  time.Time `gorm:"not null" json:"check_in_time"`
	CheckOutTime time.Time `gorm:"not null" json:"check_out_time"`
	IsCheckedIn  bool      `gorm:"default:false;index" json:"is_checked_in"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Guest        *Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room         *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}
