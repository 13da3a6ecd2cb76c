package models

import "time"

type Room struct {
	ID               int64     `gorm:"column:room_id;primaryKey;autoIncrement" json:"room_id"`
	HotelID          int64     `gorm:"not null;index;uniqueIndex:idx_rooms_hotel_number" json:"hotel_id"`
	RoomNumber       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_rooms_hotel_number" json:"room_number"`
	Floor            int       `gorm:"not null;index" json:"floor"`
	RoomType         string    `gorm:"type:varchar(50);default:'Standard'" json:"room_type"`
	Price            float64   `gorm:"default:0" json:"price"`
	Availability     bool      `gorm:"default:true" json:"availability"`
	CapacityAdults   int       `gorm:"default:2" json:"capacity_adults"`
	CapacityChildren int       `gorm:"default:0" json:"capacity_children"`
	Password         string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}
