package models

import "time"

type Hotel struct {
	ID        int64     `gorm:"column:hotel_id;primaryKey;autoIncrement" json:"hotel_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(500)" json:"address"`
	Floors    int       `gorm:"default:1" json:"floors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Rooms     []Room    `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

func (Hotel) TableName() string {
	return "hotels"
}
