package model

// RoomModel is the read projection of the rooms table used for recipient lookup.
type RoomModel struct {
	ID      int64 `gorm:"column:room_id;primaryKey"`
	HotelID int64 `gorm:"column:hotel_id;not null"`
	Floor   int   `gorm:"column:floor;not null"`
}

func (RoomModel) TableName() string {
	return "rooms"
}
