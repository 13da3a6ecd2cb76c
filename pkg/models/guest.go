package models

import "time"

type Guest struct {
	ID        int64     `gorm:"column:guest_id;primaryKey;autoIncrement" json:"guest_id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Language  string    `gorm:"type:varchar(10);default:'en'" json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Guest) TableName() string {
	return "guests"
}
