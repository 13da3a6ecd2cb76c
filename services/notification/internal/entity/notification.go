package entity

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the accepted priority labels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// QueuePriority maps the label onto the push queue's 0-10 priority range.
func (p Priority) QueuePriority() int {
	switch p {
	case PriorityHigh:
		return 9
	case PriorityMedium:
		return 5
	default:
		return 1
	}
}

// Notification is a message addressed to exactly one room.
type Notification struct {
	ID          int64     `json:"notification_id"`
	RoomID      int64     `json:"room_id"`
	Message     string    `json:"message"`
	Type        Priority  `json:"type"`
	CreatedTime time.Time `json:"created_time"`
	IsRead      bool      `json:"is_read"`
}
