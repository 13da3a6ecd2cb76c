package persistent

import (
	"context"
	"fmt"

	"hotel-ops/services/notification/internal/model"

	"gorm.io/gorm"
)

// RoomDirectory answers the room and reservation lookups recipient resolution needs.
// A nil hotelID means no hotel scope. Lookups that match nothing return empty
// results, never an error.
type RoomDirectory interface {
	RoomExists(ctx context.Context, roomID int64, hotelID *int64) (bool, error)
	AllRoomIDs(ctx context.Context, hotelID *int64) ([]int64, error)
	RoomIDsOnFloor(ctx context.Context, floor int, hotelID *int64) ([]int64, error)
	CurrentRoomForGuest(ctx context.Context, guestID int64, hotelID *int64) (int64, bool, error)
	RoomIDsInHotel(ctx context.Context, roomIDs []int64, hotelID int64) ([]int64, error)
}

type roomDirectory struct {
	db *gorm.DB
}

func NewRoomDirectory(db *gorm.DB) RoomDirectory {
	return &roomDirectory{db: db}
}

func (r *roomDirectory) rooms(ctx context.Context, hotelID *int64) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.RoomModel{})
	if hotelID != nil {
		query = query.Where("hotel_id = ?", *hotelID)
	}
	return query
}

func (r *roomDirectory) RoomExists(ctx context.Context, roomID int64, hotelID *int64) (bool, error) {
	var count int64
	if err := r.rooms(ctx, hotelID).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room %d: %w", roomID, err)
	}
	return count > 0, nil
}

func (r *roomDirectory) AllRoomIDs(ctx context.Context, hotelID *int64) ([]int64, error) {
	var ids []int64
	if err := r.rooms(ctx, hotelID).Order("room_id ASC").Pluck("room_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return ids, nil
}

func (r *roomDirectory) RoomIDsOnFloor(ctx context.Context, floor int, hotelID *int64) ([]int64, error) {
	var ids []int64
	if err := r.rooms(ctx, hotelID).Where("floor = ?", floor).Order("room_id ASC").Pluck("room_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms on floor %d: %w", floor, err)
	}
	return ids, nil
}

func (r *roomDirectory) CurrentRoomForGuest(ctx context.Context, guestID int64, hotelID *int64) (int64, bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("reservations.guest_id = ? AND reservations.is_checked_in = ?", guestID, true)
	if hotelID != nil {
		query = query.
			Joins("JOIN rooms ON rooms.room_id = reservations.room_id").
			Where("rooms.hotel_id = ?", *hotelID)
	}

	var ids []int64
	err := query.
		Order("reservations.check_in_time DESC").
		Order("reservations.reservation_id DESC").
		Limit(1).
		Pluck("reservations.room_id", &ids).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to find active reservation for guest %d: %w", guestID, err)
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *roomDirectory) RoomIDsInHotel(ctx context.Context, roomIDs []int64, hotelID int64) ([]int64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	if err := r.rooms(ctx, &hotelID).Where("room_id IN ?", roomIDs).Pluck("room_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to filter rooms for hotel %d: %w", hotelID, err)
	}
	return ids, nil
}
