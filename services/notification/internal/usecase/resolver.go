package usecase

import (
	"context"

	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/repo/persistent"
)

// TargetResolver turns a target into the ordered list of recipient rooms. It reads
// the directory on every call and never writes.
type TargetResolver struct {
	rooms persistent.RoomDirectory
}

func NewTargetResolver(rooms persistent.RoomDirectory) *TargetResolver {
	return &TargetResolver{rooms: rooms}
}

// Resolve returns the recipient rooms for target. An empty result is valid for
// AllRooms, Floor and RoomList. SingleRoom and GuestRoom fail with a NotFoundError
// when nothing matches.
func (r *TargetResolver) Resolve(ctx context.Context, target entity.Target, hotelID *int64) ([]int64, error) {
	switch t := target.(type) {
	case entity.AllRooms:
		return r.rooms.AllRoomIDs(ctx, hotelID)

	case entity.SingleRoom:
		ok, err := r.rooms.RoomExists(ctx, t.RoomID, hotelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotFoundError{Resource: "room", ID: t.RoomID}
		}
		return []int64{t.RoomID}, nil

	case entity.Floor:
		return r.rooms.RoomIDsOnFloor(ctx, t.Number, hotelID)

	case entity.GuestRoom:
		roomID, ok, err := r.rooms.CurrentRoomForGuest(ctx, t.GuestID, hotelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotFoundError{Resource: "guest", ID: t.GuestID, Reason: "has no active reservation"}
		}
		return []int64{roomID}, nil

	case entity.RoomList:
		if hotelID == nil {
			ids := make([]int64, len(t.RoomIDs))
			copy(ids, t.RoomIDs)
			return ids, nil
		}
		inHotel, err := r.rooms.RoomIDsInHotel(ctx, t.RoomIDs, *hotelID)
		if err != nil {
			return nil, err
		}
		allowed := make(map[int64]struct{}, len(inHotel))
		for _, id := range inHotel {
			allowed[id] = struct{}{}
		}
		ids := make([]int64, 0, len(t.RoomIDs))
		for _, id := range t.RoomIDs {
			if _, ok := allowed[id]; ok {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	return nil, invalid("target", "unsupported target type %T", target)
}
