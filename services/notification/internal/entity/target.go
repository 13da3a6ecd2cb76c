package entity

type TargetKind string

const (
	TargetAll           TargetKind = "all"
	TargetRoom          TargetKind = "room"
	TargetGuest         TargetKind = "guest"
	TargetFloor         TargetKind = "floor"
	TargetMultipleRooms TargetKind = "multipleRooms"
)

// TargetKinds lists every accepted kind in wire order.
var TargetKinds = []TargetKind{TargetAll, TargetRoom, TargetGuest, TargetFloor, TargetMultipleRooms}

// Target selects the recipient rooms of a fan-out. The set of implementations is
// closed to this package: AllRooms, SingleRoom, GuestRoom, Floor and RoomList.
type Target interface {
	Kind() TargetKind
	target()
}

// AllRooms addresses every room, optionally narrowed by hotel scope.
type AllRooms struct{}

type SingleRoom struct {
	RoomID int64
}

// GuestRoom addresses the room of the guest's active reservation.
type GuestRoom struct {
	GuestID int64
}

type Floor struct {
	Number int
}

// RoomList addresses an explicit, ordered, non-empty list of rooms.
type RoomList struct {
	RoomIDs []int64
}

func (AllRooms) Kind() TargetKind   { return TargetAll }
func (SingleRoom) Kind() TargetKind { return TargetRoom }
func (GuestRoom) Kind() TargetKind  { return TargetGuest }
func (Floor) Kind() TargetKind      { return TargetFloor }
func (RoomList) Kind() TargetKind   { return TargetMultipleRooms }

func (AllRooms) target()   {}
func (SingleRoom) target() {}
func (GuestRoom) target()  {}
func (Floor) target()      {}
func (RoomList) target()   {}
