package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"hotel-ops/pkg/logger"
	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/repo/persistent"
)

type fakeRoom struct {
	hotelID int64
	floor   int
}

type fakeReservation struct {
	guestID   int64
	roomID    int64
	checkedIn bool
	order     int
}

// fakeDirectory is an in-memory RoomDirectory. Calls are counted so tests can
// assert that validation failures never reach it.
type fakeDirectory struct {
	mu           sync.Mutex
	rooms        map[int64]fakeRoom
	reservations []fakeReservation
	err          error
	calls        int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{rooms: map[int64]fakeRoom{}}
}

func (d *fakeDirectory) addRoom(id, hotelID int64, floor int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms[id] = fakeRoom{hotelID: hotelID, floor: floor}
}

func (d *fakeDirectory) removeRoom(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.rooms, id)
}

func (d *fakeDirectory) checkIn(guestID, roomID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reservations = append(d.reservations, fakeReservation{guestID: guestID, roomID: roomID, checkedIn: true, order: len(d.reservations)})
}

func (d *fakeDirectory) pastStay(guestID, roomID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reservations = append(d.reservations, fakeReservation{guestID: guestID, roomID: roomID, order: len(d.reservations)})
}

func (d *fakeDirectory) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *fakeDirectory) matching(hotelID *int64, keep func(fakeRoom) bool) []int64 {
	ids := []int64{}
	for id, room := range d.rooms {
		if hotelID != nil && room.hotelID != *hotelID {
			continue
		}
		if keep(room) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *fakeDirectory) RoomExists(ctx context.Context, roomID int64, hotelID *int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return false, d.err
	}
	room, ok := d.rooms[roomID]
	if !ok {
		return false, nil
	}
	return hotelID == nil || room.hotelID == *hotelID, nil
}

func (d *fakeDirectory) AllRoomIDs(ctx context.Context, hotelID *int64) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.matching(hotelID, func(fakeRoom) bool { return true }), nil
}

func (d *fakeDirectory) RoomIDsOnFloor(ctx context.Context, floor int, hotelID *int64) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.matching(hotelID, func(r fakeRoom) bool { return r.floor == floor }), nil
}

func (d *fakeDirectory) CurrentRoomForGuest(ctx context.Context, guestID int64, hotelID *int64) (int64, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return 0, false, d.err
	}
	var found *fakeReservation
	for i := range d.reservations {
		r := &d.reservations[i]
		if r.guestID != guestID || !r.checkedIn {
			continue
		}
		if hotelID != nil && d.rooms[r.roomID].hotelID != *hotelID {
			continue
		}
		if found == nil || r.order > found.order {
			found = r
		}
	}
	if found == nil {
		return 0, false, nil
	}
	return found.roomID, true, nil
}

func (d *fakeDirectory) RoomIDsInHotel(ctx context.Context, roomIDs []int64, hotelID int64) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	ids := []int64{}
	for _, id := range roomIDs {
		if room, ok := d.rooms[id]; ok && room.hotelID == hotelID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var _ persistent.RoomDirectory = (*fakeDirectory)(nil)

// fakeNotifications is an in-memory NotificationRepository. beforeCreate runs
// before every insert and may mutate the directory to simulate concurrent deletes.
type fakeNotifications struct {
	mu           sync.Mutex
	rows         []entity.Notification
	nextID       int64
	createErr    map[int64]error
	beforeCreate func(roomID int64)
	createCalls  int
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{nextID: 1, createErr: map[int64]error{}}
}

func (r *fakeNotifications) Create(ctx context.Context, notification *entity.Notification) error {
	if r.beforeCreate != nil {
		r.beforeCreate(notification.RoomID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if err, ok := r.createErr[notification.RoomID]; ok {
		return err
	}
	notification.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *fakeNotifications) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			n := r.rows[i]
			return &n, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (r *fakeNotifications) List(ctx context.Context, hotelID *int64, limit, offset int) ([]entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.rows))
	if offset >= len(r.rows) {
		return []entity.Notification{}, total, nil
	}
	end := offset + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return append([]entity.Notification(nil), r.rows[offset:end]...), total, nil
}

func (r *fakeNotifications) ListByRoom(ctx context.Context, roomID int64) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Notification{}
	for _, n := range r.rows {
		if n.RoomID == roomID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotifications) UpdateReadState(ctx context.Context, id int64, isRead bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].IsRead = isRead
			return nil
		}
	}
	return persistent.ErrNotFound
}

func (r *fakeNotifications) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return persistent.ErrNotFound
}

func (r *fakeNotifications) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakeNotifications) countForRoom(roomID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.RoomID == roomID {
			n++
		}
	}
	return n
}

var _ persistent.NotificationRepository = (*fakeNotifications)(nil)

type recordingDeliverer struct {
	mu      sync.Mutex
	batches [][]entity.Notification
	fanouts []string
	err     error
}

func (d *recordingDeliverer) DeliverBatch(ctx context.Context, fanoutID string, notifications []entity.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fanouts = append(d.fanouts, fanoutID)
	d.batches = append(d.batches, append([]entity.Notification(nil), notifications...))
	return d.err
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

func hotel(id int64) *int64 {
	return &id
}
