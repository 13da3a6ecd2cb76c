package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-ops/services/notification/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	items []entity.Notification
	limit int64
}

func (f *stubFeed) Recent(ctx context.Context, roomID int64, limit int64) ([]entity.Notification, error) {
	f.limit = limit
	return f.items, nil
}

type stubQueue struct {
	length int
}

func (q stubQueue) GetQueueLength() (int, error) {
	return q.length, nil
}

func newNotificationFixture() (*fakeDirectory, *fakeNotifications, *recordingDeliverer, NotificationUseCase) {
	d := twoHotels()
	repo := newFakeNotifications()
	deliverer := &recordingDeliverer{}
	uc := NewNotificationUseCase(repo, d, NewNotificationWriter(d, repo), deliverer, &stubFeed{}, stubQueue{length: 3}, quietLogger())
	return d, repo, deliverer, uc
}

func TestCreateNotification(t *testing.T) {
	_, repo, deliverer, uc := newNotificationFixture()

	n, err := uc.CreateNotification(context.Background(), 101, "Late checkout approved", "low", hotel(1))
	require.NoError(t, err)

	assert.Equal(t, int64(101), n.RoomID)
	assert.Equal(t, entity.PriorityLow, n.Type)
	assert.Equal(t, n.CreatedTime.Truncate(time.Microsecond), n.CreatedTime)
	assert.Equal(t, 1, repo.count())
	require.Len(t, deliverer.batches, 1)
	assert.Equal(t, n.ID, deliverer.batches[0][0].ID)
}

func TestCreateNotification_Validation(t *testing.T) {
	_, repo, _, uc := newNotificationFixture()

	_, err := uc.CreateNotification(context.Background(), 0, "Hi", "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.CreateNotification(context.Background(), 101, " ", "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.CreateNotification(context.Background(), 101, "Hi", "critical", nil)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, repo.count())
}

func TestCreateNotification_RoomOutsideHotel(t *testing.T) {
	_, repo, _, uc := newNotificationFixture()

	_, err := uc.CreateNotification(context.Background(), 901, "Hi", "", hotel(1))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, repo.count())
}

func TestGetNotification_HotelScope(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	n, err := uc.CreateNotification(context.Background(), 901, "Hi", "", nil)
	require.NoError(t, err)

	got, err := uc.GetNotification(context.Background(), n.ID, hotel(2))
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	_, err = uc.GetNotification(context.Background(), n.ID, hotel(1))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.GetNotification(context.Background(), 12345, nil)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "notification", notFound.Resource)
}

func TestSetReadState(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	n, err := uc.CreateNotification(context.Background(), 102, "Hi", "", nil)
	require.NoError(t, err)

	updated, err := uc.SetReadState(context.Background(), n.ID, true, hotel(1))
	require.NoError(t, err)
	assert.True(t, updated.IsRead)

	updated, err = uc.SetReadState(context.Background(), n.ID, false, nil)
	require.NoError(t, err)
	assert.False(t, updated.IsRead)

	_, err = uc.SetReadState(context.Background(), n.ID, true, hotel(2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotification(t *testing.T) {
	_, repo, _, uc := newNotificationFixture()

	n, err := uc.CreateNotification(context.Background(), 102, "Hi", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteNotification(context.Background(), n.ID, hotel(2)), ErrNotFound)
	assert.Equal(t, 1, repo.count())

	require.NoError(t, uc.DeleteNotification(context.Background(), n.ID, hotel(1)))
	assert.Equal(t, 0, repo.count())

	assert.ErrorIs(t, uc.DeleteNotification(context.Background(), n.ID, nil), ErrNotFound)
}

func TestListRoomNotifications(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	_, err := uc.CreateNotification(context.Background(), 101, "One", "", nil)
	require.NoError(t, err)
	_, err = uc.CreateNotification(context.Background(), 102, "Two", "", nil)
	require.NoError(t, err)

	items, err := uc.ListRoomNotifications(context.Background(), 101, hotel(1))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "One", items[0].Message)

	_, err = uc.ListRoomNotifications(context.Background(), 101, hotel(2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNotifications(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	for i := 0; i < 3; i++ {
		_, err := uc.CreateNotification(context.Background(), 101, "Hi", "", nil)
		require.NoError(t, err)
	}

	items, total, err := uc.ListNotifications(context.Background(), nil, 2, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), total)
}

func TestRecentRoomNotifications(t *testing.T) {
	d := twoHotels()
	repo := newFakeNotifications()
	feed := &stubFeed{items: []entity.Notification{{ID: 9, RoomID: 101}}}
	uc := NewNotificationUseCase(repo, d, NewNotificationWriter(d, repo), nil, feed, nil, quietLogger())

	items, err := uc.RecentRoomNotifications(context.Background(), 101, nil, 5)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(5), feed.limit)

	_, err = uc.RecentRoomNotifications(context.Background(), 9999, nil, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPushQueueLength(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	length, err := uc.PushQueueLength()
	require.NoError(t, err)
	assert.Equal(t, 3, length)

	d := twoHotels()
	repo := newFakeNotifications()
	withoutQueue := NewNotificationUseCase(repo, d, NewNotificationWriter(d, repo), nil, nil, nil, quietLogger())
	_, err = withoutQueue.PushQueueLength()
	assert.Error(t, err)
}

func TestEnsureRoom(t *testing.T) {
	_, _, _, uc := newNotificationFixture()

	assert.NoError(t, uc.EnsureRoom(context.Background(), 901, hotel(2)))
	assert.ErrorIs(t, uc.EnsureRoom(context.Background(), 901, hotel(1)), ErrNotFound)
	assert.ErrorIs(t, uc.EnsureRoom(context.Background(), 9999, nil), ErrNotFound)
}
