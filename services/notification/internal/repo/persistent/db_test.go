package persistent

import (
	"testing"
	"time"

	"hotel-ops/services/notification/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the tables the repositories read.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.RoomModel{}, &model.ReservationModel{}, &model.NotificationModel{}))
	return db
}

// seedHotels creates hotel 1 with rooms 101-103 (floor 1) and 201 (floor 2), and
// hotel 2 with rooms 901 (floor 1) and 902 (floor 2).
func seedHotels(t *testing.T, db *gorm.DB) {
	t.Helper()

	rooms := []model.RoomModel{
		{ID: 101, HotelID: 1, Floor: 1},
		{ID: 102, HotelID: 1, Floor: 1},
		{ID: 103, HotelID: 1, Floor: 1},
		{ID: 201, HotelID: 1, Floor: 2},
		{ID: 901, HotelID: 2, Floor: 1},
		{ID: 902, HotelID: 2, Floor: 2},
	}
	require.NoError(t, db.Create(&rooms).Error)
}

func seedReservation(t *testing.T, db *gorm.DB, id, guestID, roomID int64, checkIn time.Time, checkedIn bool) {
	t.Helper()

	reservation := model.ReservationModel{ID: id, GuestID: guestID, RoomID: roomID, CheckInTime: checkIn.UTC(), IsCheckedIn: checkedIn}
	require.NoError(t, db.Create(&reservation).Error)
}

func int64Ptr(v int64) *int64 {
	return &v
}
