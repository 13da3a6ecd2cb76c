package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"hotel-ops/pkg/config"
	"hotel-ops/pkg/database"
	"hotel-ops/pkg/jwt"
	"hotel-ops/pkg/logger"
	"hotel-ops/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoHotelName   = "Harbor View Hotel"
	demoFloors      = 3
	demoRoomsPerFlr = 4
	demoPassword    = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	hotel, err := seedDatabase(db, log)
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	if err := printDemoTokens(jwt.NewService(cfg.JWTSecret), hotel, db, log); err != nil {
		log.Error("Failed to issue demo tokens: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) (*models.Hotel, error) {
	var hotel models.Hotel
	err := db.Where("name = ?", demoHotelName).First(&hotel).Error
	switch {
	case err == nil:
		log.Info("Hotel %s already exists, skipping", hotel.Name)
		return &hotel, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to look up demo hotel: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		hotel = models.Hotel{Name: demoHotelName, Address: "1 Quay Street", Floors: demoFloors}
		if err := tx.Create(&hotel).Error; err != nil {
			return fmt.Errorf("failed to create hotel: %w", err)
		}
		log.Info("Created hotel: %s (id %d)", hotel.Name, hotel.ID)

		rooms := make([]models.Room, 0, demoFloors*demoRoomsPerFlr)
		for floor := 1; floor <= demoFloors; floor++ {
			for n := 1; n <= demoRoomsPerFlr; n++ {
				rooms = append(rooms, models.Room{
					HotelID:    hotel.ID,
					RoomNumber: strconv.Itoa(floor*100 + n),
					Floor:      floor,
					RoomType:   "Standard",
					Price:      120,
					Password:   string(hashedPassword),
				})
			}
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to create rooms: %w", err)
		}
		log.Info("Created %d rooms on %d floors", len(rooms), demoFloors)

		guests := []models.Guest{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Language: "en"},
			{FirstName: "Jules", LastName: "Verne", Email: "jules@example.com", Language: "fr"},
		}
		if err := tx.Create(&guests).Error; err != nil {
			return fmt.Errorf("failed to create guests: %w", err)
		}

		now := time.Now().UTC()
		reservations := []models.Reservation{
			// Past stay followed by the current one, so guest lookups must pick the latest.
			{GuestID: guests[0].ID, RoomID: rooms[0].ID, CheckInTime: now.AddDate(0, -1, 0), CheckOutTime: now.AddDate(0, -1, 3)},
			{GuestID: guests[0].ID, RoomID: rooms[6].ID, CheckInTime: now.AddDate(0, 0, -1), CheckOutTime: now.AddDate(0, 0, 2), IsCheckedIn: true},
			{GuestID: guests[1].ID, RoomID: rooms[9].ID, CheckInTime: now.AddDate(0, 0, 3), CheckOutTime: now.AddDate(0, 0, 5)},
		}
		if err := tx.Create(&reservations).Error; err != nil {
			return fmt.Errorf("failed to create reservations: %w", err)
		}
		log.Info("Created %d guests and %d reservations", len(guests), len(reservations))

		staff := []models.Staff{
			{Email: "admin@example.com", Name: "Operations Admin", Password: string(hashedPassword), Role: models.RoleAdmin},
			{HotelID: &hotel.ID, Email: "frontdesk@example.com", Name: "Front Desk", Password: string(hashedPassword), Role: models.RoleStaff},
		}
		if err := tx.Create(&staff).Error; err != nil {
			return fmt.Errorf("failed to create staff: %w", err)
		}

		welcome := models.Notification{
			RoomID:      rooms[6].ID,
			Message:     "Welcome to Harbor View! Breakfast is served from 7am.",
			Type:        string(models.PriorityLow),
			CreatedTime: now,
		}
		if err := tx.Create(&welcome).Error; err != nil {
			return fmt.Errorf("failed to create welcome notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func printDemoTokens(jwtService *jwt.Service, hotel *models.Hotel, db *gorm.DB, log *logger.Logger) error {
	var staff []models.Staff
	if err := db.Where("email IN ?", []string{"admin@example.com", "frontdesk@example.com"}).Find(&staff).Error; err != nil {
		return fmt.Errorf("failed to load staff: %w", err)
	}

	for _, member := range staff {
		var (
			token string
			err   error
		)
		if member.HotelID != nil {
			token, err = jwtService.GenerateHotelToken(member.ID, string(member.Role), *member.HotelID)
		} else {
			token, err = jwtService.GenerateToken(member.ID, string(member.Role))
		}
		if err != nil {
			return err
		}
		log.Info("Token for %s (%s): %s", member.Email, member.Role, token)
	}

	var room models.Room
	if err := db.Where("hotel_id = ?", hotel.ID).Order("room_id").First(&room).Error; err != nil {
		return fmt.Errorf("failed to load demo room: %w", err)
	}
	token, err := jwtService.GenerateHotelToken(strconv.FormatInt(room.ID, 10), jwt.RoleRoom, hotel.ID)
	if err != nil {
		return err
	}
	log.Info("Token for room %s (id %d): %s", room.RoomNumber, room.ID, token)
	return nil
}
