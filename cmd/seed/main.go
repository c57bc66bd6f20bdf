package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thanhlp18/homestay-booking-sub000/internal/config"
	"github.com/thanhlp18/homestay-booking-sub000/internal/database"
	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/admin"
)

const demoBranchSlug = "quan-1"

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL, log)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	if err := seedCatalog(db, log); err != nil {
		log.Fatal("Seeding catalog failed: ", err)
	}

	email := envOr("SEED_ADMIN_EMAIL", "admin@homestay.vn")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")
	if err := seedAdmin(db, email, password); err != nil {
		log.Fatal("Seeding admin failed: ", err)
	}
	log.Infof("Admin ready: %s / %s", email, password)
	log.Info("Seed completed")
}

func seedCatalog(db *gorm.DB, log *logrus.Logger) error {
	var existing domain.Branch
	err := db.Where("slug = ?", demoBranchSlug).First(&existing).Error
	if err == nil {
		log.Info("Demo branch already present, skipping catalog")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		branch := domain.Branch{
			Name:      "Homestay Quận 1",
			Slug:      demoBranchSlug,
			Location:  "Hồ Chí Minh",
			Address:   "12 Nguyễn Huệ, Quận 1",
			Phone:     "0901234567",
			Amenities: []string{"Wifi", "Điều hòa", "Bãi đỗ xe"},
			IsActive:  true,
		}
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		rooms := []domain.Room{
			{BranchID: branch.ID, Name: "Phòng Deluxe", Slug: "deluxe", BasePrice: 200000, Capacity: 2, Bedrooms: 1, Bathrooms: 1, CheckInTime: "14:00", CheckOutTime: "12:00", IsActive: true},
			{BranchID: branch.ID, Name: "Phòng Family", Slug: "family", BasePrice: 300000, Capacity: 4, Bedrooms: 2, Bathrooms: 1, CheckInTime: "14:00", CheckOutTime: "12:00", IsActive: true},
		}
		for i := range rooms {
			if err := tx.Create(&rooms[i]).Error; err != nil {
				return err
			}
			for _, ts := range timeSlots(rooms[i]) {
				if err := tx.Create(&ts).Error; err != nil {
					return err
				}
			}
			log.Infof("Room %q created", rooms[i].Name)
		}
		return nil
	})
}

// timeSlots covers every label shape the scheduler understands.
func timeSlots(room domain.Room) []domain.TimeSlot {
	two, three, twentyTwo := 2, 3, 22
	overnight := true
	base := room.BasePrice
	return []domain.TimeSlot{
		{RoomID: room.ID, Time: "2 giờ", Price: base, Duration: &two, WeekendSurcharge: 20000, IsActive: true},
		{RoomID: room.ID, Time: "3 giờ", Price: base + base/2, Duration: &three, WeekendSurcharge: 30000, IsActive: true},
		{RoomID: room.ID, Time: "Qua đêm (14h-12h)", Price: base * 2, Duration: &twentyTwo, WeekendSurcharge: 50000, IsActive: true},
		{RoomID: room.ID, Time: "Qua đêm cố định", Price: base * 2, IsOvernight: &overnight, WeekendSurcharge: 50000, IsActive: true},
	}
}

func seedAdmin(db *gorm.DB, email, password string) error {
	hash, err := admin.HashPassword(password)
	if err != nil {
		return err
	}
	u := domain.AdminUser{Email: email, PasswordHash: hash, Name: "Quản trị viên"}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
