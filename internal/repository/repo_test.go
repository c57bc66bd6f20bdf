package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/database"
	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type fixture struct {
	db     *gorm.DB
	branch domain.Branch
	room   domain.Room
	other  domain.Room
	twoH   domain.TimeSlot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()
	db, err := database.Connect("file::memory:", log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	two := 2
	f := &fixture{db: db}
	f.branch = domain.Branch{Name: "Homestay Quận 1", Slug: "quan-1", IsActive: true}
	require.NoError(t, db.Create(&f.branch).Error)
	f.room = domain.Room{BranchID: f.branch.ID, Name: "Phòng Deluxe", Slug: "deluxe", BasePrice: 300000, IsActive: true, CheckInTime: "14:00", CheckOutTime: "12:00"}
	require.NoError(t, db.Create(&f.room).Error)
	f.other = domain.Room{BranchID: f.branch.ID, Name: "Phòng Studio", Slug: "studio", BasePrice: 250000, IsActive: true, CheckInTime: "14:00", CheckOutTime: "12:00"}
	require.NoError(t, db.Create(&f.other).Error)
	f.twoH = domain.TimeSlot{RoomID: f.room.ID, Time: "2 giờ", Price: 200000, Duration: &two, IsActive: true}
	require.NoError(t, db.Create(&f.twoH).Error)
	return f
}

func at(hour int) time.Time {
	return time.Date(2025, 6, 7, hour, 0, 0, 0, time.UTC)
}

func (f *fixture) booking(roomID string, slots ...[2]time.Time) *domain.Booking {
	b := &domain.Booking{
		FullName:      "Nguyễn Văn A",
		Phone:         "0901234567",
		CCCD:          "012345678901",
		Guests:        2,
		PaymentMethod: domain.PaymentTransfer,
		Status:        domain.BookingPending,
		TotalPrice:    200000,
	}
	for _, s := range slots {
		b.Slots = append(b.Slots, domain.BookingSlot{
			RoomID:      roomID,
			TimeSlotID:  f.twoH.ID,
			BookingDate: s[0].Format("2006-01-02"),
			CheckInTime: s[0].Format("15:04"),
			CheckIn:     s[0],
			CheckOut:    s[1],
			Price:       200000,
		})
	}
	return b
}

func stay(from, to int) [2]time.Time { return [2]time.Time{at(from), at(to)} }

var ctx = context.Background()
