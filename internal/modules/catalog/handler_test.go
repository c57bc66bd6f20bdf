package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/database"
	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

var ict = time.FixedZone("ICT", 7*3600)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type seeded struct {
	room     domain.Room
	morning  domain.TimeSlot
	overnite domain.TimeSlot
	unnamed  domain.TimeSlot
}

func setupRouter(t *testing.T) (*gin.Engine, *test.Hook, seeded) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, hook := test.NewNullLogger()
	db, err := database.Connect("file::memory:", logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	s := seed(t, db)

	svc := NewService(
		repository.NewBranchRepository(db),
		repository.NewRoomRepository(db),
		repository.NewBookingRepository(db),
		logger, ict, 60,
	)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, ict) }

	router := gin.New()
	NewHandler(svc, logger).RegisterRoutes(router.Group("/api/v1"))
	return router, hook, s
}

func seed(t *testing.T, db *gorm.DB) seeded {
	two := 2
	overnight := true
	branch := domain.Branch{Name: "Homestay Quận 1", Slug: "quan-1", IsActive: true}
	require.NoError(t, db.Create(&branch).Error)

	s := seeded{}
	s.room = domain.Room{BranchID: branch.ID, Name: "Phòng Deluxe", IsActive: true, CheckInTime: "14:00", CheckOutTime: "12:00"}
	require.NoError(t, db.Create(&s.room).Error)
	s.morning = domain.TimeSlot{RoomID: s.room.ID, Time: "Buổi sáng (08h-12h)", Price: 200000, Duration: &two, IsActive: true}
	s.overnite = domain.TimeSlot{RoomID: s.room.ID, Time: "Qua đêm cố định", Price: 500000, IsOvernight: &overnight, IsActive: true}
	s.unnamed = domain.TimeSlot{RoomID: s.room.ID, Time: "2 giờ", Price: 180000, Duration: &two, IsActive: true}
	for _, ts := range []*domain.TimeSlot{&s.morning, &s.overnite, &s.unnamed} {
		require.NoError(t, db.Create(ts).Error)
	}

	// 09:00-11:00 ICT on 2025-06-07, stored in UTC.
	b := domain.Booking{
		FullName: "Khách", Phone: "0901234567", CCCD: "012345678901", Guests: 1,
		PaymentMethod: domain.PaymentCash, Status: domain.BookingPending,
		Slots: []domain.BookingSlot{{
			RoomID: s.room.ID, TimeSlotID: s.morning.ID, BookingDate: "2025-06-07", CheckInTime: "09:00",
			CheckIn:  time.Date(2025, 6, 7, 2, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2025, 6, 7, 4, 0, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, db.Create(&b).Error)
	return s
}

func get(router *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestCheckInTimes_MarksHeldStays(t *testing.T) {
	router, _, s := setupRouter(t)

	rec, env := get(router, "/api/v1/time-slots/"+s.morning.ID+"/check-in-times?date=2025-06-07")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckInTimesResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.False(t, resp.Overnight)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "08:00", resp.Range.Start)
	assert.Equal(t, []CheckInOption{
		{Time: "08:00", Available: false},
		{Time: "09:00", Available: false},
		{Time: "10:00", Available: false},
		{Time: "11:00", Available: true},
		{Time: "12:00", Available: true},
	}, resp.Times)
}

func TestCheckInTimes_Overnight(t *testing.T) {
	router, _, s := setupRouter(t)

	rec, env := get(router, "/api/v1/time-slots/"+s.overnite.ID+"/check-in-times?date=2025-06-07")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckInTimesResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Overnight)
	assert.Empty(t, resp.Times)
}

func TestCheckInTimes_FallbackLogsWarning(t *testing.T) {
	router, hook, s := setupRouter(t)

	rec, env := get(router, "/api/v1/time-slots/"+s.unnamed.ID+"/check-in-times?date=2025-06-08")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckInTimesResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Fallback)
	assert.Len(t, resp.Times, 24)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "2 giờ", entry.Data["label"])
}

func TestCheckInTimes_Errors(t *testing.T) {
	router, _, s := setupRouter(t)

	rec, env := get(router, "/api/v1/time-slots/unknown/check-in-times?date=2025-06-07")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = get(router, "/api/v1/time-slots/"+s.morning.ID+"/check-in-times?date=07-06-2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestBranchesAndRooms(t *testing.T) {
	router, _, s := setupRouter(t)

	rec, env := get(router, "/api/v1/branches")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Branches []domain.Branch `json:"branches"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Branches, 1)
	assert.Len(t, list.Branches[0].Rooms, 1)

	rec, env = get(router, "/api/v1/branches/quan-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var branch domain.Branch
	require.NoError(t, json.Unmarshal(env.Data, &branch))
	require.Len(t, branch.Rooms, 1)
	assert.Len(t, branch.Rooms[0].TimeSlots, 3)

	rec, _ = get(router, "/api/v1/branches/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = get(router, "/api/v1/rooms/"+s.room.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var room domain.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, "Phòng Deluxe", room.Name)
	require.NotNil(t, room.Branch)
	assert.Equal(t, "quan-1", room.Branch.Slug)
}
