package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	r := gin.New()
	NewHandler(f.svc, log).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCreateBookingHandler_BindingRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		field  string
		msg    string
	}{
		{"zero guests", func(r *CreateBookingRequest) { r.Guests = 0 }, "guests", "Số khách phải lớn hơn 0"},
		{"unknown payment method", func(r *CreateBookingRequest) { r.PaymentMethod = "BITCOIN" }, "paymentMethod", "Phương thức thanh toán không hợp lệ"},
		{"short cccd", func(r *CreateBookingRequest) { r.CCCD = "12345" }, "cccd", "Số CCCD phải gồm 9 hoặc 12 chữ số"},
		{"missing room", func(r *CreateBookingRequest) { r.SelectedSlots[0].RoomID = "" }, "selectedSlots[0].roomId", "Thiếu phòng hoặc khung giờ"},
		{"empty selection", func(r *CreateBookingRequest) { r.SelectedSlots = []SelectedSlot{} }, "selectedSlots", "Vui lòng chọn ít nhất một khung giờ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest(hourly("2025-06-04", "10:00"))
			tt.mutate(&req)

			rec, env := postJSON(t, newRouter(f), "/api/v1/bookings", req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Equal(t, tt.msg, env.Error.Message)
			assert.Equal(t, tt.field, env.Error.Details["field"])
			f.bookings.AssertNotCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBookingHandler_FormattedPhoneIsAccepted(t *testing.T) {
	f := newFixture(t)
	var saved *domain.Booking
	f.bookings.On("CreateIfAvailable", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Booking) }).
		Return(nil)
	f.notifier.On("BookingCreated", mock.Anything, mock.Anything).Return(nil)

	req := validRequest(hourly("2025-06-04", "10:00"))
	req.Phone = "+84 901.234-567"
	rec, env := postJSON(t, newRouter(f), "/api/v1/bookings", req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	require.NotNil(t, saved)
	assert.Equal(t, "0901234567", saved.Phone)
}

func TestCreateBookingHandler_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(`{"fullName":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGetBookingHandler_RedactsGuestIdentity(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("GetByID", mock.Anything, "bk-1").Return(&domain.Booking{
		ID:              "bk-1",
		FullName:        "Nguyen Van A",
		Phone:           "0901234567",
		Email:           "guest@example.com",
		CCCD:            "001099012345",
		FrontIDImageURL: "/api/v1/admin/uploads/front.jpg",
		BackIDImageURL:  "/api/v1/admin/uploads/back.jpg",
		AdminNotes:      "khách quen",
		Status:          domain.BookingApproved,
		TotalPrice:      380000,
		Slots:           []domain.BookingSlot{{RoomID: "r1", TimeSlotID: "ts-2h", BookingDate: "2025-06-04", CheckInTime: "10:00"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/bk-1", nil)
	rec := httptest.NewRecorder()
	newRouter(f).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, secret := range []string{"001099012345", "guest@example.com", "front.jpg", "back.jpg", "khách quen", "0901234567"} {
		assert.NotContains(t, body, secret)
	}

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var got PublicBooking
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "*******567", got.Phone)
	assert.Equal(t, domain.BookingApproved, got.Status)
	assert.Empty(t, got.Reason)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, "10:00", got.Slots[0].CheckInTime)
}
