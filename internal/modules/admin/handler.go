package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/booking"
	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(admin *gin.RouterGroup) {
	admin.POST("/login", h.Login)
}

// RegisterRoutes expects a group already guarded by JWT and admin role checks.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/bookings", h.ListBookings)
	admin.GET("/bookings/:id", h.GetBooking)
	admin.PATCH("/bookings/:id", h.UpdateBooking)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email hoặc mật khẩu không đúng")
			return
		}
		h.log.WithError(err).Error("admin login failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Đã có lỗi xảy ra")
		return
	}

	h.log.WithField("admin_id", resp.Admin.ID).Info("admin logged in")
	response.Success(c, http.StatusOK, resp)
}

// ListBookings handles GET /api/v1/admin/bookings?status=&page=&limit=
func (h *Handler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.ListBookings(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Trạng thái không hợp lệ", gin.H{"field": "status"})
			return
		}
		booking.RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		booking.RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// UpdateBooking handles PATCH /api/v1/admin/bookings/:id with either
// {action: approve|reject, reason} or {status, reason}.
func (h *Handler) UpdateBooking(c *gin.Context) {
	var req booking.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		booking.RespondError(c, h.log, err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"booking_id": resp.BookingID,
		"status":     resp.Status,
		"admin_id":   c.GetString("admin_id"),
	}).Info("booking updated by admin")
	response.Success(c, http.StatusOK, resp)
}
