package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.CheckAvailability)
	rg.GET("/rooms/:id/unavailable-times", h.UnavailableTimes)
	rg.POST("/bookings/quote", h.Quote)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	resp, err := h.service.CheckAvailability(c.Request.Context(),
		c.Query("roomId"), c.Query("timeSlotId"), c.Query("checkInDateTime"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UnavailableTimes(c *gin.Context) {
	resp, err := h.service.UnavailableTimes(c.Request.Context(),
		c.Param("id"), c.Query("date"), c.Query("timeSlotId"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, publicView(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) bindError(c *gin.Context, err error) {
	if verr := fieldError(err); verr != nil {
		RespondError(c, h.log, verr)
		return
	}
	response.BindError(c, err)
}

// RespondError maps booking errors onto the response envelope.
func RespondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var (
		verr     *ValidationError
		conflict *ConflictError
	)
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message,
			gin.H{"field": verr.Field})
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT", conflict.Message, conflict)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Không tìm thấy dữ liệu")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Đã có lỗi xảy ra")
	}
}
