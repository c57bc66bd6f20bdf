package catalog

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
	rg.GET("/branches", h.ListBranches)
	rg.GET("/branches/:slug", h.GetBranch)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/time-slots/:id/check-in-times", h.CheckInTimes)
}

// ListBranches handles GET /api/v1/branches
func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.service.ListBranches(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

func (h *Handler) GetBranch(c *gin.Context) {
	b, err := h.service.GetBranch(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

// CheckInTimes handles GET /api/v1/time-slots/:id/check-in-times?date=YYYY-MM-DD
func (h *Handler) CheckInTimes(c *gin.Context) {
	resp, err := h.service.CheckInTimes(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Không tìm thấy dữ liệu")
	case errors.Is(err, ErrInvalidDate):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Ngày không hợp lệ (YYYY-MM-DD)", gin.H{"field": "date"})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Đã có lỗi xảy ra")
	}
}
