package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
)

// Handler accepts ID-card images from guests filling the booking form.
type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the upload route behind the given middleware (rate limiting).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(mw, h.UploadIDCard)
	rg.POST("/uploads/id-card", handlers...)
}

// UploadIDCard handles POST /api/v1/uploads/id-card (multipart: file, side)
func (h *Handler) UploadIDCard(c *gin.Context) {
	kind, err := ParseSide(c.PostForm("side"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Mặt CCCD phải là front hoặc back", gin.H{"field": "side"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Vui lòng chọn ảnh", gin.H{"field": "file"})
		return
	}

	u, err := h.service.Upload(c.Request.Context(), kind, fileHeader, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Tệp rỗng")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Ảnh vượt quá dung lượng cho phép")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Chỉ chấp nhận ảnh JPEG, PNG hoặc WebP")
		default:
			h.log.WithError(err).Error("upload failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Tải ảnh thất bại")
		}
		return
	}

	response.Success(c, http.StatusCreated, u)
}
