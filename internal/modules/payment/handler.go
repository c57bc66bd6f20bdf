package payment

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
)

// maxWebhookBody caps the bank callback body.
const maxWebhookBody = 64 << 10

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// RegisterAdminRoutes expects a group already guarded by admin auth.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/webhooks", h.ListWebhooks)
}

// Webhook handles POST /api/v1/payments/webhook
func (h *Handler) Webhook(c *gin.Context) {
	if err := h.service.Authorize(c.GetHeader("Authorization")); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "unauthorized"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.WithError(err).Warn("unreadable payment webhook body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid payload"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))

	var p WebhookPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.log.WithError(err).Warn("invalid payment webhook payload")
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid payload"})
		return
	}

	res, err := h.service.HandleWebhook(c.Request.Context(), p, string(rawBody))
	if err != nil {
		h.log.WithError(err).WithField("external_id", p.ID).Error("payment webhook failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListWebhooks handles GET /api/v1/admin/webhooks?processed=&page=&limit=
func (h *Handler) ListWebhooks(c *gin.Context) {
	var processed *bool
	if raw := c.Query("processed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Tham số processed không hợp lệ", gin.H{"field": "processed"})
			return
		}
		processed = &v
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	hooks, total, err := h.service.ListWebhooks(c.Request.Context(), processed, page, limit)
	if err != nil {
		h.log.WithError(err).Error("list webhooks failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Đã có lỗi xảy ra")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"webhooks": hooks,
		"total":    total,
	})
}
