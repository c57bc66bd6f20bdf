package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
	"github.com/thanhlp18/homestay-booking-sub000/internal/ratelimit"
)

// RateLimit rejects clients over the limiter's budget with 429. Limiter
// failures let the request through.
func RateLimit(l ratelimit.Limiter, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WithError(err).WithField("client_ip", c.ClientIP()).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Bạn thao tác quá nhanh, vui lòng thử lại sau")
			return
		}
		c.Next()
	}
}
