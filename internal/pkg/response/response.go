package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/validator"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// BindError answers a request whose body or query failed to bind.
func BindError(c *gin.Context, err error) {
	if fields := validator.FieldErrors(err); fields != nil {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dữ liệu không hợp lệ", fields)
		return
	}
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dữ liệu không hợp lệ")
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
