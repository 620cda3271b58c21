package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"
)

// Recovery converts panics into SYS_001 responses instead of dropped connections
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(
					"panic recovered",
					fmt.Errorf("request %s: %v", c.GetString("request_id"), r),
				)
				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
