package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// APIKeyHeader is the header carrying the caller's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth rejects requests whose X-API-Key header does not match the
// configured key.  An empty configured key disables the check, which is
// intended for development only.
func APIKeyAuth(apiKey string, logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("auth")
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warn("rejected request with invalid api key",
				logging.String("path", c.Request.URL.Path),
				logging.String("remote_addr", c.ClientIP()))
			ae := errors.New(errors.ErrCodeUnauthorized, "invalid or missing api key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.APIResponse[interface{}]{
				Success: false,
				Error: &common.ErrorDetail{
					Code:    ae.Code.String(),
					Message: ae.Message,
				},
				Timestamp: time.Now().UTC(),
			})
			return
		}
		c.Next()
	}
}
