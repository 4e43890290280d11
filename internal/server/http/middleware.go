package httpserver

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/and161185/six-cities/internal/api"
	"github.com/and161185/six-cities/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging writes one access log line per request. Bodies are never logged.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http", fields...)
		default:
			log.Info("http", fields...)
		}
	}
}

// Recover turns a handler panic into a 500 response.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "internal"})
			}
		}()
		c.Next()
	}
}

// RequireUser rejects requests without a valid X-Token and stores the user in the request context.
func RequireUser(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := strings.TrimSpace(c.GetHeader(api.TokenHeader))
		u, err := auth.UserFromToken(c.Request.Context(), tok)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), u))
		c.Set("token", tok)
		c.Next()
	}
}
