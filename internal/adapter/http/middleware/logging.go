package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	RequestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
	maxRequestIDLength  = 128
)

// GinZapMiddleware logs one line per request. Client errors are logged at
// warn and server errors at error; successful health probes only at debug.
func GinZapMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(requestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		level := levelFor(status, c.Request.URL.Path)
		if ce := logger.Check(level, "http request"); ce != nil {
			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int("status", status),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("route", c.FullPath()),
				zap.String("ip", c.ClientIP()),
				zap.String("user_agent", c.Request.UserAgent()),
				zap.Duration("latency", time.Since(start)),
			}
			if user, ok := CurrentUser(c); ok {
				fields = append(fields, zap.String("user_id", user.ID))
			}
			if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
				fields = append(fields, zap.Strings("errors", errs.Errors()))
			}
			ce.Write(fields...)
		}
	}
}

func levelFor(status int, path string) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	case strings.HasPrefix(path, "/api/health"):
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// RequestID returns the id GinZapMiddleware assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
