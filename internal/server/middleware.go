package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/arloliu/potency/internal/logging"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// requestID propagates a client supplied UUID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		s.metrics.requestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
			slog.String(logging.KeyRequestID, c.GetString(ctxRequestID)),
		)
	}
}

// rateLimit applies one token bucket to every request. A zero limit disables it.
func rateLimit(limit float64, burst int) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{
				Error:     "rate limit exceeded",
				Kind:      "rate_limit",
				RequestID: c.GetString(ctxRequestID),
			})

			return
		}
		c.Next()
	}
}

func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
