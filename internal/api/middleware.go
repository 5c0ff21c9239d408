package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/limiter"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
	"github.com/tidwall/gjson"
)

const requestIDHeader = "X-Request-ID"

// requestID echoes the client's request id or mints one, so every log line
// of a request can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// generationLimit throttles generation per presentation so one busy deck
// cannot starve the others. The presentation id is read from the request
// body without consuming it.
func generationLimit(l *limiter.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "unknown"
		if body, err := c.GetRawData(); err == nil {
			restoreBody(c, body)
			if id := gjson.GetBytes(body, "context.presentation_id").String(); id != "" {
				key = id
			} else if id := gjson.GetBytes(body, "elements.0.context.presentation_id").String(); id != "" {
				key = id
			}
		}
		if !l.Allow(key) {
			limited(c)
			return
		}
		c.Next()
	}
}

func metadataLimit(g *limiter.Global) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Allow() {
			limited(c)
			return
		}
		c.Next()
	}
}

func restoreBody(c *gin.Context, body []byte) {
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
}

func limited(c *gin.Context) {
	err := apperrors.New(apperrors.CodeRateLimited, "too many requests").
		WithSuggestion("Retry after a short delay.")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   element.FromAppError(err),
	})
}
