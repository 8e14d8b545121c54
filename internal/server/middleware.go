package server

import (
	"auction-gateway/internal/metrics"
	"auction-gateway/utils"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const headerRequestID = "X-Request-ID"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(headerRequestID),
	})
}

// RequestIDMiddleware keeps a well-formed incoming X-Request-ID or issues a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if !utils.IsValidID(id) {
		id = utils.GenerateID()
	}
	c.Set(headerRequestID, id)
	c.Header(headerRequestID, id)
	c.Next()
}

// MetricsMiddleware records request counts and latency per route template
func MetricsMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
}

// CORSMiddleware lets the browser front-end call the API and send its Authorization header
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-User-ID", headerRequestID)
	cfg.ExposeHeaders = []string{headerRequestID}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}
