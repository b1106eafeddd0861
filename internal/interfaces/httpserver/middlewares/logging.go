package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// quietRoutes are polled by orchestrators and scrapers; successful hits are not logged.
var quietRoutes = map[string]bool{
	"/health":        true,
	"/healthz":       true,
	"/readyz":        true,
	"/metrics":       true,
	"/api/v1/health": true,
}

// LoggingMiddleware writes one access line per request. Lines carry the route
// template, so conversation ids stay in their own field rather than the path.
func LoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if quietRoutes[route] && status < 400 {
			return
		}

		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		if route == "" {
			route = "unmatched"
			event = event.Str("path", c.Request.URL.Path)
		}
		if id := c.Param("id"); id != "" {
			event = event.Str("resource_id", id)
		}
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
			event = event.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
		}
		if requestID := c.GetString(requestIDKey); requestID != "" {
			event = event.Str("request_id", requestID)
		}
		if userID, ok := UserID(c); ok {
			event = event.Uint("user_id", userID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			event = event.Strs("errors", errs.Errors())
		}

		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Int("response_bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}
