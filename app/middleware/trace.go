package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dbhost/pkg/logger"
)

// TraceIDHeader carries the request trace id in and out
const TraceIDHeader = "X-Trace-Id"

// TraceID attaches a trace id to the request context, reusing the caller's when present
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}
