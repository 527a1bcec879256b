package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"

	requestIDKey         = "requestId"
	requestIDLengthLimit = 128
)

// RequestID honours an incoming X-Request-Id or generates one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		} else if len(id) > requestIDLengthLimit {
			id = id[:requestIDLengthLimit]
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func ContextRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
