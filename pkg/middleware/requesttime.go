package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const requestTimeKey = "requestTime"

// RequestTime captures one reference time per request so every expiry classification
// in a response agrees on "now". clock may be nil (time.Now); tests pass a fixed clock.
func RequestTime(clock func() time.Time) gin.HandlerFunc {
	if clock == nil {
		clock = time.Now
	}
	return func(c *gin.Context) {
		c.Set(requestTimeKey, clock())
		c.Next()
	}
}

// Now returns the request-scoped time, or time.Now() when RequestTime is not installed.
func Now(c *gin.Context) time.Time {
	if v, ok := c.Get(requestTimeKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now()
}
