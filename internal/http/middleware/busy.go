package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nurpe/ppl-catering/internal/busy"
)

// Busy holds a tracker token for the lifetime of every mutating request.
func Busy(tracker *busy.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isReadOnlyMethod(c.Request.Method) {
			c.Next()
			return
		}
		token := tracker.Begin(c.Request.Method + " " + c.FullPath())
		defer token.End()
		c.Next()
	}
}
