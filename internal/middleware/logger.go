package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorLogger recovers panics and writes one line per request failure. Every
// line starts with the request ID so it can be matched against the
// X-Request-ID header the client received.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				logFailure(c, start, "panic", fmt.Sprint(recovered))
				log.Printf("request_id=%s stack=%s", requestID(c), debug.Stack())
				return
			}

			switch {
			case len(c.Errors) > 0:
				for _, e := range c.Errors {
					logFailure(c, start, "error", e.Error())
					if e.Meta != nil {
						log.Printf("request_id=%s meta=%+v", requestID(c), e.Meta)
					}
				}
			case c.Writer.Status() >= http.StatusInternalServerError:
				logFailure(c, start, "status", http.StatusText(c.Writer.Status()))
			}
		}()

		c.Next()
	}
}

func logFailure(c *gin.Context, start time.Time, kind, detail string) {
	log.Printf("request_id=%s kind=%s status=%d route=%q user=%d/%s took=%s detail=%q",
		requestID(c),
		kind,
		c.Writer.Status(),
		c.Request.Method+" "+route(c),
		c.GetInt64(CtxUserID),
		c.GetString(CtxRole),
		time.Since(start).Round(time.Microsecond),
		detail,
	)
}

// route prefers the registered pattern so IDs in the URL don't fan out.
func route(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

func requestID(c *gin.Context) string {
	if id := c.GetString(CtxRequestID); id != "" {
		return id
	}
	return c.GetHeader(HeaderRequestID)
}
