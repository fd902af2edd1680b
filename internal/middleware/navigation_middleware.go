package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// NavigationRequestHeader is sent by the client-side router when it
	// fetches a page to swap into the current document.
	NavigationRequestHeader = "X-Navigation-Request"
	NavigationRequestKey    = "navigation_request"
)

// NavigationMiddleware flags partial page requests issued by the client-side
// router and marks responses as varying on the header.
func NavigationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", NavigationRequestHeader)
		if strings.EqualFold(strings.TrimSpace(c.GetHeader(NavigationRequestHeader)), "true") {
			c.Set(NavigationRequestKey, true)
		}
		c.Next()
	}
}

func IsNavigationRequest(c *gin.Context) bool {
	return c.GetBool(NavigationRequestKey)
}
