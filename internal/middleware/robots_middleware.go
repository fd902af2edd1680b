package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRobotsDirectives = "noindex, nofollow"

// NoIndexMiddleware sets X-Robots-Tag on responses that should stay out of
// search results.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	value := defaultRobotsDirectives

	cleaned := make([]string, 0, len(directives))
	for _, directive := range directives {
		if directive = strings.TrimSpace(directive); directive != "" {
			cleaned = append(cleaned, directive)
		}
	}
	if len(cleaned) > 0 {
		value = strings.Join(cleaned, ", ")
	}

	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", value)
		c.Next()
	}
}

// RobotsTxt serves a robots.txt that keeps crawlers away from the listed
// path prefixes.
func RobotsTxt(disallow ...string) gin.HandlerFunc {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, prefix := range disallow {
		b.WriteString("Disallow: " + prefix + "\n")
	}
	body := b.String()

	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}
