package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-library/pkg/navigation"
)

type NavigationHandler struct {
	bar *navigation.Bar
}

func NewNavigationHandler(bar *navigation.Bar) *NavigationHandler {
	if bar == nil {
		bar = navigation.Default
	}
	return &NavigationHandler{bar: bar}
}

// Items lists the navigation entries in display order.
func (h *NavigationHandler) Items(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":      h.bar.Items(),
		"stylesheet": h.bar.StylesheetPath(),
	})
}
