package handlers

import (
	"fmt"
	"html/template"

	"personal-library/internal/config"
	"personal-library/internal/service"
	"personal-library/pkg/navigation"
)

type TemplateHandler struct {
	bookService   *service.BookService
	userService   *service.UserService
	reviewService *service.ReviewService
	templates     *template.Template
	config        *config.Config
	navigation    *navigation.Bar
}

func NewTemplateHandler(bookService *service.BookService, userService *service.UserService, reviewService *service.ReviewService, cfg *config.Config, templates *template.Template) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &TemplateHandler{
		bookService:   bookService,
		userService:   userService,
		reviewService: reviewService,
		templates:     templates,
		config:        cfg,
		navigation:    navigation.Default,
	}, nil
}

// SetNavigation replaces the bar rendered in the shared layout.
func (h *TemplateHandler) SetNavigation(bar *navigation.Bar) {
	if bar == nil {
		return
	}
	h.navigation = bar
}
