package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-library/internal/models"
	"personal-library/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) GetAll(c *gin.Context) {
	reviews, err := h.reviewService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetByBook(c *gin.Context) {
	id, ok := parseID(c, service.ErrBookNotFound)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByBook(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	review, err := h.reviewService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewReviewResponse(*review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, service.ErrReviewNotFound)
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	review, err := h.reviewService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewReviewResponse(*review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, service.ErrReviewNotFound)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
