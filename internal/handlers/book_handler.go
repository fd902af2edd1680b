package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-library/internal/models"
	"personal-library/internal/service"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.bookService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, service.ErrBookNotFound)
	if !ok {
		return
	}

	book, err := h.bookService.GetDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Create(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	book, err := h.bookService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewBookResponse(*book))
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c, service.ErrBookNotFound)
	if !ok {
		return
	}

	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	book, err := h.bookService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewBookResponse(*book))
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, service.ErrBookNotFound)
	if !ok {
		return
	}

	if err := h.bookService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book and associated reviews deleted"})
}
