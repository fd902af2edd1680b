package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"personal-library/internal/models"
	"personal-library/internal/service"
	"personal-library/pkg/logger"
)

func (h *TemplateHandler) RenderBooks(c *gin.Context) {
	books, err := h.bookService.List()
	if err != nil {
		logger.Error(err, "Failed to load books", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load books")
		return
	}

	h.renderTemplate(c, "books", "Books", "Every book on the shelf with its reviews.", gin.H{
		"Books": books,
	})
}

func (h *TemplateHandler) RenderNewBook(c *gin.Context) {
	h.renderTemplate(c, "book_new", "Add Book", "Add a book to the library.", gin.H{
		"Form": models.CreateBookRequest{
			Title:  c.Query("title"),
			Author: c.Query("author"),
			Genre:  c.Query("genre"),
		},
	})
}

func (h *TemplateHandler) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/books/new", bindError(err), url.Values{
			"title":  {req.Title},
			"author": {req.Author},
			"genre":  {req.Genre},
		})
		return
	}

	book, err := h.bookService.Create(req)
	if err != nil {
		redirectWithError(c, "/books/new", err, nil)
		return
	}

	logger.Info("Book added", map[string]interface{}{"book_id": book.ID})
	redirectWithMessage(c, "/", flashBookAdded)
}

func (h *TemplateHandler) RenderBook(c *gin.Context) {
	id, ok := h.pageID(c, "Book not found")
	if !ok {
		return
	}

	book, err := h.bookService.GetDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			h.renderError(c, http.StatusNotFound, "404 - Not Found", "Book not found")
			return
		}
		logger.Error(err, "Failed to load book", map[string]interface{}{"book_id": id})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load book")
		return
	}

	users, err := h.userService.List()
	if err != nil {
		logger.Error(err, "Failed to load users", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load users")
		return
	}

	h.renderTemplate(c, "book", book.Title, "Reviews of "+book.Title+" by "+book.Author+".", gin.H{
		"Book":  book,
		"Users": models.NewUserResponses(users),
	})
}

func (h *TemplateHandler) DeleteBook(c *gin.Context) {
	id, ok := h.pageID(c, "Book not found")
	if !ok {
		return
	}

	if err := h.bookService.Delete(id); err != nil {
		redirectWithError(c, "/", err, nil)
		return
	}

	redirectWithMessage(c, "/", flashBookDeleted)
}

func (h *TemplateHandler) CreateReview(c *gin.Context) {
	id, ok := h.pageID(c, "Book not found")
	if !ok {
		return
	}
	target := "/books/" + strconv.FormatUint(uint64(id), 10)

	req := models.CreateReviewRequest{
		Content: c.PostForm("content"),
		BookID:  id,
	}
	if rating, err := strconv.Atoi(strings.TrimSpace(c.PostForm("rating"))); err == nil {
		req.Rating = &rating
	}
	if userID, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("user_id")), 10, 32); err == nil {
		req.UserID = uint(userID)
	}

	if _, err := h.reviewService.Create(req); err != nil {
		redirectWithError(c, target, err, nil)
		return
	}

	redirectWithMessage(c, target, flashReviewAdded)
}

func (h *TemplateHandler) RenderUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		logger.Error(err, "Failed to load users", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load users")
		return
	}

	h.renderTemplate(c, "users", "Manage Users", "Readers who can review books.", gin.H{
		"Users": models.NewUserResponses(users),
		"Form": models.CreateUserRequest{
			Name:  c.Query("name"),
			Email: c.Query("email"),
		},
	})
}

func (h *TemplateHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/users", bindError(err), url.Values{
			"name":  {req.Name},
			"email": {req.Email},
		})
		return
	}

	if _, err := h.userService.Create(req); err != nil {
		redirectWithError(c, "/users", err, url.Values{
			"name":  {req.Name},
			"email": {req.Email},
		})
		return
	}

	redirectWithMessage(c, "/users", flashUserAdded)
}

func (h *TemplateHandler) DeleteUser(c *gin.Context) {
	id, ok := h.pageID(c, "User not found")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		redirectWithError(c, "/users", err, nil)
		return
	}

	redirectWithMessage(c, "/users", flashUserDeleted)
}

func (h *TemplateHandler) RenderReviews(c *gin.Context) {
	reviews, err := h.reviewService.List()
	if err != nil {
		logger.Error(err, "Failed to load reviews", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load reviews")
		return
	}

	h.renderTemplate(c, "reviews", "Reviews", "Every review in the library.", gin.H{
		"Reviews": reviews,
	})
}

func (h *TemplateHandler) DeleteReview(c *gin.Context) {
	id, ok := h.pageID(c, "Review not found")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(id); err != nil {
		redirectWithError(c, "/reviews", err, nil)
		return
	}

	redirectWithMessage(c, "/reviews", flashReviewDeleted)
}

// NotFound answers unmatched routes: JSON under /api, the error page
// everywhere else.
func (h *TemplateHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	h.renderError(c, http.StatusNotFound, "404 - Not Found", "The page you are looking for does not exist.")
}

func (h *TemplateHandler) pageID(c *gin.Context, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.renderError(c, http.StatusNotFound, "404 - Not Found", notFound)
		return 0, false
	}
	return uint(id), true
}

const (
	flashBookAdded     = "book-added"
	flashBookDeleted   = "book-deleted"
	flashReviewAdded   = "review-added"
	flashReviewDeleted = "review-deleted"
	flashUserAdded     = "user-added"
	flashUserDeleted   = "user-deleted"
)

// flashMessages are the only notices a redirect can ask a page to show.
var flashMessages = map[string]string{
	flashBookAdded:     "Book added",
	flashBookDeleted:   "Book and associated reviews deleted",
	flashReviewAdded:   "Review added",
	flashReviewDeleted: "Review deleted",
	flashUserAdded:     "User added",
	flashUserDeleted:   "User deleted",
}

func redirectWithMessage(c *gin.Context, target, key string) {
	c.Redirect(http.StatusSeeOther, target+"?"+url.Values{"message": {key}}.Encode())
}

// redirectWithError sends the browser back to target with the error code and
// any form values to restore.
func redirectWithError(c *gin.Context, target string, err error, form url.Values) {
	resolved, known := resolveAPIError(err)
	if !known {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Form submission failed")
	}

	values := url.Values{}
	for key, value := range form {
		if len(value) > 0 && strings.TrimSpace(value[0]) != "" {
			values.Set(key, value[0])
		}
	}
	values.Set("error", resolved.code)

	c.Redirect(http.StatusSeeOther, target+"?"+values.Encode())
}
