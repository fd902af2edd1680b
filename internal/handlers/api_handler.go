package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"personal-library/internal/service"
	"personal-library/pkg/logger"
)

const welcomeMessage = "Welcome to the Personal Library API!"

type apiError struct {
	status  int
	code    string
	message string
}

var internalError = apiError{http.StatusInternalServerError, "internal-error", "Internal server error"}

// apiErrors maps service errors to the status and message reported to API
// clients. The code names the error in page redirects.
var apiErrors = []struct {
	err error
	apiError
}{
	{service.ErrMissingFields, apiError{http.StatusBadRequest, "missing-fields", "Missing required fields"}},
	{service.ErrInvalidField, apiError{http.StatusBadRequest, "invalid-field", "Invalid field value"}},
	{service.ErrEmailExists, apiError{http.StatusBadRequest, "email-exists", "Email already exists"}},
	{service.ErrInvalidEmail, apiError{http.StatusBadRequest, "invalid-email", "Invalid email address"}},
	{service.ErrInvalidRating, apiError{http.StatusBadRequest, "invalid-rating", "Rating must be between 1 and 5"}},
	{service.ErrUserNotFound, apiError{http.StatusNotFound, "user-not-found", "User not found"}},
	{service.ErrBookNotFound, apiError{http.StatusNotFound, "book-not-found", "Book not found"}},
	{service.ErrReviewNotFound, apiError{http.StatusNotFound, "review-not-found", "Review not found"}},
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

func resolveAPIError(err error) (apiError, bool) {
	for _, entry := range apiErrors {
		if errors.Is(err, entry.err) {
			return entry.apiError, true
		}
	}
	return internalError, false
}

func apiErrorByCode(code string) (apiError, bool) {
	if code == internalError.code {
		return internalError, true
	}
	for _, entry := range apiErrors {
		if entry.code == code {
			return entry.apiError, true
		}
	}
	return apiError{}, false
}

func respondError(c *gin.Context, err error) {
	resolved, known := resolveAPIError(err)
	if !known {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
	}
	c.JSON(resolved.status, gin.H{"error": resolved.message})
}

// bindError classifies a binding failure. An empty body or a failed
// "required" rule means missing fields; anything else, such as a value over
// its max length or of the wrong JSON type, is an invalid field.
func bindError(err error) error {
	if errors.Is(err, io.EOF) {
		return service.ErrMissingFields
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			if fieldErr.Tag() == "required" {
				return service.ErrMissingFields
			}
		}
	}
	return service.ErrInvalidField
}

// parseID reads the :id path parameter. A malformed id is reported as the
// given not-found error, matching how the API treats unknown ids.
func parseID(c *gin.Context, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, notFound)
		return 0, false
	}
	return uint(id), true
}
