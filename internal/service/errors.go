package service

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidField   = errors.New("invalid field value")
	ErrEmailExists    = errors.New("email already exists")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)
