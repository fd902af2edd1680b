package service

import (
	"errors"

	"gorm.io/gorm"

	"personal-library/internal/models"
	"personal-library/internal/repository"
	"personal-library/pkg/validator"
)

type ReviewService struct {
	repo     repository.ReviewRepository
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	cache    BooksCache
}

func NewReviewService(repo repository.ReviewRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository, cache BooksCache) *ReviewService {
	return &ReviewService{
		repo:     repo,
		bookRepo: bookRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *ReviewService) List() ([]models.ReviewListItem, error) {
	reviews, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return models.NewReviewListItems(reviews), nil
}

func (s *ReviewService) ListByBook(bookID uint) ([]models.BookReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	reviews, err := s.repo.GetByBookID(bookID)
	if err != nil {
		return nil, err
	}
	return models.NewBookReviewResponses(reviews), nil
}

func (s *ReviewService) Create(req models.CreateReviewRequest) (*models.Review, error) {
	content := validator.CleanText(req.Content)
	if content == "" || req.Rating == nil || req.UserID == 0 || req.BookID == 0 {
		return nil, ErrMissingFields
	}
	if !validRating(*req.Rating) {
		return nil, ErrInvalidRating
	}

	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.bookRepo.GetByID(req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &models.Review{
		Content: content,
		Rating:  *req.Rating,
		UserID:  req.UserID,
		BookID:  req.BookID,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}

	invalidateBooks(s.cache)
	return review, nil
}

// Update applies the non-nil fields of req. Author and book never change.
func (s *ReviewService) Update(id uint, req models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if req.Content != nil {
		content := validator.CleanText(*req.Content)
		if content == "" {
			return nil, ErrMissingFields
		}
		review.Content = content
	}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}

	review.User = nil
	review.Book = nil
	if err := s.repo.Update(review); err != nil {
		return nil, err
	}

	invalidateBooks(s.cache)
	return review, nil
}

func (s *ReviewService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	invalidateBooks(s.cache)
	return nil
}

func validRating(rating int) bool {
	return rating >= models.MinRating && rating <= models.MaxRating
}
