package service

import (
	"errors"

	"gorm.io/gorm"

	"personal-library/internal/models"
	"personal-library/internal/repository"
	"personal-library/pkg/validator"
)

type BookService struct {
	repo  repository.BookRepository
	cache BooksCache
}

func NewBookService(repo repository.BookRepository, cache BooksCache) *BookService {
	return &BookService{repo: repo, cache: cache}
}

// List returns every book with its reviews, served from the cache when one is
// configured and warm.
func (s *BookService) List() ([]models.BookDetailResponse, error) {
	if s.cache != nil {
		var cached []models.BookDetailResponse
		if err := s.cache.GetCachedBooks(&cached); err == nil {
			return cached, nil
		}
	}

	books, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	result := models.NewBookDetailResponses(books)
	if s.cache != nil {
		if err := s.cache.CacheBooks(result); err != nil {
			logWarn("Failed to cache books", err)
		}
	}
	return result, nil
}

func (s *BookService) Get(id uint) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) GetDetail(id uint) (*models.BookDetailResponse, error) {
	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	detail := models.NewBookDetailResponse(*book)
	return &detail, nil
}

func (s *BookService) Create(req models.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:  validator.CleanText(req.Title),
		Author: validator.CleanText(req.Author),
		Genre:  validator.CleanText(req.Genre),
	}
	if book.Title == "" || book.Author == "" || book.Genre == "" {
		return nil, ErrMissingFields
	}

	if err := s.repo.Create(book); err != nil {
		return nil, err
	}

	invalidateBooks(s.cache)
	return book, nil
}

// Update applies the non-nil fields of req.
func (s *BookService) Update(id uint, req models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		value  *string
		target *string
	}{
		{req.Title, &book.Title},
		{req.Author, &book.Author},
		{req.Genre, &book.Genre},
	}
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		cleaned := validator.CleanText(*field.value)
		if cleaned == "" {
			return nil, ErrMissingFields
		}
		*field.target = cleaned
	}

	book.Reviews = nil
	if err := s.repo.Update(book); err != nil {
		return nil, err
	}

	invalidateBooks(s.cache)
	return book, nil
}

// Delete removes the book and its reviews.
func (s *BookService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	invalidateBooks(s.cache)
	return nil
}

func (s *BookService) Count() (int64, error) {
	return s.repo.Count()
}
