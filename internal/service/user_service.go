package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"personal-library/internal/models"
	"personal-library/internal/repository"
	"personal-library/pkg/validator"
)

type UserService struct {
	repo  repository.UserRepository
	cache BooksCache
}

func NewUserService(repo repository.UserRepository, cache BooksCache) *UserService {
	return &UserService{repo: repo, cache: cache}
}

func (s *UserService) List() ([]models.User, error) {
	return s.repo.GetAll()
}

func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(req models.CreateUserRequest) (*models.User, error) {
	name := validator.CleanText(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !validator.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the user and their reviews.
func (s *UserService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	invalidateBooks(s.cache)
	return nil
}

func (s *UserService) Count() (int64, error) {
	return s.repo.Count()
}
