package repository

import (
	"personal-library/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetAll() ([]models.Review, error)
	GetByBookID(bookID uint) ([]models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Omit(clause.Associations).Create(review).Error
}

func (r *reviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").Preload("Book").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetAll() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Preload("Book").Order("id ASC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) GetByBookID(bookID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Where("book_id = ?", bookID).Order("id ASC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Omit(clause.Associations).Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
