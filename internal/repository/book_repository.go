package repository

import (
	"personal-library/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id uint) (*models.Book, error)
	GetAll() ([]models.Book, error)
	Update(book *models.Book) error
	Delete(id uint) error
	Count() (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) withReviews() *gorm.DB {
	return r.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.id ASC")
		}).
		Preload("Reviews.User")
}

func (r *bookRepository) Create(book *models.Book) error {
	return r.db.Omit(clause.Associations).Create(book).Error
}

func (r *bookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.withReviews().First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	err := r.withReviews().Order("id ASC").Find(&books).Error
	return books, err
}

func (r *bookRepository) Update(book *models.Book) error {
	return r.db.Omit(clause.Associations).Save(book).Error
}

// Delete removes the book and every review attached to it.
func (r *bookRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *bookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Book{}).Count(&count).Error
	return count, err
}
