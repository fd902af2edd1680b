package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"personal-library/internal/models"

	"gorm.io/gorm"
)

// MemoryStore keeps users, books and reviews in process memory. It backs
// DB_DRIVER=memory and mirrors the gorm repositories: reads return copies
// with relations populated, deletes cascade to reviews.
type MemoryStore struct {
	mu sync.RWMutex

	users   map[uint]models.User
	books   map[uint]models.Book
	reviews map[uint]models.Review

	nextUserID   uint
	nextBookID   uint
	nextReviewID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uint]models.User),
		books:   make(map[uint]models.Book),
		reviews: make(map[uint]models.Review),
	}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{store: s}
}

func (s *MemoryStore) Books() BookRepository {
	return &memoryBookRepository{store: s}
}

func (s *MemoryStore) Reviews() ReviewRepository {
	return &memoryReviewRepository{store: s}
}

func (s *MemoryStore) userCopy(id uint) *models.User {
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	user.Reviews = nil
	return &user
}

func (s *MemoryStore) bookCopy(id uint) *models.Book {
	book, ok := s.books[id]
	if !ok {
		return nil
	}
	book.Reviews = nil
	return &book
}

func (s *MemoryStore) sortedReviews(filter func(models.Review) bool) []models.Review {
	ids := make([]uint, 0, len(s.reviews))
	for id, review := range s.reviews {
		if filter == nil || filter(review) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		review := s.reviews[id]
		review.User = s.userCopy(review.UserID)
		review.Book = s.bookCopy(review.BookID)
		result = append(result, review)
	}
	return result
}

func (s *MemoryStore) deleteReviews(filter func(models.Review) bool) {
	for id, review := range s.reviews {
		if filter(review) {
			delete(s.reviews, id)
		}
	}
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}

	s.nextUserID++
	now := time.Now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	stored.Reviews = nil
	s.users[user.ID] = stored
	return nil
}

func (r *memoryUserRepository) GetByID(id uint) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.userCopy(id)
	if user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return s.userCopy(id), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) GetAll() ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for id := range s.users {
		users = append(users, *s.userCopy(id))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepository) Delete(id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleteReviews(func(review models.Review) bool { return review.UserID == id })
	delete(s.users, id)
	return nil
}

func (r *memoryUserRepository) Count() (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

type memoryBookRepository struct {
	store *MemoryStore
}

func (r *memoryBookRepository) Create(book *models.Book) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBookID++
	now := time.Now()
	book.ID = s.nextBookID
	book.CreatedAt = now
	book.UpdatedAt = now

	stored := *book
	stored.Reviews = nil
	s.books[book.ID] = stored
	return nil
}

func (r *memoryBookRepository) withReviews(id uint) *models.Book {
	s := r.store
	book := s.bookCopy(id)
	if book == nil {
		return nil
	}
	book.Reviews = s.sortedReviews(func(review models.Review) bool { return review.BookID == id })
	for i := range book.Reviews {
		book.Reviews[i].Book = nil
	}
	return book
}

func (r *memoryBookRepository) GetByID(id uint) (*models.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	book := r.withReviews(id)
	if book == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (r *memoryBookRepository) GetAll() ([]models.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	books := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		books = append(books, *r.withReviews(id))
	}
	return books, nil
}

func (r *memoryBookRepository) Update(book *models.Book) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	book.UpdatedAt = time.Now()
	stored := *book
	stored.Reviews = nil
	s.books[book.ID] = stored
	return nil
}

func (r *memoryBookRepository) Delete(id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleteReviews(func(review models.Review) bool { return review.BookID == id })
	delete(s.books, id)
	return nil
}

func (r *memoryBookRepository) Count() (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.books)), nil
}

type memoryReviewRepository struct {
	store *MemoryStore
}

func (r *memoryReviewRepository) Create(review *models.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReviewID++
	now := time.Now()
	review.ID = s.nextReviewID
	review.CreatedAt = now
	review.UpdatedAt = now

	stored := *review
	stored.User = nil
	stored.Book = nil
	s.reviews[review.ID] = stored
	return nil
}

func (r *memoryReviewRepository) GetByID(id uint) (*models.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.sortedReviews(func(review models.Review) bool { return review.ID == id })
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &matches[0], nil
}

func (r *memoryReviewRepository) GetAll() ([]models.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedReviews(nil), nil
}

func (r *memoryReviewRepository) GetByBookID(bookID uint) ([]models.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := s.sortedReviews(func(review models.Review) bool { return review.BookID == bookID })
	for i := range reviews {
		reviews[i].Book = nil
	}
	return reviews, nil
}

func (r *memoryReviewRepository) Update(review *models.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	review.UpdatedAt = time.Now()
	stored := *review
	stored.User = nil
	stored.Book = nil
	s.reviews[review.ID] = stored
	return nil
}

func (r *memoryReviewRepository) Delete(id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.reviews, id)
	return nil
}
