package repository

import (
	"testing"

	"personal-library/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStore(t *testing.T) (*MemoryStore, *models.User, *models.Book) {
	t.Helper()
	store := NewMemoryStore()

	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.Users().Create(user))

	book := &models.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"}
	require.NoError(t, store.Books().Create(book))

	review := &models.Review{Content: "Spice", Rating: 5, UserID: user.ID, BookID: book.ID}
	require.NoError(t, store.Reviews().Create(review))

	return store, user, book
}

func TestMemoryStorePopulatesRelations(t *testing.T) {
	store, user, book := seedStore(t)

	loaded, err := store.Books().GetByID(book.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Reviews, 1)
	require.NotNil(t, loaded.Reviews[0].User)
	assert.Equal(t, user.Name, loaded.Reviews[0].User.Name)

	reviews, err := store.Reviews().GetAll()
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Book)
	assert.Equal(t, "Dune", reviews[0].Book.Title)
}

func TestMemoryStoreRejectsDuplicateEmail(t *testing.T) {
	store, _, _ := seedStore(t)

	err := store.Users().Create(&models.User{Name: "Other", Email: "ADA@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMemoryStoreBookDeleteCascades(t *testing.T) {
	store, _, book := seedStore(t)

	require.NoError(t, store.Books().Delete(book.ID))

	reviews, err := store.Reviews().GetAll()
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = store.Books().GetByID(book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryStoreUserDeleteCascades(t *testing.T) {
	store, user, book := seedStore(t)

	require.NoError(t, store.Users().Delete(user.ID))

	reviews, err := store.Reviews().GetByBookID(book.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.ErrorIs(t, store.Users().Delete(user.ID), gorm.ErrRecordNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store, _, book := seedStore(t)

	loaded, err := store.Books().GetByID(book.ID)
	require.NoError(t, err)
	loaded.Title = "Changed"

	again, err := store.Books().GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", again.Title)
}
