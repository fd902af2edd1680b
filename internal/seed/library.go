package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"personal-library/internal/models"
	"personal-library/internal/service"
	"personal-library/pkg/logger"
)

//go:embed data/library.yaml
var defaultLibrary []byte

type Library struct {
	Users []UserSeed `yaml:"users"`
	Books []BookSeed `yaml:"books"`
}

type UserSeed struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type BookSeed struct {
	Title   string       `yaml:"title"`
	Author  string       `yaml:"author"`
	Genre   string       `yaml:"genre"`
	Reviews []ReviewSeed `yaml:"reviews"`
}

// ReviewSeed refers to its reader by email.
type ReviewSeed struct {
	Reader  string `yaml:"reader"`
	Rating  int    `yaml:"rating"`
	Content string `yaml:"content"`
}

// Result counts the rows a seed run created.
type Result struct {
	Users   int
	Books   int
	Reviews int
}

func DefaultLibrary() (*Library, error) {
	return ParseLibrary(defaultLibrary)
}

func ParseLibrary(data []byte) (*Library, error) {
	var library Library
	if err := yaml.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("failed to parse seed library: %w", err)
	}
	return &library, nil
}

// EnsureSampleLibrary loads the bundled sample library when no books exist
// yet. A populated library is left untouched.
func EnsureSampleLibrary(users *service.UserService, books *service.BookService, reviews *service.ReviewService) (Result, error) {
	if users == nil || books == nil || reviews == nil {
		return Result{}, nil
	}

	count, err := books.Count()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		logger.Info("Library already populated, skipping seed", map[string]interface{}{"books": count})
		return Result{}, nil
	}

	library, err := DefaultLibrary()
	if err != nil {
		return Result{}, err
	}

	result, err := Apply(library, users, books, reviews)
	if err != nil {
		return result, err
	}

	logger.Info("Seeded sample library", map[string]interface{}{
		"users":   result.Users,
		"books":   result.Books,
		"reviews": result.Reviews,
	})
	return result, nil
}

// Apply creates the users, books and reviews of library. Readers that already
// exist are reused.
func Apply(library *Library, users *service.UserService, books *service.BookService, reviews *service.ReviewService) (Result, error) {
	var result Result

	readers := make(map[string]uint)
	existing, err := users.List()
	if err != nil {
		return result, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range existing {
		readers[strings.ToLower(user.Email)] = user.ID
	}

	for _, entry := range library.Users {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		if _, ok := readers[email]; ok {
			continue
		}
		user, err := users.Create(models.CreateUserRequest{Name: entry.Name, Email: email})
		if err != nil {
			return result, fmt.Errorf("failed to seed user %q: %w", entry.Email, err)
		}
		readers[email] = user.ID
		result.Users++
	}

	for _, entry := range library.Books {
		book, err := books.Create(models.CreateBookRequest{Title: entry.Title, Author: entry.Author, Genre: entry.Genre})
		if err != nil {
			return result, fmt.Errorf("failed to seed book %q: %w", entry.Title, err)
		}
		result.Books++

		for _, review := range entry.Reviews {
			readerID, ok := readers[strings.ToLower(strings.TrimSpace(review.Reader))]
			if !ok {
				return result, fmt.Errorf("review of %q refers to unknown reader %q", entry.Title, review.Reader)
			}
			rating := review.Rating
			if _, err := reviews.Create(models.CreateReviewRequest{
				Content: review.Content,
				Rating:  &rating,
				UserID:  readerID,
				BookID:  book.ID,
			}); err != nil {
				return result, fmt.Errorf("failed to seed review of %q: %w", entry.Title, err)
			}
			result.Reviews++
		}
	}

	return result, nil
}
