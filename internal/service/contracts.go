package service

import "personal-library/pkg/logger"

// BooksCache stores the rendered books listing. *cache.Cache satisfies it.
type BooksCache interface {
	CacheBooks(books interface{}) error
	GetCachedBooks(dest interface{}) error
	InvalidateBooks() error
}

func invalidateBooks(cache BooksCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateBooks(); err != nil {
		logWarn("Failed to invalidate books cache", err)
	}
}

func logWarn(msg string, err error) {
	logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}
