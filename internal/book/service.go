package book

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Service provides the finished-books read-modify-write cycle.
type Service struct {
	repo   Repository
	logger *slog.Logger

	// mu serializes every load/check/insert/save sequence so concurrent
	// additions cannot overwrite each other.
	mu sync.Mutex
}

// NewService creates a new book service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Add normalizes title and author, then stores the book unless a book with
// the same title is already present.
func (s *Service) Add(ctx context.Context, title, author string) (AddResult, error) {
	if title == "" {
		return AddResult{}, fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if author == "" {
		return AddResult{}, fmt.Errorf("%w: author is required", ErrBadRequest)
	}

	b := Book{Title: Normalize(title), Author: Normalize(author)}

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.repo.Load(ctx)
	if err != nil {
		return AddResult{}, err
	}

	if Exists(b.Title, books) {
		s.logger.InfoContext(ctx, "Book already present", "title", b.Title)
		return AddResult{Book: b, Added: false}, nil
	}

	if err := s.repo.Save(ctx, Insert(b.Title, b.Author, books)); err != nil {
		return AddResult{}, err
	}

	s.logger.InfoContext(ctx, "Book added to the library", "title", b.Title, "author", b.Author, "count", len(books)+1)
	return AddResult{Book: b, Added: true}, nil
}

// List returns the stored collection in its persisted order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Load(ctx)
}

// Copy moves a whole collection between stores, re-sorting it by title so
// the destination holds the same order an insertion would produce.
func Copy(ctx context.Context, src, dst Repository) (int, error) {
	books, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	sorted := SortByTitle(books)
	if err := dst.Save(ctx, sorted); err != nil {
		return 0, err
	}
	return len(sorted), nil
}
