// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"athena/internal/errs"
	"athena/internal/store"
)

// service implements the Service interface. The book collection lives
// in memory and is rewritten whole to the store on every mutation.
type service struct {
	mu     sync.RWMutex
	books  []Book
	store  store.Store
	logger *zap.Logger
}

// NewService creates a catalog manager, loading the collection from the
// store or falling back to the seed catalog on first run.
func NewService(ctx context.Context, st store.Store, logger *zap.Logger) (Service, error) {
	s := &service{
		store:  st,
		logger: logger,
	}

	found, err := st.Load(ctx, store.KeyBooks, &s.books)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if !found {
		s.books = seedBooks()
		if err := st.Save(ctx, store.KeyBooks, s.books); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("seeded catalog", zap.Int("books", len(s.books)))
	}

	return s, nil
}

// AddBook appends a new book with a fresh id. The status is always
// AVAILABLE on creation; duplicate ISBNs are allowed.
func (s *service) AddBook(ctx context.Context, title, author, isbn, category, description string) (*Book, error) {
	book := Book{
		ID:          uuid.New(),
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Category:    category,
		Status:      StatusAvailable,
		AddedDate:   time.Now().UTC(),
		Description: description,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append(s.books, book)
	if err := s.persistLocked(ctx); err != nil {
		s.books = s.books[:len(s.books)-1]
		return nil, err
	}

	s.logger.Info("book added",
		zap.String("book_id", book.ID.String()),
		zap.String("title", book.Title),
	)
	return &book, nil
}

// GetBook returns a copy of the book with the given id.
func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.books {
		if s.books[i].ID == id {
			book := s.books[i]
			return &book, nil
		}
	}
	return nil, fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
}

// ListBooks returns a copy of the whole catalog.
func (s *service) ListBooks(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]Book, len(s.books))
	copy(books, s.books)
	return books, nil
}

// DeleteBook removes a book from the catalog. A book that is currently
// issued cannot be deleted; its open transaction would dangle.
func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.books {
		if s.books[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
	}
	if s.books[idx].Status == StatusIssued {
		return fmt.Errorf("book %s is issued: %w", id, errs.ErrInvalidState)
	}

	removed := s.books[idx]
	s.books = append(s.books[:idx], s.books[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.books = append(s.books[:idx], append([]Book{removed}, s.books[idx:]...)...)
		return err
	}

	s.logger.Info("book deleted", zap.String("book_id", id.String()))
	return nil
}

// SetStatus updates the status of a book.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			previous := s.books[i].Status
			s.books[i].Status = status
			if err := s.persistLocked(ctx); err != nil {
				s.books[i].Status = previous
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
}

func (s *service) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, store.KeyBooks, s.books); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
