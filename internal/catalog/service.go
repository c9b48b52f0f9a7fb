// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog manager.
type Service interface {
	AddBook(ctx context.Context, title, author, isbn, category, description string) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context) ([]Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// SetStatus flips a book between AVAILABLE and ISSUED. Book status
	// is owned by the circulation engine; nothing else may call this.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}
