// internal/circulation/service.go
package circulation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"athena/internal/catalog"
	"athena/internal/roster"
)

// Service defines the interface for the circulation engine. It is the
// sole owner of the transaction collection and the only writer of book
// status.
type Service interface {
	IssueBook(ctx context.Context, bookID, studentID uuid.UUID) (*Transaction, error)
	ReturnBook(ctx context.Context, transactionID uuid.UUID) error

	// RefreshOverdueStatus reclassifies every ACTIVE transaction whose
	// due date has passed as OVERDUE. Idempotent; RETURNED transactions
	// are never touched.
	RefreshOverdueStatus(ctx context.Context, now time.Time) error

	// ListTransactions refreshes the overdue classification against the
	// wall clock, then returns a copy of the collection, newest first.
	ListTransactions(ctx context.Context) ([]Transaction, error)
}

// Catalog is the slice of the catalog manager the engine depends on.
type Catalog interface {
	GetBook(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	SetStatus(ctx context.Context, id uuid.UUID, status catalog.Status) error
}

// Roster is the slice of the roster manager the engine depends on.
type Roster interface {
	GetStudent(ctx context.Context, id uuid.UUID) (*roster.Student, error)
}
