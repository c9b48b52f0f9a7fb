// internal/circulation/implementation.go
package circulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"athena/internal/catalog"
	"athena/internal/errs"
	"athena/internal/store"
)

// service implements the Service interface. The transaction collection
// lives in memory, newest first, and is rewritten whole to the store on
// every mutation. A per-book lock keeps issue and return from
// interleaving on the same book.
type service struct {
	mu           sync.RWMutex
	transactions []Transaction

	store   store.Store
	catalog Catalog
	roster  Roster
	logger  *zap.Logger
	locks   *bookLocks
	now     func() time.Time

	issuedCounter   metric.Int64Counter
	returnedCounter metric.Int64Counter
}

// NewService creates a circulation engine, loading the transaction
// collection from the store.
func NewService(ctx context.Context, st store.Store, cat Catalog, ros Roster, logger *zap.Logger) (Service, error) {
	meter := otel.Meter("athena/circulation")
	issued, err := meter.Int64Counter("circulation.books_issued")
	if err != nil {
		return nil, fmt.Errorf("create issued counter: %w", err)
	}
	returned, err := meter.Int64Counter("circulation.books_returned")
	if err != nil {
		return nil, fmt.Errorf("create returned counter: %w", err)
	}

	s := &service{
		store:           st,
		catalog:         cat,
		roster:          ros,
		logger:          logger,
		locks:           newBookLocks(),
		now:             time.Now,
		issuedCounter:   issued,
		returnedCounter: returned,
	}

	if _, err := st.Load(ctx, store.KeyTransactions, &s.transactions); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	return s, nil
}

// IssueBook creates an ACTIVE transaction and flips the book to ISSUED.
// Both mutations are applied atomically from the caller's point of
// view: the per-book lock serializes the pair, and a failed persist
// compensates the status flip.
func (s *service) IssueBook(ctx context.Context, bookID, studentID uuid.UUID) (*Transaction, error) {
	l := s.locks.lock(bookID)
	defer l.Unlock()

	if _, err := s.roster.GetStudent(ctx, studentID); err != nil {
		return nil, fmt.Errorf("issue: %w", err)
	}

	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("issue: %w", err)
	}
	if book.Status != catalog.StatusAvailable {
		return nil, fmt.Errorf("issue: book %s is %s: %w", bookID, book.Status, errs.ErrInvalidState)
	}

	issuedAt := s.now()
	txn := Transaction{
		ID:        uuid.New(),
		BookID:    bookID,
		StudentID: studentID,
		IssueDate: issuedAt,
		DueDate:   issuedAt.AddDate(0, 0, LoanPeriodDays),
		Status:    StatusActive,
	}

	if err := s.catalog.SetStatus(ctx, bookID, catalog.StatusIssued); err != nil {
		return nil, fmt.Errorf("issue: mark book issued: %w", err)
	}

	// Compensation for a failed transaction write: put the book back.
	compensate := func() {
		if err := s.catalog.SetStatus(ctx, bookID, catalog.StatusAvailable); err != nil {
			s.logger.Error("failed to compensate book status after issue failure",
				zap.String("book_id", bookID.String()),
				zap.Error(err),
			)
		}
	}

	s.mu.Lock()
	s.transactions = append([]Transaction{txn}, s.transactions...)
	if err := s.persistLocked(ctx); err != nil {
		s.transactions = s.transactions[1:]
		s.mu.Unlock()
		compensate()
		return nil, err
	}
	s.mu.Unlock()

	s.issuedCounter.Add(ctx, 1)
	s.logger.Info("book issued",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("book_id", bookID.String()),
		zap.String("student_id", studentID.String()),
		zap.Time("due_date", txn.DueDate),
	)
	return &txn, nil
}

// ReturnBook closes an open transaction and flips the book back to
// AVAILABLE. Returning an already-returned transaction is an error, not
// a silent no-op.
func (s *service) ReturnBook(ctx context.Context, transactionID uuid.UUID) error {
	s.mu.RLock()
	idx := s.indexLocked(transactionID)
	if idx < 0 {
		s.mu.RUnlock()
		return fmt.Errorf("return: transaction %s: %w", transactionID, errs.ErrNotFound)
	}
	bookID := s.transactions[idx].BookID
	s.mu.RUnlock()

	l := s.locks.lock(bookID)
	defer l.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-resolve under the lock; a concurrent return may have won.
	idx = s.indexLocked(transactionID)
	if idx < 0 {
		return fmt.Errorf("return: transaction %s: %w", transactionID, errs.ErrNotFound)
	}
	if !s.transactions[idx].Open() {
		return fmt.Errorf("return: transaction %s already returned: %w", transactionID, errs.ErrInvalidState)
	}

	previous := s.transactions[idx]
	returnedAt := s.now()
	s.transactions[idx].Status = StatusReturned
	s.transactions[idx].ReturnDate = &returnedAt

	if err := s.catalog.SetStatus(ctx, bookID, catalog.StatusAvailable); err != nil {
		s.transactions[idx] = previous
		return fmt.Errorf("return: mark book available: %w", err)
	}

	if err := s.persistLocked(ctx); err != nil {
		s.transactions[idx] = previous
		if cerr := s.catalog.SetStatus(ctx, bookID, catalog.StatusIssued); cerr != nil {
			s.logger.Error("failed to compensate book status after return failure",
				zap.String("book_id", bookID.String()),
				zap.Error(cerr),
			)
		}
		return err
	}

	s.returnedCounter.Add(ctx, 1)
	s.logger.Info("book returned",
		zap.String("transaction_id", transactionID.String()),
		zap.String("book_id", bookID.String()),
	)
	return nil
}

// RefreshOverdueStatus reclassifies ACTIVE transactions past their due
// date as OVERDUE. Applying it twice with the same now changes nothing.
func (s *service) RefreshOverdueStatus(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.transactions {
		if s.transactions[i].Status == StatusActive && s.transactions[i].DueDate.Before(now) {
			s.transactions[i].Status = StatusOverdue
			changed++
		}
	}
	if changed == 0 {
		return nil
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.logger.Info("overdue sweep", zap.Int("reclassified", changed))
	return nil
}

// ListTransactions returns a copy of the collection, newest first.
func (s *service) ListTransactions(ctx context.Context) ([]Transaction, error) {
	if err := s.RefreshOverdueStatus(ctx, s.now()); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	return transactions, nil
}

func (s *service) indexLocked(id uuid.UUID) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *service) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, store.KeyTransactions, s.transactions); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
