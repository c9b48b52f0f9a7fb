// internal/circulation/domain.go
package circulation

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
	StatusOverdue  Status = "OVERDUE"
)

// LoanPeriodDays is the fixed loan period; the due date is always the
// issue date plus this many days.
const LoanPeriodDays = 14

// Transaction represents one issue of a book to a student. Transactions
// are created by issuing, mutated only by returning, and never deleted.
type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	StudentID  uuid.UUID  `json:"student_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     Status     `json:"status"`
}

// Open reports whether the transaction has not been returned yet.
func (t Transaction) Open() bool {
	return t.Status == StatusActive || t.Status == StatusOverdue
}

// StatusAt derives the status as observed at now. OVERDUE is a
// read-time refinement of ACTIVE, never a value to trust from storage;
// RETURNED is terminal.
func (t Transaction) StatusAt(now time.Time) Status {
	if t.Status == StatusActive && t.DueDate.Before(now) {
		return StatusOverdue
	}
	return t.Status
}
