package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/roster"
)

func book(category string, status catalog.Status) catalog.Book {
	return catalog.Book{ID: uuid.New(), Title: "t", Author: "a", Category: category, Status: status}
}

func TestSummarize(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	books := []catalog.Book{
		book("Fiction", catalog.StatusAvailable),
		book("Fiction", catalog.StatusIssued),
		book("Science", catalog.StatusIssued),
		book("History", catalog.StatusLost),
	}
	students := []roster.Student{{ID: uuid.New()}, {ID: uuid.New()}}
	returned := t0.AddDate(0, 0, 5)
	transactions := []circulation.Transaction{
		// Active and within the loan period.
		{ID: uuid.New(), IssueDate: t0, DueDate: t0.AddDate(0, 0, 14), Status: circulation.StatusActive},
		// Stored ACTIVE but past due: must count as overdue.
		{ID: uuid.New(), IssueDate: t0.AddDate(0, 0, -20), DueDate: t0.AddDate(0, 0, -6), Status: circulation.StatusActive},
		// Returned late: not overdue anymore.
		{ID: uuid.New(), IssueDate: t0.AddDate(0, 0, -30), DueDate: t0.AddDate(0, 0, -16), Status: circulation.StatusReturned, ReturnDate: &returned},
	}

	o := Summarize(books, students, transactions, t0)
	assert.Equal(t, 4, o.TotalBooks)
	assert.Equal(t, 2, o.IssuedBooks)
	assert.Equal(t, 1, o.AvailableBooks)
	assert.Equal(t, 2, o.ActiveStudents)
	assert.Equal(t, 1, o.OverdueReturns)
}

func TestCategoryBreakdown(t *testing.T) {
	books := []catalog.Book{
		book("Fiction", catalog.StatusAvailable),
		book("Fiction", catalog.StatusAvailable),
		book("Science", catalog.StatusAvailable),
	}

	got := CategoryBreakdown(books, 6)
	assert.Equal(t, []CategoryCount{
		{Category: "Fiction", Count: 2},
		{Category: "Science", Count: 1},
	}, got)
}

func TestCategoryBreakdownTiesKeepFirstEncounteredOrder(t *testing.T) {
	books := []catalog.Book{
		book("History", catalog.StatusAvailable),
		book("Science", catalog.StatusAvailable),
		book("Fiction", catalog.StatusAvailable),
		book("Fiction", catalog.StatusAvailable),
	}

	got := CategoryBreakdown(books, 6)
	assert.Equal(t, []CategoryCount{
		{Category: "Fiction", Count: 2},
		{Category: "History", Count: 1},
		{Category: "Science", Count: 1},
	}, got)
}

func TestCategoryBreakdownTruncates(t *testing.T) {
	books := []catalog.Book{
		book("A", catalog.StatusAvailable),
		book("B", catalog.StatusAvailable),
		book("C", catalog.StatusAvailable),
	}

	got := CategoryBreakdown(books, 2)
	assert.Len(t, got, 2)
}

func TestRecentActivity(t *testing.T) {
	var transactions []circulation.Transaction
	for i := 0; i < 7; i++ {
		transactions = append(transactions, circulation.Transaction{ID: uuid.New()})
	}

	got := RecentActivity(transactions, 5)
	assert.Len(t, got, 5)
	assert.Equal(t, transactions[0].ID, got[0].ID)

	assert.Len(t, RecentActivity(transactions[:2], 5), 2)
	assert.Empty(t, RecentActivity(nil, 5))
}
