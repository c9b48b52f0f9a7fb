// Package report derives dashboard statistics from the three
// collections. Everything here is a pure function over snapshots; there
// is no stored state and reads are recomputed every time.
package report

import (
	"sort"
	"time"

	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/roster"
)

// Overview is the headline card row of the dashboard.
type Overview struct {
	TotalBooks     int `json:"total_books"`
	IssuedBooks    int `json:"issued_books"`
	AvailableBooks int `json:"available_books"`
	ActiveStudents int `json:"active_students"`
	OverdueReturns int `json:"overdue_returns"`
}

// CategoryCount is one bar of the books-by-category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summarize computes the overview counts. Overdue is derived from the
// due date at observation time, never read from a stored flag.
func Summarize(books []catalog.Book, students []roster.Student, transactions []circulation.Transaction, now time.Time) Overview {
	o := Overview{
		TotalBooks:     len(books),
		ActiveStudents: len(students),
	}
	for _, b := range books {
		switch b.Status {
		case catalog.StatusIssued:
			o.IssuedBooks++
		case catalog.StatusAvailable:
			o.AvailableBooks++
		}
	}
	for _, t := range transactions {
		if t.StatusAt(now) == circulation.StatusOverdue {
			o.OverdueReturns++
		}
	}
	return o
}

// CategoryBreakdown groups books by category, sorted by count
// descending and truncated to topN. Ties keep first-encountered order.
func CategoryBreakdown(books []catalog.Book, topN int) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, b := range books {
		if _, seen := counts[b.Category]; !seen {
			order = append(order, b.Category)
		}
		counts[b.Category]++
	}

	breakdown := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})

	if topN >= 0 && len(breakdown) > topN {
		breakdown = breakdown[:topN]
	}
	return breakdown
}

// RecentActivity returns the first n transactions in the collection's
// current ordering, which is newest first because issuing prepends.
func RecentActivity(transactions []circulation.Transaction, n int) []circulation.Transaction {
	if n > len(transactions) {
		n = len(transactions)
	}
	recent := make([]circulation.Transaction, n)
	copy(recent, transactions[:n])
	return recent
}
