// internal/catalog/seed.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// seedBooks returns the starter catalog used when the store is empty.
// Every seed book is AVAILABLE so the catalog starts consistent with an
// empty transaction list.
func seedBooks() []Book {
	return []Book{
		{ID: uuid.New(), Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Category: "Fiction", Status: StatusAvailable, AddedDate: date(2023, 1, 15)},
		{ID: uuid.New(), Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "9780553380163", Category: "Science", Status: StatusAvailable, AddedDate: date(2023, 2, 10)},
		{ID: uuid.New(), Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Category: "Technology", Status: StatusAvailable, AddedDate: date(2023, 3, 1)},
		{ID: uuid.New(), Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Category: "Fiction", Status: StatusAvailable, AddedDate: date(2023, 1, 20)},
		{ID: uuid.New(), Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097", Category: "History", Status: StatusAvailable, AddedDate: date(2023, 4, 5)},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
