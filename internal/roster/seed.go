// internal/roster/seed.go
package roster

import "github.com/google/uuid"

// seedStudents returns the starter roster used when the store is empty.
func seedStudents() []Student {
	return []Student{
		{ID: uuid.New(), Name: "Alice Johnson", Grade: "10th", Email: "alice@school.edu"},
		{ID: uuid.New(), Name: "Bob Smith", Grade: "11th", Email: "bob@school.edu"},
		{ID: uuid.New(), Name: "Charlie Brown", Grade: "9th", Email: "charlie@school.edu"},
	}
}
