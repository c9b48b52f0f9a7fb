// internal/roster/domain.go
package roster

import "github.com/google/uuid"

// Student represents a student enrolled at the library.
type Student struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Grade string    `json:"grade"`
	Email string    `json:"email"`
}
