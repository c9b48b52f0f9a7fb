// internal/roster/service.go
package roster

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the roster manager.
type Service interface {
	AddStudent(ctx context.Context, name, grade, email string) (*Student, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*Student, error)
	ListStudents(ctx context.Context) ([]Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error
}
