// internal/roster/implementation.go
package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"athena/internal/errs"
	"athena/internal/store"
)

// service implements the Service interface, mirroring the catalog
// manager: in-memory collection, rewritten whole on every mutation.
type service struct {
	mu       sync.RWMutex
	students []Student
	store    store.Store
	logger   *zap.Logger
}

// NewService creates a roster manager, loading the collection from the
// store or falling back to the seed roster on first run.
func NewService(ctx context.Context, st store.Store, logger *zap.Logger) (Service, error) {
	s := &service{
		store:  st,
		logger: logger,
	}

	found, err := st.Load(ctx, store.KeyStudents, &s.students)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if !found {
		s.students = seedStudents()
		if err := st.Save(ctx, store.KeyStudents, s.students); err != nil {
			return nil, fmt.Errorf("seed roster: %w", err)
		}
		logger.Info("seeded roster", zap.Int("students", len(s.students)))
	}

	return s, nil
}

// AddStudent appends a new student with a fresh id.
func (s *service) AddStudent(ctx context.Context, name, grade, email string) (*Student, error) {
	student := Student{
		ID:    uuid.New(),
		Name:  name,
		Grade: grade,
		Email: email,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = append(s.students, student)
	if err := s.persistLocked(ctx); err != nil {
		s.students = s.students[:len(s.students)-1]
		return nil, err
	}

	s.logger.Info("student added",
		zap.String("student_id", student.ID.String()),
		zap.String("name", student.Name),
	)
	return &student, nil
}

// GetStudent returns a copy of the student with the given id.
func (s *service) GetStudent(ctx context.Context, id uuid.UUID) (*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.students {
		if s.students[i].ID == id {
			student := s.students[i]
			return &student, nil
		}
	}
	return nil, fmt.Errorf("student %s: %w", id, errs.ErrNotFound)
}

// ListStudents returns a copy of the whole roster.
func (s *service) ListStudents(ctx context.Context) ([]Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]Student, len(s.students))
	copy(students, s.students)
	return students, nil
}

// DeleteStudent removes a student. Past transactions keep the dangling
// student id; the transaction list is the historical record.
func (s *service) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.students {
		if s.students[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("student %s: %w", id, errs.ErrNotFound)
	}

	removed := s.students[idx]
	s.students = append(s.students[:idx], s.students[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.students = append(s.students[:idx], append([]Student{removed}, s.students[idx:]...)...)
		return err
	}

	s.logger.Info("student deleted", zap.String("student_id", id.String()))
	return nil
}

func (s *service) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, store.KeyStudents, s.students); err != nil {
		return fmt.Errorf("persist roster: %w", err)
	}
	return nil
}
