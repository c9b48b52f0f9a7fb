package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"athena/internal/errs"
	"athena/internal/store"
)

func newTestCatalog(t *testing.T) (Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	svc, err := NewService(context.Background(), st, zap.NewNop())
	require.NoError(t, err)
	return svc, st
}

func TestNewServiceSeedsEmptyStore(t *testing.T) {
	svc, _ := newTestCatalog(t)

	books, err := svc.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 5)
	for _, b := range books {
		assert.Equal(t, StatusAvailable, b.Status, "seed book %q must be available", b.Title)
	}
}

func TestAddBookForcesAvailable(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Dune", "Frank Herbert", "9780441013593", "Fiction", "")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, StatusAvailable, book.Status)
	assert.False(t, book.AddedDate.IsZero())

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestAddBookAllowsDuplicateISBN(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	first, err := svc.AddBook(ctx, "Dune", "Frank Herbert", "9780441013593", "Fiction", "")
	require.NoError(t, err)
	second, err := svc.AddBook(ctx, "Dune (copy 2)", "Frank Herbert", "9780441013593", "Fiction", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetBookNotFound(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.GetBook(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Dune", "Frank Herbert", "9780441013593", "Fiction", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, book.ID))
	_, err = svc.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteIssuedBookBlocked(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Dune", "Frank Herbert", "9780441013593", "Fiction", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(ctx, book.ID, StatusIssued))

	err = svc.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidState)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, got.Status)
}

func TestCatalogSurvivesReload(t *testing.T) {
	svc, st := newTestCatalog(t)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Dune", "Frank Herbert", "9780441013593", "Fiction", "desert planet")
	require.NoError(t, err)

	reloaded, err := NewService(ctx, st, zap.NewNop())
	require.NoError(t, err)

	got, err := reloaded.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Description, got.Description)

	books, err := reloaded.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 6)
}
