package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	saved := []doc{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, s.Save(ctx, KeyBooks, saved))

	var loaded []doc
	found, err := s.Load(ctx, KeyBooks, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestSQLiteStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	var loaded []doc
	found, err := s.Load(ctx, "never_written", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, loaded)
}

func TestSQLiteStoreRewritesWhole(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, KeyStudents, []doc{{Name: "a", Count: 1}, {Name: "b", Count: 2}}))
	require.NoError(t, s.Save(ctx, KeyStudents, []doc{{Name: "c", Count: 3}}))

	var loaded []doc
	found, err := s.Load(ctx, KeyStudents, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []doc{{Name: "c", Count: 3}}, loaded)
}

func TestMemoryStoreMatchesSQLiteBehavior(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var loaded []doc
	found, err := m.Load(ctx, KeyTransactions, &loaded)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Save(ctx, KeyTransactions, []doc{{Name: "x", Count: 9}}))
	found, err = m.Load(ctx, KeyTransactions, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []doc{{Name: "x", Count: 9}}, loaded)
}
