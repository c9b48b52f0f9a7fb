// Package store persists the three library collections as whole JSON
// documents under fixed keys. Collections are loaded whole at startup
// and rewritten whole on every mutation; there is no partial update and
// no schema versioning.
package store

import "context"

// Storage keys for the three collections.
const (
	KeyBooks        = "athena_books"
	KeyStudents     = "athena_students"
	KeyTransactions = "athena_transactions"
)

// Store is a key/value save-and-load of JSON-serializable values.
type Store interface {
	// Load unmarshals the value stored under key into dest. It returns
	// false with a nil error when the key has never been written.
	Load(ctx context.Context, key string, dest interface{}) (bool, error)

	// Save marshals value and rewrites the document stored under key.
	Save(ctx context.Context, key string, value interface{}) error

	Close() error
}
