// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a book on the shelf.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusIssued    Status = "ISSUED"
	StatusLost      Status = "LOST"
)

// Book represents one physical book in the catalog.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Category    string    `json:"category"`
	Status      Status    `json:"status"`
	AddedDate   time.Time `json:"added_date"`
	Description string    `json:"description,omitempty"`
}
