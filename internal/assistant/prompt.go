// internal/assistant/prompt.go
package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// catalogEntry is the projection of a book embedded in the prompt. The
// snapshot carries students and transactions, but only the catalog goes
// to the collaborator; no student PII leaves the process.
type catalogEntry struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// buildSystemPrompt renders the Athena persona with the serialized
// catalog as context.
func buildSystemPrompt(snap Snapshot) string {
	entries := make([]catalogEntry, 0, len(snap.Books))
	for _, b := range snap.Books {
		entries = append(entries, catalogEntry{
			Title:    b.Title,
			Author:   b.Author,
			Category: b.Category,
			Status:   string(b.Status),
		})
	}
	serialized, err := json.Marshal(entries)
	if err != nil {
		serialized = []byte("[]")
	}

	var sb strings.Builder
	sb.WriteString("You are Athena, a helpful and intelligent School Librarian Assistant.\n\n")
	sb.WriteString("Here is the current library database context:\n")
	fmt.Fprintf(&sb, "- Total Books: %d\n", len(snap.Books))
	fmt.Fprintf(&sb, "- Books Catalog: %s\n\n", serialized)
	sb.WriteString("Your goal is to help the librarian or students by:\n")
	sb.WriteString("1. Recommending books based on the catalog.\n")
	sb.WriteString("2. Answering questions about availability.\n")
	sb.WriteString("3. Summarizing book contents if known (you have general knowledge).\n")
	sb.WriteString("4. Suggesting administrative actions based on the data.\n\n")
	sb.WriteString("Keep answers concise, professional, yet friendly. If a book is not in the catalog, clearly state that.")
	return sb.String()
}
