// Package history keeps a capped, newest-first record of generated
// diagrams so users can revisit earlier versions of a stack.
//
// Two backends are provided: an in-memory store for the CLI and tests,
// and a Redis store for server deployments where history must survive
// restarts and be shared across instances.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Sentinel errors for history operations.
var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("history entry not found")
)

// MaxEntries caps how many entries a store keeps. The oldest entries are
// evicted first.
const MaxEntries = 100

// DefaultListLimit is used when List is called with a non-positive limit.
const DefaultListLimit = 50

// Entry is one generated diagram with the context it was generated from.
type Entry struct {
	ID          string     `json:"id" bson:"_id"`
	Label       string     `json:"label" bson:"label"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Graph       flow.Graph `json:"graph" bson:"graph"`
	Mocked      bool       `json:"mocked,omitempty" bson:"mocked,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// NewEntry creates an Entry with a fresh ID and timestamp.
func NewEntry(label, description string, g flow.Graph, mocked bool) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Label:       label,
		Description: description,
		Graph:       g,
		Mocked:      mocked,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store is the interface for history backends.
type Store interface {
	// Append records an entry. Stores evict the oldest entries beyond
	// [MaxEntries].
	Append(ctx context.Context, e Entry) error

	// Get retrieves an entry by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (Entry, error)

	// List returns up to limit entries, newest first. A non-positive
	// limit means [DefaultListLimit].
	List(ctx context.Context, limit int) ([]Entry, error)

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxEntries {
		return MaxEntries
	}
	return limit
}
