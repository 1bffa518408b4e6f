// Package store persists paper documents for the preview service.
//
// Two backends are provided: an in-memory store for the CLI and tests,
// and a MongoDB store for deployments where documents outlive a single
// process. Both hand out deep copies, so callers can freely mutate
// what they get back.
package store

import (
	"context"

	"github.com/mvollbrecht/pageflow/pkg/paper"
)

// Store is the document persistence interface.
type Store interface {
	// Put inserts or replaces a document by its ID.
	Put(ctx context.Context, doc *paper.Document) error

	// Get returns the document with the given ID, or an error with
	// code DOCUMENT_NOT_FOUND.
	Get(ctx context.Context, id string) (*paper.Document, error)

	// List returns all stored documents.
	List(ctx context.Context) ([]*paper.Document, error)

	// Delete removes a document. Deleting an unknown ID returns an
	// error with code DOCUMENT_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
