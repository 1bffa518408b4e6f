package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/paper"
)

// MemoryStore keeps documents in a map. It is the default backend for
// the CLI and for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*paper.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*paper.Document)}
}

func (s *MemoryStore) Put(ctx context.Context, doc *paper.Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "document must have an ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*paper.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*paper.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*paper.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Clone())
	}
	// Map order is random; keep listings stable.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
