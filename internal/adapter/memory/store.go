package memory

import (
	"context"
	"sync"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Store holds the most recently composed map for the lifetime of the process.
// It implements pipeline.Publisher and is read by the HTTP server.
type Store struct {
	mu  sync.RWMutex
	doc *domain.MapDocument
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Name() string { return "memory" }

// Publish replaces the held document.
func (s *Store) Publish(_ context.Context, doc domain.MapDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &doc
	return nil
}

// Document returns the held document and whether one has been published.
func (s *Store) Document() (domain.MapDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return domain.MapDocument{}, false
	}
	return *s.doc, true
}
