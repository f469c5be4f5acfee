package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

// MemoryStore is a process local store, used in development and tests.
type MemoryStore struct {
	mutex    sync.Mutex
	data     []byte
	revision Revision
	writes   int

	// FailWith makes every call fail as unavailable.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (*document.Document, Revision, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.FailWith != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUnavailable, s.FailWith)
	}

	if s.data == nil {
		data, err := document.Encode(document.Seed())
		if err != nil {
			return nil, 0, err
		}
		s.data = data
	}

	doc, err := document.Decode(s.data)
	if err != nil {
		return nil, 0, err
	}
	return doc, s.revision, nil
}

func (s *MemoryStore) Set(_ context.Context, doc *document.Document, expected Revision) (Revision, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.FailWith != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, s.FailWith)
	}
	if expected != AnyRevision && expected != s.revision {
		return 0, ErrVersionConflict
	}

	data, err := document.Encode(doc)
	if err != nil {
		return 0, err
	}
	s.data = data
	s.writes++
	s.revision++
	return s.revision, nil
}

// Writes returns how many successful Set calls the store has seen.
func (s *MemoryStore) Writes() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writes
}
