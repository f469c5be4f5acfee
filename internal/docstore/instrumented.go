package docstore

import (
	"context"
	"errors"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
)

// InstrumentedStore counts backend failures and lost compare-and-swap races.
type InstrumentedStore struct {
	store          Store
	metricsManager *metrics.Manager
}

var _ Store = (*InstrumentedStore)(nil)

func NewInstrumentedStore(store Store, metricsManager *metrics.Manager) *InstrumentedStore {
	return &InstrumentedStore{
		store:          store,
		metricsManager: metricsManager,
	}
}

func (s *InstrumentedStore) Get(ctx context.Context) (*document.Document, Revision, error) {
	doc, rev, err := s.store.Get(ctx)
	s.count(err)
	return doc, rev, err
}

func (s *InstrumentedStore) Set(ctx context.Context, doc *document.Document, expected Revision) (Revision, error) {
	rev, err := s.store.Set(ctx, doc, expected)
	s.count(err)
	return rev, err
}

func (s *InstrumentedStore) count(err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrVersionConflict):
		s.metricsManager.CounterStoreErrors.WithLabelValues("version_conflict").Inc()
	case errors.Is(err, ErrUnavailable):
		s.metricsManager.CounterStoreErrors.WithLabelValues("unavailable").Inc()
	default:
		s.metricsManager.CounterStoreErrors.WithLabelValues("other").Inc()
	}
}
