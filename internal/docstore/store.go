package docstore

import (
	"context"
	"errors"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

var (
	// ErrUnavailable wraps any failure of the underlying backend.
	ErrUnavailable = errors.New("document store unavailable")
	// ErrVersionConflict is returned when the stored document changed after it was read.
	ErrVersionConflict = errors.New("document was modified concurrently")
)

// Revision identifies one stored version of the document. A freshly seeded
// document has revision 0.
type Revision int64

// AnyRevision makes Set skip the compare-and-swap check.
const AnyRevision Revision = -1

// Store keeps the whole document under a single key.
type Store interface {
	// Get returns the stored document, seeding the store on first access.
	Get(ctx context.Context) (*document.Document, Revision, error)
	// Set replaces the document if the stored revision still equals expected.
	Set(ctx context.Context, doc *document.Document, expected Revision) (Revision, error)
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
