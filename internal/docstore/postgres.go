package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const createDocumentTableSQL = `
CREATE TABLE IF NOT EXISTS gym_document
(
    id         VARCHAR PRIMARY KEY,
    version    BIGINT      NOT NULL DEFAULT 0,
    body       JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresStore keeps the document as a single JSONB row, with the version
// column used for the compare-and-swap on write.
type PostgresStore struct {
	db *pgxpool.Pool
	id string
}

func NewPostgresStore(db *pgxpool.Pool, id string) *PostgresStore {
	if id == "" {
		id = document.DefaultKey
	}
	return &PostgresStore{
		db: db,
		id: id,
	}
}

// EnsureSchema creates the document table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createDocumentTableSQL); err != nil {
		return fmt.Errorf("%w: create document table: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context) (_ *document.Document, _ Revision, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		version int64
		body    []byte
	)
	err = s.db.QueryRow(
		ctx,
		`SELECT version, body FROM gym_document WHERE id = $1`,
		s.id,
	).Scan(&version, &body)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get document: %w", ErrUnavailable, err)
	}

	span.SetAttributes(attribute.Int64("document.revision", version))

	doc, err := document.Decode(body)
	if err != nil {
		return nil, 0, err
	}
	return doc, Revision(version), nil
}

func (s *PostgresStore) seed(ctx context.Context) (*document.Document, Revision, error) {
	data, err := document.Encode(document.Seed())
	if err != nil {
		return nil, 0, err
	}

	tag, err := s.db.Exec(
		ctx,
		`INSERT INTO gym_document (id, version, body) VALUES ($1, 0, $2) ON CONFLICT (id) DO NOTHING`,
		s.id, data,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: seed document: %w", ErrUnavailable, err)
	}
	if tag.RowsAffected() == 1 {
		log.Infof("document store: seeded empty row [%s]", s.id)
	}

	// read back, whoever seeded it
	var (
		version int64
		body    []byte
	)
	if err := s.db.QueryRow(
		ctx,
		`SELECT version, body FROM gym_document WHERE id = $1`,
		s.id,
	).Scan(&version, &body); err != nil {
		return nil, 0, fmt.Errorf("%w: get seeded document: %w", ErrUnavailable, err)
	}

	doc, err := document.Decode(body)
	if err != nil {
		return nil, 0, err
	}
	return doc, Revision(version), nil
}

func (s *PostgresStore) Set(ctx context.Context, doc *document.Document, expected Revision) (_ Revision, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := document.Encode(doc)
	if err != nil {
		return 0, err
	}

	var newVersion int64
	if expected == AnyRevision {
		err = s.db.QueryRow(
			ctx,
			`INSERT INTO gym_document (id, version, body) VALUES ($1, 1, $2)
				ON CONFLICT (id) DO UPDATE
					SET body = EXCLUDED.body, version = gym_document.version + 1, updated_at = now()
				RETURNING version`,
			s.id, data,
		).Scan(&newVersion)
	} else {
		err = s.db.QueryRow(
			ctx,
			`UPDATE gym_document
				SET body = $2, version = version + 1, updated_at = now()
				WHERE id = $1 AND version = $3
				RETURNING version`,
			s.id, data, int64(expected),
		).Scan(&newVersion)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("%w: set document: %w", ErrUnavailable, err)
	}

	span.SetAttributes(attribute.Int64("document.revision", newVersion))
	return Revision(newVersion), nil
}
