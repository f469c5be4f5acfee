// Package draft keeps the single in-progress gym entry inside the document.
package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

type documentStore interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
	Set(ctx context.Context, doc *document.Document, expected docstore.Revision) (docstore.Revision, error)
}

type Service struct {
	store   documentStore
	NowFunc func() time.Time
}

func NewService(store documentStore) *Service {
	return &Service{
		store:   store,
		NowFunc: time.Now,
	}
}

// Load returns the saved draft, or nil when there is none.
func (s *Service) Load(ctx context.Context) (_ *document.LiveDraft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "draftService.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, _, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc.GymLiveDraft, nil
}

// Save replaces any previous draft with the given one and stamps it.
func (s *Service) Save(ctx context.Context, draft document.LiveDraft) (_ *document.LiveDraft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "draftService.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if draft.DayNumber == 0 {
		return nil, document.Invalidf("Missing day_number")
	}
	if draft.Exercises == nil {
		draft.Exercises = []document.DraftExercise{}
	}
	draft.SavedAt = s.NowFunc().UTC()

	if err := s.update(ctx, func(doc *document.Document) {
		doc.GymLiveDraft = &draft
	}); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Service) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "draftService.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.update(ctx, func(doc *document.Document) {
		doc.GymLiveDraft = nil
	})
}

func (s *Service) update(ctx context.Context, mutate func(doc *document.Document)) error {
	doc, rev, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	mutate(doc)

	if _, err := s.store.Set(ctx, doc, rev); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
