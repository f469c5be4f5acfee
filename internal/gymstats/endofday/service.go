package endofday

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/overload"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=endofday_test

type documentStore interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
	Set(ctx context.Context, doc *document.Document, expected docstore.Revision) (docstore.Revision, error)
}

// Result describes what a successful submission changed.
type Result struct {
	Revision        docstore.Revision `json:"revision"`
	ProteinEntryID  string            `json:"protein_entry_id,omitempty"`
	FootballEntryID string            `json:"football_entry_id,omitempty"`
	SquashEntryID   string            `json:"squash_entry_id,omitempty"`
	GymSessionID    string            `json:"gym_session_id,omitempty"`
	OverloadChanges []overload.Change `json:"overload_changes"`
}

type Service struct {
	store documentStore
	// injectable for tests
	NewIDFunc func(prefix string) string
	NowFunc   func() time.Time
}

func NewService(store documentStore) *Service {
	return &Service{
		store:     store,
		NewIDFunc: newID,
		NowFunc:   time.Now,
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Submit validates the payload, appends its records to the document, ratchets
// the template weights and persists everything with a single write. Nothing is
// written when any step fails.
func (s *Service) Submit(ctx context.Context, payload Payload) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "endOfDayService.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionDate, err := payload.validate()
	if err != nil {
		return nil, err
	}

	doc, rev, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var gymDay document.GymDay
	if payload.Gym != nil {
		gymDay, err = validateGym(payload.Gym, doc)
		if err != nil {
			return nil, err
		}
	}

	if payload.ProteinGrams != nil && doc.HasProteinFor(payload.Date) {
		return nil, document.Conflictf("Error: data already present for this day")
	}

	now := s.NowFunc().UTC()
	result := &Result{}

	if payload.ProteinGrams != nil {
		result.ProteinEntryID = s.NewIDFunc("pi")
		doc.ProteinIntake = append(doc.ProteinIntake, document.ProteinEntry{
			ID:        result.ProteinEntryID,
			Date:      payload.Date,
			Grams:     *payload.ProteinGrams,
			CreatedAt: now,
		})
	}

	if payload.FootballMinutes != nil && *payload.FootballMinutes > 0 {
		result.FootballEntryID = s.NewIDFunc("fb")
		doc.FootballSessions = append(doc.FootballSessions, document.CardioSession{
			ID:              result.FootballEntryID,
			Date:            payload.Date,
			DurationMinutes: *payload.FootballMinutes,
			CreatedAt:       now,
		})
	}

	if payload.SquashMinutes != nil && *payload.SquashMinutes > 0 {
		result.SquashEntryID = s.NewIDFunc("sq")
		doc.SquashSessions = append(doc.SquashSessions, document.CardioSession{
			ID:              result.SquashEntryID,
			Date:            payload.Date,
			DurationMinutes: *payload.SquashMinutes,
			CreatedAt:       now,
		})
	}

	if gym := payload.Gym; gym != nil {
		exercises := gym.Exercises
		if exercises == nil {
			exercises = []document.LoggedExercise{}
		}
		result.GymSessionID = s.NewIDFunc("gs")
		doc.GymSessions = append(doc.GymSessions, document.GymSession{
			ID:   result.GymSessionID,
			Date: payload.Date,
			GymDay: document.GymDayRef{
				DayNumber: gymDay.DayNumber,
				DayName:   gym.DayName,
			},
			DurationMinutes: gym.DurationMinutes,
			Exercises:       exercises,
			CreatedAt:       now,
		})
		result.OverloadChanges = overload.Apply(doc.GymDaysTemplate, exercises, sessionDate)
	}

	newRev, err := s.store.Set(ctx, doc, rev)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	result.Revision = newRev

	log.Debugf("end of day [%s] saved, revision %d, %d template changes", payload.Date, newRev, len(result.OverloadChanges))

	return result, nil
}
