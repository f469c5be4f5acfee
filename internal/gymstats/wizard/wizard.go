package wizard

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/endofday"
)

// Wizard validates and advances states against one document snapshot.
type Wizard struct {
	doc *document.Document
}

func New(doc *document.Document) *Wizard {
	return &Wizard{doc: doc}
}

// ValidateStep returns the error that blocks leaving the current step, or nil.
func (wz *Wizard) ValidateStep(s State) error {
	switch s.Step {
	case StepDate:
		return wz.validateDate(s)
	case StepProtein:
		if _, ok := positive(s.Protein); !ok {
			return document.Invalidf("Enter protein in grams")
		}
		return nil
	case StepActivities:
		return validateActivities(s)
	case StepEntry:
		activity, ok := s.CurrentActivity()
		if !ok {
			return nil
		}
		switch activity {
		case Gym:
			_, err := wz.gymPayload(s)
			return err
		case Football:
			if _, ok := positive(s.FootballMinutes); !ok {
				return document.Invalidf("Enter football time in minutes")
			}
		case Squash:
			if _, ok := positive(s.SquashMinutes); !ok {
				return document.Invalidf("Enter squash time in minutes")
			}
		}
		return nil
	case StepReview:
		return nil
	default:
		return document.Invalidf("Unknown step %d", s.Step)
	}
}

// Advance validates the current step and moves forward.
func (wz *Wizard) Advance(s State) (State, error) {
	if err := wz.ValidateStep(s); err != nil {
		return s, err
	}

	switch s.Step {
	case StepDate:
		s.Step = StepProtein
	case StepProtein:
		s.Step = StepActivities
	case StepActivities:
		if s.Has(None) {
			return wz.enterReview(s)
		}
		s.ActivityIndex = 0
		s.Step = StepEntry
	case StepEntry:
		if s.ActivityIndex < len(s.Flow())-1 {
			s.ActivityIndex++
			return s, nil
		}
		return wz.enterReview(s)
	case StepReview:
		// submitting is done by the caller
		return wz.enterReview(s)
	}
	return s, nil
}

func (wz *Wizard) enterReview(s State) (State, error) {
	payload, err := wz.Payload(s)
	if err != nil {
		return s, err
	}
	s.Step = StepReview
	s.Payload = &payload
	return s, nil
}

// Payload builds the submission for the state. Blank exercises are left out.
func (wz *Wizard) Payload(s State) (endofday.Payload, error) {
	protein, _ := number(s.Protein)
	payload := endofday.Payload{
		Date:            s.Date,
		ProteinGrams:    document.Float(protein),
		FootballMinutes: document.Float(0),
		SquashMinutes:   document.Float(0),
	}
	if s.Has(Football) {
		payload.FootballMinutes = document.Float(numberOrZero(s.FootballMinutes))
	}
	if s.Has(Squash) {
		payload.SquashMinutes = document.Float(numberOrZero(s.SquashMinutes))
	}
	if s.Has(Gym) {
		gym, err := wz.gymPayload(s)
		if err != nil {
			return endofday.Payload{}, err
		}
		payload.Gym = gym
	}
	return payload, nil
}

func (wz *Wizard) validateDate(s State) error {
	if s.Date == "" {
		return document.Invalidf("Choose a date")
	}
	if _, err := time.Parse(document.DateLayout, s.Date); err != nil {
		return document.Invalidf("Choose a date")
	}
	if wz.doc.HasProteinFor(s.Date) {
		return document.Conflictf("Error: data already present for this day")
	}
	return nil
}

func validateActivities(s State) error {
	if len(s.Activities) == 0 {
		return document.Invalidf("Choose at least one activity")
	}
	if s.Has(None) && len(s.Activities) != 1 {
		return document.Invalidf("None can not be combined with other activities")
	}
	return nil
}

func (wz *Wizard) gymPayload(s State) (*endofday.GymPayload, error) {
	if s.GymDayNumber == 0 {
		return nil, document.Invalidf("Select a gym day")
	}
	day, ok := wz.doc.GymDayByNumber(s.GymDayNumber)
	if !ok {
		return nil, document.Invalidf("Select a gym day")
	}
	duration, ok := positive(s.GymDuration)
	if !ok {
		return nil, document.Invalidf("Enter time spent in minutes")
	}

	exercises := []document.LoggedExercise{}
	for _, ex := range day.Exercises {
		input := s.GymInputs[ex.ExerciseID]

		var (
			sets    []document.Set
			skipped bool
			err     error
		)
		if ex.IsAbs() {
			sets, skipped, err = repsOnlySets(ex, input)
		} else {
			sets, skipped, err = weightedSets(ex, input)
		}
		if err != nil {
			return nil, err
		}
		if skipped {
			continue
		}

		exercises = append(exercises, document.LoggedExercise{
			ExerciseID:   ex.ExerciseID,
			ExerciseName: ex.ExerciseName,
			Sets:         sets,
		})
	}

	return &endofday.GymPayload{
		DayNumber:       day.DayNumber,
		DayName:         day.DayName,
		DurationMinutes: duration,
		Exercises:       exercises,
	}, nil
}

func repsOnlySets(ex document.TemplateExercise, input ExerciseInput) ([]document.Set, bool, error) {
	blank := 0
	for _, set := range input.Sets {
		if isBlank(set.Reps) {
			blank++
		}
	}
	if blank == len(input.Sets) {
		return nil, true, nil
	}
	if blank > 0 {
		return nil, false, document.Invalidf("Fix \"%s\": enter reps for all 3 sets or leave it blank", ex.ExerciseName)
	}

	sets := make([]document.Set, 0, len(input.Sets))
	for i, set := range input.Sets {
		reps, ok := positive(set.Reps)
		if !ok {
			return nil, false, document.Invalidf("Fix \"%s\": Set %d needs valid reps", ex.ExerciseName, i+1)
		}
		sets = append(sets, document.Set{Reps: reps})
	}
	return sets, false, nil
}

func weightedSets(ex document.TemplateExercise, input ExerciseInput) ([]document.Set, bool, error) {
	allBlank := true
	for _, set := range input.Sets {
		if !isBlank(set.Weight) || !isBlank(set.Reps) {
			allBlank = false
			break
		}
	}
	if allBlank {
		return nil, true, nil
	}

	sets := make([]document.Set, 0, len(input.Sets))
	for i, set := range input.Sets {
		weightBlank, repsBlank := isBlank(set.Weight), isBlank(set.Reps)
		if weightBlank && repsBlank {
			return nil, false, document.Invalidf("Fix \"%s\": Set %d is incomplete. Enter weight + reps or leave the whole exercise blank", ex.ExerciseName, i+1)
		}
		if weightBlank || repsBlank {
			return nil, false, document.Invalidf("Fix \"%s\": Set %d needs both weight and reps", ex.ExerciseName, i+1)
		}

		weight, weightOK := nonNegative(set.Weight)
		reps, repsOK := positive(set.Reps)
		if !weightOK || !repsOK {
			return nil, false, document.Invalidf("Fix \"%s\": Set %d needs a valid weight and reps", ex.ExerciseName, i+1)
		}
		sets = append(sets, document.Set{Weight: document.Float(weight), Reps: reps})
	}
	return sets, false, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func positive(s string) (float64, bool) {
	v, ok := number(s)
	return v, ok && v > 0
}

func nonNegative(s string) (float64, bool) {
	v, ok := number(s)
	return v, ok && v >= 0
}

func numberOrZero(s string) float64 {
	if v, ok := nonNegative(s); ok {
		return v
	}
	return 0
}
