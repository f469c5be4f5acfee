package wizard

import (
	"strconv"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

// ApplyDraft pre-fills the gym entry from a saved draft. An exercise whose
// draft sets carry any weight is treated as weighted, otherwise as reps only.
func ApplyDraft(s State, draft *document.LiveDraft) State {
	if draft == nil {
		return s
	}

	s.GymDayNumber = draft.DayNumber
	s.GymDuration = formatOptional(draft.DurationMinutes)

	inputs := make(map[string]ExerciseInput, len(draft.Exercises))
	for _, ex := range draft.Exercises {
		weighted := false
		for _, set := range ex.Sets {
			if set.Weight != nil {
				weighted = true
				break
			}
		}

		var input ExerciseInput
		for i := 0; i < len(input.Sets) && i < len(ex.Sets); i++ {
			input.Sets[i].Reps = formatOptional(ex.Sets[i].Reps)
			if weighted {
				input.Sets[i].Weight = formatOptional(ex.Sets[i].Weight)
			}
		}
		inputs[ex.ExerciseID] = input
	}
	s.GymInputs = inputs

	return s
}

// DraftFromState captures the gym inputs of a state so they can be saved
// mid workout. Blank and non numeric inputs are stored as missing values.
func (wz *Wizard) DraftFromState(s State) document.LiveDraft {
	draft := document.LiveDraft{
		DayNumber: s.GymDayNumber,
		Exercises: []document.DraftExercise{},
	}
	if v, ok := number(s.GymDuration); ok {
		draft.DurationMinutes = document.Float(v)
	}

	day, ok := wz.doc.GymDayByNumber(s.GymDayNumber)
	if !ok {
		return draft
	}
	draft.DayName = day.DayName

	for _, ex := range day.Exercises {
		input, found := s.GymInputs[ex.ExerciseID]
		if !found {
			continue
		}
		sets := make([]document.DraftSet, 0, len(input.Sets))
		for _, set := range input.Sets {
			var ds document.DraftSet
			if v, ok := number(set.Weight); ok && !ex.IsAbs() {
				ds.Weight = document.Float(v)
			}
			if v, ok := number(set.Reps); ok {
				ds.Reps = document.Float(v)
			}
			sets = append(sets, ds)
		}
		draft.Exercises = append(draft.Exercises, document.DraftExercise{
			ExerciseID:   ex.ExerciseID,
			ExerciseName: ex.ExerciseName,
			Sets:         sets,
		})
	}
	return draft
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
