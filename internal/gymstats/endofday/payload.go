package endofday

import (
	"math"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

// Payload is one day worth of data collected by the end-of-day wizard.
// Nil and zero cardio values mean the activity was not done.
type Payload struct {
	Date            string      `json:"date"`
	ProteinGrams    *float64    `json:"protein_grams"`
	FootballMinutes *float64    `json:"football_minutes"`
	SquashMinutes   *float64    `json:"squash_minutes"`
	Gym             *GymPayload `json:"gym"`
}

type GymPayload struct {
	DayNumber       int                       `json:"day_number"`
	DayName         string                    `json:"day_name"`
	DurationMinutes float64                   `json:"duration_minutes"`
	Exercises       []document.LoggedExercise `json:"exercises"`
}

// validate checks everything that does not depend on stored data.
func (p *Payload) validate() (time.Time, error) {
	if p.Date == "" {
		return time.Time{}, document.Invalidf("Missing date")
	}
	date, err := time.Parse(document.DateLayout, p.Date)
	if err != nil {
		return time.Time{}, document.Invalidf("Invalid date %q, expected YYYY-MM-DD", p.Date)
	}

	if p.ProteinGrams != nil && !positive(*p.ProteinGrams) {
		return time.Time{}, document.Invalidf("Enter protein as a number greater than 0")
	}
	if p.FootballMinutes != nil && !nonNegative(*p.FootballMinutes) {
		return time.Time{}, document.Invalidf("Enter football time in minutes")
	}
	if p.SquashMinutes != nil && !nonNegative(*p.SquashMinutes) {
		return time.Time{}, document.Invalidf("Enter squash time in minutes")
	}

	if p.Gym != nil && !positive(p.Gym.DurationMinutes) {
		return time.Time{}, document.Invalidf("Enter time spent in minutes")
	}

	return date, nil
}

// validateGym checks the gym part against the template day it was logged for,
// and fills in names left empty by the client.
func validateGym(gym *GymPayload, doc *document.Document) (document.GymDay, error) {
	day, ok := doc.GymDayByNumber(gym.DayNumber)
	if !ok {
		return document.GymDay{}, document.Invalidf("Select a gym day")
	}
	if gym.DayName == "" {
		gym.DayName = day.DayName
	}

	seen := make(map[string]bool, len(gym.Exercises))
	for i := range gym.Exercises {
		ex := &gym.Exercises[i]
		tmpl, found := templateExercise(day, ex.ExerciseID)
		if !found {
			return document.GymDay{}, document.Invalidf("Unknown exercise %q for %s", ex.ExerciseID, day.DayName)
		}
		if ex.ExerciseName == "" {
			ex.ExerciseName = tmpl.ExerciseName
		}
		if seen[ex.ExerciseID] {
			return document.GymDay{}, document.Invalidf("Fix \"%s\": logged more than once", ex.ExerciseName)
		}
		seen[ex.ExerciseID] = true
		if len(ex.Sets) != 3 {
			return document.GymDay{}, document.Invalidf("Fix \"%s\": log all 3 sets or leave it blank", ex.ExerciseName)
		}
		for n, set := range ex.Sets {
			if !positive(set.Reps) {
				return document.GymDay{}, document.Invalidf("Fix \"%s\": Set %d needs reps", ex.ExerciseName, n+1)
			}
			// abs are bodyweight only, everything else is logged with a weight
			if tmpl.IsAbs() && set.Weight != nil {
				return document.GymDay{}, document.Invalidf("Fix \"%s\": Set %d takes no weight", ex.ExerciseName, n+1)
			}
			if !tmpl.IsAbs() && set.Weight == nil {
				return document.GymDay{}, document.Invalidf("Fix \"%s\": Set %d needs a weight", ex.ExerciseName, n+1)
			}
			if set.Weight != nil && !nonNegative(*set.Weight) {
				return document.GymDay{}, document.Invalidf("Fix \"%s\": Set %d has an invalid weight", ex.ExerciseName, n+1)
			}
		}
	}

	return day, nil
}

func templateExercise(day document.GymDay, exerciseID string) (document.TemplateExercise, bool) {
	for _, e := range day.Exercises {
		if e.ExerciseID == exerciseID {
			return e, true
		}
	}
	return document.TemplateExercise{}, false
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
