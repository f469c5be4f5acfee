// Package overload tracks each template exercise's working weight from the
// sets logged in a finished gym session.
package overload

import (
	"math"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

type Direction string

const (
	Increased Direction = "increased"
	Decreased Direction = "decreased"
)

// Change describes one template exercise whose current weight moved.
type Change struct {
	ExerciseID string    `json:"exercise_id"`
	From       float64   `json:"from"`
	To         float64   `json:"to"`
	Direction  Direction `json:"direction"`
}

const requiredSets = 3

// Apply runs the ratchet over the logged exercises and updates the matching
// template exercises in place:
//   - all three weights above current: current becomes the max
//   - any weight below current: current becomes the min
//   - otherwise nothing changes
//
// Exercises without exactly three numeric weights, or whose template entry
// has no current weight, are skipped.
func Apply(template []document.GymDay, logged []document.LoggedExercise, ref time.Time) []Change {
	var changes []Change
	for _, ex := range logged {
		weights, ok := setWeights(ex.Sets)
		if !ok {
			continue
		}

		tmpl := findTemplateExercise(template, ex.ExerciseID)
		if tmpl == nil || tmpl.CurrentWeight == nil || !isFinite(*tmpl.CurrentWeight) {
			continue
		}

		current := *tmpl.CurrentWeight
		newWeight, direction, changed := ratchet(current, weights)
		if !changed {
			continue
		}

		tmpl.CurrentWeight = document.Float(newWeight)
		tmpl.LastUpdated = ref
		changes = append(changes, Change{
			ExerciseID: ex.ExerciseID,
			From:       current,
			To:         newWeight,
			Direction:  direction,
		})
	}
	return changes
}

func ratchet(current float64, weights [requiredSets]float64) (float64, Direction, bool) {
	lowest, highest := weights[0], weights[0]
	allAbove, anyBelow := true, false
	for _, w := range weights {
		lowest = math.Min(lowest, w)
		highest = math.Max(highest, w)
		if w <= current {
			allAbove = false
		}
		if w < current {
			anyBelow = true
		}
	}

	switch {
	case allAbove:
		return highest, Increased, true
	case anyBelow:
		return lowest, Decreased, true
	default:
		return current, "", false
	}
}

func setWeights(sets []document.Set) ([requiredSets]float64, bool) {
	var weights [requiredSets]float64
	if len(sets) != requiredSets {
		return weights, false
	}
	for i, set := range sets {
		if set.Weight == nil || !isFinite(*set.Weight) {
			return weights, false
		}
		weights[i] = *set.Weight
	}
	return weights, true
}

func findTemplateExercise(template []document.GymDay, exerciseID string) *document.TemplateExercise {
	for d := range template {
		for e := range template[d].Exercises {
			if template[d].Exercises[e].ExerciseID == exerciseID {
				return &template[d].Exercises[e]
			}
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
