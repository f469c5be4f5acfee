// Package wizard is the five step end-of-day entry flow:
// date, protein, activity selection, per activity entry and review.
// Transitions are pure functions of a State and a document snapshot.
package wizard

import (
	"slices"

	"github.com/2beens/gymlog/internal/gymstats/endofday"
)

type Step int

const (
	StepDate Step = iota + 1
	StepProtein
	StepActivities
	StepEntry
	StepReview
)

type Activity string

const (
	Gym      Activity = "Gym"
	Football Activity = "Football"
	Squash   Activity = "Squash"
	None     Activity = "None"
)

// entryOrder is the order in which selected activities are entered.
var entryOrder = []Activity{Gym, Football, Squash}

func ParseActivity(s string) (Activity, bool) {
	switch a := Activity(s); a {
	case Gym, Football, Squash, None:
		return a, true
	}
	return "", false
}

// SetInput holds the raw text of one set. Empty means blank.
type SetInput struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

type ExerciseInput struct {
	Sets [3]SetInput `json:"sets"`
}

// State is everything the user has entered so far. All numeric fields are
// kept as typed text so a blank input stays distinguishable from zero.
type State struct {
	Step            Step                     `json:"step"`
	Date            string                   `json:"date"`
	Protein         string                   `json:"protein"`
	Activities      []Activity               `json:"activities"`
	ActivityIndex   int                      `json:"activity_index"`
	GymDayNumber    int                      `json:"gym_day_number"`
	GymDuration     string                   `json:"gym_duration"`
	GymInputs       map[string]ExerciseInput `json:"gym_inputs"`
	FootballMinutes string                   `json:"football_minutes"`
	SquashMinutes   string                   `json:"squash_minutes"`

	// Payload is filled in while on the review step.
	Payload *endofday.Payload `json:"payload,omitempty"`
}

// NewState starts the wizard on the date step for the given day.
func NewState(date string) State {
	return State{
		Step:       StepDate,
		Date:       date,
		Activities: []Activity{},
		GymInputs:  map[string]ExerciseInput{},
	}
}

func (s State) Has(a Activity) bool {
	return slices.Contains(s.Activities, a)
}

// Flow is the list of selected activities in entry order.
func (s State) Flow() []Activity {
	var flow []Activity
	for _, a := range entryOrder {
		if s.Has(a) {
			flow = append(flow, a)
		}
	}
	return flow
}

// CurrentActivity is the activity being entered on the entry step.
func (s State) CurrentActivity() (Activity, bool) {
	flow := s.Flow()
	if s.ActivityIndex < 0 || s.ActivityIndex >= len(flow) {
		return "", false
	}
	return flow[s.ActivityIndex], true
}

// Toggle applies a click on an activity box. None is exclusive: choosing it
// drops every other activity and choosing any other activity drops None.
func Toggle(s State, a Activity) State {
	has := s.Has(a)
	if a == None {
		if has {
			s.Activities = []Activity{}
		} else {
			s.Activities = []Activity{None}
		}
		return s
	}

	next := make([]Activity, 0, len(s.Activities)+1)
	for _, existing := range s.Activities {
		if existing == None || (has && existing == a) {
			continue
		}
		next = append(next, existing)
	}
	if !has {
		next = append(next, a)
	}
	s.Activities = next
	return s
}

// Retreat moves one step back. Inputs are kept as they are.
func Retreat(s State) State {
	s.Payload = nil

	switch s.Step {
	case StepProtein:
		s.Step = StepDate
	case StepActivities:
		s.Step = StepProtein
	case StepEntry:
		if s.ActivityIndex <= 0 {
			s.Step = StepActivities
		} else {
			s.ActivityIndex--
		}
	case StepReview:
		if s.Has(None) {
			s.Step = StepActivities
		} else {
			s.Step = StepEntry
			s.ActivityIndex = max(0, len(s.Flow())-1)
		}
	}
	return s
}
