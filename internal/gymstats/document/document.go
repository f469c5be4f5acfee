package document

import (
	"time"
)

const (
	CategoryCompound  = "Compound Lifts"
	CategoryAccessory = "Accessory"
	CategoryAbs       = "Abs"
)

// DateLayout is the calendar date format used for every dated record.
const DateLayout = "2006-01-02"

// Document is the whole persisted state of the tracker. It is always read
// and written as a single unit.
type Document struct {
	Passcode         *Passcode       `json:"passcode"`
	GymDaysTemplate  []GymDay        `json:"gym_days_template"`
	GymSessions      []GymSession    `json:"gym_sessions"`
	ProteinIntake    []ProteinEntry  `json:"protein_intake"`
	FootballSessions []CardioSession `json:"football_sessions"`
	SquashSessions   []CardioSession `json:"squash_sessions"`
	GymLiveDraft     *LiveDraft      `json:"gym_live_draft"`
}

type Passcode struct {
	Version   int       `json:"version"`
	Passcode  string    `json:"passcode"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GymDay struct {
	DayNumber int                `json:"day_number"`
	DayName   string             `json:"day_name"`
	Area      string             `json:"area"`
	Exercises []TemplateExercise `json:"exercises"`
}

// TemplateExercise is a prescribed exercise. Abs exercises carry no weights.
type TemplateExercise struct {
	ExerciseID    string    `json:"exercise_id"`
	ExerciseName  string    `json:"exercise_name"`
	StartWeight   *float64  `json:"start_weight"`
	CurrentWeight *float64  `json:"current_weight"`
	Category      string    `json:"category"`
	Reps          string    `json:"reps"`
	LastUpdated   time.Time `json:"last_updated"`
}

func (e TemplateExercise) IsAbs() bool {
	return e.Category == CategoryAbs
}

type ProteinEntry struct {
	ID        string    `json:"entry_id"`
	Date      string    `json:"date"`
	Grams     float64   `json:"grams"`
	CreatedAt time.Time `json:"created_at"`
}

// CardioSession is a football or squash session.
type CardioSession struct {
	ID              string    `json:"entry_id"`
	Date            string    `json:"date"`
	DurationMinutes float64   `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// GymSession keeps a copy of the template day it was logged against, so
// renaming a day later does not rewrite history.
type GymSession struct {
	ID              string           `json:"session_id"`
	Date            string           `json:"session_date"`
	GymDay          GymDayRef        `json:"gym_day"`
	DurationMinutes float64          `json:"duration_minutes"`
	Exercises       []LoggedExercise `json:"exercises"`
	CreatedAt       time.Time        `json:"created_at"`
}

type GymDayRef struct {
	DayNumber int    `json:"day_number"`
	DayName   string `json:"day_name"`
}

type LoggedExercise struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	Sets         []Set  `json:"sets"`
}

// Set is one logged set. Weight is nil for bodyweight sets.
type Set struct {
	Weight *float64 `json:"weight,omitempty"`
	Reps   float64  `json:"reps"`
}

// LiveDraft is the in-progress gym entry. Blank inputs are kept as nil.
type LiveDraft struct {
	SavedAt         time.Time       `json:"saved_at"`
	DayNumber       int             `json:"day_number"`
	DayName         string          `json:"day_name"`
	DurationMinutes *float64        `json:"duration_minutes"`
	Exercises       []DraftExercise `json:"exercises"`
}

type DraftExercise struct {
	ExerciseID   string     `json:"exercise_id"`
	ExerciseName string     `json:"exercise_name"`
	Sets         []DraftSet `json:"sets"`
}

type DraftSet struct {
	Weight *float64 `json:"weight,omitempty"`
	Reps   *float64 `json:"reps,omitempty"`
}

// GymDayByNumber returns the template day with the given number.
func (d *Document) GymDayByNumber(dayNumber int) (GymDay, bool) {
	for _, day := range d.GymDaysTemplate {
		if day.DayNumber == dayNumber {
			return day, true
		}
	}
	return GymDay{}, false
}

// HasProteinFor reports whether a protein entry exists for the date.
func (d *Document) HasProteinFor(date string) bool {
	for _, p := range d.ProteinIntake {
		if p.Date == date {
			return true
		}
	}
	return false
}

func (d *Document) GymSessionByID(id string) (GymSession, bool) {
	for _, s := range d.GymSessions {
		if s.ID == id {
			return s, true
		}
	}
	return GymSession{}, false
}

// Normalize replaces missing collections with empty ones so callers never
// have to nil-check them.
func (d *Document) Normalize() {
	if d.GymDaysTemplate == nil {
		d.GymDaysTemplate = []GymDay{}
	}
	if d.GymSessions == nil {
		d.GymSessions = []GymSession{}
	}
	if d.ProteinIntake == nil {
		d.ProteinIntake = []ProteinEntry{}
	}
	if d.FootballSessions == nil {
		d.FootballSessions = []CardioSession{}
	}
	if d.SquashSessions == nil {
		d.SquashSessions = []CardioSession{}
	}
	for i := range d.GymDaysTemplate {
		if d.GymDaysTemplate[i].Exercises == nil {
			d.GymDaysTemplate[i].Exercises = []TemplateExercise{}
		}
	}
}

func Float(v float64) *float64 {
	return &v
}
