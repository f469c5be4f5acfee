package stats

import (
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

const daysInWeek = 7

type ActivityMinutes struct {
	Gym      float64 `json:"gym"`
	Football float64 `json:"football"`
	Squash   float64 `json:"squash"`
	Total    float64 `json:"total"`
}

type SessionCounts struct {
	Week  int `json:"week"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Dashboard holds the stat cards for the week around a reference date.
type Dashboard struct {
	ReferenceDate        string          `json:"reference_date"`
	Week                 Range           `json:"week"`
	ProteinWeeklyAverage float64         `json:"protein_weekly_average"`
	ActivityMinutes      ActivityMinutes `json:"activity_minutes"`
	WeightsIncreased     int             `json:"weights_increased"`
	GymSessions          SessionCounts   `json:"gym_sessions"`
}

func LoadDashboardStats(doc *document.Document, ref time.Time) Dashboard {
	week := WeekRange(ref)
	return Dashboard{
		ReferenceDate:        Day(ref).Format(document.DateLayout),
		Week:                 week,
		ProteinWeeklyAverage: ProteinTotal(doc, week) / daysInWeek,
		ActivityMinutes:      ActivityMinutesIn(doc, week),
		WeightsIncreased:     WeightsIncreased(doc, week),
		GymSessions: SessionCounts{
			Week:  GymSessionCount(doc, week),
			Month: GymSessionCount(doc, MonthRange(ref)),
			Year:  GymSessionCount(doc, YearRange(ref)),
		},
	}
}

func ProteinTotal(doc *document.Document, r Range) float64 {
	var total float64
	for _, p := range doc.ProteinIntake {
		if r.Contains(p.Date) {
			total += p.Grams
		}
	}
	return total
}

// WeeklyProteinAverage divides by seven whatever the number of logged days.
func WeeklyProteinAverage(doc *document.Document, ref time.Time) float64 {
	return ProteinTotal(doc, WeekRange(ref)) / daysInWeek
}

func ActivityMinutesIn(doc *document.Document, r Range) ActivityMinutes {
	var m ActivityMinutes
	for _, s := range doc.GymSessions {
		if r.Contains(s.Date) {
			m.Gym += s.DurationMinutes
		}
	}
	m.Football = cardioMinutes(doc.FootballSessions, r)
	m.Squash = cardioMinutes(doc.SquashSessions, r)
	m.Total = m.Gym + m.Football + m.Squash
	return m
}

func cardioMinutes(sessions []document.CardioSession, r Range) float64 {
	var total float64
	for _, s := range sessions {
		if r.Contains(s.Date) {
			total += s.DurationMinutes
		}
	}
	return total
}

// WeightsIncreased counts template exercises touched in the range that sit
// above their starting weight.
func WeightsIncreased(doc *document.Document, r Range) int {
	count := 0
	for _, day := range doc.GymDaysTemplate {
		for _, ex := range day.Exercises {
			if ex.StartWeight == nil || ex.CurrentWeight == nil || ex.LastUpdated.IsZero() {
				continue
			}
			if !r.Contains(ex.LastUpdated.UTC().Format(document.DateLayout)) {
				continue
			}
			if *ex.CurrentWeight > *ex.StartWeight {
				count++
			}
		}
	}
	return count
}

func GymSessionCount(doc *document.Document, r Range) int {
	count := 0
	for _, s := range doc.GymSessions {
		if r.Contains(s.Date) {
			count++
		}
	}
	return count
}
