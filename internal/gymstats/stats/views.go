package stats

import (
	"sort"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

// DefaultRecentLimit is how many entries per collection the recent listing shows.
const DefaultRecentLimit = 10

type DayTotals struct {
	Date            string  `json:"date"`
	ProteinGrams    float64 `json:"protein_grams"`
	GymMinutes      float64 `json:"gym_minutes"`
	FootballMinutes float64 `json:"football_minutes"`
	SquashMinutes   float64 `json:"squash_minutes"`
	TotalMinutes    float64 `json:"total_minutes"`
}

// WeekView is the chart data for one week, optionally shifted back from the
// reference week by whole weeks.
type WeekView struct {
	Offset      int                   `json:"offset"`
	Week        Range                 `json:"week"`
	Days        []DayTotals           `json:"days"`
	GymSessions []document.GymSession `json:"gym_sessions"`
}

func Week(doc *document.Document, ref time.Time, offset int) WeekView {
	week := WeekRange(WeekStart(ref).AddDate(0, 0, daysInWeek*offset))

	days := make([]DayTotals, 0, daysInWeek)
	for _, date := range week.Dates() {
		day := Range{Start: date, End: date}
		minutes := ActivityMinutesIn(doc, day)
		days = append(days, DayTotals{
			Date:            date,
			ProteinGrams:    ProteinTotal(doc, day),
			GymMinutes:      minutes.Gym,
			FootballMinutes: minutes.Football,
			SquashMinutes:   minutes.Squash,
			TotalMinutes:    minutes.Total,
		})
	}

	sessions := make([]document.GymSession, 0)
	for _, s := range doc.GymSessions {
		if week.Contains(s.Date) {
			sessions = append(sessions, s)
		}
	}
	sortGymSessions(sessions)

	return WeekView{
		Offset:      offset,
		Week:        week,
		Days:        days,
		GymSessions: sessions,
	}
}

// Recent is the newest entries of each collection plus the protein entry of
// the reference date, if there is one.
type Recent struct {
	Date             string                   `json:"date"`
	TodayProtein     *document.ProteinEntry   `json:"today_protein"`
	ProteinIntake    []document.ProteinEntry  `json:"protein_intake"`
	GymSessions      []document.GymSession    `json:"gym_sessions"`
	FootballSessions []document.CardioSession `json:"football_sessions"`
	SquashSessions   []document.CardioSession `json:"squash_sessions"`
}

func RecentEntries(doc *document.Document, ref time.Time, limit int) Recent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	today := Day(ref).Format(document.DateLayout)
	recent := Recent{Date: today}
	for _, p := range doc.ProteinIntake {
		if p.Date == today {
			entry := p
			recent.TodayProtein = &entry
			break
		}
	}

	protein := append([]document.ProteinEntry{}, doc.ProteinIntake...)
	sort.SliceStable(protein, func(i, j int) bool {
		return newerFirst(protein[i].Date, protein[i].CreatedAt, protein[j].Date, protein[j].CreatedAt)
	})
	recent.ProteinIntake = head(protein, limit)

	gym := append([]document.GymSession{}, doc.GymSessions...)
	sortGymSessions(gym)
	recent.GymSessions = head(gym, limit)

	recent.FootballSessions = head(sortedCardio(doc.FootballSessions), limit)
	recent.SquashSessions = head(sortedCardio(doc.SquashSessions), limit)

	return recent
}

func sortGymSessions(sessions []document.GymSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return newerFirst(sessions[i].Date, sessions[i].CreatedAt, sessions[j].Date, sessions[j].CreatedAt)
	})
}

func sortedCardio(sessions []document.CardioSession) []document.CardioSession {
	sorted := append([]document.CardioSession{}, sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerFirst(sorted[i].Date, sorted[i].CreatedAt, sorted[j].Date, sorted[j].CreatedAt)
	})
	return sorted
}

func newerFirst(dateA string, createdA time.Time, dateB string, createdB time.Time) bool {
	if dateA != dateB {
		return dateA > dateB
	}
	return createdA.After(createdB)
}

func head[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
