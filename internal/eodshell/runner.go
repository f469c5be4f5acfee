package eodshell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/endofday"
	"github.com/2beens/gymlog/internal/gymstats/wizard"
)

//go:generate mockgen -source=$GOFILE -destination=runner_mocks_test.go -package=eodshell_test

var ErrCancelled = errors.New("end of day entry cancelled")

type backend interface {
	Document(ctx context.Context) (*document.Document, error)
	LoadDraft(ctx context.Context) (*document.LiveDraft, error)
	SaveDraft(ctx context.Context, liveDraft document.LiveDraft) error
	ClearDraft(ctx context.Context) error
	Submit(ctx context.Context, payload endofday.Payload) (*endofday.Result, error)
}

// prompter is the part of an ishell context the runner needs.
type prompter interface {
	Print(val ...interface{})
	Println(val ...interface{})
	ReadLine() string
}

type command int

const (
	cmdNext command = iota
	cmdBack
	cmdQuit
	cmdRetry
)

// Runner walks the user through the end-of-day wizard on the terminal.
type Runner struct {
	backend backend
}

func NewRunner(backend backend) *Runner {
	return &Runner{backend: backend}
}

// Run asks for every step until the entry is submitted or the user quits.
// At any prompt "b" goes one step back and "q" quits, an empty line keeps the
// shown value and "-" clears it.
func (r *Runner) Run(ctx context.Context, p prompter, date string) (*endofday.Result, error) {
	doc, err := r.backend.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	wz := wizard.New(doc)
	s := wizard.NewState(date)
	draftOffered := false

	for {
		var cmd command
		switch s.Step {
		case wizard.StepDate:
			s.Date, cmd = readInput(p, "Date (YYYY-MM-DD)", s.Date)
		case wizard.StepProtein:
			s.Protein, cmd = readInput(p, "Protein (g)", s.Protein)
		case wizard.StepActivities:
			cmd = askActivities(p, &s)
		case wizard.StepEntry:
			activity, _ := s.CurrentActivity()
			switch activity {
			case wizard.Gym:
				if !draftOffered {
					draftOffered = true
					s = r.offerDraft(ctx, p, s)
				}
				cmd = askGym(p, doc, &s)
				// leaving gym entry half way keeps the previously saved draft
				if cmd == cmdNext {
					r.saveDraft(ctx, p, wz, s)
				}
			case wizard.Football:
				s.FootballMinutes, cmd = readInput(p, "Football (min)", s.FootballMinutes)
			case wizard.Squash:
				s.SquashMinutes, cmd = readInput(p, "Squash (min)", s.SquashMinutes)
			}
		case wizard.StepReview:
			printReview(p, s)
			p.Print("Submit? [y]es / [b]ack / [q]uit: ")
			switch strings.ToLower(strings.TrimSpace(p.ReadLine())) {
			case "y", "yes":
				return r.submit(ctx, p, s)
			case "b", "back":
				cmd = cmdBack
			case "q", "quit":
				cmd = cmdQuit
			default:
				cmd = cmdRetry
			}
		}

		switch cmd {
		case cmdBack:
			s = wizard.Retreat(s)
			continue
		case cmdQuit:
			return nil, ErrCancelled
		case cmdRetry:
			continue
		}

		next, err := wz.Advance(s)
		if err != nil {
			p.Println(document.UserMessage(err, "Something went wrong"))
			continue
		}
		s = next
	}
}

func (r *Runner) offerDraft(ctx context.Context, p prompter, s wizard.State) wizard.State {
	liveDraft, err := r.backend.LoadDraft(ctx)
	if err != nil {
		p.Println("Could not load the saved gym draft: " + err.Error())
		return s
	}
	if liveDraft == nil {
		return s
	}

	p.Print(fmt.Sprintf(
		"Continue the gym draft for %s saved at %s? [y/N]: ",
		liveDraft.DayName, liveDraft.SavedAt.Local().Format("15:04"),
	))
	if answer := strings.ToLower(strings.TrimSpace(p.ReadLine())); answer == "y" || answer == "yes" {
		return wizard.ApplyDraft(s, liveDraft)
	}
	return s
}

func (r *Runner) saveDraft(ctx context.Context, p prompter, wz *wizard.Wizard, s wizard.State) {
	if s.GymDayNumber == 0 {
		return
	}
	if err := r.backend.SaveDraft(ctx, wz.DraftFromState(s)); err != nil {
		p.Println("Could not save the gym draft: " + err.Error())
	}
}

func (r *Runner) submit(ctx context.Context, p prompter, s wizard.State) (*endofday.Result, error) {
	if s.Payload == nil {
		return nil, errors.New("nothing to submit")
	}

	res, err := r.backend.Submit(ctx, *s.Payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			p.Println(apiErr.Message)
		} else {
			p.Println("Submit failed: " + err.Error())
		}
		return nil, err
	}

	if s.Has(wizard.Gym) {
		if err := r.backend.ClearDraft(ctx); err != nil {
			p.Println("Could not clear the gym draft: " + err.Error())
		}
	}

	p.Println("Saved.")
	for _, change := range res.OverloadChanges {
		p.Println(fmt.Sprintf("  %s: %s -> %s (%s)",
			change.ExerciseID, formatNumber(change.From), formatNumber(change.To), change.Direction,
		))
	}
	return res, nil
}

func readInput(p prompter, label, current string) (string, command) {
	if current != "" {
		p.Print(fmt.Sprintf("%s [%s]: ", label, current))
	} else {
		p.Print(label + ": ")
	}

	line := strings.TrimSpace(p.ReadLine())
	switch strings.ToLower(line) {
	case "b", "back":
		return current, cmdBack
	case "q", "quit":
		return current, cmdQuit
	case "":
		return current, cmdNext
	case "-":
		return "", cmdNext
	}
	return line, cmdNext
}

func askActivities(p prompter, s *wizard.State) command {
	current := make([]string, 0, len(s.Activities))
	for _, a := range s.Activities {
		current = append(current, strings.ToLower(string(a)))
	}

	p.Println("Activities: gym, football, squash or none (comma separated)")
	line, cmd := readInput(p, "Activities", strings.Join(current, ","))
	if cmd != cmdNext {
		return cmd
	}

	next := *s
	next.Activities = []wizard.Activity{}
	for _, token := range strings.Split(line, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		activity, ok := wizard.ParseActivity(capitalize(token))
		if !ok {
			p.Println(fmt.Sprintf("Unknown activity %q", token))
			return cmdRetry
		}
		if !next.Has(activity) {
			next = wizard.Toggle(next, activity)
		}
	}
	*s = next
	return cmdNext
}

func askGym(p prompter, doc *document.Document, s *wizard.State) command {
	for _, day := range doc.GymDaysTemplate {
		p.Println(fmt.Sprintf("  %d) %s", day.DayNumber, day.DayName))
	}

	current := ""
	if s.GymDayNumber > 0 {
		current = strconv.Itoa(s.GymDayNumber)
	}
	line, cmd := readInput(p, "Gym day", current)
	if cmd != cmdNext {
		return cmd
	}
	dayNumber, err := strconv.Atoi(line)
	if err != nil {
		dayNumber = 0
	}
	s.GymDayNumber = dayNumber

	day, ok := doc.GymDayByNumber(dayNumber)
	if !ok {
		// validation reports the missing day
		return cmdNext
	}

	if s.GymDuration, cmd = readInput(p, "Time spent (min)", s.GymDuration); cmd != cmdNext {
		return cmd
	}

	if s.GymInputs == nil {
		s.GymInputs = map[string]wizard.ExerciseInput{}
	}
	for _, ex := range day.Exercises {
		input := s.GymInputs[ex.ExerciseID]
		p.Println(exerciseHeader(ex))

		for i := range input.Sets {
			set := &input.Sets[i]
			if ex.IsAbs() {
				if set.Reps, cmd = readInput(p, fmt.Sprintf("  set %d reps", i+1), set.Reps); cmd != cmdNext {
					return cmd
				}
				continue
			}

			line, cmd := readInput(p, fmt.Sprintf("  set %d weight x reps", i+1), joinSet(*set))
			if cmd != cmdNext {
				return cmd
			}
			set.Weight, set.Reps = splitSet(line)
		}
		s.GymInputs[ex.ExerciseID] = input
	}
	return cmdNext
}

func exerciseHeader(ex document.TemplateExercise) string {
	header := fmt.Sprintf("%s (%s)", ex.ExerciseName, ex.Reps)
	if ex.CurrentWeight != nil {
		header += fmt.Sprintf(", current %s", formatNumber(*ex.CurrentWeight))
	}
	return header
}

// splitSet parses "40x10" into weight and reps. A lone number is reps.
func splitSet(line string) (string, string) {
	if line == "" {
		return "", ""
	}
	parts := strings.SplitN(strings.ToLower(line), "x", 2)
	if len(parts) == 1 {
		return "", strings.TrimSpace(parts[0])
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func joinSet(set wizard.SetInput) string {
	if set.Weight == "" && set.Reps == "" {
		return ""
	}
	return set.Weight + "x" + set.Reps
}

func printReview(p prompter, s wizard.State) {
	if s.Payload == nil {
		return
	}
	payload := s.Payload

	p.Println("Review " + payload.Date)
	if payload.ProteinGrams != nil {
		p.Println(fmt.Sprintf("  protein: %s g", formatNumber(*payload.ProteinGrams)))
	}
	if payload.Gym != nil {
		p.Println(fmt.Sprintf("  gym: %s, %s min, %d exercises",
			payload.Gym.DayName, formatNumber(payload.Gym.DurationMinutes), len(payload.Gym.Exercises),
		))
		for _, ex := range payload.Gym.Exercises {
			sets := make([]string, 0, len(ex.Sets))
			for _, set := range ex.Sets {
				if set.Weight != nil {
					sets = append(sets, formatNumber(*set.Weight)+"x"+formatNumber(set.Reps))
				} else {
					sets = append(sets, formatNumber(set.Reps))
				}
			}
			p.Println(fmt.Sprintf("    %s: %s", ex.ExerciseName, strings.Join(sets, ", ")))
		}
	}
	if payload.FootballMinutes != nil && *payload.FootballMinutes > 0 {
		p.Println(fmt.Sprintf("  football: %s min", formatNumber(*payload.FootballMinutes)))
	}
	if payload.SquashMinutes != nil && *payload.SquashMinutes > 0 {
		p.Println(fmt.Sprintf("  squash: %s min", formatNumber(*payload.SquashMinutes)))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
