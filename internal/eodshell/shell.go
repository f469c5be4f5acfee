package eodshell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/stats"

	"github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"
	log "github.com/sirupsen/logrus"
)

// Shell is the interactive end-of-day terminal client.
type Shell struct {
	shell  *ishell.Shell
	client *Client
	tokens *TokenStore
	runner *Runner

	NowFunc func() time.Time
}

func NewShell(client *Client, tokens *TokenStore) *Shell {
	return &Shell{
		shell:   ishell.New(),
		client:  client,
		tokens:  tokens,
		runner:  NewRunner(client),
		NowFunc: time.Now,
	}
}

// Run blocks until the user exits the shell.
func (s *Shell) Run(ctx context.Context) {
	if token, err := s.tokens.Get(); err == nil {
		s.client.SetToken(token)
	} else if !errors.Is(err, ErrNoToken) {
		log.Warnf("read stored token: %s", err)
	}

	s.shell.AddCmd(&ishell.Cmd{
		Name: "login",
		Help: "log in with the passcode",
		Func: func(c *ishell.Context) { s.login(ctx, c) },
	})
	s.shell.AddCmd(&ishell.Cmd{
		Name: "logout",
		Help: "end the current session",
		Func: func(c *ishell.Context) { s.logout(ctx, c) },
	})
	s.shell.AddCmd(&ishell.Cmd{
		Name:     "eod",
		Help:     "enter the end-of-day data, optionally for a date: eod 2026-02-20",
		LongHelp: "At any prompt: enter keeps the shown value, - clears it, b goes back, q quits.",
		Func:     func(c *ishell.Context) { s.endOfDay(ctx, c) },
	})
	s.shell.AddCmd(&ishell.Cmd{
		Name: "recent",
		Help: "show the last entries, optionally up to a date: recent 2026-02-20",
		Func: func(c *ishell.Context) { s.recent(ctx, c) },
	})

	s.shell.Println()
	figure.NewFigure("gymlog", "basic", true).Print()
	s.shell.Println("End of day logging. Type 'help' to see a list of commands.")
	if !s.client.HasToken() {
		s.shell.Println("Not logged in, use 'login' first.")
	}

	s.shell.Run()
}

func (s *Shell) login(ctx context.Context, c *ishell.Context) {
	c.Print("Passcode: ")
	passcode := c.ReadPassword()

	token, err := s.client.Login(ctx, passcode)
	if err != nil {
		c.Println(errorMessage(err))
		return
	}
	if err := s.tokens.Set(token); err != nil {
		log.Warnf("store token: %s", err)
	}
	c.Println("Logged in.")
}

func (s *Shell) logout(ctx context.Context, c *ishell.Context) {
	if err := s.client.Logout(ctx); err != nil && !errors.Is(err, ErrUnauthorized) {
		c.Println(errorMessage(err))
	}
	if err := s.tokens.Delete(); err != nil {
		log.Warnf("delete token: %s", err)
	}
	c.Println("Logged out.")
}

func (s *Shell) endOfDay(ctx context.Context, c *ishell.Context) {
	if !s.requireLogin(c) {
		return
	}

	date := s.NowFunc().Format(document.DateLayout)
	if len(c.Args) > 0 {
		date = c.Args[0]
	}

	_, err := s.runner.Run(ctx, c, date)
	switch {
	case err == nil:
	case errors.Is(err, ErrCancelled):
		c.Println("Cancelled.")
	default:
		s.handleError(c, err)
	}
}

func (s *Shell) recent(ctx context.Context, c *ishell.Context) {
	if !s.requireLogin(c) {
		return
	}

	date := ""
	if len(c.Args) > 0 {
		date = c.Args[0]
	}
	recent, err := s.client.Recent(ctx, date)
	if err != nil {
		s.handleError(c, err)
		return
	}
	printRecent(c, recent)
}

func (s *Shell) requireLogin(c *ishell.Context) bool {
	if s.client.HasToken() {
		return true
	}
	c.Println("Not logged in, use 'login' first.")
	return false
}

// handleError forgets the stored token once the backend no longer accepts it.
func (s *Shell) handleError(c *ishell.Context, err error) {
	if errors.Is(err, ErrUnauthorized) {
		s.client.SetToken("")
		if delErr := s.tokens.Delete(); delErr != nil {
			log.Warnf("delete token: %s", delErr)
		}
		c.Println("Session expired, use 'login' again.")
		return
	}
	c.Println(errorMessage(err))
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Not logged in"
	}
	return "Error: " + err.Error()
}

func printRecent(p prompter, recent *stats.Recent) {
	if recent.TodayProtein != nil {
		p.Println(fmt.Sprintf("Today (%s): %s g protein", recent.Date, formatNumber(recent.TodayProtein.Grams)))
	} else {
		p.Println(fmt.Sprintf("Today (%s): no protein logged yet", recent.Date))
	}

	p.Println("Protein:")
	for _, e := range recent.ProteinIntake {
		p.Println(fmt.Sprintf("  %s  %s g", e.Date, formatNumber(e.Grams)))
	}
	p.Println("Gym:")
	for _, gs := range recent.GymSessions {
		p.Println(fmt.Sprintf("  %s  %s, %s min, %d exercises",
			gs.Date, gs.GymDay.DayName, formatNumber(gs.DurationMinutes), len(gs.Exercises),
		))
	}
	p.Println("Football:")
	for _, cs := range recent.FootballSessions {
		p.Println(fmt.Sprintf("  %s  %s min", cs.Date, formatNumber(cs.DurationMinutes)))
	}
	p.Println("Squash:")
	for _, cs := range recent.SquashSessions {
		p.Println(fmt.Sprintf("  %s  %s min", cs.Date, formatNumber(cs.DurationMinutes)))
	}
}
