package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/eodshell"
	"github.com/2beens/gymlog/internal/gymstats/admin"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/endofday"
	"github.com/2beens/gymlog/internal/gymstats/overload"
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func (s *IntegrationTestSuite) loggedInClient(ctx context.Context) *eodshell.Client {
	client := eodshell.NewClient(serverEndpoint, newHTTPClient())
	_, err := client.Login(ctx, testPasscode)
	s.Require().NoError(err)
	return client
}

func (s *IntegrationTestSuite) TestLogin() {
	ctx := context.Background()
	client := eodshell.NewClient(serverEndpoint, newHTTPClient())

	_, err := client.Login(ctx, "000000")
	var apiErr *eodshell.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	s.Equal("Wrong passcode", apiErr.Message)

	token, err := client.Login(ctx, testPasscode)
	s.Require().NoError(err)
	s.NotEmpty(token)

	doc, err := client.Document(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(doc.Passcode)
	s.Empty(doc.Passcode.Passcode, "passcode is never sent out")
	s.Len(doc.GymDaysTemplate, 3)

	s.Require().NoError(client.Logout(ctx))

	client.SetToken(token)
	_, err = client.Document(ctx)
	s.ErrorIs(err, eodshell.ErrUnauthorized)
}

func (s *IntegrationTestSuite) TestEndOfDay() {
	ctx := context.Background()
	client := s.loggedInClient(ctx)
	versionBefore := s.storedVersion()

	heavy := document.Float(42.5)
	payload := endofday.Payload{
		Date:            "2026-03-02",
		ProteinGrams:    document.Float(140),
		FootballMinutes: document.Float(45),
		Gym: &endofday.GymPayload{
			DayNumber:       1,
			DurationMinutes: 60,
			Exercises: []document.LoggedExercise{
				{
					ExerciseID: "ex_1",
					Sets: []document.Set{
						{Weight: heavy, Reps: 10},
						{Weight: heavy, Reps: 9},
						{Weight: heavy, Reps: 8},
					},
				},
			},
		},
	}

	res, err := client.Submit(ctx, payload)
	s.Require().NoError(err)
	s.NotEmpty(res.ProteinEntryID)
	s.NotEmpty(res.FootballEntryID)
	s.NotEmpty(res.GymSessionID)
	s.Empty(res.SquashEntryID)
	s.Equal([]overload.Change{
		{ExerciseID: "ex_1", From: 40, To: 42.5, Direction: overload.Increased},
	}, res.OverloadChanges)
	s.Equal(versionBefore+1, s.storedVersion())

	// a second protein entry for the same day is rejected and nothing is written
	_, err = client.Submit(ctx, payload)
	var apiErr *eodshell.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusConflict, apiErr.StatusCode)
	s.Equal("Error: data already present for this day", apiErr.Message)
	s.Equal(versionBefore+1, s.storedVersion())

	doc, err := client.Document(ctx)
	s.Require().NoError(err)
	day, ok := doc.GymDayByNumber(1)
	s.Require().True(ok)
	s.Require().NotNil(day.Exercises[0].CurrentWeight)
	s.Equal(42.5, *day.Exercises[0].CurrentWeight)

	session, ok := doc.GymSessionByID(res.GymSessionID)
	s.Require().True(ok)
	s.Equal("Lower + Posterior Chain", session.GymDay.DayName)
	s.Equal("Romanian Deadlift", session.Exercises[0].ExerciseName)

	recent, err := client.Recent(ctx, "2026-03-02")
	s.Require().NoError(err)
	s.Require().NotNil(recent.TodayProtein)
	s.Equal(140.0, recent.TodayProtein.Grams)

	resp := s.doRequest(ctx, client, http.MethodGet, "/gym-sessions/"+res.GymSessionID, nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp = s.doRequest(ctx, client, http.MethodGet, "/gym-sessions/gs_missing", nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestGymDraft() {
	ctx := context.Background()
	client := s.loggedInClient(ctx)

	liveDraft := document.LiveDraft{
		DayNumber:       2,
		DurationMinutes: document.Float(30),
		Exercises: []document.DraftExercise{
			{ExerciseID: "ex_8", Sets: []document.DraftSet{{Weight: document.Float(14), Reps: document.Float(10)}}},
		},
	}
	s.Require().NoError(client.SaveDraft(ctx, liveDraft))

	loaded, err := client.LoadDraft(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Equal(2, loaded.DayNumber)
	s.False(loaded.SavedAt.IsZero())
	s.Require().Len(loaded.Exercises, 1)
	s.Equal("ex_8", loaded.Exercises[0].ExerciseID)

	s.Require().NoError(client.ClearDraft(ctx))
	loaded, err = client.LoadDraft(ctx)
	s.Require().NoError(err)
	s.Nil(loaded)
}

func (s *IntegrationTestSuite) TestAdminReplace() {
	ctx := context.Background()
	client := s.loggedInClient(ctx)

	resp := s.doRequest(ctx, client, http.MethodGet, "/db", nil, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	revision := resp.Header.Get(admin.RevisionHeader)
	s.Require().NotEmpty(revision)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	resp = s.doRequest(ctx, client, http.MethodPut, "/db", body, map[string]string{
		admin.AdminSecretHeader: "wrong",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	// stale revision
	resp = s.doRequest(ctx, client, http.MethodPut, "/db", body, map[string]string{
		admin.AdminSecretHeader: testAdminSecret,
		admin.RevisionHeader:    "999",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.doRequest(ctx, client, http.MethodPut, "/db", body, map[string]string{
		admin.AdminSecretHeader: testAdminSecret,
		admin.RevisionHeader:    revision,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var replaceResp admin.ReplaceResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&replaceResp))
	current, err := strconv.ParseInt(revision, 10, 64)
	s.Require().NoError(err)
	s.Equal(current+1, replaceResp.Revision)
	s.Equal(replaceResp.Revision, s.storedVersion())

	// the redacted passcode was kept, so logging in still works
	s.loggedInClient(ctx)
}

func (s *IntegrationTestSuite) TestConcurrentSubmits() {
	ctx := context.Background()
	client := s.loggedInClient(ctx)
	versionBefore := s.storedVersion()

	const writers = 5
	var (
		wg        sync.WaitGroup
		mutex     sync.Mutex
		saved     int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := client.Submit(ctx, endofday.Payload{
				Date:         fmt.Sprintf("2026-04-%02d", day),
				ProteinGrams: document.Float(100),
			})

			mutex.Lock()
			defer mutex.Unlock()
			var apiErr *eodshell.APIError
			switch {
			case err == nil:
				saved++
			case s.ErrorAs(err, &apiErr) && apiErr.StatusCode == http.StatusConflict:
				conflicts++
			}
		}(i + 1)
	}
	wg.Wait()

	s.GreaterOrEqual(saved, 1)
	s.Equal(writers, saved+conflicts)
	s.Equal(versionBefore+int64(saved), s.storedVersion())

	doc, err := client.Document(ctx)
	s.Require().NoError(err)
	stored := 0
	for _, p := range doc.ProteinIntake {
		if p.Date >= "2026-04-01" && p.Date <= "2026-04-05" {
			stored++
		}
	}
	s.Equal(saved, stored)
}

func (s *IntegrationTestSuite) TestRequiresSession() {
	for _, path := range []string{"/db", "/gym-live", "/dashboard", "/dashboard/recent"} {
		resp, err := newHTTPClient().Get(serverEndpoint + path)
		s.Require().NoError(err)
		s.Equal(http.StatusUnauthorized, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	client *eodshell.Client,
	method, path string,
	body []byte,
	headers map[string]string,
) *http.Response {
	token, err := client.Login(ctx, testPasscode)
	s.Require().NoError(err)

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set(auth.TokenHeader, token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := newHTTPClient().Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}
