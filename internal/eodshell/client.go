package eodshell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/draft"
	"github.com/2beens/gymlog/internal/gymstats/endofday"
	"github.com/2beens/gymlog/internal/gymstats/stats"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrUnauthorized = errors.New("not logged in")

// APIError is a failed call answered by the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type loginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

type recentResponse struct {
	OK     bool         `json:"ok"`
	Recent stats.Recent `json:"recent"`
}

// Client talks to the gymlog backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient returns a client for baseURL. A nil httpClient gets a traced one.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) Login(ctx context.Context, passcode string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/a/login", auth.LoginRequest{Passcode: passcode}, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/a/logout", nil, nil)
	c.token = ""
	return err
}

// Document fetches the whole document.
func (c *Client) Document(ctx context.Context) (*document.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/db", nil, &raw); err != nil {
		return nil, err
	}
	return document.Decode(raw)
}

func (c *Client) LoadDraft(ctx context.Context) (*document.LiveDraft, error) {
	var resp draft.LoadResponse
	if err := c.do(ctx, http.MethodGet, "/gym-live", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Draft, nil
}

func (c *Client) SaveDraft(ctx context.Context, liveDraft document.LiveDraft) error {
	return c.do(ctx, http.MethodPut, "/gym-live", liveDraft, nil)
}

func (c *Client) ClearDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/gym-live", nil, nil)
}

func (c *Client) Submit(ctx context.Context, payload endofday.Payload) (*endofday.Result, error) {
	var resp endofday.SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/end-of-day", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *Client) Recent(ctx context.Context, date string) (*stats.Recent, error) {
	path := "/dashboard/recent"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var resp recentResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Recent, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(auth.TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
