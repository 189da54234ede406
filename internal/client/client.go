// Package client is a typed HTTP client for the roster API. It satisfies
// roster.Backend, so an editing session can reconcile against a live
// server the same way tests reconcile against a mock.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Bitshala/admin/internal/dto"
	"github.com/Bitshala/admin/internal/models"
	appErrors "github.com/Bitshala/admin/pkg/errors"
	"github.com/Bitshala/admin/pkg/response"
)

const defaultTimeout = 15 * time.Second

// Client talks to a roster API server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchWeek retrieves the roster for a week.
func (c *Client) FetchWeek(ctx context.Context, week int) ([]models.WeekRecord, error) {
	var rows []dto.WeekRecordWire
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/weekly_data/%d", week), nil, &rows); err != nil {
		return nil, err
	}
	return dto.ToRecords(rows), nil
}

// UpsertWeek bulk-saves the given rows for a week.
func (c *Client) UpsertWeek(ctx context.Context, week int, records []models.WeekRecord) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/weekly_data/%d", week), dto.FromRecords(records), nil)
}

// CreateRecord adds a single row to a week. The server treats it as an
// upsert keyed by name and week.
func (c *Client) CreateRecord(ctx context.Context, record models.WeekRecord) error {
	return c.UpsertWeek(ctx, record.Week, []models.WeekRecord{record})
}

// DeleteRecord removes one row from a week.
func (c *Client) DeleteRecord(ctx context.Context, week int, record models.WeekRecord) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/weekly_data/%d/delete", week), dto.FromRecord(record), nil)
}

// WeeklyAttendance fetches the attendance count for a week.
func (c *Client) WeeklyAttendance(ctx context.Context, week int) (*models.WeeklyAttendance, error) {
	var att models.WeeklyAttendance
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/attendance/weekly_counts/%d", week), nil, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// Leaderboard fetches cumulative totals for every student.
func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, "/students/total_scores", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StudentHistory fetches every week for one student.
func (c *Client) StudentHistory(ctx context.Context, name string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := c.do(ctx, http.MethodGet, "/students/"+name+"/history", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// do performs one API round trip, unwrapping the response envelope into
// out when out is non-nil. Non-2xx statuses map onto the service error
// taxonomy: 404 stays a not-found, anything else is an upstream failure.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "roster api unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read roster api response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	var envelope response.Envelope
	envelope.Data = out
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode roster api response")
	}
	return nil
}

func (c *Client) errorFrom(status int, raw []byte) error {
	var envelope response.Envelope
	message := ""
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		message = envelope.Error.Message
	}
	switch status {
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusBadRequest:
		if message == "" {
			message = "request rejected"
		}
		return appErrors.Clone(appErrors.ErrValidation, message)
	case http.StatusUnauthorized:
		if message == "" {
			message = "unauthorized"
		}
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	default:
		if message == "" {
			message = fmt.Sprintf("roster api returned status %d", status)
		}
		return appErrors.Clone(appErrors.ErrUpstream, message)
	}
}
