package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitshala/admin/internal/dto"
	"github.com/Bitshala/admin/internal/models"
	appErrors "github.com/Bitshala/admin/pkg/errors"
	"github.com/Bitshala/admin/pkg/response"
)

func wireRow(name string, week int) dto.WeekRecordWire {
	fa, fb := 3, 2
	att := dto.FlagYes
	return dto.WeekRecordWire{
		Name:       name,
		GroupID:    "Group 1",
		Attendance: &att,
		FA:         &fa,
		FB:         &fb,
		Mail:       "alice@example.com",
		Week:       week,
	}
}

func TestClientFetchWeek(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/weekly_data/2", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response.Envelope{
			Data: []dto.WeekRecordWire{wireRow("Alice_Smith", 2)},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("secret-token"))
	records, err := c.FetchWeek(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "Alice Smith", records[0].Name)
	assert.True(t, records[0].Attendance)
	assert.Equal(t, 30, records[0].Total)
}

func TestClientUpsertWeek(t *testing.T) {
	var got []dto.WeekRecordWire
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/weekly_data/3", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	record := models.WeekRecord{
		Name:       "Bob",
		Group:      "Group 2",
		TA:         "Raj",
		Attendance: true,
		Week:       3,
		GD:         models.GDScore{FA: 2},
		Total:      12,
	}

	c := New(server.URL)
	require.NoError(t, c.UpsertWeek(context.Background(), 3, []models.WeekRecord{record}))
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)
	require.NotNil(t, got[0].TA)
	assert.Equal(t, "Raj", *got[0].TA)
	require.NotNil(t, got[0].Total)
	assert.Equal(t, 12, *got[0].Total)
}

func TestClientDeleteRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weekly_data/1/delete", r.URL.Path)
		var row dto.WeekRecordWire
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "Carol", row.Name)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.DeleteRecord(context.Background(), 1, models.WeekRecord{Name: "Carol", Week: 1})
	require.NoError(t, err)
}

func TestClientNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(response.Envelope{
			Error: appErrors.Clone(appErrors.ErrNotFound, "no submission recorded"),
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.StudentHistory(context.Background(), "Nobody")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "no submission recorded", appErr.Message)
}

func TestClientUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.FetchWeek(context.Background(), 1)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}

func TestClientUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
	_, err := c.FetchWeek(context.Background(), 1)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}

func TestClientLeaderboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/total_scores", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response.Envelope{
			Data: []models.LeaderboardEntry{
				{Name: "Alice", Email: "alice@example.com", TotalScore: 320, ExerciseTotalScore: 2},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	entries, err := c.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, 320, entries[0].TotalScore)
}
