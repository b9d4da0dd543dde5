package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskorder/internal/scheduler"
	"github.com/vk/taskorder/internal/task"
)

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(Config{AllowedOrigins: origins}, logger)
}

func postSchedule(t *testing.T, s *Server, projectID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHandleSchedule_Success(t *testing.T) {
	s := newTestServer(t)
	body := `{"tasks": [
		{"title": "Write docs", "dueDate": "2024-01-10", "estimatedHours": 2, "dependencies": ["Design"]},
		{"title": "Design", "dueDate": "2024-01-05", "estimatedHours": 4, "dependencies": []},
		{"title": "Setup", "dueDate": "2024-01-05", "estimatedHours": 1}
	]}`

	rec := postSchedule(t, s, "p1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.ProjectID)
	assert.Equal(t, []string{"Setup", "Design", "Write docs"}, resp.RecommendedOrder)
}

func TestHandleSchedule_EmptyList(t *testing.T) {
	rec := postSchedule(t, newTestServer(t), "empty", `{"tasks": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"projectId": "empty", "recommendedOrder": []}`, rec.Body.String())
}

func TestHandleSchedule_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		wantStatus  int
		wantCode    ErrorCode
		wantMessage string
	}{
		{"empty body", ``, http.StatusBadRequest, CodeInvalidInput, "missing tasks in request"},
		{"not json", `tasks please`, http.StatusBadRequest, CodeInvalidInput, "missing tasks in request"},
		{"no tasks key", `{"items": []}`, http.StatusBadRequest, CodeInvalidInput, "missing tasks in request"},
		{"json array body", `[]`, http.StatusBadRequest, CodeInvalidInput, "missing tasks in request"},
		{"tasks is object", `{"tasks": {"title": "A"}}`, http.StatusBadRequest, CodeInvalidInput, "tasks must be a list"},
		{"tasks is null", `{"tasks": null}`, http.StatusBadRequest, CodeInvalidInput, "tasks must be a list"},
		{"missing hours", `{"tasks": [{"title": "A", "dueDate": "2024-01-01"}]}`, http.StatusBadRequest, CodeInvalidInput, "estimatedHours is required"},
		{"wrong field type", `{"tasks": [{"title": "A", "dueDate": "2024-01-01", "estimatedHours": "two"}]}`, http.StatusBadRequest, CodeInvalidInput, "invalid task list"},
		{"missing title", `{"tasks": [{"dueDate": "2024-01-01", "estimatedHours": 1}]}`, http.StatusBadRequest, CodeInvalidInput, "has no title"},
		{"bad date", `{"tasks": [{"title": "A", "dueDate": "01/02/2024", "estimatedHours": 1}]}`, http.StatusBadRequest, CodeInvalidInput, "does not match YYYY-MM-DD"},
		{
			"unknown dependency",
			`{"tasks": [{"title": "A", "dueDate": "2024-01-01", "estimatedHours": 1, "dependencies": ["Ghost"]}]}`,
			http.StatusBadRequest, CodeUnknownDependency, "dependency 'Ghost' not found in tasks",
		},
		{
			"cycle",
			`{"tasks": [
				{"title": "A", "dueDate": "2024-01-01", "estimatedHours": 1, "dependencies": ["B"]},
				{"title": "B", "dueDate": "2024-01-02", "estimatedHours": 1, "dependencies": ["A"]}
			]}`,
			http.StatusBadRequest, CodeCycleDetected, "cycle detected in dependencies",
		},
	}

	s := newTestServer(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postSchedule(t, s, "p1", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, string(tc.wantCode), resp.Code)
			assert.Contains(t, resp.Error, tc.wantMessage)
		})
	}
}

func TestHandleSchedule_BodyTooLarge(t *testing.T) {
	body := `{"tasks": [], "pad": "` + strings.Repeat("x", maxRequestBodySize) + `"}`
	rec := postSchedule(t, newTestServer(t), "p1", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "request body too large")
}

func TestHandleSchedule_WrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/p1/schedule", nil)
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		rec := postSchedule(t, newTestServer(t), "p1", `{"tasks": []}`)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects/p1/schedule", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		newTestServer(t).Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})

	t.Run("allow list", func(t *testing.T) {
		s := newTestServer(t, "https://app.example.com")

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec = httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t)
	s.Mount("/boom", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(CodeInternalError), resp.Code)
	assert.Contains(t, resp.Error, "kaboom")
}

func TestMapError(t *testing.T) {
	testCases := []struct {
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{ErrMissingTasks, http.StatusBadRequest, CodeInvalidInput},
		{ErrTasksNotList, http.StatusBadRequest, CodeInvalidInput},
		{ErrMissingProject, http.StatusBadRequest, CodeInvalidInput},
		{fmt.Errorf("wrapped: %w", scheduler.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{&scheduler.DependencyError{Task: "A", Dependency: "B"}, http.StatusBadRequest, CodeUnknownDependency},
		{&scheduler.CycleError{Cycle: []string{"A", "B", "A"}}, http.StatusBadRequest, CodeCycleDetected},
		{ErrBodyTooLarge, http.StatusRequestEntityTooLarge, CodeInvalidInput},
		{errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			httpErr := MapError(tc.err)
			require.NotNil(t, httpErr)
			assert.Equal(t, tc.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tc.wantCode, httpErr.Code)
			assert.ErrorIs(t, httpErr, tc.err)
		})
	}

	assert.Nil(t, MapError(nil))
}

func TestSchedule_RequiresProject(t *testing.T) {
	req, err := NewScheduleRequest("", []task.Task{})
	require.NoError(t, err)

	_, err = Schedule(context.Background(), "", req)
	assert.ErrorIs(t, err, ErrMissingProject)
}

func TestNewScheduleRequest_RoundTrip(t *testing.T) {
	tasks := []task.Task{
		{Title: "A", DueDate: "2024-01-02", EstimatedHours: 1},
		{Title: "B", DueDate: "2024-01-01", EstimatedHours: 2, Dependencies: []string{"A"}},
	}
	req, err := NewScheduleRequest("p9", tasks)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(req))
	assert.Contains(t, buf.String(), `"projectId":"p9"`)

	resp, err := Schedule(context.Background(), req.ProjectID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, resp.RecommendedOrder)
}
