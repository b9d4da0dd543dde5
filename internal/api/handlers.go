package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/scheduler"
)

// maxRequestBodySize limits the size of incoming request bodies (4MB).
const maxRequestBodySize = 4 * 1024 * 1024

// Schedule validates req and computes the recommended order for projectID.
// It is shared by every transport.
func Schedule(ctx context.Context, projectID string, req *ScheduleRequest) (*ScheduleResponse, error) {
	logger := ctxlog.FromContext(ctx)

	if projectID == "" {
		return nil, ErrMissingProject
	}
	tasks, err := req.TaskList()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	order, err := scheduler.Schedule(tasks)
	if err != nil {
		logger.Debug("Schedule rejected.", "project_id", projectID, "tasks", len(tasks), "error", err)
		return nil, err
	}
	logger.Debug("Schedule computed.", "project_id", projectID, "tasks", len(tasks), "duration", time.Since(start))

	return &ScheduleResponse{ProjectID: projectID, RecommendedOrder: order}, nil
}

// handleSchedule handles POST /api/v1/projects/{projectId}/schedule.
func handleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, logger := ctxlog.With(r.Context(), "project_id", r.PathValue("projectId"))

	req, err := decodeScheduleRequest(r.Body)
	if err != nil {
		logger.Warn("Invalid schedule request.", "error", err)
		WriteError(w, err)
		return
	}

	resp, err := Schedule(ctx, r.PathValue("projectId"), req)
	if err != nil {
		if httpErr := MapError(err); httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("Schedule failed.", "error", err)
		}
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeScheduleRequest reads at most maxRequestBodySize bytes. A body that
// is empty or not a JSON object counts as missing tasks.
func decodeScheduleRequest(body io.Reader) (*ScheduleRequest, error) {
	if body == nil {
		return nil, ErrMissingTasks
	}
	data, err := io.ReadAll(io.LimitReader(body, maxRequestBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %v: %w", err, ErrMissingTasks)
	}
	if len(data) > maxRequestBodySize {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, maxRequestBodySize)
	}

	var req ScheduleRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, ErrMissingTasks
	}
	return &req, nil
}

// handleHealth handles GET /health.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
