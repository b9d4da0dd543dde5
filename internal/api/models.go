package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vk/taskorder/internal/scheduler"
	"github.com/vk/taskorder/internal/task"
)

// ScheduleRequest is the body of a schedule call. Tasks is kept raw so that
// an absent list, a null and a non-list value can be told apart.
type ScheduleRequest struct {
	// ProjectID is only read by transports without a path parameter.
	ProjectID string          `json:"projectId,omitempty"`
	Tasks     json.RawMessage `json:"tasks"`
}

// NewScheduleRequest builds a request carrying the given tasks.
func NewScheduleRequest(projectID string, tasks []task.Task) (*ScheduleRequest, error) {
	raw, err := json.Marshal(task.ToRecords(tasks))
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return &ScheduleRequest{ProjectID: projectID, Tasks: raw}, nil
}

// TaskList decodes and converts the task list.
func (r *ScheduleRequest) TaskList() ([]task.Task, error) {
	raw := bytes.TrimSpace(r.Tasks)
	if len(raw) == 0 {
		return nil, ErrMissingTasks
	}
	if raw[0] != '[' {
		return nil, ErrTasksNotList
	}

	var records []task.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("invalid task list: %v: %w", err, scheduler.ErrInvalidInput)
	}
	tasks, err := task.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, scheduler.ErrInvalidInput)
	}
	return tasks, nil
}

// ScheduleResponse is the success body.
type ScheduleResponse struct {
	ProjectID        string   `json:"projectId"`
	RecommendedOrder []string `json:"recommendedOrder"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
