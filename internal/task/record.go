package task

import "fmt"

// Record is the wire form of a Task shared by the JSON and YAML surfaces
// (HTTP bodies, socket.io payloads, task files).
type Record struct {
	Title          string   `json:"title" yaml:"title"`
	DueDate        string   `json:"dueDate" yaml:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours" yaml:"estimatedHours"`
	Dependencies   []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Task converts the record, requiring an effort estimate. Titles and dates
// are validated by the scheduler.
func (r Record) Task() (Task, error) {
	if r.EstimatedHours == nil {
		if r.Title == "" {
			return Task{}, fmt.Errorf("estimatedHours is required")
		}
		return Task{}, fmt.Errorf("task %q: estimatedHours is required", r.Title)
	}
	return Task{
		Title:          r.Title,
		DueDate:        r.DueDate,
		EstimatedHours: *r.EstimatedHours,
		Dependencies:   r.Dependencies,
	}, nil
}

// NewRecord returns the wire form of t.
func NewRecord(t Task) Record {
	hours := t.EstimatedHours
	return Record{
		Title:          t.Title,
		DueDate:        t.DueDate,
		EstimatedHours: &hours,
		Dependencies:   t.Dependencies,
	}
}

// FromRecords converts records in order. A nil slice stays nil so that an
// absent list can still be told apart from an empty one.
func FromRecords(records []Record) ([]Task, error) {
	if records == nil {
		return nil, nil
	}
	tasks := make([]Task, len(records))
	for i, r := range records {
		t, err := r.Task()
		if err != nil {
			return nil, err
		}
		tasks[i] = t
	}
	return tasks, nil
}

// ToRecords converts tasks to their wire form.
func ToRecords(tasks []Task) []Record {
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		records[i] = NewRecord(t)
	}
	return records
}
