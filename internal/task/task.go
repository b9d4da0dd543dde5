package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted textual form of a due date.
const DateLayout = "2006-01-02"

// Task is a unit of work submitted for ordering. Title is the primary key
// within a single request.
type Task struct {
	Title string
	// DueDate is kept in its submitted textual form; it is parsed when the
	// task is scheduled so that a malformed value fails the whole request.
	DueDate        string
	EstimatedHours float64
	// Dependencies names the tasks that must precede this one. Order is
	// preserved as submitted but the list is treated as a set.
	Dependencies []string
}

// ParseDate parses a due date in YYYY-MM-DD form. Surrounding whitespace is
// not tolerated, matching the fixed-format contract.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is empty")
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q does not match YYYY-MM-DD", s)
	}
	return d, nil
}

// Due returns the parsed due date of the task.
func (t *Task) Due() (time.Time, error) {
	d, err := ParseDate(t.DueDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %q: %w", t.Title, err)
	}
	return d, nil
}

// UniqueDependencies returns the task's dependencies with duplicates removed,
// keeping the first occurrence of each title.
func (t *Task) UniqueDependencies() []string {
	if len(t.Dependencies) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(t.Dependencies))
	out := make([]string, 0, len(t.Dependencies))
	for _, dep := range t.Dependencies {
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		out = append(out, dep)
	}
	return out
}

// String renders a compact, human-readable description used in logs.
func (t Task) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (due %s, %gh)", t.Title, t.DueDate, t.EstimatedHours)
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&sb, " after [%s]", strings.Join(t.Dependencies, ", "))
	}
	return sb.String()
}
