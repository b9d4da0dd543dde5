package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every way a task set can be rejected.
var (
	// ErrInvalidInput covers a missing task list, missing titles, duplicate
	// titles and malformed due dates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDependency is returned when a task names a prerequisite that
	// is not part of the task set.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrCycleDetected is returned when no total order exists.
	ErrCycleDetected = errors.New("cycle detected in dependencies")
)

// DependencyError reports a dangling dependency reference.
type DependencyError struct {
	// Task is the title of the task declaring the dependency.
	Task string
	// Dependency is the title that could not be resolved.
	Dependency string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency '%s' not found in tasks (required by '%s')", e.Dependency, e.Task)
}

func (e *DependencyError) Unwrap() error {
	return ErrUnknownDependency
}

// CycleError reports that the dependency relation is not acyclic.
type CycleError struct {
	// Cycle is one offending cycle as a closed path, e.g. [a b a].
	Cycle []string
	// Blocked lists, in input order, every task that never became eligible.
	Blocked []string
}

func (e *CycleError) Error() string {
	if len(e.Cycle) == 0 {
		return ErrCycleDetected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycleDetected, strings.Join(e.Cycle, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// IsClientError reports whether err was caused by the submitted task set,
// as opposed to an internal fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownDependency) ||
		errors.Is(err, ErrCycleDetected)
}
