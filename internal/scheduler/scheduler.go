package scheduler

import (
	"fmt"
	"time"

	"github.com/vk/taskorder/internal/dag"
	"github.com/vk/taskorder/internal/task"
)

// Schedule returns the titles of tasks in recommended execution order.
//
// The order respects every dependency and, among the tasks eligible at each
// step, prefers the earliest due date and then the smallest estimated
// effort. A nil slice is rejected as absent input; an empty slice yields an
// empty order. The input is never modified.
func Schedule(tasks []task.Task) ([]string, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks must be a list: %w", ErrInvalidInput)
	}

	lookup, err := indexByTitle(tasks)
	if err != nil {
		return nil, err
	}

	// Dangling references are rejected before any graph work begins.
	for i := range tasks {
		for _, dep := range tasks[i].Dependencies {
			if _, ok := lookup[dep]; !ok {
				return nil, &DependencyError{Task: tasks[i].Title, Dependency: dep}
			}
		}
	}

	due := make([]time.Time, len(tasks))
	for i := range tasks {
		d, err := tasks[i].Due()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		due[i] = d
	}

	g, err := buildGraph(tasks)
	if err != nil {
		return nil, err
	}
	indegree := g.InDegrees()

	eligible := newEligibleSet(len(tasks))
	for i := range tasks {
		if indegree[tasks[i].Title] == 0 {
			eligible.add(i, due[i], tasks[i].EstimatedHours)
		}
	}

	order := make([]string, 0, len(tasks))
	for eligible.Len() > 0 {
		current := tasks[eligible.take()].Title
		order = append(order, current)

		dependents, err := g.Dependents(current)
		if err != nil {
			return nil, err
		}
		for _, next := range dependents {
			indegree[next]--
			if indegree[next] == 0 {
				i := lookup[next]
				eligible.add(i, due[i], tasks[i].EstimatedHours)
			}
		}
	}

	if len(order) != len(tasks) {
		return nil, cycleError(g, tasks, indegree)
	}
	return order, nil
}

// indexByTitle maps every title to its position in tasks. Missing and
// duplicate titles are rejected.
func indexByTitle(tasks []task.Task) (map[string]int, error) {
	lookup := make(map[string]int, len(tasks))
	for i := range tasks {
		title := tasks[i].Title
		if title == "" {
			return nil, fmt.Errorf("task at position %d has no title: %w", i, ErrInvalidInput)
		}
		if first, dup := lookup[title]; dup {
			return nil, fmt.Errorf("duplicate task title %q at positions %d and %d: %w", title, first, i, ErrInvalidInput)
		}
		lookup[title] = i
	}
	return lookup, nil
}

// buildGraph adds one node per task in input order and one edge per distinct
// dependency, so dependents are unlocked in submission order.
func buildGraph(tasks []task.Task) (*dag.Graph, error) {
	g := dag.New()
	for i := range tasks {
		g.AddNode(tasks[i].Title)
	}
	for i := range tasks {
		for _, dep := range tasks[i].UniqueDependencies() {
			if err := g.AddEdge(dep, tasks[i].Title); err != nil {
				return nil, fmt.Errorf("build dependency graph: %w", err)
			}
		}
	}
	return g, nil
}

func cycleError(g *dag.Graph, tasks []task.Task, indegree map[string]int) *CycleError {
	var blocked []string
	for i := range tasks {
		if indegree[tasks[i].Title] > 0 {
			blocked = append(blocked, tasks[i].Title)
		}
	}
	return &CycleError{Cycle: g.FindCycle(), Blocked: blocked}
}
