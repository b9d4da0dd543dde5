// Package scheduler computes the recommended execution order for a set of
// interdependent tasks.
//
// # How It Works
//
// Schedule runs a priority-driven variant of Kahn's algorithm:
//  1. Validate the task set (titles, dependency references, due dates).
//  2. Build a dependency graph where `dep -> title` means dep runs first.
//  3. Seed the eligible set with every task that has no prerequisites.
//  4. Repeatedly emit the eligible task with the earliest due date, breaking
//     ties by the smallest estimated effort, and unlock its dependents.
//  5. If tasks remain that never became eligible, they sit on a cycle.
//
// The task chosen at every step is the minimum among all tasks eligible at
// that moment, not just among those eligible at the start. Tasks that tie on
// both keys come out in the order they became eligible; tasks eligible from
// the start tie-break by their position in the input.
//
// # Errors
//
// Every rejection wraps one of ErrInvalidInput, ErrUnknownDependency or
// ErrCycleDetected. They describe bad input and are never retryable; use
// IsClientError to tell them apart from internal faults.
//
// # Thread-Safety
//
// Schedule keeps no state between calls and never mutates its input, so it
// may be called from any number of goroutines.
package scheduler
