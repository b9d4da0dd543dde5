// Package dag holds the dependency graph the scheduler orders. Nodes are task
// titles and an edge `dep -> title` means `dep` must run before `title`.
//
// Edges and nodes keep their insertion order. The scheduler relies on this:
// the sequence in which dependents are unlocked feeds its tie-breaking, so
// the same input always yields the same order.
package dag
