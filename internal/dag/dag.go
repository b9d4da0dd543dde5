package dag

import (
	"fmt"
	"slices"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist. Adding an edge that already exists is a no-op.
// A self-referential edge is accepted and surfaces later as a cycle.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if slices.Contains(toNode.deps, fromNode) {
		return nil
	}

	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)

	return nil
}

// Dependencies returns the IDs of the nodes the given node depends on, in
// edge insertion order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.deps), nil
}

// Dependents returns the IDs of the nodes that depend on the given node, in
// edge insertion order.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.dependents), nil
}

// InDegrees returns the number of incoming edges for every node.
func (g *Graph) InDegrees() map[string]int {
	in := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		in[id] = len(n.deps)
	}
	return in
}

// FindCycle returns one cycle as a closed path (first and last element are
// the same node), or nil if the graph is acyclic. Nodes are visited in
// insertion order so the reported cycle is stable for a given input.
func (g *Graph) FindCycle() []string {
	// Classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) []string
	visit = func(n *node) []string {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			// Back edge: the cycle is the stack suffix starting at n.
			start := slices.Index(stack, n.id)
			cycle := slices.Clone(stack[start:])
			return append(cycle, n.id)
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, dependent := range n.dependents {
			if cycle := visit(dependent); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if cycle := visit(g.nodes[id]); cycle != nil {
			return cycle
		}
	}

	return nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// describing the first cycle found.
func (g *Graph) DetectCycles() error {
	if cycle := g.FindCycle(); cycle != nil {
		return fmt.Errorf("cycle detected: %s", strings.Join(cycle, " -> "))
	}
	return nil
}

func ids(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}
