package dag

// Graph is a collection of nodes and their dependencies, representing a DAG
// of task titles. A Graph is built and consumed by a single caller and is not
// safe for concurrent mutation.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in insertion order so every traversal is
	// deterministic.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// deps holds the nodes that this node depends on (predecessors), in the
	// order the edges were added.
	deps []*node
	// dependents holds the nodes that depend on this node (successors), in the
	// order the edges were added.
	dependents []*node
}
