package graph

import "github.com/joshharrison/taskflow/internal/task"

// Edge is a dependency between two node indices.
type Edge struct {
	From int // predecessor index
	To   int // successor index
	Type task.DependencyType
	Lag  float64
}

// Node is one task in the arena. Out and In hold edge indices.
type Node struct {
	Task *task.Task
	Out  []int
	In   []int
}

// Graph is a directed graph of tasks stored as a dense arena.
// Node i corresponds to the i-th input task.
type Graph struct {
	Nodes   []Node
	Edges   []Edge
	Skipped []task.Dependency // dangling edges dropped during Build

	index map[string]int
}
