package graph

import (
	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/task"
)

// Build constructs a Graph from tasks. Legacy Dependencies become
// FINISH_TO_START edges with zero lag; DependencyRelations are used as given.
// Edges naming an unknown task are logged and skipped. A cyclic graph is
// rejected with a *CycleError.
//
// The returned graph points into tasks; callers must not modify them while
// the graph is in use.
func Build(tasks []task.Task, log logging.Logger) (*Graph, error) {
	if log == nil {
		log = logging.Nop()
	}
	g := &Graph{
		Nodes: make([]Node, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}
	for i := range tasks {
		g.Nodes[i] = Node{Task: &tasks[i]}
		g.index[tasks[i].ID] = i
	}

	seen := make(map[Edge]bool)
	addEdge := func(owner string, dep task.Dependency) {
		from, okFrom := g.index[dep.PredecessorID]
		to, okTo := g.index[dep.SuccessorID]
		if !okFrom || !okTo {
			log.Warn("skipping dependency on unknown task",
				"task", owner, "predecessor", dep.PredecessorID, "successor", dep.SuccessorID)
			g.Skipped = append(g.Skipped, dep)
			return
		}
		if dep.Type == "" {
			dep.Type = task.FinishToStart
		}
		e := Edge{From: from, To: to, Type: dep.Type, Lag: dep.Lag}
		if seen[e] {
			return
		}
		seen[e] = true
		idx := len(g.Edges)
		g.Edges = append(g.Edges, e)
		g.Nodes[from].Out = append(g.Nodes[from].Out, idx)
		g.Nodes[to].In = append(g.Nodes[to].In, idx)
	}

	for i := range tasks {
		t := &tasks[i]
		for _, pred := range t.Dependencies {
			addEdge(t.ID, task.Dependency{
				ID:            pred + "->" + t.ID,
				PredecessorID: pred,
				SuccessorID:   t.ID,
				Type:          task.FinishToStart,
			})
		}
		for _, dep := range t.DependencyRelations {
			addEdge(t.ID, dep)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Index returns the arena index of the task with the given id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// ID returns the task id at index i.
func (g *Graph) ID(i int) string {
	return g.Nodes[i].Task.ID
}

// InDegree returns the number of incoming edges of node i.
func (g *Graph) InDegree(i int) int {
	return len(g.Nodes[i].In)
}

// OutDegree returns the number of outgoing edges of node i.
func (g *Graph) OutDegree(i int) int {
	return len(g.Nodes[i].Out)
}

// Successors returns the distinct successor indices of node i in edge order.
func (g *Graph) Successors(i int) []int {
	return g.distinct(g.Nodes[i].Out, func(e Edge) int { return e.To })
}

// Predecessors returns the distinct predecessor indices of node i in edge order.
func (g *Graph) Predecessors(i int) []int {
	return g.distinct(g.Nodes[i].In, func(e Edge) int { return e.From })
}

func (g *Graph) distinct(edges []int, end func(Edge) int) []int {
	var out []int
	seen := make(map[int]bool, len(edges))
	for _, ei := range edges {
		n := end(g.Edges[ei])
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Roots returns indices of nodes with no incoming edges.
func (g *Graph) Roots() []int {
	var out []int
	for i := range g.Nodes {
		if g.InDegree(i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Leaves returns indices of nodes with no outgoing edges.
func (g *Graph) Leaves() []int {
	var out []int
	for i := range g.Nodes {
		if g.OutDegree(i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Validate returns a *CycleError if the graph is not a DAG.
func (g *Graph) Validate() error {
	if at, cycle := g.findCycle(); cycle != nil {
		return &CycleError{TaskID: at, Path: cycle}
	}
	return nil
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is acyclic.
func (g *Graph) DetectCycle() []string {
	_, cycle := g.findCycle()
	return cycle
}

// findCycle runs a DFS with a recursion stack over successor edges, starting
// from tasks in input order. It returns the task at which the back edge was
// found together with the cycle it closes.
func (g *Graph) findCycle() (string, []string) {
	const (
		white = 0
		gray  = 1 // on the recursion stack
		black = 2
	)

	color := make([]int, len(g.Nodes))
	parent := make([]int, len(g.Nodes))

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		for _, ei := range g.Nodes[node].Out {
			next := g.Edges[ei].To
			if color[next] == gray {
				cycle := []int{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for i := range g.Nodes {
		if color[i] != white {
			continue
		}
		if cycle := dfs(i); cycle != nil {
			ids := make([]string, len(cycle))
			for k, n := range cycle {
				ids[k] = g.ID(n)
			}
			return ids[0], ids
		}
	}
	return "", nil
}
