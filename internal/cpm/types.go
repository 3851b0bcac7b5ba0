package cpm

// Result holds the complete critical path analysis. Nodes is indexed like
// the graph arena it was computed from.
type Result struct {
	Nodes         []Node
	TopoOrder     []int    // forward topological order of node indices
	CriticalPath  []string // critical task ids in topological order
	TotalDuration float64  // hours

	index map[string]int
}

// Node holds the scheduling info for a single task. Times are hour offsets
// from the project start.
type Node struct {
	TaskID       string   `json:"taskId"`
	Duration     float64  `json:"duration"`
	InDegree     int      `json:"inDegree"`
	OutDegree    int      `json:"outDegree"`
	Predecessors []string `json:"predecessors,omitempty"`
	Successors   []string `json:"successors,omitempty"`

	ES float64 `json:"earliestStart"`
	EF float64 `json:"earliestFinish"`
	LS float64 `json:"latestStart"`
	LF float64 `json:"latestFinish"`

	TotalFloat float64 `json:"totalFloat"`
	FreeFloat  float64 `json:"freeFloat"`
	IsCritical bool    `json:"isCritical"`
}

// Node returns the schedule of the task with the given id.
func (r *Result) Node(id string) (*Node, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.Nodes[i], true
}

// Ordered returns the nodes in topological order.
func (r *Result) Ordered() []Node {
	out := make([]Node, len(r.TopoOrder))
	for k, i := range r.TopoOrder {
		out[k] = r.Nodes[i]
	}
	return out
}
