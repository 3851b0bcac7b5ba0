package cpm

import (
	"math"

	"github.com/joshharrison/taskflow/internal/graph"
)

// Analyze performs critical path method analysis on a validated task graph.
// The graph must be acyclic; graph.Build guarantees that.
func Analyze(g *graph.Graph) *Result {
	n := g.Len()
	result := &Result{
		Nodes: make([]Node, n),
		index: make(map[string]int, n),
	}

	for i := 0; i < n; i++ {
		result.Nodes[i] = Node{
			TaskID:       g.ID(i),
			Duration:     g.Nodes[i].Task.Duration(),
			InDegree:     g.InDegree(i),
			OutDegree:    g.OutDegree(i),
			Predecessors: idsOf(g, g.Predecessors(i)),
			Successors:   idsOf(g, g.Successors(i)),
		}
		result.index[g.ID(i)] = i
	}

	result.TopoOrder = forwardPass(g, result.Nodes)

	// Total project duration: latest finish among terminal tasks
	projectFinish := 0.0
	for _, i := range g.Leaves() {
		if result.Nodes[i].EF > projectFinish {
			projectFinish = result.Nodes[i].EF
		}
	}
	result.TotalDuration = projectFinish

	backwardPass(g, result.Nodes, projectFinish)

	for i := range result.Nodes {
		node := &result.Nodes[i]
		node.TotalFloat = node.LS - node.ES
		node.IsCritical = node.TotalFloat == 0

		if len(node.Successors) == 0 {
			node.FreeFloat = node.TotalFloat
			continue
		}
		minES := math.Inf(1)
		for _, succ := range node.Successors {
			if es := result.Nodes[result.index[succ]].ES; es < minES {
				minES = es
			}
		}
		node.FreeFloat = minES - node.EF
	}

	for _, i := range result.TopoOrder {
		if result.Nodes[i].IsCritical {
			result.CriticalPath = append(result.CriticalPath, result.Nodes[i].TaskID)
		}
	}

	return result
}

// forwardPass computes ES and EF in Kahn order over in-degree and returns that order.
func forwardPass(g *graph.Graph, nodes []Node) []int {
	inDegree := make([]int, len(nodes))
	var queue []int
	for i := range nodes {
		inDegree[i] = g.InDegree(i)
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		pred := &nodes[cur]
		pred.EF = pred.ES + pred.Duration

		for _, ei := range g.Nodes[cur].Out {
			e := g.Edges[ei]
			succ := &nodes[e.To]
			proposed := relationFor(e.Type).forward(pred.ES, pred.EF, succ.Duration, e.Lag)
			if proposed > succ.ES {
				succ.ES = proposed
			}
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	return order
}

// backwardPass computes LF and LS in Kahn order over out-degree. Terminal
// tasks finish at projectFinish; every other task takes the tightest latest
// finish its outgoing edges allow.
func backwardPass(g *graph.Graph, nodes []Node, projectFinish float64) {
	outDegree := make([]int, len(nodes))
	var queue []int
	for i := range nodes {
		outDegree[i] = g.OutDegree(i)
		if outDegree[i] == 0 {
			nodes[i].LF = projectFinish
			queue = append(queue, i)
		} else {
			nodes[i].LF = math.Inf(1)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		succ := &nodes[cur]
		succ.LS = succ.LF - succ.Duration

		for _, ei := range g.Nodes[cur].In {
			e := g.Edges[ei]
			pred := &nodes[e.From]
			proposed := relationFor(e.Type).backward(succ.LS, succ.LF, pred.Duration, e.Lag)
			if proposed < pred.LF {
				pred.LF = proposed
			}
			outDegree[e.From]--
			if outDegree[e.From] == 0 {
				queue = append(queue, e.From)
			}
		}
	}
}

func idsOf(g *graph.Graph, idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.ID(i)
	}
	return out
}
