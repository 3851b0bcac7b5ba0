// Package sequence reorders tasks according to a scheduling strategy.
// Sequencing never mutates tasks; every function returns a new slice.
package sequence

import (
	"sort"

	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/task"
)

// Strategy names a task ordering.
type Strategy string

const (
	CriticalPath  Strategy = "CRITICAL_PATH"
	PriorityFirst Strategy = "PRIORITY_FIRST"
	ShortestFirst Strategy = "SHORTEST_FIRST"
	LongestFirst  Strategy = "LONGEST_FIRST"
	EarlyStart    Strategy = "EARLY_START"
)

// Strategies lists the strategies that change task order.
func Strategies() []Strategy {
	return []Strategy{CriticalPath, PriorityFirst, ShortestFirst, LongestFirst, EarlyStart}
}

// Order returns tasks sequenced by s. Unknown strategies keep insertion order.
func Order(s Strategy, tasks []task.Task, res *cpm.Result) []task.Task {
	switch s {
	case CriticalPath:
		return ByCriticalPath(tasks, res)
	case PriorityFirst:
		return ByPriority(tasks, res)
	case ShortestFirst:
		return ByDuration(tasks, true)
	case LongestFirst:
		return ByDuration(tasks, false)
	case EarlyStart:
		return ByEarlyStart(tasks, res)
	default:
		return append([]task.Task(nil), tasks...)
	}
}

// ByCriticalPath puts critical tasks first, then orders by earliest start and
// total float.
func ByCriticalPath(tasks []task.Task, res *cpm.Result) []task.Task {
	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := schedule(res, out[i].ID), schedule(res, out[j].ID)
		if a.IsCritical != b.IsCritical {
			return a.IsCritical
		}
		if a.ES != b.ES {
			return a.ES < b.ES
		}
		return a.TotalFloat < b.TotalFloat
	})
	return out
}

// ByPriority orders by descending priority weight, then earliest start.
func ByPriority(tasks []task.Task, res *cpm.Result) []task.Task {
	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].Priority.Weight(), out[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return schedule(res, out[i].ID).ES < schedule(res, out[j].ID).ES
	})
	return out
}

// ByDuration orders by task duration, ascending when shortest is true.
func ByDuration(tasks []task.Task, shortest bool) []task.Task {
	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if shortest {
			return out[i].Duration() < out[j].Duration()
		}
		return out[i].Duration() > out[j].Duration()
	})
	return out
}

// ByEarlyStart orders by ascending earliest start.
func ByEarlyStart(tasks []task.Task, res *cpm.Result) []task.Task {
	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return schedule(res, out[i].ID).ES < schedule(res, out[j].ID).ES
	})
	return out
}

func schedule(res *cpm.Result, id string) cpm.Node {
	if res != nil {
		if n, ok := res.Node(id); ok {
			return *n
		}
	}
	return cpm.Node{TaskID: id}
}
