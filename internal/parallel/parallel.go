// Package parallel finds groups of tasks that can execute concurrently.
package parallel

import (
	"sort"

	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/task"
)

// Wave is the set of tasks sharing one earliest start time.
type Wave struct {
	Start   float64
	TaskIDs []string
}

// Waves buckets tasks by exact earliest start, in ascending start order.
// Tasks keep their input order within a wave.
func Waves(tasks []task.Task, res *cpm.Result) []Wave {
	byStart := make(map[float64][]string)
	for i := range tasks {
		n, ok := res.Node(tasks[i].ID)
		if !ok {
			continue
		}
		byStart[n.ES] = append(byStart[n.ES], tasks[i].ID)
	}

	starts := make([]float64, 0, len(byStart))
	for es := range byStart {
		starts = append(starts, es)
	}
	sort.Float64s(starts)

	waves := make([]Wave, len(starts))
	for i, es := range starts {
		waves[i] = Wave{Start: es, TaskIDs: byStart[es]}
	}
	return waves
}

// Group returns the parallel groups of tasks. Within each wave a task is
// admitted when it is parallelizable and shares no human resource name with
// an already admitted task. Only groups of two or more tasks are returned.
func Group(tasks []task.Task, res *cpm.Result) [][]string {
	byID := make(map[string]*task.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	var groups [][]string
	for _, wave := range Waves(tasks, res) {
		if len(wave.TaskIDs) < 2 {
			continue
		}
		var admitted []*task.Task
		for _, id := range wave.TaskIDs {
			t := byID[id]
			if !t.Parallelizable() {
				continue
			}
			if conflictsWithAny(t, admitted) {
				continue
			}
			admitted = append(admitted, t)
		}
		if len(admitted) < 2 {
			continue
		}
		group := make([]string, len(admitted))
		for i, t := range admitted {
			group[i] = t.ID
		}
		groups = append(groups, group)
	}
	return groups
}

// Conflicts reports whether a and b both need a human resource of the same name.
func Conflicts(a, b *task.Task) bool {
	for _, x := range a.HumanResources() {
		for _, y := range b.HumanResources() {
			if x == y {
				return true
			}
		}
	}
	return false
}

func conflictsWithAny(t *task.Task, admitted []*task.Task) bool {
	for _, other := range admitted {
		if Conflicts(t, other) {
			return true
		}
	}
	return false
}
