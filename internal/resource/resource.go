// Package resource aggregates resource demand against capacity.
//
// Demand is summed over every task that references a resource, regardless
// of when those tasks run.
package resource

import "github.com/joshharrison/taskflow/internal/task"

// Utilization is the load on a single resource.
type Utilization struct {
	ResourceID        string   `json:"resourceId"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	TotalCapacity     float64  `json:"totalCapacity"`
	AllocatedCapacity float64  `json:"allocatedCapacity"`
	UtilizationRate   float64  `json:"utilizationRate"`
	Overallocation    float64  `json:"overallocation"`
	TaskIDs           []string `json:"taskIds"`
}

// Overallocated reports whether demand exceeds capacity.
func (u Utilization) Overallocated() bool {
	return u.Overallocation > 0
}

// Analyze returns one Utilization per distinct resource id in first-seen order.
// Capacity is the first positive availability seen for the id, default 1.
func Analyze(tasks []task.Task) []Utilization {
	var order []string
	byID := make(map[string]*Utilization)

	for i := range tasks {
		t := &tasks[i]
		for _, req := range t.ResourceRequirements {
			u, ok := byID[req.ID]
			if !ok {
				u = &Utilization{ResourceID: req.ID, Name: req.Name, Type: req.Type}
				byID[req.ID] = u
				order = append(order, req.ID)
			}
			if u.TotalCapacity == 0 && req.Availability > 0 {
				u.TotalCapacity = req.Availability
			}
			u.AllocatedCapacity += req.Quantity
			if len(u.TaskIDs) == 0 || u.TaskIDs[len(u.TaskIDs)-1] != t.ID {
				u.TaskIDs = append(u.TaskIDs, t.ID)
			}
		}
	}

	out := make([]Utilization, 0, len(order))
	for _, id := range order {
		u := byID[id]
		if u.TotalCapacity == 0 {
			u.TotalCapacity = 1
		}
		u.UtilizationRate = u.AllocatedCapacity / u.TotalCapacity
		u.Overallocation = max(0, u.AllocatedCapacity-u.TotalCapacity)
		out = append(out, *u)
	}
	return out
}

// Overallocated returns the ids of tasks touching any overallocated resource,
// in first-seen order.
func Overallocated(utilization []Utilization) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, u := range utilization {
		if !u.Overallocated() {
			continue
		}
		for _, id := range u.TaskIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
