package bd

import (
	"slices"

	"github.com/joshharrison/taskflow/internal/task"
)

// Labels with scheduling meaning.
const (
	LabelSerial   = "serial"
	LabelNoReview = "no-review"
)

// Priority maps a beads priority (0 = highest) to a task priority.
func Priority(p int) task.Priority {
	switch {
	case p <= 0:
		return task.PriorityCritical
	case p == 1:
		return task.PriorityHigh
	case p == 2:
		return task.PriorityMedium
	default:
		return task.PriorityLow
	}
}

// ToTask converts a beads issue. Estimates are converted from minutes to
// hours; a missing estimate is left for the engine default.
func ToTask(issue RawIssue) task.Task {
	t := task.Task{
		ID:           issue.ID,
		Name:         issue.Title,
		Description:  issue.Description,
		Status:       issue.Status,
		Priority:     Priority(issue.Priority),
		Type:         issue.Type,
		Dependencies: append([]string(nil), issue.BlockedBy...),
	}
	if issue.Estimate > 0 {
		t.EstimatedHours = task.Hours(float64(issue.Estimate) / 60)
	}

	serial := slices.Contains(issue.Labels, LabelSerial)
	noReview := slices.Contains(issue.Labels, LabelNoReview)
	if serial || noReview {
		t.Metadata = &task.Metadata{}
		if serial {
			f := false
			t.Metadata.Parallelizable = &f
		}
		if noReview {
			f := false
			t.Metadata.RequiresReview = &f
		}
	}
	return t
}

// ToTasks converts issues in order.
func ToTasks(issues []RawIssue) []task.Task {
	tasks := make([]task.Task, len(issues))
	for i, issue := range issues {
		tasks[i] = ToTask(issue)
	}
	return tasks
}
