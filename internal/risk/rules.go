package risk

import (
	"github.com/joshharrison/taskflow/internal/resource"
	"github.com/joshharrison/taskflow/internal/task"
)

// Thresholds used by the default rules.
const (
	CriticalRatioThreshold = 0.3
	LongTaskHours          = 40.0
	ComplexityThreshold    = 7.0
	SkippedReviewRatio     = 0.5
	ContingencyThreshold   = 4.0
)

// DefaultRules is the built-in rule table, evaluated in order.
var DefaultRules = []Rule{
	{
		ID:          "critical-path-risk",
		Name:        "Critical path concentration",
		Description: "A large share of tasks sit on the critical path; any slip delays the project.",
		Category:    CategorySchedule,
		Probability: 0.7,
		Impact:      8,
		Score:       5.6,
		Predicate: func(in Input) bool {
			return len(in.Tasks) > 0 &&
				float64(len(in.CriticalPath)) > CriticalRatioThreshold*float64(len(in.Tasks))
		},
		Affected: func(in Input) []string {
			return in.CriticalPath
		},
		Plan:     "Protect the delivery date when critical work falls behind.",
		Triggers: []string{
			"A critical task slips past its latest start",
			"Critical path progress falls behind plan for two consecutive days",
		},
		Actions: []string{
			"Re-sequence non-critical work to free capacity",
			"Assign additional people to the slipping critical task",
			"Renegotiate the delivery date with stakeholders",
		},
	},
	{
		ID:          "long-duration-risk",
		Name:        "Long-running tasks",
		Description: "Some tasks are estimated above 40 hours and are hard to estimate and track.",
		Category:    CategorySchedule,
		Probability: 0.5,
		Impact:      6,
		Score:       3.0,
		Predicate: func(in Input) bool {
			return len(longTasks(in)) > 0
		},
		Affected: longTasks,
		Plan:     "Break up a long task that is falling behind.",
		Triggers: []string{
			"A long task reports less than half its progress at its midpoint",
		},
		Actions: []string{
			"Split the task into smaller deliverables",
			"Add an intermediate checkpoint",
		},
	},
	{
		ID:          "resource-overallocation-risk",
		Name:        "Resource overallocation",
		Description: "Demand on at least one resource exceeds its available capacity.",
		Category:    CategoryResource,
		Probability: 0.8,
		Impact:      7,
		Score:       5.6,
		Predicate: func(in Input) bool {
			for _, u := range in.Utilization {
				if u.Overallocated() {
					return true
				}
			}
			return false
		},
		Affected: func(in Input) []string {
			return resource.Overallocated(in.Utilization)
		},
		Plan:     "Relieve an overloaded resource before it stalls dependent work.",
		Triggers: []string{
			"An overallocated resource blocks two tasks at once",
			"A task waits more than a day for a shared resource",
		},
		Actions: []string{
			"Bring in temporary capacity for the resource",
			"Delay lower-priority tasks that share the resource",
			"Reassign work to an underused resource",
		},
	},
	{
		ID:          "technical-complexity-risk",
		Name:        "Technical complexity",
		Description: "Some tasks are rated above 7 for complexity.",
		Category:    CategoryTechnical,
		Probability: 0.6,
		Impact:      7,
		Score:       4.2,
		Predicate: func(in Input) bool {
			return len(complexTasks(in)) > 0
		},
		Affected: complexTasks,
		Plan:     "Fall back to a simpler design when complex work stalls.",
		Triggers: []string{
			"A complex task hits an unresolved technical blocker",
			"A complex task exceeds its estimate by half",
		},
		Actions: []string{
			"Schedule a spike to de-risk the approach",
			"Pair a senior engineer on the task",
			"Prepare a simpler fallback design",
		},
	},
	{
		ID:          "quality-review-risk",
		Name:        "Skipped reviews",
		Description: "More than half of the tasks opt out of review.",
		Category:    CategoryQuality,
		Probability: 0.4,
		Impact:      6,
		Score:       2.4,
		Predicate: func(in Input) bool {
			skipped := len(unreviewedTasks(in))
			return len(in.Tasks) > 0 && float64(skipped) > SkippedReviewRatio*float64(len(in.Tasks))
		},
		Affected: unreviewedTasks,
		Plan:     "Restore review when unreviewed work causes defects.",
		Triggers: []string{
			"Defects escape to a later task or release",
		},
		Actions: []string{
			"Reintroduce review on the affected tasks",
			"Add automated checks to the pipeline",
		},
	},
}

func longTasks(in Input) []string {
	return tasksWhere(in.Tasks, func(t *task.Task) bool { return t.Duration() > LongTaskHours })
}

func complexTasks(in Input) []string {
	return tasksWhere(in.Tasks, func(t *task.Task) bool { return t.Complexity() > ComplexityThreshold })
}

func unreviewedTasks(in Input) []string {
	return tasksWhere(in.Tasks, (*task.Task).SkipsReview)
}

// tasksWhere returns the ids of matching tasks in input order.
func tasksWhere(tasks []task.Task, match func(*task.Task) bool) []string {
	var ids []string
	for i := range tasks {
		if match(&tasks[i]) {
			ids = append(ids, tasks[i].ID)
		}
	}
	return ids
}

// Mitigations holds the fixed suggestions for each category.
var Mitigations = map[Category][]string{
	CategorySchedule: {
		"Add schedule buffer to critical path tasks",
		"Monitor critical path progress daily",
		"Identify tasks that can be fast-tracked or crashed",
	},
	CategoryResource: {
		"Level resource demand across the schedule",
		"Cross-train team members to widen resource pools",
		"Secure backup resources in advance",
	},
	CategoryTechnical: {
		"Run proof-of-concept work before committing to complex tasks",
		"Schedule technical reviews for complex components",
		"Pair experienced engineers with complex tasks",
	},
	CategoryQuality: {
		"Require peer review for all deliverables",
		"Add automated testing and quality gates",
	},
}
