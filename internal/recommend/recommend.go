// Package recommend turns analysis results into advice for the planner.
// It does no scheduling of its own.
package recommend

import (
	"fmt"
	"strings"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/resource"
	"github.com/joshharrison/taskflow/internal/risk"
	"github.com/joshharrison/taskflow/internal/task"
)

const (
	overUtilized   = 1.0
	underUtilized  = 0.5
	highRisk       = 6.0
	longTaskHours  = 40.0
	criticalHeavy  = 0.5
	maxListedTasks = 5
)

// Input collects the outputs of the other analyses.
type Input struct {
	Tasks          []task.Task
	CriticalPath   []string
	TotalDuration  float64
	ParallelGroups [][]string
	Utilization    []resource.Utilization
	Risk           risk.Assessment
	Config         config.EngineConfig
}

// Generate returns recommendations in a fixed section order: critical path,
// parallelism, resources, risk, long tasks, then calendar.
func Generate(in Input) []string {
	recs := []string{}
	recs = append(recs, criticalPath(in)...)
	recs = append(recs, parallelism(in)...)
	recs = append(recs, resources(in)...)
	recs = append(recs, riskLevel(in)...)
	recs = append(recs, longTasks(in)...)
	recs = append(recs, calendar(in)...)
	return recs
}

func criticalPath(in Input) []string {
	n := len(in.CriticalPath)
	if n == 0 || len(in.Tasks) == 0 {
		return nil
	}
	ratio := float64(n) / float64(len(in.Tasks))
	recs := []string{fmt.Sprintf(
		"Critical path has %d of %d tasks (%.0f%%); monitor closely: %s",
		n, len(in.Tasks), ratio*100, list(in.CriticalPath),
	)}
	if ratio > criticalHeavy {
		recs = append(recs, "Most tasks are critical; relax or overlap dependencies to create float")
	}
	return recs
}

func parallelism(in Input) []string {
	if len(in.ParallelGroups) == 0 {
		if len(in.Tasks) > 1 && in.Config.EnableParallelOptimization {
			return []string{"No parallel execution opportunities found; check whether dependencies are stricter than needed"}
		}
		return nil
	}

	widest := 0
	for _, g := range in.ParallelGroups {
		widest = max(widest, len(g))
	}
	recs := []string{fmt.Sprintf(
		"%d parallel groups found; up to %d tasks can run at once",
		len(in.ParallelGroups), widest,
	)}
	if limit := in.Config.MaxParallelTasks; limit > 0 {
		for _, g := range in.ParallelGroups {
			if len(g) > limit {
				recs = append(recs, fmt.Sprintf(
					"Parallel group %s has %d tasks, above the limit of %d; stagger its start",
					list(g), len(g), limit,
				))
			}
		}
	}
	return recs
}

func resources(in Input) []string {
	var recs []string
	for _, u := range in.Utilization {
		switch {
		case u.UtilizationRate > overUtilized:
			recs = append(recs, fmt.Sprintf(
				"Resource %s is overallocated at %.0f%%; add capacity or reschedule: %s",
				label(u), u.UtilizationRate*100, list(u.TaskIDs),
			))
		case u.UtilizationRate < underUtilized:
			recs = append(recs, fmt.Sprintf(
				"Resource %s is underutilized at %.0f%%; it can take on more work",
				label(u), u.UtilizationRate*100,
			))
		}
	}
	return recs
}

func riskLevel(in Input) []string {
	if in.Risk.OverallRiskLevel <= highRisk {
		return nil
	}
	return []string{fmt.Sprintf(
		"Overall risk is high (%.1f); review the %d contingency plans before committing to dates",
		in.Risk.OverallRiskLevel, len(in.Risk.ContingencyPlans),
	)}
}

func longTasks(in Input) []string {
	var recs []string
	for i := range in.Tasks {
		t := &in.Tasks[i]
		if d := t.Duration(); d > longTaskHours {
			recs = append(recs, fmt.Sprintf("Task %s is estimated at %.0f hours; split it into smaller tasks", t.ID, d))
		}
	}
	return recs
}

func calendar(in Input) []string {
	if in.TotalDuration <= 0 {
		return nil
	}
	var recs []string
	planned := in.TotalDuration
	if pct := in.Config.BufferPercentage; pct > 0 {
		buffer := planned * pct / 100
		planned += buffer
		recs = append(recs, fmt.Sprintf(
			"Add a %.0f%% buffer (%.1f hours) to the %.1f hour critical path",
			pct, buffer, in.TotalDuration,
		))
	}
	if in.Config.WorkingHoursPerDay > 0 && in.Config.WorkingDaysPerWeek > 0 {
		days := planned / in.Config.WorkingHoursPerDay
		weeks := days / float64(in.Config.WorkingDaysPerWeek)
		recs = append(recs, fmt.Sprintf(
			"Plan for about %.1f working days (%.1f weeks) at %g hours per day",
			days, weeks, in.Config.WorkingHoursPerDay,
		))
	}
	return recs
}

func label(u resource.Utilization) string {
	if u.Name != "" && u.Name != u.ResourceID {
		return fmt.Sprintf("%s (%s)", u.Name, u.ResourceID)
	}
	return u.ResourceID
}

func list(ids []string) string {
	if len(ids) <= maxListedTasks {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(ids[:maxListedTasks], ", "), len(ids)-maxListedTasks)
}
