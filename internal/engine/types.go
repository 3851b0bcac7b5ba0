package engine

import (
	"time"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/resource"
	"github.com/joshharrison/taskflow/internal/risk"
	"github.com/joshharrison/taskflow/internal/sequence"
	"github.com/joshharrison/taskflow/internal/task"
)

// Version is reported in result metadata.
const Version = "1.0.0"

// Result is the outcome of one orchestration run.
type Result struct {
	Tasks               []task.Task            `json:"tasks"`
	CriticalPath        []string               `json:"criticalPath"`
	TotalDuration       float64                `json:"totalDuration"`
	ParallelGroups      [][]string             `json:"parallelGroups"`
	ResourceUtilization []resource.Utilization `json:"resourceUtilization"`
	RiskAssessment      risk.Assessment        `json:"riskAssessment"`
	Recommendations     []string               `json:"recommendations"`
	Schedule            []cpm.Node             `json:"schedule"`
	Metadata            Metadata               `json:"metadata"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	ID        string            `json:"id"`
	Strategy  sequence.Strategy `json:"strategy"`
	Goal      config.Goal       `json:"optimizationGoal"`
	Preset    string            `json:"preset,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
}

// Stats summarises a result.
type Stats struct {
	TotalTasks     int     `json:"totalTasks"`
	CriticalTasks  int     `json:"criticalTasks"`
	ParallelGroups int     `json:"parallelGroups"`
	AverageFloat   float64 `json:"averageFloat"`
	LongestPath    float64 `json:"longestPath"` // hours
}

// StatsFor computes stats from a result. A nil result yields zero stats.
func StatsFor(r *Result) Stats {
	if r == nil {
		return Stats{}
	}
	s := Stats{
		TotalTasks:     len(r.Tasks),
		ParallelGroups: len(r.ParallelGroups),
		LongestPath:    r.TotalDuration,
	}
	var float float64
	for _, n := range r.Schedule {
		if n.IsCritical {
			s.CriticalTasks++
		}
		float += n.TotalFloat
	}
	if len(r.Schedule) > 0 {
		s.AverageFloat = float / float64(len(r.Schedule))
	}
	return s
}
