// Package preset holds named engine configurations for common project styles.
package preset

import (
	"fmt"
	"strings"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/sequence"
)

// Name identifies a preset.
type Name string

const (
	AgileSprint    Name = "AGILE_SPRINT"
	Waterfall      Name = "WATERFALL"
	CriticalChain  Name = "CRITICAL_CHAIN"
	LeanStartup    Name = "LEAN_STARTUP"
	RapidPrototype Name = "RAPID_PROTOTYPE"
	Enterprise     Name = "ENTERPRISE"
	Research       Name = "RESEARCH"
	Maintenance    Name = "MAINTENANCE"
)

// Preset is a named engine configuration.
type Preset struct {
	Name        Name                `json:"name"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Engine      config.EngineConfig `json:"config"`
}

var catalog = []Preset{
	{
		Name:        AgileSprint,
		Title:       "Agile Sprint",
		Description: "Short iterations with high parallelism and a small buffer.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     true,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.PriorityFirst,
			OptimizationGoal:           config.GoalMinimizeTime,
			MaxParallelTasks:           8,
			WorkingHoursPerDay:         8,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           10,
		},
	},
	{
		Name:        Waterfall,
		Title:       "Waterfall",
		Description: "Sequential phases with strict dependency order.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: false,
			EnableResourceLeveling:     true,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.CriticalPath,
			OptimizationGoal:           config.GoalMaximizeQuality,
			MaxParallelTasks:           3,
			WorkingHoursPerDay:         8,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           20,
		},
	},
	{
		Name:        CriticalChain,
		Title:       "Critical Chain",
		Description: "Resource-constrained scheduling with a large project buffer.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     true,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.CriticalPath,
			OptimizationGoal:           config.GoalBalanceResources,
			MaxParallelTasks:           5,
			WorkingHoursPerDay:         8,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           50,
		},
	},
	{
		Name:        LeanStartup,
		Title:       "Lean Startup",
		Description: "Fast build-measure-learn cycles that favour quick wins.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     false,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.ShortestFirst,
			OptimizationGoal:           config.GoalMinimizeCost,
			MaxParallelTasks:           4,
			WorkingHoursPerDay:         10,
			WorkingDaysPerWeek:         6,
			BufferPercentage:           5,
		},
	},
	{
		Name:        RapidPrototype,
		Title:       "Rapid Prototype",
		Description: "Maximum speed with minimal process overhead.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     false,
			EnableRiskAnalysis:         false,
			SchedulingStrategy:         sequence.EarlyStart,
			OptimizationGoal:           config.GoalMinimizeTime,
			MaxParallelTasks:           10,
			WorkingHoursPerDay:         10,
			WorkingDaysPerWeek:         6,
			BufferPercentage:           0,
		},
	},
	{
		Name:        Enterprise,
		Title:       "Enterprise",
		Description: "Large teams with full analysis and conservative buffers.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         true,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     true,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.CriticalPath,
			OptimizationGoal:           config.GoalMinimizeRisk,
			MaxParallelTasks:           15,
			WorkingHoursPerDay:         8,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           25,
		},
	},
	{
		Name:        Research,
		Title:       "Research",
		Description: "Exploratory work with high uncertainty and generous buffers.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         false,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     false,
			EnableRiskAnalysis:         true,
			SchedulingStrategy:         sequence.LongestFirst,
			OptimizationGoal:           config.GoalMaximizeQuality,
			MaxParallelTasks:           6,
			WorkingHoursPerDay:         7,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           40,
		},
	},
	{
		Name:        Maintenance,
		Title:       "Maintenance",
		Description: "Steady upkeep of an existing system ordered by priority.",
		Engine: config.EngineConfig{
			EnableCriticalPath:         false,
			EnableParallelOptimization: true,
			EnableResourceLeveling:     true,
			EnableRiskAnalysis:         false,
			SchedulingStrategy:         sequence.PriorityFirst,
			OptimizationGoal:           config.GoalBalanceResources,
			MaxParallelTasks:           4,
			WorkingHoursPerDay:         8,
			WorkingDaysPerWeek:         5,
			BufferPercentage:           15,
		},
	},
}

// All returns every preset in catalog order.
func All() []Preset {
	return append([]Preset(nil), catalog...)
}

// Names returns the preset names in catalog order.
func Names() []Name {
	names := make([]Name, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a preset by name, case-insensitively.
func Lookup(name string) (Preset, error) {
	for _, p := range catalog {
		if strings.EqualFold(string(p.Name), name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// Config returns the engine settings of the named preset.
func Config(name string) (config.EngineConfig, error) {
	p, err := Lookup(name)
	if err != nil {
		return config.EngineConfig{}, err
	}
	return p.Engine, nil
}
