package config

import "github.com/joshharrison/taskflow/internal/sequence"

// Overrides selectively replaces engine settings. Nil fields are left alone.
type Overrides struct {
	EnableCriticalPath         *bool
	EnableParallelOptimization *bool
	EnableResourceLeveling     *bool
	EnableRiskAnalysis         *bool
	SchedulingStrategy         *sequence.Strategy
	OptimizationGoal           *Goal
	MaxParallelTasks           *int
	WorkingHoursPerDay         *float64
	WorkingDaysPerWeek         *int
	BufferPercentage           *float64
}

// Apply returns base with every non-nil override applied.
func (o *Overrides) Apply(base EngineConfig) EngineConfig {
	if o == nil {
		return base
	}
	if o.EnableCriticalPath != nil {
		base.EnableCriticalPath = *o.EnableCriticalPath
	}
	if o.EnableParallelOptimization != nil {
		base.EnableParallelOptimization = *o.EnableParallelOptimization
	}
	if o.EnableResourceLeveling != nil {
		base.EnableResourceLeveling = *o.EnableResourceLeveling
	}
	if o.EnableRiskAnalysis != nil {
		base.EnableRiskAnalysis = *o.EnableRiskAnalysis
	}
	if o.SchedulingStrategy != nil {
		base.SchedulingStrategy = *o.SchedulingStrategy
	}
	if o.OptimizationGoal != nil {
		base.OptimizationGoal = *o.OptimizationGoal
	}
	if o.MaxParallelTasks != nil {
		base.MaxParallelTasks = *o.MaxParallelTasks
	}
	if o.WorkingHoursPerDay != nil {
		base.WorkingHoursPerDay = *o.WorkingHoursPerDay
	}
	if o.WorkingDaysPerWeek != nil {
		base.WorkingDaysPerWeek = *o.WorkingDaysPerWeek
	}
	if o.BufferPercentage != nil {
		base.BufferPercentage = *o.BufferPercentage
	}
	return base
}

// Empty reports whether o changes nothing.
func (o *Overrides) Empty() bool {
	return o == nil || *o == Overrides{}
}
