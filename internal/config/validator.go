package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/sequence"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "engine.max_parallel_tasks")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	errors := c.Engine.Validate()

	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}

	return errors
}

// Validate checks engine settings.
func (e *EngineConfig) Validate() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(sequence.Strategies(), e.SchedulingStrategy) {
		errors = append(errors, ValidationError{
			Field:   "engine.scheduling_strategy",
			Value:   e.SchedulingStrategy,
			Message: fmt.Sprintf("must be one of: %s", joinStrings(sequence.Strategies())),
		})
	}
	if !slices.Contains(Goals(), e.OptimizationGoal) {
		errors = append(errors, ValidationError{
			Field:   "engine.optimization_goal",
			Value:   e.OptimizationGoal,
			Message: fmt.Sprintf("must be one of: %s", joinStrings(Goals())),
		})
	}
	if e.MaxParallelTasks < 1 {
		errors = append(errors, ValidationError{
			Field:   "engine.max_parallel_tasks",
			Value:   e.MaxParallelTasks,
			Message: "must be at least 1",
		})
	}
	if e.WorkingHoursPerDay <= 0 || e.WorkingHoursPerDay > 24 {
		errors = append(errors, ValidationError{
			Field:   "engine.working_hours_per_day",
			Value:   e.WorkingHoursPerDay,
			Message: "must be greater than 0 and at most 24",
		})
	}
	if e.WorkingDaysPerWeek < 1 || e.WorkingDaysPerWeek > 7 {
		errors = append(errors, ValidationError{
			Field:   "engine.working_days_per_week",
			Value:   e.WorkingDaysPerWeek,
			Message: "must be between 1 and 7",
		})
	}
	if e.BufferPercentage < 0 || e.BufferPercentage > 100 {
		errors = append(errors, ValidationError{
			Field:   "engine.buffer_percentage",
			Value:   e.BufferPercentage,
			Message: "must be between 0 and 100",
		})
	}

	return errors
}

func joinStrings[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
