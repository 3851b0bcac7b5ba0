package task

import "time"

// Priority is the business priority of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Weight returns the sort weight of a priority. An empty priority weighs as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium, "":
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is a known priority (or empty).
func (p Priority) Valid() bool {
	return p == "" || p.Weight() > 0
}

// DependencyType selects which endpoints of two tasks a dependency constrains.
type DependencyType string

const (
	FinishToStart  DependencyType = "FINISH_TO_START"
	StartToStart   DependencyType = "START_TO_START"
	FinishToFinish DependencyType = "FINISH_TO_FINISH"
	StartToFinish  DependencyType = "START_TO_FINISH"
)

// Valid reports whether t is one of the four supported dependency types.
func (t DependencyType) Valid() bool {
	switch t {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	}
	return false
}

// ResourceHuman is the resource type that conflicts when shared by parallel tasks.
const ResourceHuman = "human"

// DefaultDuration is used for tasks with no estimate.
const DefaultDuration = 8.0

// Task is a unit of work handed to the engine by its caller.
type Task struct {
	ID                   string                `json:"id" yaml:"id"`
	Name                 string                `json:"name" yaml:"name"`
	Description          string                `json:"description,omitempty" yaml:"description,omitempty"`
	Status               string                `json:"status,omitempty" yaml:"status,omitempty"`
	Priority             Priority              `json:"priority,omitempty" yaml:"priority,omitempty"`
	Type                 string                `json:"type,omitempty" yaml:"type,omitempty"`
	EstimatedHours       *float64              `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	Dependencies         []string              `json:"dependencies,omitempty" yaml:"dependencies,omitempty"` // legacy: predecessor ids, FINISH_TO_START
	DependencyRelations  []Dependency          `json:"dependencyRelations,omitempty" yaml:"dependencyRelations,omitempty"`
	ResourceRequirements []ResourceRequirement `json:"resourceRequirements,omitempty" yaml:"resourceRequirements,omitempty"`
	Metadata             *Metadata             `json:"orchestrationMetadata,omitempty" yaml:"orchestrationMetadata,omitempty"`
	TimeInfo             *TimeInfo             `json:"timeInfo,omitempty" yaml:"timeInfo,omitempty"` // written by the engine
}

// Dependency is a typed edge between two tasks.
type Dependency struct {
	ID            string         `json:"id,omitempty" yaml:"id,omitempty"`
	PredecessorID string         `json:"predecessorId" yaml:"predecessorId"`
	SuccessorID   string         `json:"successorId" yaml:"successorId"`
	Type          DependencyType `json:"type" yaml:"type"`
	Lag           float64        `json:"lag,omitempty" yaml:"lag,omitempty"` // hours, negative = lead
}

// ResourceRequirement is a demand for some quantity of a named resource.
type ResourceRequirement struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Type         string  `json:"type" yaml:"type"`
	Quantity     float64 `json:"quantity" yaml:"quantity"`
	Availability float64 `json:"availability,omitempty" yaml:"availability,omitempty"` // capacity
}

// Metadata carries orchestration hints.
type Metadata struct {
	Parallelizable *bool   `json:"parallelizable,omitempty" yaml:"parallelizable,omitempty"`
	Complexity     float64 `json:"complexity,omitempty" yaml:"complexity,omitempty"` // 0-10
	RequiresReview *bool   `json:"requiresReview,omitempty" yaml:"requiresReview,omitempty"`
}

// TimeInfo holds computed schedule dates. EstimatedDuration may be set by
// callers to override EstimatedHours.
type TimeInfo struct {
	EstimatedDuration *float64  `json:"estimatedDuration,omitempty" yaml:"estimatedDuration,omitempty"`
	EarliestStart     time.Time `json:"earliestStart" yaml:"earliestStart"`
	EarliestFinish    time.Time `json:"earliestFinish" yaml:"earliestFinish"`
	LatestStart       time.Time `json:"latestStart" yaml:"latestStart"`
	LatestFinish      time.Time `json:"latestFinish" yaml:"latestFinish"`
	TotalFloat        float64   `json:"totalFloat" yaml:"totalFloat"`
	FreeFloat         float64   `json:"freeFloat" yaml:"freeFloat"`
	IsCritical        bool      `json:"isCritical" yaml:"isCritical"`
}

// Hours returns a pointer to h, for EstimatedHours and EstimatedDuration.
func Hours(h float64) *float64 {
	return &h
}

// Duration returns the scheduling duration of t in hours: the duration
// override if set, else EstimatedHours if set, else DefaultDuration. An
// explicit zero is kept, so milestones take no time.
func (t *Task) Duration() float64 {
	if t.TimeInfo != nil && t.TimeInfo.EstimatedDuration != nil {
		return *t.TimeInfo.EstimatedDuration
	}
	if t.EstimatedHours != nil {
		return *t.EstimatedHours
	}
	return DefaultDuration
}

// Parallelizable reports whether t may run alongside others. Unset means yes.
func (t *Task) Parallelizable() bool {
	if t.Metadata == nil || t.Metadata.Parallelizable == nil {
		return true
	}
	return *t.Metadata.Parallelizable
}

// SkipsReview reports whether t explicitly opts out of review.
func (t *Task) SkipsReview() bool {
	return t.Metadata != nil && t.Metadata.RequiresReview != nil && !*t.Metadata.RequiresReview
}

// Complexity returns the task's complexity score, 0 when unset.
func (t *Task) Complexity() float64 {
	if t.Metadata == nil {
		return 0
	}
	return t.Metadata.Complexity
}

// HumanResources returns the names of human resources the task requires.
func (t *Task) HumanResources() []string {
	var names []string
	for _, r := range t.ResourceRequirements {
		if r.Type == ResourceHuman {
			names = append(names, r.Name)
		}
	}
	return names
}

// Clone returns a deep copy of t.
func (t *Task) Clone() Task {
	c := *t
	if t.EstimatedHours != nil {
		c.EstimatedHours = Hours(*t.EstimatedHours)
	}
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.DependencyRelations != nil {
		c.DependencyRelations = append([]Dependency(nil), t.DependencyRelations...)
	}
	if t.ResourceRequirements != nil {
		c.ResourceRequirements = append([]ResourceRequirement(nil), t.ResourceRequirements...)
	}
	if t.Metadata != nil {
		m := *t.Metadata
		if m.Parallelizable != nil {
			v := *m.Parallelizable
			m.Parallelizable = &v
		}
		if m.RequiresReview != nil {
			v := *m.RequiresReview
			m.RequiresReview = &v
		}
		c.Metadata = &m
	}
	if t.TimeInfo != nil {
		ti := *t.TimeInfo
		if ti.EstimatedDuration != nil {
			ti.EstimatedDuration = Hours(*ti.EstimatedDuration)
		}
		c.TimeInfo = &ti
	}
	return c
}

// CloneAll deep-copies a task slice.
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}
