package task

import "math"

// Validate checks caller-supplied tasks before any schedule is computed.
// It returns the first problem found as an *InvalidTaskDataError.
func Validate(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			return invalidf("", "id", "is required (task #%d)", i)
		}
		if seen[t.ID] {
			return invalidf(t.ID, "id", "is duplicated")
		}
		seen[t.ID] = true

		if err := checkHours(t.ID, "estimatedHours", t.EstimatedHours); err != nil {
			return err
		}
		if t.TimeInfo != nil {
			if err := checkHours(t.ID, "timeInfo.estimatedDuration", t.TimeInfo.EstimatedDuration); err != nil {
				return err
			}
		}
		if !t.Priority.Valid() {
			return invalidf(t.ID, "priority", "%q is not one of low, medium, high, critical", t.Priority)
		}
		if t.Metadata != nil {
			c := t.Metadata.Complexity
			if math.IsNaN(c) || c < 0 || c > 10 {
				return invalidf(t.ID, "orchestrationMetadata.complexity", "must be within [0, 10], got %v", c)
			}
		}
		for _, dep := range t.DependencyRelations {
			if dep.Type != "" && !dep.Type.Valid() {
				return invalidf(t.ID, "dependencyRelations.type", "%q is not a known dependency type", dep.Type)
			}
			if math.IsNaN(dep.Lag) || math.IsInf(dep.Lag, 0) {
				return invalidf(t.ID, "dependencyRelations.lag", "must be finite, got %v", dep.Lag)
			}
		}
		for _, r := range t.ResourceRequirements {
			if r.ID == "" {
				return invalidf(t.ID, "resourceRequirements.id", "is required")
			}
			if math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) || r.Quantity < 0 {
				return invalidf(t.ID, "resourceRequirements.quantity", "must be a non-negative number, got %v", r.Quantity)
			}
			if math.IsNaN(r.Availability) || math.IsInf(r.Availability, 0) || r.Availability < 0 {
				return invalidf(t.ID, "resourceRequirements.availability", "must be a non-negative number, got %v", r.Availability)
			}
		}
	}
	return nil
}

func checkHours(taskID, field string, h *float64) error {
	if h == nil {
		return nil
	}
	v := *h
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidf(taskID, field, "must be finite, got %v", v)
	}
	if v < 0 {
		return invalidf(taskID, field, "must not be negative, got %v", v)
	}
	return nil
}
