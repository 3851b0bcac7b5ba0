package task

import (
	"fmt"
	"strings"
)

// Filter returns the tasks matching expr. Supported forms are
// "priority>=P", "priority<=P", "priority=P", "type=X" and "status=X".
// Dependencies on removed tasks are left in place for the graph builder to
// skip.
func Filter(tasks []Task, expr string) ([]Task, error) {
	match, err := parseFilter(expr)
	if err != nil {
		return nil, err
	}
	var out []Task
	for i := range tasks {
		if match(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out, nil
}

func parseFilter(expr string) (func(*Task) bool, error) {
	switch {
	case strings.HasPrefix(expr, "priority"):
		return priorityFilter(strings.TrimPrefix(expr, "priority"))
	case strings.HasPrefix(expr, "type="):
		typ := strings.TrimPrefix(expr, "type=")
		return func(t *Task) bool { return t.Type == typ }, nil
	case strings.HasPrefix(expr, "status="):
		status := strings.TrimPrefix(expr, "status=")
		return func(t *Task) bool { return t.Status == status }, nil
	}
	return nil, fmt.Errorf("unsupported filter: %s (use priority>=P, type=X, or status=X)", expr)
}

func priorityFilter(rest string) (func(*Task) bool, error) {
	for _, op := range []string{">=", "<=", "="} {
		if !strings.HasPrefix(rest, op) {
			continue
		}
		p := Priority(strings.TrimPrefix(rest, op))
		if p == "" || !p.Valid() {
			return nil, fmt.Errorf("invalid priority value: %q", p)
		}
		w := p.Weight()
		switch op {
		case ">=":
			return func(t *Task) bool { return t.Priority.Weight() >= w }, nil
		case "<=":
			return func(t *Task) bool { return t.Priority.Weight() <= w }, nil
		default:
			return func(t *Task) bool { return t.Priority.Weight() == w }, nil
		}
	}
	return nil, fmt.Errorf("unsupported priority filter: priority%s", rest)
}
