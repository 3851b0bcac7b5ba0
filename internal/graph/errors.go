package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle detected")

// CycleError identifies the task where a back edge was found and the cycle it closes.
type CycleError struct {
	TaskID string
	Path   []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s at task %s", ErrCycle, e.TaskID)
	}
	return fmt.Sprintf("%s at task %s: %s", ErrCycle, e.TaskID, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
