package task

import (
	"errors"
	"fmt"
)

// ErrInvalidTaskData is the sentinel wrapped by InvalidTaskDataError.
var ErrInvalidTaskData = errors.New("invalid task data")

// InvalidTaskDataError reports a malformed field on a caller-supplied task.
type InvalidTaskDataError struct {
	TaskID string
	Field  string
	Reason string
}

func (e *InvalidTaskDataError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("%s: %s %s", ErrInvalidTaskData, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: task %s: %s %s", ErrInvalidTaskData, e.TaskID, e.Field, e.Reason)
}

func (e *InvalidTaskDataError) Unwrap() error { return ErrInvalidTaskData }

func invalidf(taskID, field, format string, args ...any) error {
	return &InvalidTaskDataError{TaskID: taskID, Field: field, Reason: fmt.Sprintf(format, args...)}
}
