package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

var (
	// ErrFieldCount marks a structural failure: a record without exactly
	// eight fields. It signals a caller or formatting bug, not bad user data.
	ErrFieldCount = errors.New("wrong number of task fields")

	ErrNotFound     = errors.New("task not found")
	ErrNegativeYear = errors.New("computed year is negative")
	ErrIDImmutable  = errors.New("task id cannot be edited")
	ErrDuplicateID  = errors.New("task id already in use")
)

// DateError reports a raw value that is not a valid calendar date.
type DateError struct {
	Value string
}

func (e *DateError) Error() string { return fmt.Sprintf("invalid date: %q", e.Value) }

// TimeError reports a raw value that is not a valid HH:MM time.
type TimeError struct {
	Value string
}

func (e *TimeError) Error() string { return fmt.Sprintf("invalid time: %q", e.Value) }

// StatusError reports a raw value that is not an accepted status.
type StatusError struct {
	Value string
}

func (e *StatusError) Error() string { return fmt.Sprintf("invalid status: %q", e.Value) }

// PathError reports a file name that may not be used for a task file.
type PathError struct {
	Value string
}

func (e *PathError) Error() string { return fmt.Sprintf("invalid file name: %q", e.Value) }

// FieldCountError carries the offending arity of a malformed record.
type FieldCountError struct {
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("%s: got %d, want %d", ErrFieldCount, e.Got, e.Want)
}

func (e *FieldCountError) Unwrap() error { return ErrFieldCount }

// FieldProblem describes why a single field of a record was rejected.
type FieldProblem struct {
	Field  models.Field
	Reason string
}

// RecordError collects every field problem found in one candidate record.
type RecordError struct {
	TaskID   string
	Problems []FieldProblem
}

func (e *RecordError) Error() string {
	reasons := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		reasons[i] = p.Reason
	}
	return fmt.Sprintf("task %s rejected: %s", e.TaskID, strings.Join(reasons, "; "))
}

// NotFoundError is returned by lookups that found no matching task.
type NotFoundError struct {
	Field models.Field
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no task with %s %q", e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
