package core

import (
	"fmt"
	"strconv"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// ParseTask validates a candidate record as a unit and returns it in
// canonical form. A record that does not have exactly eight fields yields a
// *FieldCountError; value problems are all collected into one *RecordError.
func ParseTask(fields []string, origin Origin) (models.Task, error) {
	if len(fields) != models.FieldCount {
		return models.Task{}, &FieldCountError{Got: len(fields), Want: models.FieldCount}
	}

	var (
		task     models.Task
		problems []FieldProblem
		err      error
	)
	reject := func(f models.Field, format string, args ...any) {
		problems = append(problems, FieldProblem{Field: f, Reason: fmt.Sprintf(format, args...)})
	}

	task.ID, err = strconv.Atoi(fields[models.FieldID])
	if err != nil || task.ID < 1 {
		reject(models.FieldID, "invalid id: %q", fields[models.FieldID])
	}

	task.Received, err = ParseDate(fields[models.FieldReceivedDate], origin)
	if err != nil {
		reject(models.FieldReceivedDate, "invalid date: %s", fields[models.FieldReceivedDate])
	}
	task.ReceivedAt, err = ParseClock(fields[models.FieldReceivedTime])
	if err != nil {
		reject(models.FieldReceivedTime, "invalid time: %s", fields[models.FieldReceivedTime])
	}
	task.Due, err = ParseDate(fields[models.FieldDueDate], origin)
	if err != nil {
		reject(models.FieldDueDate, "invalid date: %s", fields[models.FieldDueDate])
	}
	task.DueAt, err = ParseClock(fields[models.FieldDueTime])
	if err != nil {
		reject(models.FieldDueTime, "invalid time: %s", fields[models.FieldDueTime])
	}

	// Ordering is only meaningful once all four values parsed.
	if len(problems) == 0 || onlyIDProblem(problems) {
		if task.Due < task.Received || (task.Due == task.Received && task.DueAt < task.ReceivedAt) {
			reject(models.FieldDueDate, "due date is before received date")
		}
	}

	task.Executor = fields[models.FieldExecutor]
	switch {
	case IsBlank(task.Executor):
		reject(models.FieldExecutor, "executor is empty")
	case HasReservedText(task.Executor):
		reject(models.FieldExecutor, "executor contains | or a line break")
	}
	task.Description = fields[models.FieldDescription]
	switch {
	case IsBlank(task.Description):
		reject(models.FieldDescription, "description is empty")
	case HasReservedText(task.Description):
		reject(models.FieldDescription, "description contains | or a line break")
	}

	task.Status, err = ParseStatus(fields[models.FieldStatus], origin)
	if err != nil {
		reject(models.FieldStatus, "invalid status: %s", fields[models.FieldStatus])
	}

	if len(problems) > 0 {
		return models.Task{}, &RecordError{TaskID: fields[models.FieldID], Problems: problems}
	}
	return task, nil
}

func onlyIDProblem(problems []FieldProblem) bool {
	return len(problems) == 1 && problems[0].Field == models.FieldID
}
