package core

import (
	"fmt"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// Sort orders used by the canned queries.
var (
	recentOrder = SortKeys{
		Primary: models.FieldReceivedDate, Secondary: models.FieldStatus,
		ReversePrimary: true, ReverseSecondary: true,
	}
	failedOrder = SortKeys{
		Primary: models.FieldDueDate, Secondary: models.FieldExecutor,
		ReversePrimary: true,
	}
	activeOrder = SortKeys{
		Primary: models.FieldExecutor, Secondary: models.FieldDueDate,
	}
)

// CutoffDate returns the date days calendar days before ref.
func CutoffDate(days int, ref models.Date) (models.Date, error) {
	if days < 0 {
		return "", fmt.Errorf("day count must be non-negative, got %d", days)
	}
	year, month, day, err := SplitDate(ref)
	if err != nil {
		return "", err
	}

	day -= days
	for day <= 0 {
		month--
		if month == 0 {
			month = 12
			year--
			if year < 0 {
				return "", fmt.Errorf("%d days before %s: %w", days, ref.Human(), ErrNegativeYear)
			}
		}
		day += DaysIn(month, year)
	}
	return FormatDate(year, month, day), nil
}

// RecentTasks returns the tasks received within days of ref, newest first
// and by status descending within a day.
func RecentTasks(src *Collection, days int, ref models.Date, maxSteps int) (*Collection, error) {
	cutoff, err := CutoffDate(days, ref)
	if err != nil {
		return nil, err
	}
	out := src.Filter(models.FieldReceivedDate, string(cutoff), false)
	out.Sort(recentOrder, maxSteps)
	return out, nil
}

// FailedByExecutor returns the failed tasks of executor, latest due first.
func FailedByExecutor(src *Collection, executor string, maxSteps int) *Collection {
	out := src.Filter(models.FieldExecutor, executor, true).
		Filter(models.FieldStatus, StatusSet(models.StatusFailed), true)
	out.Sort(failedOrder, maxSteps)
	return out
}

// ActiveTasks returns the received and in-progress tasks ordered by executor
// and then due date.
func ActiveTasks(src *Collection, maxSteps int) *Collection {
	out := src.Filter(models.FieldStatus, StatusSet(models.StatusReceived, models.StatusInProgress), true)
	out.Sort(activeOrder, maxSteps)
	return out
}
