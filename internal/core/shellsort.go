package core

import "github.com/valter-silva-au/tasktrack/pkg/models"

// DefaultMaxGapSteps is the largest Hibbard step tried, giving a first gap
// of 65535 elements.
const DefaultMaxGapSteps = 16

// Hibbard returns the k-th gap of the Hibbard sequence, 2^k - 1.
func Hibbard(k int) int {
	return 1<<k - 1
}

// ShellSort orders tasks in place by keys using Hibbard gaps, starting from
// DefaultMaxGapSteps. Only the compound primary/secondary order is
// guaranteed; ties beyond it depend on the input order.
func ShellSort(tasks []models.Task, keys SortKeys) {
	ShellSortSteps(tasks, keys, DefaultMaxGapSteps)
}

// ShellSortSteps is ShellSort with an explicit largest step count. Gaps that
// are not smaller than len(tasks) are skipped.
func ShellSortSteps(tasks []models.Task, keys SortKeys, maxSteps int) {
	for k := maxSteps; k > 0; k-- {
		gap := Hibbard(k)
		if gap >= len(tasks) {
			continue
		}

		for i := gap; i < len(tasks); i++ {
			current := tasks[i]
			j := i
			for j >= gap && keys.After(tasks[j-gap], current) {
				tasks[j] = tasks[j-gap]
				j -= gap
			}
			tasks[j] = current
		}
	}
}
