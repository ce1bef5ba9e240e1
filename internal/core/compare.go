package core

import (
	"cmp"
	"strings"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// SortKeys selects the primary and secondary fields of a compound ordering
// and the direction of each.
type SortKeys struct {
	Primary          models.Field
	Secondary        models.Field
	ReversePrimary   bool
	ReverseSecondary bool
}

// After reports whether a belongs after b under k. The secondary field is
// only consulted when the primary fields are equal.
func (k SortKeys) After(a, b models.Task) bool {
	if c := compareField(a, b, k.Primary); c != 0 {
		return directed(c, k.ReversePrimary)
	}
	return directed(compareField(a, b, k.Secondary), k.ReverseSecondary)
}

func directed(c int, reverse bool) bool {
	if reverse {
		return c < 0
	}
	return c > 0
}

// compareField orders ids numerically and every other field by its
// canonical string, which is sortable by construction.
func compareField(a, b models.Task, f models.Field) int {
	if f == models.FieldID {
		return cmp.Compare(a.ID, b.ID)
	}
	return strings.Compare(a.Value(f), b.Value(f))
}
