package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// Collection is an ordered list of validated tasks. Order is insertion or
// sort order; it is not keyed by id.
type Collection struct {
	tasks []models.Task
}

// NewCollection returns a collection holding tasks in the given order. The
// tasks are assumed to be valid already.
func NewCollection(tasks ...models.Task) *Collection {
	return &Collection{tasks: slices.Clone(tasks)}
}

// Len returns the number of tasks.
func (c *Collection) Len() int { return len(c.tasks) }

// Tasks returns a copy of the tasks in collection order.
func (c *Collection) Tasks() []models.Task {
	return slices.Clone(c.tasks)
}

// Add validates fields and appends the resulting task.
func (c *Collection) Add(fields []string, origin Origin) error {
	return c.Insert(len(c.tasks), fields, origin)
}

// Insert validates fields and places the resulting task at index at, clamped
// to the collection bounds. The collection is left untouched on failure; a
// *FieldCountError is returned for records without eight fields.
func (c *Collection) Insert(at int, fields []string, origin Origin) error {
	task, err := ParseTask(fields, origin)
	if err != nil {
		return err
	}
	if c.indexOf(task.ID) >= 0 {
		return fmt.Errorf("adding task %d: %w", task.ID, ErrDuplicateID)
	}
	c.insertAt(at, task)
	return nil
}

func (c *Collection) insertAt(at int, task models.Task) {
	at = max(0, min(at, len(c.tasks)))
	c.tasks = slices.Insert(c.tasks, at, task)
}

// Remove deletes the first task with the given id and reports whether one
// was found.
func (c *Collection) Remove(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.tasks = slices.Delete(c.tasks, i, i+1)
	return true
}

// EditField overwrites one field of the task with the given id. The whole
// record is re-validated, so an edit that breaks a record invariant is
// rejected and the task keeps its position and previous values.
func (c *Collection) EditField(id int, field models.Field, value string) error {
	if field == models.FieldID {
		return ErrIDImmutable
	}
	if !field.Valid() {
		return fmt.Errorf("editing task %d: unknown field %d", id, field)
	}
	i := c.indexOf(id)
	if i < 0 {
		return &NotFoundError{Field: models.FieldID, Value: strconv.Itoa(id)}
	}

	fields := c.tasks[i].HumanFields()
	fields[field] = value
	return c.replace(i, fields)
}

// EditWhole replaces every field except the id of the task with the given
// id. fields holds the seven non-id values in record order.
func (c *Collection) EditWhole(id int, fields []string) error {
	if len(fields) != models.FieldCount-1 {
		return &FieldCountError{Got: len(fields) + 1, Want: models.FieldCount}
	}
	i := c.indexOf(id)
	if i < 0 {
		return &NotFoundError{Field: models.FieldID, Value: strconv.Itoa(id)}
	}
	return c.replace(i, append([]string{strconv.Itoa(id)}, fields...))
}

func (c *Collection) replace(i int, fields []string) error {
	task, err := ParseTask(fields, OriginUser)
	if err != nil {
		return err
	}
	c.tasks[i] = task
	return nil
}

// Filter returns a new collection with copies of the tasks whose field
// matches value. Date fields compare for equality when exact is set and
// "on or after" otherwise; the status field matches when the task's code
// is contained in value, a set of codes; other fields compare for equality.
func (c *Collection) Filter(field models.Field, value string, exact bool) *Collection {
	out := &Collection{}
	for _, t := range c.tasks {
		if matches(field, t.Value(field), value, exact) {
			out.tasks = append(out.tasks, t)
		}
	}
	return out
}

func matches(field models.Field, have, want string, exact bool) bool {
	switch {
	case field.IsDate():
		if exact {
			return have == want
		}
		return have >= want
	case field == models.FieldStatus:
		return have != "" && strings.Contains(want, have)
	default:
		return have == want
	}
}

// FindFirst returns the first task whose field equals value.
func (c *Collection) FindFirst(field models.Field, value string) (models.Task, error) {
	for _, t := range c.tasks {
		if t.Value(field) == value {
			return t, nil
		}
	}
	return models.Task{}, &NotFoundError{Field: field, Value: value}
}

// Copy returns an independent collection with the same tasks.
func (c *Collection) Copy() *Collection {
	return NewCollection(c.tasks...)
}

// Sort orders the collection in place with the shell sort engine.
func (c *Collection) Sort(keys SortKeys, maxSteps int) {
	ShellSortSteps(c.tasks, keys, maxSteps)
}

func (c *Collection) indexOf(id int) int {
	return slices.IndexFunc(c.tasks, func(t models.Task) bool { return t.ID == id })
}

// StatusSet joins codes into the set form accepted by Filter on the status
// field.
func StatusSet(codes ...models.StatusCode) string {
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(string(c))
	}
	return b.String()
}

// FreeID returns the smallest positive id not used by any task in c.
func FreeID(c *Collection) int {
	used := make(map[int]struct{}, c.Len())
	for _, t := range c.tasks {
		used[t.ID] = struct{}{}
	}
	id := 1
	for {
		if _, taken := used[id]; !taken {
			return id
		}
		id++
	}
}
