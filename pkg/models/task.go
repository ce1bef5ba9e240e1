package models

import (
	"strconv"
	"strings"
)

// Field addresses one of the eight values of a task record.
type Field int

const (
	FieldID Field = iota
	FieldReceivedDate
	FieldReceivedTime
	FieldDueDate
	FieldDueTime
	FieldExecutor
	FieldDescription
	FieldStatus
)

// FieldCount is the fixed arity of a task record.
const FieldCount = 8

var fieldNames = [FieldCount]string{
	"id", "received date", "received time", "due date",
	"due time", "executor", "description", "status",
}

func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Valid reports whether f addresses an existing record field.
func (f Field) Valid() bool {
	return f >= FieldID && int(f) < FieldCount
}

// IsDate reports whether the field holds a calendar date.
func (f Field) IsDate() bool {
	return f == FieldReceivedDate || f == FieldDueDate
}

// Date is a calendar date in canonical, sortable YYYY.MM.DD form.
type Date string

// HumanDate is a calendar date in the DD.MM.YYYY entry form.
type HumanDate string

// Human returns the entry form of d.
func (d Date) Human() HumanDate {
	return HumanDate(swapDateGroups(string(d)))
}

// Canonical returns the sortable form of h.
func (h HumanDate) Canonical() Date {
	return Date(swapDateGroups(string(h)))
}

// swapDateGroups exchanges the first and last dot-separated groups.
func swapDateGroups(s string) string {
	first := strings.Index(s, ".")
	last := strings.LastIndex(s, ".")
	if first < 0 || first == last {
		return s
	}
	return s[last+1:] + s[first:last+1] + s[:first]
}

// Clock is a time of day in HH:MM form. Zero-padded values sort lexically.
type Clock string

// StatusCode is the single-letter storage encoding of a task status.
type StatusCode string

const (
	StatusFailed     StatusCode = "a"
	StatusReceived   StatusCode = "b"
	StatusInProgress StatusCode = "c"
	StatusDone       StatusCode = "d"
)

// StatusLabel is the human-readable name of a task status.
type StatusLabel string

const (
	LabelFailed     StatusLabel = "Failed"
	LabelReceived   StatusLabel = "Received"
	LabelInProgress StatusLabel = "In progress"
	LabelDone       StatusLabel = "Done"
)

// AllStatuses lists every status code in sort order.
var AllStatuses = []StatusCode{StatusFailed, StatusReceived, StatusInProgress, StatusDone}

var codeLabels = map[StatusCode]StatusLabel{
	StatusFailed:     LabelFailed,
	StatusReceived:   LabelReceived,
	StatusInProgress: LabelInProgress,
	StatusDone:       LabelDone,
}

var labelCodes = map[StatusLabel]StatusCode{
	LabelFailed:     StatusFailed,
	LabelReceived:   StatusReceived,
	LabelInProgress: StatusInProgress,
	LabelDone:       StatusDone,
}

// Label returns the human-readable name for c, or "" for an unknown code.
func (c StatusCode) Label() StatusLabel {
	return codeLabels[c]
}

// Valid reports whether c is one of the four known codes.
func (c StatusCode) Valid() bool {
	_, ok := codeLabels[c]
	return ok
}

// Code returns the storage encoding for l, or "" for an unknown label.
func (l StatusLabel) Code() StatusCode {
	return labelCodes[l]
}

// Valid reports whether l is one of the four known labels.
func (l StatusLabel) Valid() bool {
	_, ok := labelCodes[l]
	return ok
}

// Task is a single tracked unit of work. Dates and status are held in their
// canonical encodings; use HumanFields for presentation.
type Task struct {
	ID          int
	Received    Date
	ReceivedAt  Clock
	Due         Date
	DueAt       Clock
	Executor    string
	Description string
	Status      StatusCode
}

// Value returns the canonical string held in field f.
func (t Task) Value(f Field) string {
	switch f {
	case FieldID:
		return strconv.Itoa(t.ID)
	case FieldReceivedDate:
		return string(t.Received)
	case FieldReceivedTime:
		return string(t.ReceivedAt)
	case FieldDueDate:
		return string(t.Due)
	case FieldDueTime:
		return string(t.DueAt)
	case FieldExecutor:
		return t.Executor
	case FieldDescription:
		return t.Description
	case FieldStatus:
		return string(t.Status)
	}
	return ""
}

// HumanFields returns all eight fields with dates and status in entry form.
func (t Task) HumanFields() []string {
	return []string{
		strconv.Itoa(t.ID),
		string(t.Received.Human()),
		string(t.ReceivedAt),
		string(t.Due.Human()),
		string(t.DueAt),
		t.Executor,
		t.Description,
		string(t.Status.Label()),
	}
}
