package core

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// Origin tells the validators where a raw value came from. Stored values may
// already be in canonical form; values typed by the user may not.
type Origin int

const (
	// OriginStored accepts both entry and canonical encodings.
	OriginStored Origin = iota
	// OriginUser accepts entry encodings only, so status codes typed by a
	// user can never collide with the storage encoding.
	OriginUser
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in month (1-12) of year.
func DaysIn(month, year int) int {
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// ParseDate validates raw and returns it in canonical form. It accepts
// DD.MM.YYYY, and YYYY.MM.DD as well when origin is OriginStored.
func ParseDate(raw string, origin Origin) (models.Date, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", &DateError{Value: raw}
	}

	day, month, year := parts[0], parts[1], parts[2]
	if len(parts[0]) == 4 && origin == OriginStored {
		year, day = parts[0], parts[2]
	}

	d, okD := fixedDigits(day, 2)
	m, okM := fixedDigits(month, 2)
	y, okY := fixedDigits(year, 4)
	if !okD || !okM || !okY {
		return "", &DateError{Value: raw}
	}
	if m < 1 || m > 12 || d < 1 || d > DaysIn(m, y) {
		return "", &DateError{Value: raw}
	}

	return FormatDate(y, m, d), nil
}

// FormatDate builds a canonical date from its components.
func FormatDate(year, month, day int) models.Date {
	return models.Date(fmt.Sprintf("%04d.%02d.%02d", year, month, day))
}

// SplitDate returns the numeric components of a canonical date.
func SplitDate(d models.Date) (year, month, day int, err error) {
	parts := strings.Split(string(d), ".")
	if len(parts) != 3 {
		return 0, 0, 0, &DateError{Value: string(d)}
	}
	var ok [3]bool
	year, ok[0] = fixedDigits(parts[0], 4)
	month, ok[1] = fixedDigits(parts[1], 2)
	day, ok[2] = fixedDigits(parts[2], 2)
	if !ok[0] || !ok[1] || !ok[2] {
		return 0, 0, 0, &DateError{Value: string(d)}
	}
	return year, month, day, nil
}

// ParseClock validates an HH:MM time of day.
func ParseClock(raw string) (models.Clock, error) {
	hh, mm, found := strings.Cut(raw, ":")
	if !found {
		return "", &TimeError{Value: raw}
	}
	h, okH := fixedDigits(hh, 2)
	m, okM := fixedDigits(mm, 2)
	if !okH || !okM || h > 23 || m > 59 {
		return "", &TimeError{Value: raw}
	}
	return models.Clock(raw), nil
}

// ParseStatus validates raw and returns its storage code. Stored values may be
// codes or labels; user input must be a label.
func ParseStatus(raw string, origin Origin) (models.StatusCode, error) {
	if code := models.StatusLabel(raw).Code(); code != "" {
		return code, nil
	}
	if origin == OriginStored && models.StatusCode(raw).Valid() {
		return models.StatusCode(raw), nil
	}
	return "", &StatusError{Value: raw}
}

// ToggleDate converts a valid date between its two encodings.
func ToggleDate(raw string) (string, error) {
	if _, err := ParseDate(raw, OriginStored); err != nil {
		return "", err
	}
	return string(models.HumanDate(raw).Canonical()), nil
}

// ToggleStatus maps a status label to its code and a code to its label.
func ToggleStatus(raw string) (string, error) {
	if code := models.StatusLabel(raw).Code(); code != "" {
		return string(code), nil
	}
	if label := models.StatusCode(raw).Label(); label != "" {
		return string(label), nil
	}
	return "", &StatusError{Value: raw}
}

// IsBlank reports whether s is empty or made of whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// reservedTextChars may not appear in free text: the field separator and
// line breaks would split the stored line.
const reservedTextChars = "|\r\n"

// HasReservedText reports whether s contains a character that cannot be
// stored in a task file field.
func HasReservedText(s string) bool {
	return strings.ContainsAny(s, reservedTextChars)
}

const reservedPathChars = `/\:*?"|<>`

// ValidatePath accepts bare .txt file names only, which keeps task files
// inside the configured data directory.
func ValidatePath(path string) error {
	if path == "" || strings.ContainsAny(path, reservedPathChars) {
		return &PathError{Value: path}
	}
	if filepath.Ext(path) != ".txt" {
		return &PathError{Value: path}
	}
	return nil
}

// fixedDigits parses s as an unsigned decimal of exactly width digits.
func fixedDigits(s string, width int) (int, bool) {
	if len(s) != width {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
