package core

import (
	"errors"
	"testing"

	"github.com/valter-silva-au/tasktrack/pkg/models"
)

func TestIsLeap(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2000, true},
		{1900, false},
		{2024, true},
		{2023, false},
		{0, true},
		{2100, false},
	}
	for _, tt := range tests {
		if got := IsLeap(tt.year); got != tt.want {
			t.Errorf("IsLeap(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		origin Origin
		want   models.Date
		ok     bool
	}{
		{"entry form", "15.03.2024", OriginUser, "2024.03.15", true},
		{"canonical form from storage", "2024.03.15", OriginStored, "2024.03.15", true},
		{"canonical form from user", "2024.03.15", OriginUser, "", false},
		{"leap day", "29.02.2024", OriginUser, "2024.02.29", true},
		{"leap day in common year", "29.02.2023", OriginUser, "", false},
		{"leap day in 1900", "29.02.1900", OriginUser, "", false},
		{"year zero", "01.01.0000", OriginUser, "0000.01.01", true},
		{"day 31 in april", "31.04.2024", OriginUser, "", false},
		{"month 13", "01.13.2024", OriginUser, "", false},
		{"month 0", "01.00.2024", OriginUser, "", false},
		{"day 0", "00.01.2024", OriginUser, "", false},
		{"short day", "1.03.2024", OriginUser, "", false},
		{"short year", "01.03.24", OriginUser, "", false},
		{"signed digits", "+1.03.2024", OriginUser, "", false},
		{"wrong separator", "01-03-2024", OriginUser, "", false},
		{"extra group", "01.03.2024.1", OriginUser, "", false},
		{"empty", "", OriginStored, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw, tt.origin)
			if !tt.ok {
				var dateErr *DateError
				if !errors.As(err, &dateErr) {
					t.Fatalf("ParseDate(%q) error = %v, want *DateError", tt.raw, err)
				}
				if dateErr.Value != tt.raw {
					t.Errorf("DateError.Value = %q, want %q", dateErr.Value, tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitDate(t *testing.T) {
	y, m, d, err := SplitDate("2024.03.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2024 || m != 3 || d != 5 {
		t.Errorf("SplitDate = %d, %d, %d", y, m, d)
	}
	if _, _, _, err := SplitDate("05.03"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestParseClock(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59", "12:30"}
	for _, raw := range valid {
		got, err := ParseClock(raw)
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", raw, err)
		}
		if string(got) != raw {
			t.Errorf("ParseClock(%q) = %q", raw, got)
		}
	}

	invalid := []string{"24:00", "12:60", "9:05", "09:5", "0905", "09:05:00", "aa:bb", ""}
	for _, raw := range invalid {
		_, err := ParseClock(raw)
		var timeErr *TimeError
		if !errors.As(err, &timeErr) {
			t.Errorf("ParseClock(%q) error = %v, want *TimeError", raw, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw    string
		origin Origin
		want   models.StatusCode
		ok     bool
	}{
		{"Failed", OriginUser, models.StatusFailed, true},
		{"Received", OriginUser, models.StatusReceived, true},
		{"In progress", OriginUser, models.StatusInProgress, true},
		{"Done", OriginUser, models.StatusDone, true},
		{"Done", OriginStored, models.StatusDone, true},
		{"d", OriginStored, models.StatusDone, true},
		{"a", OriginStored, models.StatusFailed, true},
		{"d", OriginUser, "", false},
		{"done", OriginUser, "", false},
		{"e", OriginStored, "", false},
		{"", OriginStored, "", false},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.raw, tt.origin)
		if !tt.ok {
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Errorf("ParseStatus(%q, %v) error = %v, want *StatusError", tt.raw, tt.origin, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStatus(%q, %v) = %q, %v; want %q", tt.raw, tt.origin, got, err, tt.want)
		}
	}
}

func TestToggleDate(t *testing.T) {
	got, err := ToggleDate("05.03.2024")
	if err != nil || got != "2024.03.05" {
		t.Errorf("ToggleDate(entry) = %q, %v", got, err)
	}
	got, err = ToggleDate("2024.03.05")
	if err != nil || got != "05.03.2024" {
		t.Errorf("ToggleDate(canonical) = %q, %v", got, err)
	}
	if _, err := ToggleDate("31.02.2024"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestToggleStatus(t *testing.T) {
	pairs := map[string]string{"Failed": "a", "Received": "b", "In progress": "c", "Done": "d"}
	for label, code := range pairs {
		if got, err := ToggleStatus(label); err != nil || got != code {
			t.Errorf("ToggleStatus(%q) = %q, %v; want %q", label, got, err, code)
		}
		if got, err := ToggleStatus(code); err != nil || got != label {
			t.Errorf("ToggleStatus(%q) = %q, %v; want %q", code, got, err, label)
		}
	}
	if _, err := ToggleStatus("Pending"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "    ", "\t", " \t ", "\n", "\u00a0"} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false", s)
		}
	}
	for _, s := range []string{"a", " x ", "Smith", "\tx"} {
		if IsBlank(s) {
			t.Errorf("IsBlank(%q) = true", s)
		}
	}
}

func TestHasReservedText(t *testing.T) {
	for _, s := range []string{"Write|report", "|", "two\nlines", "cr\r"} {
		if !HasReservedText(s) {
			t.Errorf("HasReservedText(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Write the report", "a/b: c", "\t"} {
		if HasReservedText(s) {
			t.Errorf("HasReservedText(%q) = true", s)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"db.txt", "tasks 2024.txt", "a.b.txt"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) unexpected error: %v", p, err)
		}
	}

	invalid := []string{"", "db", "db.csv", "dir/db.txt", `dir\db.txt`, "c:db.txt", "db?.txt", `"db".txt`, "a|b.txt", "<db>.txt", "*.txt"}
	for _, p := range invalid {
		var pathErr *PathError
		if err := ValidatePath(p); !errors.As(err, &pathErr) {
			t.Errorf("ValidatePath(%q) error = %v, want *PathError", p, err)
		}
	}
}
