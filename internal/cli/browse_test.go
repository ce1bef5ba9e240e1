package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

func browseFixture() *core.Collection {
	return core.NewCollection(
		models.Task{ID: 1, Received: "2024.03.01", ReceivedAt: "09:00", Due: "2024.03.05", DueAt: "18:00",
			Executor: "Smith", Description: "Write the report", Status: models.StatusReceived},
		models.Task{ID: 2, Received: "2024.03.10", ReceivedAt: "10:00", Due: "2024.03.12", DueAt: "12:00",
			Executor: "Adams", Description: "Review the draft", Status: models.StatusFailed},
		models.Task{ID: 3, Received: "2024.03.02", ReceivedAt: "08:00", Due: "2024.03.04", DueAt: "08:00",
			Executor: "Jones", Description: "Call the client", Status: models.StatusDone},
	)
}

func shownIDs(m browseModel) []int {
	var ids []int
	for _, t := range m.shown.Tasks() {
		ids = append(ids, t.ID)
	}
	return ids
}

func press(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		updated, _ := m.Update(msg)
		m = updated.(browseModel)
	}
	return m
}

func TestBrowseModel_InitialOrder(t *testing.T) {
	m := newBrowseModel("db.txt", browseFixture(), 0, core.DefaultMaxGapSteps)
	if m.Init() != nil {
		t.Error("expected Init to return nil")
	}
	if got := shownIDs(m); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("initial order = %v, want file order", got)
	}
}

func TestBrowseModel_SortByExecutor(t *testing.T) {
	m := press(newBrowseModel("db.txt", browseFixture(), 0, core.DefaultMaxGapSteps), "5")
	got := shownIDs(m)
	want := []int{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	m = press(m, "r")
	got = shownIDs(m)
	want = []int{1, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reversed order = %v, want %v", got, want)
		}
	}
}

func TestBrowseModel_SecondaryKeyCycles(t *testing.T) {
	m := newBrowseModel("db.txt", browseFixture(), 0, core.DefaultMaxGapSteps)
	for i := 0; i < models.FieldCount; i++ {
		m = press(m, "s")
	}
	if m.keys.Secondary != models.FieldID {
		t.Errorf("secondary key = %v after a full cycle, want id", m.keys.Secondary)
	}
	m = press(m, "s", "R")
	if m.keys.Secondary != models.FieldReceivedDate || !m.keys.ReverseSecondary {
		t.Errorf("keys = %+v", m.keys)
	}
}

func TestBrowseModel_SourceUntouched(t *testing.T) {
	src := browseFixture()
	press(newBrowseModel("db.txt", src, 0, core.DefaultMaxGapSteps), "6", "r")
	if got := src.Tasks()[0].ID; got != 1 {
		t.Errorf("source reordered: first id = %d", got)
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newBrowseModel("db.txt", browseFixture(), 0, core.DefaultMaxGapSteps)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q did not quit", k.String())
		}
	}
}

func TestBrowseModel_IgnoresOtherMessages(t *testing.T) {
	m := newBrowseModel("db.txt", browseFixture(), 0, core.DefaultMaxGapSteps)
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil {
		t.Error("expected no command")
	}
	if got := shownIDs(updated.(browseModel)); got[0] != 1 {
		t.Errorf("order changed: %v", got)
	}
}

func TestBrowseModel_View(t *testing.T) {
	m := press(newBrowseModel("db.txt", browseFixture(), 2, core.DefaultMaxGapSteps), "3", "r")
	view := m.View()
	for _, want := range []string{"db.txt", "sorted by due date (desc), then id", "2 line(s) skipped", "Review the draft", "12.03.2024 12:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	empty := newBrowseModel("empty.txt", core.NewCollection(), 0, core.DefaultMaxGapSteps)
	if !strings.Contains(empty.View(), "No tasks.") {
		t.Errorf("expected empty message:\n%s", empty.View())
	}
}
