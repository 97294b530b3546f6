package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/history"
)

func testEntries(n int) []history.Entry {
	entries := make([]history.Entry, n)
	for i := range entries {
		entries[i] = history.NewEntry("stack", "desc", flow.Graph{}, false)
	}
	return entries
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestHistoryListModelNavigation(t *testing.T) {
	m := newHistoryListModel(testEntries(3))

	next, _ := m.Update(keyMsg("j"))
	m = next.(historyListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(historyListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("k"))
	m = next.(historyListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, should not go negative", m.Cursor)
	}
}

func TestHistoryListModelSelect(t *testing.T) {
	entries := testEntries(2)
	m := newHistoryListModel(entries)

	next, _ := m.Update(keyMsg("j"))
	m = next.(historyListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(historyListModel)

	if m.Selected == nil {
		t.Fatal("no entry selected after enter")
	}
	if m.Selected.ID != entries[1].ID {
		t.Errorf("selected %q, want %q", m.Selected.ID, entries[1].ID)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestHistoryListModelQuitWithoutSelection(t *testing.T) {
	m := newHistoryListModel(testEntries(1))

	next, cmd := m.Update(keyMsg("q"))
	m = next.(historyListModel)

	if m.Selected != nil {
		t.Error("quit should not select an entry")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"Minutes", now.Add(-30 * time.Minute), "30m ago"},
		{"Hours", now.Add(-3 * time.Hour), "3h ago"},
		{"Days", now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}
