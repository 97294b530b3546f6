package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackcanvas/stackcanvas/pkg/history"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// historyListModel is the bubbletea model for interactive history browsing.
type historyListModel struct {
	Entries  []history.Entry
	Cursor   int
	Selected *history.Entry
	Height   int
	Offset   int
}

func newHistoryListModel(entries []history.Entry) historyListModel {
	return historyListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m historyListModel) Init() tea.Cmd {
	return nil
}

func (m historyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Entries[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m historyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Stack History"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ restore  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := ""
		if e.Mocked {
			status = " " + StyleWarning.Render("mocked")
		}

		meta := fmt.Sprintf("%d nodes · %s", e.Graph.NodeCount(), formatRelativeTime(e.CreatedAt))
		line := fmt.Sprintf("%s%-40.40s  %s%s", cursor, e.Label, listDimStyle.Render(meta), status)

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// selectHistoryEntry runs the interactive browser and returns the chosen
// entry, or nil when the user quit without selecting.
func selectHistoryEntry(entries []history.Entry) (*history.Entry, error) {
	p := tea.NewProgram(newHistoryListModel(entries))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("history browser: %w", err)
	}
	m, ok := final.(historyListModel)
	if !ok {
		return nil, nil
	}
	return m.Selected, nil
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
