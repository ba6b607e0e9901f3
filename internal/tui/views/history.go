package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yomikata/yomikata/internal/dict"
)

const historyLimit = 50

var (
	historyKeywordStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f1faee"))

	historyKeywordActiveStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(lipgloss.Color("#ffe66d")).
					Background(lipgloss.Color("#2d3436"))

	historyMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	historyDefStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc"))
)

// HistoryLoadedMsg carries refreshed history rows from the cache.
type HistoryLoadedMsg struct {
	Items []dict.HistoryItem
	Err   error
}

// HistoryModel lists recent dictionary lookups from the local cache.
type HistoryModel struct {
	cache *dict.Cache

	items    []dict.HistoryItem
	selected int
	err      error

	width  int
	height int
}

// NewHistoryModel creates the history view. A nil cache leaves the view
// empty with a hint that caching is disabled.
func NewHistoryModel(cache *dict.Cache) HistoryModel {
	return HistoryModel{cache: cache}
}

// SetSize updates the view dimensions.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh reloads the history rows asynchronously.
func (m HistoryModel) Refresh() tea.Cmd {
	cache := m.cache
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := cache.Recent(historyLimit)
		return HistoryLoadedMsg{Items: items, Err: err}
	}
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.items)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "r":
			return m, m.Refresh()
		}

	case HistoryLoadedMsg:
		m.items = msg.Items
		m.err = msg.Err
		if m.selected >= len(m.items) {
			m.selected = 0
		}
	}

	return m, nil
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.cache == nil {
		return helpStyle.Render("Lookup cache is disabled; no history to show.")
	}
	if m.err != nil {
		return errorStyle.Render("Could not load history: " + m.err.Error())
	}
	if len(m.items) == 0 {
		return helpStyle.Render("No lookups yet. Look up words in the Reader view first.")
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Recent lookups (%d)", len(m.items))))
	b.WriteString("\n\n")

	visible := m.height - 6
	if visible < 1 {
		visible = len(m.items)
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	for i := start; i < len(m.items) && i < start+visible; i++ {
		item := m.items[i]

		keyword := historyKeywordStyle.Render(item.Keyword)
		if i == m.selected {
			keyword = historyKeywordActiveStyle.Render(" " + item.Keyword + " ")
		}

		meta := historyMetaStyle.Render(fmt.Sprintf(
			"%s · %d hit(s)", item.LookedUpAt.Local().Format(time.DateOnly), item.HitCount,
		))

		line := keyword + "  " + meta
		if def := firstDefinition(item.Entries); def != "" {
			line += "  " + historyDefStyle.Render(def)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: navigate • r: refresh"))

	return b.String()
}

func firstDefinition(entries []dict.Entry) string {
	if len(entries) == 0 || len(entries[0].Senses) == 0 {
		return ""
	}
	defs := entries[0].Senses[0].EnglishDefinitions
	if len(defs) == 0 {
		return ""
	}
	return strings.Join(defs, "; ")
}
