package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yomikata/yomikata/internal/analyzer"
	"github.com/yomikata/yomikata/internal/dict"
	"github.com/yomikata/yomikata/internal/selection"
	"github.com/yomikata/yomikata/internal/tagger"
	"github.com/yomikata/yomikata/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewReader ViewType = iota
	ViewHistory
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	Icon     string
	View     ViewType
	Shortcut string
}

// AppModel is the main TUI model
type AppModel struct {
	lifecycle *tagger.Lifecycle

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	readerView  views.ReaderModel
	historyView views.HistoryModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application. cache may be nil when caching is
// disabled.
func NewApp(lifecycle *tagger.Lifecycle, an *analyzer.Analyzer, ctrl *selection.Controller, cache *dict.Cache) AppModel {
	menuItems := []MenuItem{
		{Label: "Reader", Icon: "読", View: ViewReader, Shortcut: "1"},
		{Label: "History", Icon: "歴", View: ViewHistory, Shortcut: "2"},
	}

	return AppModel{
		lifecycle:    lifecycle,
		sidebarWidth: 16,
		currentView:  ViewReader,
		menuItems:    menuItems,

		readerView:  views.NewReaderModel(an, ctrl),
		historyView: views.NewHistoryModel(cache),
	}
}

// Init starts the asynchronous tagger load alongside the input blink.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTagger())
}

// loadTagger builds the tagger dictionary off the UI loop.
func (m AppModel) loadTagger() tea.Cmd {
	lifecycle := m.lifecycle
	return func() tea.Msg {
		err := lifecycle.Load(context.Background())
		return views.TaggerLoadedMsg{Err: err}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "1":
			m.currentView = ViewReader
			m.selectedMenu = 0
			m.sidebarActive = false
			return m, nil
		case "2":
			m.currentView = ViewHistory
			m.selectedMenu = 1
			m.sidebarActive = false
			return m, m.historyView.Refresh()
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
				return m, nil
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
				return m, nil
			case "enter", "l", "right":
				m.currentView = m.menuItems[m.selectedMenu].View
				m.sidebarActive = false
				if m.currentView == ViewHistory {
					return m, m.historyView.Refresh()
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.readerView.SetSize(contentWidth, contentHeight)
		m.historyView.SetSize(contentWidth, contentHeight)

		return m, nil

	case views.TaggerLoadedMsg, views.SelectionUpdatedMsg:
		// Reader state changes apply regardless of the visible view.
		var cmd tea.Cmd
		m.readerView, cmd = m.readerView.Update(msg)
		return m, cmd

	case views.HistoryLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	}

	// Delegate to active view if not in sidebar mode
	if !m.sidebarActive {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewReader:
			m.readerView, cmd = m.readerView.Update(msg)
		case ViewHistory:
			m.historyView, cmd = m.historyView.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewReader:
		content = m.readerView.View()
	case ViewHistory:
		content = m.historyView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	title := SidebarTitleStyle.Render(" 読み方 ")
	items = append(items, title)
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	// Spacer
	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	help := SidebarHelpStyle.Render("? Help  q Quit")
	items = append(items, help)

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("yomikata - Japanese sentence reader") + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += keyStyle.Render("1-2") + descStyle.Render("Switch views") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Toggle sidebar focus") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += sectionStyle.Render("Reader View") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Analyze sentence") + "\n"
	helpText += keyStyle.Render("←/→") + descStyle.Render("Select word") + "\n"
	helpText += keyStyle.Render("c") + descStyle.Render("Clear selection") + "\n"
	helpText += keyStyle.Render("y") + descStyle.Render("Copy definition") + "\n"

	helpText += sectionStyle.Render("History View") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Navigate lookups") + "\n"
	helpText += keyStyle.Render("r") + descStyle.Render("Refresh") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
