// Package views provides the individual views for the yomikata TUI.
package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yomikata/yomikata/internal/analyzer"
	"github.com/yomikata/yomikata/internal/clipboard"
	"github.com/yomikata/yomikata/internal/morph"
	"github.com/yomikata/yomikata/internal/selection"
	"github.com/yomikata/yomikata/internal/tui/bigchar"
)

var (
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	wordTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1).
			Margin(0, 1)

	wordTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 1).
				Margin(0, 1)

	furiganaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Italic(true)

	bigKanjiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(11)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	badgeCommonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#a8e6cf")).
				Padding(0, 1)

	badgeJLPTStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#a8dadc")).
			Padding(0, 1)

	posStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e63946")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	wordBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ffe66d")).
			Padding(0, 1).
			Margin(1, 0)

	entryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2).
			Margin(1, 0)
)

// TaggerLoadedMsg reports the outcome of the asynchronous tagger load.
type TaggerLoadedMsg struct {
	Err error
}

// SelectionUpdatedMsg carries an applied lookup transition from the
// selection controller into the UI.
type SelectionUpdatedMsg struct {
	Snapshot selection.Snapshot
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// ReaderModel is the sentence reader view: type a sentence, walk its
// words, see definitions for the selected word.
type ReaderModel struct {
	input    textinput.Model
	analyzer *analyzer.Analyzer
	ctrl     *selection.Controller

	analysis morph.Analysis
	selected int
	snap     selection.Snapshot
	err      error

	taggerReady bool
	taggerErr   error

	copied bool

	width  int
	height int
}

// NewReaderModel creates the reader view.
func NewReaderModel(an *analyzer.Analyzer, ctrl *selection.Controller) ReaderModel {
	ti := textinput.New()
	ti.Placeholder = "日本語の文を入力..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee"))

	return ReaderModel{
		input:    ti,
		analyzer: an,
		ctrl:     ctrl,
		selected: -1,
	}
}

// SetSize updates the view dimensions.
func (m *ReaderModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m ReaderModel) Update(msg tea.Msg) (ReaderModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.analyze()
			return m, nil
		case "left", "h":
			if len(m.analysis.Words) > 0 {
				m.selectWord(m.selected - 1)
			}
			return m, nil
		case "right", "l":
			if len(m.analysis.Words) > 0 {
				m.selectWord(m.selected + 1)
			}
			return m, nil
		case "c":
			m.ctrl.Clear()
			m.selected = -1
			m.snap = m.ctrl.Current()
			return m, nil
		case "y":
			if text := m.definitionText(); text != "" {
				if err := clipboard.Write(text); err == nil {
					m.copied = true
					return m, clearCopiedAfter(2 * time.Second)
				}
			}
			return m, nil
		}

	case TaggerLoadedMsg:
		m.taggerReady = msg.Err == nil
		m.taggerErr = msg.Err
		return m, nil

	case SelectionUpdatedMsg:
		m.snap = msg.Snapshot
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ReaderModel) analyze() {
	m.copied = false

	analysis, err := m.analyzer.Analyze(m.input.Value())
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.analysis = analysis
	m.selected = -1
	m.ctrl.Clear()
	m.snap = m.ctrl.Current()

	if len(analysis.Words) > 0 {
		m.selectWord(0)
	}
}

// selectWord moves the cursor to index (wrapping) and starts the lookup
// for that word. Older in-flight lookups are superseded, not cancelled.
func (m *ReaderModel) selectWord(index int) {
	n := len(m.analysis.Words)
	if n == 0 {
		return
	}
	index = ((index % n) + n) % n

	m.selected = index
	m.copied = false
	m.snap = m.ctrl.Select(context.Background(), m.analysis.Words[index])
}

// definitionText renders the loaded definition as plain text for the
// clipboard.
func (m ReaderModel) definitionText() string {
	if m.snap.State != selection.StateLoaded || m.snap.Entry == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.snap.Word.Surface())
	b.WriteString(" (")
	b.WriteString(morph.ToHiragana(m.snap.Word.Reading()))
	b.WriteString(")\n")
	for i, sense := range m.snap.Entry.Senses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Join(sense.EnglishDefinitions, "; "))
	}
	return b.String()
}

// View renders the reader view.
func (m ReaderModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.taggerErr != nil:
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Tagger failed to load: " + m.taggerErr.Error()))
		b.WriteString("\n")
	case !m.taggerReady:
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("Loading morphological dictionary..."))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.analysis.Words) > 0 {
		b.WriteString(m.renderWordBar())
		b.WriteString("\n")
		if m.selected >= 0 && m.selected < len(m.analysis.Words) {
			b.WriteString(m.renderSelection())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m ReaderModel) renderHelp() string {
	if len(m.analysis.Words) == 0 {
		return helpStyle.Render("Type a Japanese sentence and press Enter")
	}
	parts := []string{"←/→: select word", "c: clear"}
	if m.snap.State == selection.StateLoaded && m.snap.Entry != nil {
		parts = append(parts, "y: copy")
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// renderWordBar shows each word as a tab with furigana above it.
func (m ReaderModel) renderWordBar() string {
	var tabs []string

	for i, w := range m.analysis.Words {
		furigana := furiganaStyle.Render(morph.ToHiragana(w.Reading()))
		cell := lipgloss.JoinVertical(lipgloss.Center, furigana, w.Surface())

		if i == m.selected {
			tabs = append(tabs, wordTabActiveStyle.Render(cell))
		} else {
			tabs = append(tabs, wordTabStyle.Render(cell))
		}
	}

	nav := ""
	if len(m.analysis.Words) > 1 {
		nav = subtitleStyle.Render(fmt.Sprintf("◀ %d/%d ▶", m.selected+1, len(m.analysis.Words)))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return wordBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", nav))
}

func (m ReaderModel) renderSelection() string {
	var b strings.Builder

	word := m.analysis.Words[m.selected]

	if kanji := firstKanji(word.Surface()); kanji != "" && bigchar.IsAvailable() {
		if art := bigchar.GetCached(kanji, 24, 12); art != "" {
			b.WriteString(bigKanjiStyle.Render(art))
			b.WriteString("\n")
		}
	}

	b.WriteString(labelStyle.Render("Word:") + " " + valueStyle.Render(word.Surface()) + "\n")
	b.WriteString(labelStyle.Render("Reading:") + " " + valueStyle.Render(morph.ToHiragana(word.Reading())) + "\n")
	if bf := word.BaseForm(); bf != word.Surface() {
		b.WriteString(labelStyle.Render("Base form:") + " " + valueStyle.Render(bf) + "\n")
	}

	b.WriteString(m.renderLookup())

	return b.String()
}

func (m ReaderModel) renderLookup() string {
	switch m.snap.State {
	case selection.StateLoading:
		return "\n" + loadingStyle.Render("Looking up "+m.snap.Word.BaseForm()+"...") + "\n"

	case selection.StateFailed:
		return "\n" +
			errorStyle.Render("Lookup failed: "+m.snap.Err.Error()) + "\n" +
			helpStyle.Render("(select the word again to retry)") + "\n"

	case selection.StateLoaded:
		if m.snap.Entry == nil {
			return "\n" + helpStyle.Render("No dictionary entries found") + "\n"
		}
		return m.renderEntry()

	default:
		return ""
	}
}

func (m ReaderModel) renderEntry() string {
	entry := m.snap.Entry

	var badges []string
	if entry.IsCommon {
		badges = append(badges, badgeCommonStyle.Render("common"))
	}
	for _, level := range entry.JLPT {
		badges = append(badges, badgeJLPTStyle.Render(strings.TrimPrefix(level, "jlpt-")))
	}

	header := subtitleStyle.Render(entry.Slug)
	if len(badges) > 0 {
		header += "  " + strings.Join(badges, " ")
	}
	if m.copied {
		header += "  " + copiedStyle.Render("Copied!")
	}

	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var lines []string
	lines = append(lines, header, "")
	for i, sense := range entry.Senses {
		def := fmt.Sprintf("%d. %s", i+1, strings.Join(sense.EnglishDefinitions, "; "))
		lines = append(lines, wordWrap(def, width-6))
		if len(sense.PartsOfSpeech) > 0 {
			lines = append(lines, posStyle.Render("   "+strings.Join(sense.PartsOfSpeech, ", ")))
		}
	}

	return entryBoxStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// firstKanji returns the first CJK ideograph in s, or "".
func firstKanji(s string) string {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return string(r)
		}
	}
	return ""
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if currentWidth+w+1 > width && currentWidth > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			current.WriteString(" ")
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += w
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
