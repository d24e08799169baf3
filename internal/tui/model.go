package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mosaic-reader/internal/library"
	"mosaic-reader/internal/theme"
)

const (
	headerHeight = 3
	footerHeight = 2
	tocWidth     = 28

	progressKeyPrefix = "progress:"
)

// Screen identifies the active top-level view.
type Screen int

const (
	ScreenLibrary Screen = iota
	ScreenReader
	ScreenSettings
)

// themeSyncMsg drives the periodic reconciliation of the model's style
// bundle with the theme runtime, which may repaint from an oracle
// notification between frames.
type themeSyncMsg struct{}

// ThemeSyncInterval returns the cadence at which the model re-reads the
// runtime's effective theme.
func ThemeSyncInterval() time.Duration { return 500 * time.Millisecond }

// Model is the reader application state: library shelf, reader viewport with
// table of contents, and settings.
type Model struct {
	runtime  *theme.Runtime
	catalog  *library.Catalog
	store    theme.Store
	renderer *lipgloss.Renderer

	width  int
	height int

	screen    Screen
	effective theme.Effective
	styles    theme.Styles

	books   []library.Book
	cursor  int
	loadErr string

	book      library.Book
	chapter   int
	showTOC   bool
	tocCursor int
	viewport  viewport.Model

	status string
}

// New constructs the application model. The runtime must already be attached;
// the model adopts its effective theme without recomputing it.
func New(runtime *theme.Runtime, catalog *library.Catalog, store theme.Store, renderer *lipgloss.Renderer, width, height int) Model {
	m := Model{
		runtime:   runtime,
		catalog:   catalog,
		store:     store,
		renderer:  renderer,
		width:     width,
		height:    height,
		screen:    ScreenLibrary,
		effective: runtime.Effective(),
	}
	m.styles = theme.NewStyles(renderer, m.effective)
	m.viewport = viewport.New(width, max(height-headerHeight-footerHeight, 1))

	books, err := catalog.Books()
	if err != nil {
		m.loadErr = err.Error()
	}
	m.books = books
	return m
}

// Init schedules the theme sync tick.
func (m Model) Init() tea.Cmd {
	return themeSyncCmd()
}

func themeSyncCmd() tea.Cmd {
	return tea.Tick(ThemeSyncInterval(), func(time.Time) tea.Msg {
		return themeSyncMsg{}
	})
}

// Update advances model state in response to events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case themeSyncMsg:
		if eff := m.runtime.Effective(); eff != m.effective {
			m.effective = eff
			m.styles = theme.NewStyles(m.renderer, eff)
		}
		return m, themeSyncCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == ScreenReader && !m.showTOC {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.runtime.Close()
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenLibrary:
		return m.handleLibraryKey(key)
	case ScreenReader:
		return m.handleReaderKey(msg, key)
	case ScreenSettings:
		return m.handleSettingsKey(key)
	}
	return m, nil
}

func (m Model) handleLibraryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.books)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.books) {
			m.openBook(m.books[m.cursor])
		}
	case "s":
		m.screen = ScreenSettings
		m.status = ""
	}
	return m, nil
}

func (m Model) handleReaderKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	if m.showTOC {
		switch key {
		case "up", "k":
			if m.tocCursor > 0 {
				m.tocCursor--
			}
		case "down", "j":
			if m.tocCursor < len(m.book.Chapters)-1 {
				m.tocCursor++
			}
		case "enter":
			m.gotoChapter(m.tocCursor)
			m.showTOC = false
		case "t", "esc":
			m.showTOC = false
		}
		return m, nil
	}

	switch key {
	case "t":
		m.showTOC = true
		m.tocCursor = m.chapter
		return m, nil
	case "left", "h":
		m.gotoChapter(m.chapter - 1)
		return m, nil
	case "right", "l":
		m.gotoChapter(m.chapter + 1)
		return m, nil
	case "esc":
		m.saveProgress()
		m.screen = ScreenLibrary
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", " ":
		next := nextChoice(m.runtime.Choice())
		if err := m.runtime.SetChoice(next); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.effective = m.runtime.Effective()
		m.styles = theme.NewStyles(m.renderer, m.effective)
		m.status = fmt.Sprintf("theme set to %s", next)
	case "esc":
		m.screen = ScreenLibrary
		m.status = ""
	}
	return m, nil
}

func nextChoice(c theme.Choice) theme.Choice {
	switch c {
	case theme.ChoiceLight:
		return theme.ChoiceDark
	case theme.ChoiceDark:
		return theme.ChoiceSystem
	default:
		return theme.ChoiceLight
	}
}

func (m *Model) openBook(b library.Book) {
	m.book = b
	m.screen = ScreenReader
	m.showTOC = false
	m.chapter = m.loadProgress(b)
	m.resizeViewport()
	m.viewport.SetContent(b.ChapterText(m.chapter))
	m.viewport.GotoTop()
}

func (m *Model) gotoChapter(i int) {
	if i < 0 || i >= len(m.book.Chapters) {
		return
	}
	m.chapter = i
	m.viewport.SetContent(m.book.ChapterText(i))
	m.viewport.GotoTop()
	m.saveProgress()
}

func (m *Model) loadProgress(b library.Book) int {
	if m.store == nil {
		return 0
	}
	raw, ok := m.store.Get(progressKeyPrefix + b.ID)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(b.Chapters) {
		return 0
	}
	return i
}

func (m *Model) saveProgress() {
	if m.store == nil || m.book.ID == "" {
		return
	}
	_ = m.store.Set(progressKeyPrefix+m.book.ID, strconv.Itoa(m.chapter))
}

func (m *Model) resizeViewport() {
	w := m.width
	if m.showTOC {
		w = max(m.width-tocWidth, 1)
	}
	m.viewport.Width = max(w, 1)
	m.viewport.Height = max(m.height-headerHeight-footerHeight, 1)
}

// View renders header, active screen body, and the status/help footer.
func (m Model) View() string {
	return strings.Join([]string{
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderHeader() string {
	title := "MOSAIC READER"
	switch m.screen {
	case ScreenReader:
		title = fmt.Sprintf("%s — %s", m.book.Title, m.book.Author)
	case ScreenSettings:
		title = "SETTINGS"
	}
	return m.styles.Header.Width(max(m.width, 1)).Render(title)
}

func (m Model) renderBody() string {
	switch m.screen {
	case ScreenReader:
		return m.renderReader()
	case ScreenSettings:
		return m.renderSettings()
	default:
		return m.renderLibrary()
	}
}

func (m Model) renderLibrary() string {
	if m.loadErr != "" {
		return m.styles.Warning.Render("library unavailable: " + m.loadErr)
	}
	if len(m.books) == 0 {
		return m.styles.Item.Render("shelf is empty")
	}

	lines := make([]string, 0, len(m.books))
	for i, b := range m.books {
		entry := fmt.Sprintf("%s — %s", b.Title, b.Author)
		if i == m.cursor {
			lines = append(lines, m.styles.Selected.Render(entry))
		} else {
			lines = append(lines, m.styles.Item.Render(entry))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReader() string {
	body := m.styles.Body.Render(m.viewport.View())
	if !m.showTOC {
		return body
	}

	lines := make([]string, 0, len(m.book.Chapters)+1)
	lines = append(lines, m.styles.Title.Render("Contents"))
	for i, ch := range m.book.Chapters {
		entry := ch.Title
		if i == m.tocCursor {
			lines = append(lines, m.styles.Selected.Render(entry))
		} else {
			lines = append(lines, m.styles.TOCItem.Render(entry))
		}
	}
	toc := m.styles.TOC.Width(tocWidth - 2).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, body, toc)
}

func (m Model) renderSettings() string {
	lines := []string{
		m.styles.Title.Render("Appearance"),
		m.styles.Item.Render(fmt.Sprintf("theme choice:    %s", m.runtime.Choice())),
		m.styles.Item.Render(fmt.Sprintf("effective theme: %s", m.runtime.Effective())),
		"",
		m.styles.Help.Render("enter/space cycles light > dark > system"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var help string
	switch m.screen {
	case ScreenReader:
		help = "t contents · ←/→ chapter · esc shelf · q quit"
	case ScreenSettings:
		help = "enter cycle theme · esc shelf · q quit"
	default:
		help = "↑/↓ move · enter open · s settings · q quit"
	}
	if m.status != "" {
		return m.styles.Status.Render(m.status) + "\n" + m.styles.Help.Render(help)
	}
	return "\n" + m.styles.Help.Render(help)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
