// Package ui is the Bubble Tea front end: the root model, the card
// materializer, and the dark/light themes.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/tobna/ai-deadlines/internal/conference"
	"github.com/tobna/ai-deadlines/internal/countdown"
	"github.com/tobna/ai-deadlines/internal/filter"
	"github.com/tobna/ai-deadlines/internal/logging"
)

// Feeds is the data source the model loads from. *fetch.Client satisfies it;
// tests substitute a stub.
type Feeds interface {
	Upcoming(ctx context.Context) ([]conference.Record, error)
	Archive(ctx context.Context) ([]conference.Record, error)
}

// Prefs is the slice of the preference store the model needs.
type Prefs interface {
	SetTheme(theme string) error
}

// archiveState distinguishes "never asked" from "asked and got nothing".
// The archive is fetched at most once per session.
type archiveState int

const (
	archiveNotLoaded archiveState = iota
	archiveLoading
	archiveLoaded
)

type focusArea int

const (
	focusCards focusArea = iota
	focusName
	focusH5
	focusTags
)

// ratingCycle is the minimum-rating selector's value sequence.
var ratingCycle = []string{"", "D", "C", "B", "A", "A*"}

// Model is the root Bubble Tea model. All state mutation happens on the
// program's event loop; the ticker registry only ever sends messages in.
type Model struct {
	feeds    Feeds
	prefs    Prefs
	registry *countdown.Registry
	theme    Theme

	upcoming []conference.Record
	archive  []conference.Record
	archived archiveState
	loaded   bool

	filters *filter.State
	visible []conference.Record
	tags    []string

	focus     focusArea
	nameInput textinput.Model
	h5Input   textinput.Model
	spin      spinner.Model
	cursor    int
	tagCursor int

	noticeTitle string
	notice      string
	fatal       bool

	lastFetch time.Time
	width     int
	height    int

	now func() time.Time
}

// NewModel builds the root model. prefs may be nil when the preference
// store is unavailable; the theme then lives for the session only.
func NewModel(feeds Feeds, prefs Prefs, registry *countdown.Registry, theme Theme) Model {
	name := textinput.New()
	name.Placeholder = "conference name"
	name.Prompt = "/"
	name.CharLimit = 64

	h5 := textinput.New()
	h5.Placeholder = "min h5"
	h5.Prompt = ""
	h5.CharLimit = 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.FilterActive

	return Model{
		feeds:     feeds,
		prefs:     prefs,
		registry:  registry,
		theme:     theme,
		filters:   filter.NewState(),
		nameInput: name,
		h5Input:   h5,
		spin:      sp,
		now:       time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadUpcoming())
}

func (m Model) loadUpcoming() tea.Cmd {
	return func() tea.Msg {
		records, err := m.feeds.Upcoming(context.Background())
		return UpcomingLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) loadArchive() tea.Cmd {
	return func() tea.Msg {
		records, err := m.feeds.Archive(context.Background())
		return ArchiveLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) saveTheme(name string) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	prefs := m.prefs
	return func() tea.Msg {
		return ThemeSavedMsg{Err: prefs.SetTheme(name)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loaded || m.archived == archiveLoading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case UpcomingLoadedMsg:
		if msg.Err != nil {
			logging.Error("upcoming load failed", "err", msg.Err)
			m.noticeTitle = "Error"
			m.notice = "Could not load upcoming conferences. Please restart to retry."
			m.fatal = true
			return m, nil
		}
		logging.Info("upcoming loaded", "records", len(msg.Records))
		m.upcoming = msg.Records
		m.loaded = true
		m.lastFetch = m.now()
		m.refresh()
		return m, nil

	case ArchiveLoadedMsg:
		m.archived = archiveLoaded
		if msg.Err != nil {
			logging.Warn("archive load failed", "err", msg.Err)
			m.archive = nil
			m.noticeTitle = "Notice"
			m.notice = "Could not load the conference archive. Past conferences are unavailable this session."
		} else {
			logging.Info("archive loaded", "records", len(msg.Records))
			m.archive = msg.Records
		}
		m.refresh()
		return m, nil

	case CountdownTickMsg:
		// Countdowns are recomputed from the clock on render; the tick
		// only has to wake the program.
		return m, nil

	case ThemeSavedMsg:
		if msg.Err != nil {
			logging.Warn("theme save failed", "err", msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from anywhere. Tickers are drained so no goroutine
	// outlives the program.
	if msg.Type == tea.KeyCtrlC || (m.focus == focusCards && msg.String() == "q") {
		m.registry.DrainAll()
		return m, tea.Quit
	}

	if m.notice != "" {
		if m.fatal {
			m.registry.DrainAll()
			return m, tea.Quit
		}
		m.notice = ""
		m.noticeTitle = ""
		return m, nil
	}

	// The find shortcut jumps to the name filter from any focus, same as
	// ctrl+F on the web page.
	if msg.Type == tea.KeyCtrlF {
		return m.focusInput(focusName), nil
	}

	switch m.focus {
	case focusName:
		return m.handleNameKey(msg)
	case focusH5:
		return m.handleH5Key(msg)
	case focusTags:
		return m.handleTagKey(msg)
	}
	return m.handleCardKey(msg)
}

func (m Model) focusInput(area focusArea) Model {
	m.focus = area
	m.nameInput.Blur()
	m.h5Input.Blur()
	switch area {
	case focusName:
		m.nameInput.Focus()
	case focusH5:
		m.h5Input.Focus()
	}
	return m
}

func (m Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "/":
		return m.focusInput(focusName), nil
	case "5":
		return m.focusInput(focusH5), nil
	case "t":
		m.focus = focusTags
	case "r":
		m.filters.MinRating = nextRating(m.filters.MinRating)
		m.refresh()
	case "p":
		m.filters.ShowPast = !m.filters.ShowPast
		cmd := m.maybeLoadArchive()
		m.refresh()
		return m, cmd
	case "a":
		m.filters.ShowApproxFuture = !m.filters.ShowApproxFuture
		m.refresh()
	case "T":
		return m.toggleTheme()
	}
	return m, nil
}

// maybeLoadArchive kicks off the one-time archive fetch when past
// conferences are first shown.
func (m *Model) maybeLoadArchive() tea.Cmd {
	if !m.filters.ShowPast || m.archived != archiveNotLoaded {
		return nil
	}
	m.archived = archiveLoading
	return tea.Batch(m.loadArchive(), m.spin.Tick)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.theme.Name == "dark" {
		m.theme = LightTheme()
	} else {
		m.theme = DarkTheme()
	}
	m.spin.Style = m.theme.FilterActive
	return m, m.saveTheme(m.theme.Name)
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.nameInput.Blur()
		m.focus = focusCards
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if m.filters.NameFilter != m.nameInput.Value() {
		m.filters.NameFilter = m.nameInput.Value()
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleH5Key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.h5Input.Blur()
		m.focus = focusCards
		return m, nil
	}
	var cmd tea.Cmd
	m.h5Input, cmd = m.h5Input.Update(msg)
	m.filters.MinH5 = parseH5(m.h5Input.Value())
	m.refresh()
	return m, cmd
}

func (m Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The tag bar is [All, tag0, tag1, ...]; index 0 is the sentinel.
	switch msg.String() {
	case "esc", "t":
		m.focus = focusCards
	case "left", "h":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "right", "l":
		if m.tagCursor < len(m.tags) {
			m.tagCursor++
		}
	case "enter", " ":
		if m.tagCursor == 0 {
			m.filters.SelectAll()
		} else if m.tagCursor <= len(m.tags) {
			m.filters.ToggleTag(m.tags[m.tagCursor-1])
		}
		m.refresh()
	}
	return m, nil
}

func nextRating(current string) string {
	for i, r := range ratingCycle {
		if r == current {
			return ratingCycle[(i+1)%len(ratingCycle)]
		}
	}
	return ""
}

func parseH5(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// refresh recomputes the visible set and rebuilds the ticker registry.
// Every previous ticker is drained first; a ticker that survived a rebuild
// would keep firing for a card that no longer exists.
func (m *Model) refresh() {
	m.registry.DrainAll()

	base := m.upcoming
	if m.filters.ShowPast && len(m.archive) > 0 {
		base = make([]conference.Record, 0, len(m.upcoming)+len(m.archive))
		base = append(base, m.upcoming...)
		base = append(base, m.archive...)
	}

	now := m.now()
	pre := filter.ApplyPreTag(base, m.filters, now)
	m.tags = filter.DeriveTags(pre)
	visible := filter.ApplyTagFilter(pre, m.filters)
	filter.SortByDeadline(visible, now)
	m.visible = visible

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.tagCursor > len(m.tags) {
		m.tagCursor = 0
	}

	for _, rec := range m.visible {
		if !rec.IsApproximateDeadline {
			m.registry.Start(rec.ID)
		}
	}
	logging.Debug("refreshed", "visible", len(m.visible), "tickers", m.registry.Active())
}

func (m Model) View() string {
	width := m.width
	if width < 20 {
		width = 100
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Width(width).Render("AI Conference Deadlines"))
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")
	b.WriteString(m.tagBar(width))
	b.WriteString("\n\n")

	switch {
	case m.notice != "":
		b.WriteString(m.modal(width))
	case !m.loaded:
		b.WriteString(m.spin.View() + " Loading conference data...")
	case len(m.visible) == 0:
		b.WriteString(m.emptyState())
	default:
		b.WriteString(m.cardList(width))
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar(width))
	return b.String()
}

func (m Model) filterBar() string {
	th := m.theme

	label := func(area focusArea, s string) string {
		if m.focus == area {
			return th.FilterActive.Render(s)
		}
		return th.FilterLabel.Render(s)
	}
	onOff := func(on bool) string {
		if on {
			return th.FilterActive.Render("on")
		}
		return th.FilterLabel.Render("off")
	}

	rating := m.filters.MinRating
	if rating == "" {
		rating = "any"
	}

	parts := []string{
		label(focusName, "name ") + m.nameInput.View(),
		label(focusH5, "h5 ") + m.h5Input.View(),
		th.FilterLabel.Render("rating ") + th.FilterActive.Render(rating),
		th.FilterLabel.Render("past ") + onOff(m.filters.ShowPast),
		th.FilterLabel.Render("approx ") + onOff(m.filters.ShowApproxFuture),
	}
	return strings.Join(parts, th.FilterLabel.Render("  |  "))
}

func (m Model) tagBar(width int) string {
	th := m.theme

	button := func(idx int, tag string, selected bool) string {
		style := th.TagButton
		if selected {
			style = th.TagActive
		}
		label := tag
		if m.focus == focusTags && m.tagCursor == idx {
			label = "[" + tag + "]"
		}
		return style.Render(label)
	}

	var b strings.Builder
	b.WriteString(button(0, "All Conferences", m.filters.AllSelected()))
	for i, tag := range m.tags {
		b.WriteString(button(i+1, tag, m.filters.TagSelected(tag)))
	}
	return truncate.String(b.String(), uint(width))
}

// cardList renders a window of cards around the cursor. The full set is
// rematerialized on every frame; cards hold no state.
func (m Model) cardList(width int) string {
	const cardHeight = 13
	rows := m.height - 6
	if rows < cardHeight {
		rows = cardHeight
	}
	perPage := rows / cardHeight
	if perPage < 1 {
		perPage = 1
	}

	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := start + perPage
	if end > len(m.visible) {
		end = len(m.visible)
	}

	now := m.now()
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(m.visible[i], m.theme, now, width, i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func (m Model) emptyState() string {
	return m.theme.EmptyBox.Render(
		m.theme.EmptyTitle.Render("No conferences match") + "\n" +
			m.theme.Help.Render("Adjust the filters or press p to include past deadlines."))
}

func (m Model) modal(width int) string {
	box := m.theme.ModalBox.Render(
		m.theme.ModalTitle.Render(m.noticeTitle) + "\n\n" + m.notice + "\n\n" +
			m.theme.Help.Render("press any key"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (m Model) statusBar(width int) string {
	fetched := "never"
	if !m.lastFetch.IsZero() {
		fetched = humanize.Time(m.lastFetch)
	}
	left := fmt.Sprintf("%d · %d shown · %d upcoming · %d archived · fetched %s",
		m.now().Year(), len(m.visible), len(m.upcoming), len(m.archive), fetched)
	help := "j/k move  / name  5 h5  r rating  p past  a approx  t tags  T theme  q quit"
	return m.theme.StatusBar.Width(width).Render(truncate.String(left+"   "+help, uint(width-2)))
}
