package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/registry"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the mode sidebar
	sidebarWidth       = 24  // Width of the mode sidebar
	maxRows            = 100 // Max rows loaded per view
)

var (
	accentColor = lipgloss.Color("229")
	borderColor = lipgloss.Color("240")
	mutedColor  = lipgloss.Color("241")
	selectColor = lipgloss.Color("57")
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.NextMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextView, k.PrevView, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("right", "l", "v"),
			key.WithHelp("right/v", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "prev view"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreView selects what the scoreboard table lists.
type scoreView int

const (
	viewTopScores scoreView = iota // best single-match territories
	viewPlayers                    // per-name aggregates
	viewRecent                     // latest matches
	viewCount
)

func (v scoreView) String() string {
	switch v {
	case viewPlayers:
		return "Players"
	case viewRecent:
		return "Recent"
	default:
		return "High Scores"
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store *storage.Store
	modes []registry.GameInfo
	stats map[string]*storage.GameStats
	mode  int
	view  scoreView

	rows  []table.Row
	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	if store != nil {
		if stats, err := store.GetAllGamesStats(); err == nil {
			m.stats = stats
		}
	}

	m.table = m.createTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// columns returns the table columns of the current view, fitted to width.
func (m ScoreboardModel) columns() []table.Column {
	tableWidth := m.width - 6
	if m.wide() {
		tableWidth -= sidebarWidth + 2
	}
	dateWidth := core.Clamp(tableWidth-44, 12, 18)

	switch m.view {
	case viewPlayers:
		return []table.Column{
			{Title: "Player", Width: 12},
			{Title: "Wins", Width: 6},
			{Title: "Games", Width: 6},
			{Title: "Best", Width: 6},
			{Title: "Kills", Width: 6},
			{Title: "Deaths", Width: 6},
		}
	case viewRecent:
		return []table.Column{
			{Title: "Date", Width: dateWidth},
			{Title: "Winner", Width: 12},
			{Title: "Ticks", Width: 7},
			{Title: "End", Width: 10},
			{Title: "Players", Width: 8},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 12},
			{Title: "Cells", Width: 8},
			{Title: "Kills", Width: 6},
			{Title: "Date", Width: dateWidth},
		}
	}
}

func (m ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // title, tabs, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(selectColor).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload queries the store for the current mode and view.
func (m *ScoreboardModel) reload() {
	m.rows = nil
	if m.store != nil && len(m.modes) > 0 {
		if rows, err := m.queryRows(m.modes[m.mode].ID); err == nil {
			m.rows = rows
		}
	}

	// Columns must change before rows so the row width matches.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) queryRows(gameID string) ([]table.Row, error) {
	var rows []table.Row

	switch m.view {
	case viewPlayers:
		records, err := m.store.Leaderboard(gameID, maxRows)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			rows = append(rows, table.Row{
				r.Name,
				fmt.Sprint(r.Wins),
				fmt.Sprint(r.Matches),
				fmt.Sprint(r.Best),
				fmt.Sprint(r.Kills),
				fmt.Sprint(r.Deaths),
			})
		}

	case viewRecent:
		results, err := m.store.RecentMatches(gameID, maxRows)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			winner := r.WinnerName()
			if winner == "" {
				winner = "draw"
			}
			rows = append(rows, table.Row{
				r.StartedAt.Local().Format("Jan 02 15:04"),
				winner,
				fmt.Sprint(r.Ticks),
				r.Reason.String(),
				fmt.Sprint(len(r.Players)),
			})
		}

	default:
		scores, err := m.store.TopScores(gameID, maxRows)
		if err != nil {
			return nil, err
		}
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Name,
				fmt.Sprint(s.Score),
				fmt.Sprint(s.Kills),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	return rows, nil
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + viewCount - 1) % viewCount
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "SCOREBOARD"
	if len(m.modes) > 0 {
		title = "SCOREBOARD - " + m.modes[m.mode].Title
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	muted := lipgloss.NewStyle().Foreground(mutedColor)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderViewTabs(), m.width))
	b.WriteString("\n\n")

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(m.renderTableContent())
	if m.wide() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderModeList(), "  ", content)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(muted.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render(m.help.View(m.keys)))
	return b.String()
}

// renderViewTabs draws the view names with the current one highlighted.
func (m ScoreboardModel) renderViewTabs() string {
	inactive := lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Background(selectColor).
		Padding(0, 1)

	tabs := make([]string, 0, viewCount)
	for v := range viewCount {
		if v == m.view {
			tabs = append(tabs, active.Render(v.String()))
		} else {
			tabs = append(tabs, inactive.Render(v.String()))
		}
	}
	return strings.Join(tabs, " ")
}

// renderModeList draws the sidebar of modes with their match counts.
func (m ScoreboardModel) renderModeList() string {
	var list strings.Builder
	list.WriteString("Modes\n")
	list.WriteString(strings.Repeat("─", sidebarWidth-4))

	for i, g := range m.modes {
		name := g.Title
		if st := m.stats[g.ID]; st != nil {
			name = fmt.Sprintf("%s (%d)", name, st.Matches)
		}
		if limit := sidebarWidth - 6; len([]rune(name)) > limit {
			name = string([]rune(name)[:limit-1]) + "…"
		}

		line := "  " + name
		if i == m.mode {
			line = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("> " + name)
		}
		list.WriteString("\n")
		list.WriteString(line)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(list.String())
}

// statsLine summarises every stored match of the current mode.
func (m ScoreboardModel) statsLine() string {
	if len(m.modes) == 0 {
		return ""
	}
	st := m.stats[m.modes[m.mode].ID]
	if st == nil {
		return ""
	}

	line := fmt.Sprintf("%d matches · best %d cells · %.0f ticks on average", st.Matches, st.HighScore, st.AvgTicks)
	if !st.LastPlayed.IsZero() {
		line += " · last played " + st.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return line
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(2, 4).
			Render("No matches recorded yet.\nFinish a match to claim a spot!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers a single line within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
