package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/match"
	"github.com/vovakirdan/tui-territory/internal/registry"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

// footerHeight is the number of rows below the game screen used for help.
const footerHeight = 1

// Options tweaks a Model.
type Options struct {
	Logger *log.Logger

	// Clipboard enables the copy-screen key. Off for SSH sessions, where the
	// clipboard would be the server's.
	Clipboard bool

	// Renderer styles the output. Nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for running a hot-seat match.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	opts    Options
	logger  *log.Logger
	palette *Palette

	loop     uint64
	keys     KeyMap
	help     help.Model
	frame    core.MultiInputFrame
	state    core.GameState
	status   string
	quitting bool
	back     bool

	matchID string
	started time.Time
	tick    uint64
	saved   bool
}

// NewModel resets game and creates a model around it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultTickInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}

	m := Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		store:   store,
		config:  cfg,
		opts:    opts,
		logger:  logger,
		palette: NewPalette(opts.Renderer),
		loop:    nextLoop(),
		keys:    NewKeyMap(game.Players()),
		help:    help.New(),
		frame:   core.NewMultiInputFrame(),
		state:   game.State(),
	}
	m.help.Width = cfg.ScreenW
	m.beginMatch()
	return m, nil
}

func (m *Model) beginMatch() {
	m.matchID = match.NewID()
	m.started = time.Now()
	m.tick = 0
	m.saved = false
	m.logger.Info("match started", "game", m.game.ID(), "match", m.matchID[:8])
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy) && m.opts.Clipboard:
		m.copyScreen()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	player, action := m.keys.Map(msg)
	switch action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.finish()
		m.back = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	}

	m.frame.Add(player, action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.state.GameOver
	result := m.game.Step(m.frame)
	m.frame.Clear()
	m.state = result.State
	m.tick = result.Tick

	if wasOver && !m.state.GameOver {
		m.beginMatch()
	}
	if m.state.GameOver && !m.saved {
		m.save(match.EndReasonCompleted)
	}

	return m, tickCmd(m.config.TickInterval, m.loop)
}

// finish records an unfinished match when the player leaves mid-game.
func (m *Model) finish() {
	if !m.saved && m.tick > 0 {
		m.save(match.EndReasonCancelled)
	}
}

func (m *Model) save(reason match.EndReason) {
	m.saved = true
	result := match.BuildResult(m.matchID, m.game, reason, m.tick, m.started)
	m.logger.Info("match ended",
		"match", m.matchID[:8],
		"reason", reason,
		"ticks", m.tick,
		"winner", result.WinnerName(),
	)

	if m.store == nil {
		return
	}
	if err := m.store.SaveMatchResult(result); err != nil {
		m.logger.Error("could not save result", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed: no home directory"
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
	m.logger.Debug("screenshot saved", "path", path)
}

// copyScreen puts the current screen on the system clipboard as plain text.
func (m *Model) copyScreen() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "screen copied"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	rendered := m.palette.Render(m.screen)

	if m.help.ShowAll {
		// Full help takes several rows; cut the field from the bottom to fit.
		helpView := m.help.View(m.keys)
		lines := strings.Split(rendered, "\n")
		keep := len(lines) + footerHeight - (strings.Count(helpView, "\n") + 1)
		lines = lines[:core.Clamp(keep, 0, len(lines))]
		return strings.Join(append(lines, helpView), "\n")
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.palette.Muted(m.status)
	}
	return rendered + "\n" + footer
}

// WentBack reports whether the player left with the back key.
func (m Model) WentBack() bool {
	return m.back
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a Bubble Tea program for game.
// Returns true when the player pressed back rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model, err := NewModel(game, store, cfg, opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.WentBack(), nil
	}
	return false, nil
}
