package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-territory/internal/core"
)

// playerKeys holds the movement bindings of one player slot.
type playerKeys struct {
	id   core.PlayerID
	name string
	dirs [4]key.Binding // left, right, up, down
}

// KeyMap translates key messages into per-player actions.
// Platform keys (pause, restart, back, quit) are reported for core.NoPlayer.
type KeyMap struct {
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Copy       key.Binding
	Help       key.Binding

	players []playerKeys
}

var directionActions = [4]core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

// NewKeyMap builds bindings for the given players on top of the platform keys.
func NewKeyMap(players []core.PlayerInfo) KeyMap {
	km := KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy screen"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "controls"),
		),
	}

	for _, p := range players {
		pk := playerKeys{id: p.ID, name: p.Name}
		for i, k := range p.Keys {
			if k == "" {
				pk.dirs[i] = key.NewBinding(key.WithDisabled())
				continue
			}
			pk.dirs[i] = key.NewBinding(
				key.WithKeys(k),
				key.WithHelp(k, strings.ToLower(directionActions[i].String())),
			)
		}
		km.players = append(km.players, pk)
	}

	return km
}

// Map returns the player and action for a key message.
// Keys that are not bound return core.ActionNone.
func (km KeyMap) Map(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.NoPlayer, core.ActionQuit
	case key.Matches(msg, km.Pause):
		return core.NoPlayer, core.ActionPause
	case key.Matches(msg, km.Restart):
		return core.NoPlayer, core.ActionRestart
	case key.Matches(msg, km.Back):
		return core.NoPlayer, core.ActionBack
	}

	for _, p := range km.players {
		for i, b := range p.dirs {
			if key.Matches(msg, b) {
				return p.id, directionActions[i]
			}
		}
	}
	return core.NoPlayer, core.ActionNone
}

// ShortHelp returns key bindings for the short help view.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Pause, km.Restart, km.Back, km.Quit, km.Help}
}

// FullHelp returns key bindings for the full help view: one column per player
// followed by the platform keys.
func (km KeyMap) FullHelp() [][]key.Binding {
	groups := make([][]key.Binding, 0, len(km.players)+1)
	for _, p := range km.players {
		header := key.NewBinding(key.WithKeys(p.name), key.WithHelp(p.name, ""))
		groups = append(groups, append([]key.Binding{header}, p.dirs[:]...))
	}
	groups = append(groups, []key.Binding{km.Pause, km.Restart, km.Screenshot, km.Copy, km.Back, km.Quit})
	return groups
}
