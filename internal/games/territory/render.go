package territory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

const (
	hudHeight  = 2 // status line and separator
	feedHeight = 1
	minScreenW = 24
	minScreenH = hudHeight + feedHeight + 3

	glyphNeutral = '·'
	glyphOwned   = '█'
	glyphTrail   = '░'
	glyphRoaming = '@'
	glyphDrawing = '*'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderOverlay(dst, []string{"Window too small", "Resize to continue"})
		return
	}

	g.renderHUD(dst)
	g.renderField(dst)
	g.renderFeed(dst)

	switch {
	case g.gameOver:
		g.renderResults(dst)
	case g.paused:
		g.renderOverlay(dst, []string{"Paused", "", "Press P to continue"})
	}
}

// renderHUD draws the title, tick counter and every player's score.
func (g *Game) renderHUD(dst *core.Screen) {
	x := 1
	title := g.Title()
	dst.DrawText(x, 0, title)
	x += len([]rune(title)) + 2

	if limit := g.cfg.Rules.MaxTicks; limit > 0 {
		left := fmt.Sprintf("%d left", limit-int(g.sim.Tick())) //nolint:gosec // tick never exceeds MaxTicks
		dst.DrawTextColor(x, 0, left, core.ColorGray)
		x += len(left) + 2
	}

	scores := g.sim.Scores()
	for _, p := range g.players {
		label := fmt.Sprintf("%s %d", p.Name, scores[engine.PlayerID(p.ID)])
		c := p.Color
		if g.sim.Agent(engine.PlayerID(p.ID)) == nil {
			c = core.ColorGray
		}
		dst.SetWithColor(x, 0, glyphOwned, c)
		dst.DrawTextColor(x+2, 0, label, c)
		x += len([]rune(label)) + 4
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderField draws the visible part of the field, scrolled to keep the
// first live player in view.
func (g *Game) renderField(dst *core.Screen) {
	w, h := g.sim.Size()

	cellW := 1
	if dst.Width() >= w*2 {
		cellW = 2
	}
	viewCols := min(w, dst.Width()/cellW)
	viewRows := min(h, dst.Height()-hudHeight-feedHeight)

	focus := engine.C(w/2, h/2)
	agents := g.sim.Agents()
	if len(agents) > 0 {
		focus = agents[0].Head()
	}
	offX := core.ScrollOffset(w, viewCols, focus.X)
	offY := core.ScrollOffset(h, viewRows, focus.Y)
	originX := (dst.Width() - viewCols*cellW) / 2
	view := core.NewRect(offX, offY, viewCols, viewRows)

	heads := make(map[engine.Cell]*engine.Agent, len(agents))
	trails := make(map[engine.Cell]engine.PlayerID)
	for _, a := range agents {
		heads[a.Head()] = a
		if !a.IsDrawing() {
			continue
		}
		for _, c := range a.Trail() {
			if view.Contains(c.X, c.Y) {
				trails[c] = a.ID()
			}
		}
	}

	territory := g.sim.Territory()
	for row := range viewRows {
		for col := range viewCols {
			cell := engine.C(offX+col, offY+row)
			x := originX + col*cellW
			y := hudHeight + row

			fill, fillColor := glyphNeutral, core.ColorGray
			if owner, ok := territory.Owner(cell); ok {
				fill, fillColor = glyphOwned, g.colorOf(owner)
			}
			if owner, ok := trails[cell]; ok {
				fill, fillColor = glyphTrail, g.colorOf(owner).Bright()
			}

			glyph, glyphColor := fill, fillColor
			if a, ok := heads[cell]; ok {
				glyph, glyphColor = glyphRoaming, g.colorOf(a.ID()).Bright()
				if a.IsDrawing() {
					glyph = glyphDrawing
				}
			}

			dst.SetWithColor(x, y, glyph, glyphColor)
			if cellW == 2 {
				if fill == glyphNeutral {
					fill = ' '
				}
				dst.SetWithColor(x+1, y, fill, fillColor)
			}
		}
	}
}

// renderFeed draws the latest events on the bottom line.
func (g *Game) renderFeed(dst *core.Screen) {
	if len(g.feed) == 0 {
		return
	}
	line := strings.Join(g.feed, "  ·  ")
	dst.DrawTextColor(1, dst.Height()-1, line, core.ColorGray)
}

// renderResults draws the final standings.
func (g *Game) renderResults(dst *core.Screen) {
	scores := g.sim.Scores()
	ranked := g.Players()
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[engine.PlayerID(ranked[i].ID)] > scores[engine.PlayerID(ranked[j].ID)]
	})

	headline := "Draw"
	if leader := g.sim.Leader(); leader != engine.NoPlayer {
		headline = g.playerName(leader) + " wins"
	}

	lines := []string{"Game Over", headline, ""}
	for i, p := range ranked {
		st := g.stats[p.ID]
		lines = append(lines, fmt.Sprintf("%d. %-8s %4d  k%d d%d",
			i+1, p.Name, scores[engine.PlayerID(p.ID)], st.Kills, st.Deaths))
	}
	lines = append(lines, "", "R restart  Esc back")

	g.renderOverlay(dst, lines)
}

// renderOverlay draws a centred box with the given lines.
func (g *Game) renderOverlay(dst *core.Screen, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := dst.Bounds().Centered(width+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l)
	}
}

func (g *Game) colorOf(id engine.PlayerID) core.Color {
	if p, ok := g.playerInfo(id); ok {
		return p.Color
	}
	return core.ColorDefault
}
