package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-territory/internal/core"
)

// ansiCodes maps core.Color to terminal color codes.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette turns screen buffers into styled text for one terminal.
// SSH sessions get their own palette so colors follow the client's profile.
type Palette struct {
	styles [len(ansiCodes)]lipgloss.Style
	muted  lipgloss.Style
}

// NewPalette creates a palette on r. Nil uses the local terminal.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	p := &Palette{muted: r.NewStyle().Foreground(lipgloss.Color("241"))}
	for c, code := range ansiCodes {
		p.styles[c] = r.NewStyle()
		if code != "" {
			p.styles[c] = p.styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if int(c) < len(p.styles) {
		return p.styles[c]
	}
	return p.styles[core.ColorDefault]
}

// Muted renders secondary text such as status lines.
func (p *Palette) Muted(text string) string {
	return p.muted.Render(text)
}

// Render converts a screen buffer to a styled string.
// Each run of same-colored cells is styled once. Blank cells join the
// current run since their color is never visible.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	var run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		runColor := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' && cell.Color != runColor {
				if run.Len() > 0 {
					sb.WriteString(p.style(runColor).Render(run.String()))
					run.Reset()
				}
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(p.style(runColor).Render(run.String()))
			run.Reset()
		}
	}
	return sb.String()
}
