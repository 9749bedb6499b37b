package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-territory/internal/core"
)

func TestPaletteRenderPlain(t *testing.T) {
	// A renderer on a non-terminal writer has no color profile, so the
	// output must match the plain text of the buffer.
	p := NewPalette(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(8, 3)
	s.DrawTextColor(0, 0, "Red", core.ColorRed)
	s.DrawTextColor(4, 0, "9", core.ColorBrightWhite)
	s.SetWithColor(2, 1, '█', core.ColorGreen)
	s.SetWithColor(3, 1, '░', core.ColorBrightGreen)
	s.SetWithColor(7, 2, '@', core.ColorBrightBlue)

	if got, want := p.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestPaletteUnknownColor(t *testing.T) {
	p := NewPalette(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(2, 1)
	s.SetWithColor(0, 0, 'x', core.Color(200))

	if got := p.Render(s); got != "x " {
		t.Errorf("Render() = %q, want %q", got, "x ")
	}
}
