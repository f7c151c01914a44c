package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/games/quadfall"
	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
)

// Layout of the round frame: one HUD row above a boxed board whose cells are
// two characters wide so they look square.
const (
	hudHeight = 1
	cellWidth = 2
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorNavy:          lipgloss.NewStyle().Foreground(lipgloss.Color("19")),
}

// tagColors is the palette of the built-in shape tags.
var tagColors = map[field.Cell]core.Color{
	field.TagT:     core.ColorBlue,
	field.TagI:     core.ColorBrightRed,
	field.TagO:     core.ColorYellow,
	field.TagL:     core.ColorGreen,
	field.TagJ:     core.ColorBrown,
	field.TagS:     core.ColorOrange,
	field.TagZ:     core.ColorNavy,
	field.Sentinel: core.ColorGray,
}

// CellColor returns the display color of a board cell.
// Tags outside the palette render magenta.
func CellColor(c field.Cell) core.Color {
	if col, ok := tagColors[c]; ok {
		return col
	}
	return core.ColorMagenta
}

// FrameSize returns the screen size needed to draw a width x height board.
func FrameSize(width, height int) (int, int) {
	return width*cellWidth + 2, height + 2 + hudHeight
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hud is the status line drawn above the board.
type hud struct {
	Score int
	Piece string
	Speed string
	Muted bool
}

// DrawRound draws the HUD, the board with the falling piece merged in, the
// playfield window edge and a state banner.
func DrawRound(s *core.Screen, r *quadfall.Round, muted bool) {
	s.Clear()

	view := r.View()
	drawHUD(s, hud{
		Score: r.Score(),
		Piece: r.Piece().Name(),
		Speed: fmt.Sprintf("%.1fms", float64(r.Interval().Microseconds())/1000),
		Muted: muted,
	})
	drawBoard(s, view, r.Board().Window())

	// Banners sit above the centre row so the sentinel stays visible.
	top := max(hudHeight+1, hudHeight+1+view.Height()/2-4)
	switch r.State() {
	case quadfall.NotStarted:
		s.DrawTextCentered(top, " PRESS ENTER TO START ")
	case quadfall.Paused:
		s.DrawTextCentered(top, " PAUSED ")
		s.DrawTextCentered(top+1, " press p to resume ")
	case quadfall.Lost:
		s.DrawTextCentered(top, " GAME OVER ")
		s.DrawTextCentered(top+1, fmt.Sprintf(" score %d ", r.Score()))
		s.DrawTextCentered(top+2, " r restart  q quit ")
	}
}

func drawHUD(s *core.Screen, h hud) {
	s.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", h.Score), core.ColorBrightWhite)
	s.DrawTextColored(14, 0, h.Piece, core.ColorCyan)
	right := h.Speed
	if h.Muted {
		right = "MUTED " + right
	}
	s.DrawTextColored(s.Width()-len(right)-1, 0, right, core.ColorGray)
}

func drawBoard(s *core.Screen, view field.Grid, window core.Rect) {
	s.DrawBox(core.NewRect(0, hudHeight, view.Width()*cellWidth+2, view.Height()+2), core.ColorGray)

	for x := 0; x < view.Width(); x++ {
		for y := 0; y < view.Height(); y++ {
			sx, sy := 1+x*cellWidth, hudHeight+1+y
			c := view[x][y]
			switch {
			case c == field.Sentinel:
				s.DrawTextColored(sx, sy, "▓▓", CellColor(c))
			case c.Filled():
				s.DrawTextColored(sx, sy, "██", CellColor(c))
			case window.OnEdge(x, y):
				s.DrawTextColored(sx, sy, "··", core.ColorGray)
			}
		}
	}
}
