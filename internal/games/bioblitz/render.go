package bioblitz

import (
	"fmt"

	"github.com/vovakirdan/bioblitz/internal/core"
)

const (
	hudHeight    = 2 // Status line and separator above the board
	footerHeight = 2 // Message and controls below the board
)

// arrows maps a direction to its board glyph.
var arrows = [4]rune{North: '↑', East: '→', South: '↓', West: '←'}

// Glyph returns the arrow drawn for a direction.
func (d Direction) Glyph() rune {
	return arrows[d%4]
}

// ownerColor returns the colour a cell is drawn in.
func ownerColor(o Owner) core.Color {
	switch o {
	case Green:
		return core.ColorBrightGreen
	case Red:
		return core.ColorBrightRed
	default:
		return core.ColorGray
	}
}

// Resize recomputes the screen layout without restarting the match.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.computeLayout()
}

// computeLayout centres the board and picks the cell width. Cells are two
// columns wide when there is room, which keeps the grid roughly square.
func (g *Game) computeLayout() {
	rows, cols := g.board.Rows(), g.board.Cols()
	w, h := g.runtime.ScreenW, g.runtime.ScreenH

	g.cellW = 2
	if cols*2+2 > w {
		g.cellW = 1
	}

	boardW := cols*g.cellW + 2
	boardH := rows + 2
	g.tooSmall = boardW > w || hudHeight+boardH+footerHeight > h

	g.originX = (w - boardW) / 2
	g.originY = hudHeight
}

// Render draws the match to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.board.Cols()+2, g.board.Rows()+hudHeight+footerHeight+2))
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.board.Phase() == PhaseFinished:
		winner, _ := g.board.Winner()
		g.renderOverlay(dst, g.PlayerName(winner)+" wins!", "Press R for a rematch")
	case g.paused:
		g.renderOverlay(dst, "Paused", "P to continue, R to restart")
	}
}

// renderHUD draws the scores and whose turn it is.
func (g *Game) renderHUD(dst *core.Screen) {
	x := 1
	x = g.drawSegment(dst, x, g.Title()+"  ", core.ColorWhite)
	x = g.drawSegment(dst, x, fmt.Sprintf("%s %d", g.PlayerName(Green), g.board.Score(Green)), ownerColor(Green))
	x = g.drawSegment(dst, x, "  ", core.ColorDefault)
	x = g.drawSegment(dst, x, fmt.Sprintf("%s %d", g.PlayerName(Red), g.board.Score(Red)), ownerColor(Red))
	x = g.drawSegment(dst, x, fmt.Sprintf("  Free %d", g.board.Unowned()), core.ColorGray)

	if g.board.Phase() != PhaseFinished {
		player := g.board.CurrentPlayer()
		g.drawSegment(dst, x+2, "Turn: "+g.PlayerName(player), ownerColor(player))
	}

	for col := range dst.Width() {
		dst.Set(col, 1, '─')
	}
}

func (g *Game) drawSegment(dst *core.Screen, x int, text string, c core.Color) int {
	dst.DrawTextColored(x, 0, text, c)
	return x + len([]rune(text))
}

// renderBoard draws the frame, the arrows and the current player's cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	rows, cols := g.board.Rows(), g.board.Cols()
	frame := core.NewRect(g.originX, g.originY, cols*g.cellW+2, rows+2)
	dst.DrawBox(frame, ownerColor(g.board.CurrentPlayer()))

	cursor := g.cursors[g.board.CurrentPlayer()]
	showCursor := g.board.Phase() != PhaseFinished

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, _ := g.board.Cell(r, c)
			x := g.originX + 1 + c*g.cellW
			y := g.originY + 1 + r
			reverse := showCursor && cursor == cell.Coord()

			dst.SetCell(x, y, core.Cell{Rune: cell.Direction().Glyph(), Color: ownerColor(cell.Owner()), Reverse: reverse})
			if g.cellW == 2 {
				dst.SetCell(x+1, y, core.Cell{Rune: ' ', Reverse: reverse})
			}
		}
	}
}

// renderFooter draws the status message and the controls line.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.originY + g.board.Rows() + 2

	var msg string
	color := core.ColorGray
	switch {
	case g.notice != "":
		msg, color = g.notice, core.ColorYellow
	case g.board.Phase() == PhaseCascading:
		msg, color = fmt.Sprintf("Infecting... %d cells, %d waves pending",
			g.lastMove.infected, g.board.Pending()), core.ColorCyan
	case g.lastReject != Accepted:
		msg, color = "Cannot rotate: "+g.lastReject.String(), core.ColorYellow
	case g.lastMove.player != Unowned:
		msg = fmt.Sprintf("Move %d  %s infected %d", g.board.Moves()+1,
			g.PlayerName(g.lastMove.player), g.lastMove.infected)
	default:
		msg = fmt.Sprintf("Move %d", g.board.Moves()+1)
	}
	dst.DrawTextColored(g.originX, y, msg, color)

	if y+1 < dst.Height() {
		dst.DrawTextColored(g.originX, y+1, Controls(), core.ColorGray)
	}
}

// Controls returns the one-line key help.
func Controls() string {
	return "Arrows/WASD move  Enter/Space rotate  P pause  Q quit"
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
