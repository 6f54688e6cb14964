// Package ui specifies custom controls for tview to play Blockudoku in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blockudoku-term/config"
	"blockudoku-term/engine"
	"blockudoku-term/types"
)

// boardLeft is the column of the first cell; row numbers sit to its left.
const boardLeft = 4

type BlockBoardUI struct {
	Box        *tview.Box
	State      types.GameState
	hint       *tview.TextView
	cfg        *config.Config
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
	selRow     int
	selCol     int
	piece      int
	message    string
	clearDelay time.Duration
	fadeTimer  *time.Timer
	onGameOver func(score int)
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BlockBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BlockBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BlockBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// Cursor returns the anchor cell the selected piece would be placed at.
func (g *BlockBoardUI) Cursor() (int, int) {
	return g.selRow, g.selCol
}

// SelectedPiece returns the selected tray slot, or -1.
func (g *BlockBoardUI) SelectedPiece() int {
	return g.piece
}

func (g *BlockBoardUI) MoveSelection(dRow, dCol int) {
	if g.State.Finished() {
		return
	}
	r, c := g.selRow+dRow, g.selCol+dCol
	if r < 0 || r >= types.BoardSize || c < 0 || c >= types.BoardSize {
		return
	}
	g.selRow, g.selCol = r, c
}

// SelectPiece selects tray slot i if it still holds a piece.
func (g *BlockBoardUI) SelectPiece(i int) {
	if i < 0 || i >= len(g.State.Tray) || g.State.Tray[i].Used {
		return
	}
	g.piece = i
	g.message = ""
	g.refreshHint()
}

// CyclePiece selects the next unused tray slot.
func (g *BlockBoardUI) CyclePiece() {
	if next := g.nextUnused(g.piece); next >= 0 {
		g.SelectPiece(next)
	}
}

func (g *BlockBoardUI) nextUnused(from int) int {
	n := len(g.State.Tray)
	for k := 1; k <= n; k++ {
		i := (from + k + n) % n
		if !g.State.Tray[i].Used {
			return i
		}
	}
	return -1
}

func NewBlockBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BlockBoardUI {
	board := &BlockBoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		app:    app,
		selRow: types.BoardSize / 2,
		selCol: types.BoardSize / 2,
		piece:  -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if board.eng == nil {
			return x, y, 1, 1
		}
		// 2 characters per cell for square appearance
		boardW, boardH := types.BoardSize*2, types.BoardSize
		ghost, valid := board.ghost()
		sym := board.cfg.Theme.Symbols

		for r := 0; r < types.BoardSize; r++ {
			for c := 0; c < types.BoardSize; c++ {
				bg := board.styles[0]
				if board.cfg.Theme.ShadeBoxes && (r/types.BoxSize+c/types.BoxSize)%2 == 1 {
					bg = board.styles[1]
				}
				fg := board.styles[4]
				drawRune := sym.Empty
				solid := false

				switch board.State.Board[r][c] {
				case types.Filled:
					drawRune, fg, solid = sym.Filled, board.styles[2], true
				case types.Clearing:
					drawRune, fg, solid = sym.Clearing, board.styles[3], true
				}
				if ghost[r][c] {
					drawRune, solid = sym.Ghost, true
					if valid {
						fg = board.styles[7]
					} else {
						fg = board.styles[8]
					}
				}
				if r == board.selRow && c == board.selCol && !board.State.Finished() {
					if board.cfg.Theme.DrawCursorBackground {
						bg = board.styles[6]
					}
					if !solid {
						fg = board.styles[5]
					}
				}
				drawBlockCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), drawRune, solid, c, r, x+boardLeft, y)
			}
		}
		drawCoordinates(screen, x, y, board)
		return x, y, boardW + boardLeft, boardH + 2
	})
	return board
}

// ghost marks the cells the selected piece would cover at the cursor and
// reports whether the placement is legal.
func (g *BlockBoardUI) ghost() (mask [types.BoardSize][types.BoardSize]bool, valid bool) {
	if g.eng == nil || g.State.Finished() || g.piece < 0 || g.piece >= len(g.State.Tray) {
		return mask, false
	}
	p := g.State.Tray[g.piece]
	if p.Used {
		return mask, false
	}
	valid = g.eng.CanPlace(g.piece, g.selRow, g.selCol)
	for _, o := range p.Cells {
		r, c := g.selRow+o.Row, g.selCol+o.Col
		if r >= 0 && r < types.BoardSize && c >= 0 && c < types.BoardSize {
			mask[r][c] = true
		}
	}
	return mask, valid
}

// ConnectEngine connects the board to a game engine. Cleared cells stay on
// screen for delay before they settle.
func (g *BlockBoardUI) ConnectEngine(e engine.GameEngine, delay time.Duration) {
	g.stopFade()
	g.eng = e
	g.clearDelay = delay
	g.message = ""

	e.OnPlace(func(result types.PlaceResult, state types.GameState) {
		g.State = state
	})

	e.OnGameOver(func(score int) {
		g.message = ""
		if g.onGameOver != nil {
			g.onGameOver(score)
		}
	})

	g.State = e.State()
	g.piece = g.nextUnused(-1)
	g.refreshHint()
}

// OnGameOver registers a callback for when the connected game ends.
func (g *BlockBoardUI) OnGameOver(callback func(score int)) {
	g.onGameOver = callback
}

// PlaceSelected places the selected piece at the cursor.
func (g *BlockBoardUI) PlaceSelected() {
	if g.eng == nil || g.piece < 0 {
		return
	}
	result, err := g.eng.Place(g.piece, g.selRow, g.selCol)
	if err != nil {
		g.message = err.Error()
		g.refreshHint()
		return
	}
	g.message = fmt.Sprintf("+%d", result.Points)
	if !result.Clears.Empty() {
		g.message = fmt.Sprintf("+%d  %d cleared", result.Points, result.Clears.Count())
		g.scheduleSettle(result.ClearGen)
	}
	if result.Refilled {
		g.piece = g.nextUnused(-1)
	} else {
		g.piece = g.nextUnused(g.piece)
	}
	g.refreshHint()
}

// Undo takes back the last placement.
func (g *BlockBoardUI) Undo() {
	if g.eng == nil {
		return
	}
	g.stopFade()
	if err := g.eng.Undo(); err != nil {
		g.message = err.Error()
		g.refreshHint()
		return
	}
	g.message = "undone"
	g.State = g.eng.State()
	if g.piece < 0 || g.State.Tray[g.piece].Used {
		g.piece = g.nextUnused(-1)
	}
	if g.State.Clearing() {
		g.scheduleSettle(g.State.ClearGen)
	}
	g.refreshHint()
}

// Reset starts a new game on the connected engine.
func (g *BlockBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.stopFade()
	g.eng.Reset()
	g.State = g.eng.State()
	g.message = ""
	g.piece = g.nextUnused(-1)
	g.selRow, g.selCol = types.BoardSize/2, types.BoardSize/2
	g.refreshHint()
}

// scheduleSettle ends the fade of clear generation gen after the clear delay.
func (g *BlockBoardUI) scheduleSettle(gen int) {
	g.stopFade()
	if g.clearDelay <= 0 || g.app == nil {
		g.settle(gen)
		return
	}
	g.fadeTimer = time.AfterFunc(g.clearDelay, func() {
		g.app.QueueUpdateDraw(func() {
			g.settle(gen)
		})
	})
}

func (g *BlockBoardUI) settle(gen int) {
	if g.eng.SettleClears(gen) {
		g.State = g.eng.State()
		g.refreshHint()
	}
}

func (g *BlockBoardUI) stopFade() {
	if g.fadeTimer != nil {
		g.fadeTimer.Stop()
		g.fadeTimer = nil
	}
}

// Close stops pending timers.
func (g *BlockBoardUI) Close() {
	g.stopFade()
}

func (g *BlockBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),    // 0
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt), // 1
		tcell.PaletteColor(c.Theme.Colors.FilledColor),   // 2
		tcell.PaletteColor(c.Theme.Colors.ClearingColor), // 3
		tcell.PaletteColor(c.Theme.Colors.LabelColor),    // 4
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG), // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 6
		tcell.PaletteColor(c.Theme.Colors.GhostColor),    // 7
		tcell.PaletteColor(c.Theme.Colors.InvalidColor),  // 8
	}
	g.cfg = c
}

func (g *BlockBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetState(g.State, g.piece)
	}
	if g.hint == nil {
		return
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, controlsLine string
	if g.State.Finished() {
		statusLine = fmt.Sprintf("  ■ No piece fits. Final score %d\n", g.State.Score)
		controlsLine = "  u undo   r new game   q menu"
	} else {
		if g.message != "" {
			statusLine = fmt.Sprintf("  %s\n", g.message)
		} else if g.piece >= 0 {
			statusLine = fmt.Sprintf("  Piece %d at %c%d\n", g.piece+1, 'A'+rune(g.selCol), g.selRow+1)
		} else {
			statusLine = "\n"
		}
		controlsLine = "  hjkl/↑↓←→ move   1-3/⇥ piece   ⏎ place   u undo   r reset   f focus   q menu"
	}
	g.hint.SetText(statusLine + controlsLine)
}

// drawBlockCell draws one board cell, 2 characters wide.
func drawBlockCell(s tcell.Screen, c tcell.Style, r rune, solid bool, col, row, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	second := ' '
	if solid {
		second = r
	}
	s.SetContent(l+col*2+1, t+row, second, nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BlockBoardUI) {
	hCoord := int('A')
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('Ａ')
	}

	style := tcell.StyleDefault.Foreground(ui.styles[4])
	highlight := tcell.StyleDefault.Background(ui.styles[6])

	for ix := 0; ix < types.BoardSize; ix++ {
		_style := style
		if ix == ui.selCol {
			_style = highlight
		}
		s.SetContent(x+boardLeft+(ix*2), y+types.BoardSize+1, rune(hCoord+ix), nil, _style)
		s.SetContent(x+boardLeft+(ix*2)+1, y+types.BoardSize+1, ' ', nil, _style)
	}

	for iy := 0; iy < types.BoardSize; iy++ {
		_style := style
		if iy == ui.selRow {
			_style = highlight
		}
		s.SetContent(x+1, y+iy, ' ', nil, _style)
		s.SetContent(x+2, y+iy, rune('1'+iy), nil, _style)
	}
}
