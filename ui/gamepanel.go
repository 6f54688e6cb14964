package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"blockudoku-term/types"
)

// GameInfoPanel displays the score and the tray alongside the board.
type GameInfoPanel struct {
	box      *tview.TextView
	state    types.GameState
	selected int
	ready    bool
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:      tview.NewTextView(),
		selected: -1,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game state and selected slot.
func (p *GameInfoPanel) SetState(state types.GameState, selected int) {
	p.state = state
	p.selected = selected
	p.ready = true
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if !p.ready {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Score[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Score:[-:-:-] %d\n", p.state.Score)
	text += fmt.Sprintf("[white]Best:[-:-:-]  %d\n", p.state.Best)
	if p.state.CanUndo {
		text += "[dimgray]undo available[-]\n"
	} else {
		text += "\n"
	}

	text += "\n[white::b]Pieces[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	for i, piece := range p.state.Tray {
		marker := " "
		label := "[white]"
		if i == p.selected && !piece.Used {
			marker = "[yellow]>[-]"
			label = "[yellow]"
		}
		if piece.Used {
			text += fmt.Sprintf("%s[dimgray]%d  used[-]\n\n", marker, i+1)
			continue
		}
		text += fmt.Sprintf("%s%s%d[-]\n", marker, label, i+1)
		for _, line := range piecePreview(piece.Cells) {
			text += "   " + label + line + "[-]\n"
		}
		text += "\n"
	}

	if p.state.Finished() {
		text += "[red::b]GAME OVER[-:-:-]\n"
	}

	p.box.SetText(text)
}

// piecePreview renders a piece as text rows, two characters per cell.
func piecePreview(cells []types.Offset) []string {
	rows, cols := 0, 0
	for _, o := range cells {
		if o.Row+1 > rows {
			rows = o.Row + 1
		}
		if o.Col+1 > cols {
			cols = o.Col + 1
		}
	}
	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
	}
	for _, o := range cells {
		if o.Row >= 0 && o.Col >= 0 {
			grid[o.Row][o.Col] = true
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		var b strings.Builder
		for _, filled := range row {
			if filled {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BlockBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth, maxHeight int) *tview.Flex {
	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(form, maxWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(centerRow, maxHeight, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BlockBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	if board.eng != nil {
		infoPanel.SetState(board.State, board.piece)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BlockBoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	boardWidth := types.BoardSize*2 + boardLeft
	boardHeight := types.BoardSize + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
