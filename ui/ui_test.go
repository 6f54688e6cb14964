package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockudoku-term/config"
	"blockudoku-term/engine"
	"blockudoku-term/engine/blocks"
	"blockudoku-term/types"
)

func newTestBoard(t *testing.T) (*BlockBoardUI, *blocks.Session) {
	t.Helper()
	gameCfg := engine.DefaultConfig()
	gameCfg.Seed = 11
	session, err := blocks.NewSession(gameCfg)
	require.NoError(t, err)

	cfg := config.DefaultConfig
	board := NewBlockBoard(nil, &cfg, tview.NewTextView())
	board.ConnectEngine(session, 0)
	return board, session
}

func TestBoardConnect(t *testing.T) {
	board, session := newTestBoard(t)
	assert.Equal(t, 0, board.SelectedPiece())
	row, col := board.Cursor()
	assert.Equal(t, 4, row)
	assert.Equal(t, 4, col)
	assert.Equal(t, session.State(), board.State)
}

func TestBoardMoveSelectionStaysOnBoard(t *testing.T) {
	board, _ := newTestBoard(t)
	for i := 0; i < 20; i++ {
		board.MoveSelection(-1, -1)
	}
	row, col := board.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	for i := 0; i < 20; i++ {
		board.MoveSelection(1, 1)
	}
	row, col = board.Cursor()
	assert.Equal(t, 8, row)
	assert.Equal(t, 8, col)
}

func TestBoardPlaceSelected(t *testing.T) {
	board, session := newTestBoard(t)
	cells := len(board.State.Tray[0].Cells)

	// every catalog shape fits at the center of an empty board
	board.PlaceSelected()
	assert.Equal(t, cells, board.State.Score)
	assert.True(t, board.State.Tray[0].Used)
	assert.Equal(t, 1, board.SelectedPiece())
	assert.Equal(t, session.State(), board.State)

	board.SelectPiece(0)
	assert.Equal(t, 1, board.SelectedPiece())

	board.CyclePiece()
	assert.Equal(t, 2, board.SelectedPiece())
	board.CyclePiece()
	assert.Equal(t, 1, board.SelectedPiece())

	board.Undo()
	assert.Equal(t, 0, board.State.Score)
	assert.False(t, board.State.Tray[0].Used)
	assert.False(t, board.State.CanUndo)
}

func TestBoardGhost(t *testing.T) {
	board, _ := newTestBoard(t)
	mask, valid := board.ghost()
	assert.True(t, valid)
	covered := 0
	for r := range mask {
		for c := range mask[r] {
			if mask[r][c] {
				covered++
			}
		}
	}
	assert.Equal(t, len(board.State.Tray[0].Cells), covered)
}

func TestBoardReset(t *testing.T) {
	board, _ := newTestBoard(t)
	board.PlaceSelected()
	board.MoveSelection(-2, 0)
	board.Reset()
	assert.Equal(t, 0, board.State.Score)
	assert.Equal(t, types.Grid{}, board.State.Board)
	assert.Equal(t, 0, board.SelectedPiece())
	row, _ := board.Cursor()
	assert.Equal(t, 4, row)
}

func TestPiecePreview(t *testing.T) {
	l := []types.Offset{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}}
	assert.Equal(t, []string{"██", "██", "████"}, piecePreview(l))

	s := []types.Offset{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	assert.Equal(t, []string{"  ████", "████"}, piecePreview(s))
}

func TestGameOverCardKeys(t *testing.T) {
	var undo, again, menu int
	card := NewGameOverCard(func() { undo++ }, func() { again++ }, func() { menu++ })
	card.SetScore(42, 42)
	require.Len(t, card.Lines(), 2)
	assert.True(t, card.Lines()[1].Highlight)

	handle := card.InputHandler()
	noFocus := func(p tview.Primitive) {}

	handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), noFocus)
	assert.Equal(t, 1, again)

	handle(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), noFocus)
	handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), noFocus)
	assert.Equal(t, 1, menu)

	handle(tcell.NewEventKey(tcell.KeyRune, 'U', tcell.ModNone), noFocus)
	assert.Equal(t, 1, undo)
	assert.Equal(t, 1, again)
}

func TestGameSetupSetBest(t *testing.T) {
	setup := NewGameSetup(engine.DefaultConfig(), 5, func(engine.GameConfig) {}, func() {}, nil)
	assert.Contains(t, setup.help.GetText(true), "Best: 5")

	setup.SetBest(12)
	assert.Contains(t, setup.help.GetText(true), "Best: 12")
	assert.NotContains(t, setup.help.GetText(true), "Best: 5")
}

// fadingEngine hands back a board that is still fading after Undo.
type fadingEngine struct {
	engine.GameEngine
	state   types.GameState
	settled []int
}

func (f *fadingEngine) State() types.GameState                           { return f.state }
func (f *fadingEngine) OnPlace(func(types.PlaceResult, types.GameState)) {}
func (f *fadingEngine) OnGameOver(func(int))                             {}

func (f *fadingEngine) Undo() error {
	f.state.Board[0][0] = types.Clearing
	f.state.ClearGen++
	return nil
}

func (f *fadingEngine) SettleClears(gen int) bool {
	f.settled = append(f.settled, gen)
	if gen != f.state.ClearGen {
		return false
	}
	f.state.Board[0][0] = types.Empty
	return true
}

func TestBoardUndoSettlesRestoredClears(t *testing.T) {
	eng := &fadingEngine{state: types.GameState{
		Tray:     make([]types.Piece, 3),
		ClearGen: 3,
	}}
	cfg := config.DefaultConfig
	board := NewBlockBoard(nil, &cfg, tview.NewTextView())
	board.ConnectEngine(eng, 0)

	board.Undo()
	assert.Equal(t, []int{4}, eng.settled)
	assert.False(t, board.State.Clearing())
	assert.Equal(t, types.Empty, board.State.Board[0][0])
}
