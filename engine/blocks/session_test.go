package blocks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockudoku-term/engine"
	"blockudoku-term/shapes"
	"blockudoku-term/store"
	"blockudoku-term/types"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithCatalog(testCatalog(t))}, opts...)
	s, err := NewSession(engine.DefaultConfig(), opts...)
	require.NoError(t, err)
	return s
}

// setTray replaces the tray. Slots without a shape are marked used.
func setTray(s *Session, pieces ...shapes.Shape) {
	for i := range s.tray.pieces {
		if i < len(pieces) {
			s.tray.pieces[i] = Piece{Shape: pieces[i]}
		} else {
			s.tray.pieces[i] = Piece{Shape: mono, Used: true}
		}
	}
}

type failingStore struct{ saves int }

func (f *failingStore) LoadBest() (int, error) { return 0, errors.New("disk on fire") }
func (f *failingStore) SaveBest(int) error {
	f.saves++
	return errors.New("disk on fire")
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	st := s.State()
	assert.Equal(t, types.Playing, st.Phase)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, types.Grid{}, st.Board)
	assert.Len(t, st.Tray, types.TraySize)
	assert.False(t, st.CanUndo)
	assert.True(t, s.AnyMovesLeft())
}

func TestNewSessionDefaultCatalog(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Seed = 3
	s, err := NewSession(cfg)
	require.NoError(t, err)
	assert.Equal(t, 50, s.catalog.Len())
}

func TestPlaceLineClearScenario(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), bar(3), bar(3))

	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, 3, s.Score())
	assert.True(t, res.Clears.Empty())
	for c := 0; c < 3; c++ {
		assert.Equal(t, types.Filled, s.board.Cell(0, c))
	}

	_, err = s.Place(1, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Score())

	res, err = s.Place(2, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Clears.Rows)
	assert.Empty(t, res.Clears.Cols)
	assert.Empty(t, res.Clears.Boxes)
	assert.Equal(t, 3+10, res.Points)
	assert.Equal(t, 19, s.Score())
	assert.True(t, res.Refilled)
	assert.Equal(t, types.Playing, res.Phase)
	for c := 0; c < size; c++ {
		assert.True(t, s.board.Cell(0, c).Vacant(), "cell %s", CellName(0, c))
	}
	assert.Equal(t, 0, s.board.FilledCount())
	assert.Equal(t, types.TraySize, s.tray.Unused())
}

func TestPlaceOnFadingCells(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), bar(3), bar(3))
	for _, col := range []int{0, 3} {
		_, err := s.Place(col/3, 0, col)
		require.NoError(t, err)
	}
	res, err := s.Place(2, 0, 6)
	require.NoError(t, err)
	gen := res.ClearGen

	setTray(s, bar(3))
	assert.True(t, s.CanPlace(0, 0, 0))
	_, err = s.Place(0, 0, 0)
	require.NoError(t, err)

	assert.False(t, s.SettleClears(gen-1))
	assert.True(t, s.SettleClears(gen))
	st := s.State()
	for c := 0; c < size; c++ {
		want := types.Empty
		if c < 3 {
			want = types.Filled
		}
		assert.Equal(t, want, st.Board[0][c], "cell %s", CellName(0, c))
	}
	assert.False(t, st.Clearing())
}

func TestPlaceRejections(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), mono)
	s.board.cells[4][4] = types.Filled
	before := s.State()

	_, err := s.Place(-1, 0, 0)
	assert.ErrorIs(t, err, ErrPieceIndex)
	_, err = s.Place(3, 0, 0)
	assert.ErrorIs(t, err, ErrPieceIndex)
	_, err = s.Place(2, 0, 0)
	assert.ErrorIs(t, err, ErrPieceUsed)
	_, err = s.Place(0, 0, 7)
	assert.ErrorIs(t, err, ErrCannotPlace)
	_, err = s.Place(0, 4, 2)
	assert.ErrorIs(t, err, ErrCannotPlace)
	_, err = s.Place(1, -1, 0)
	assert.ErrorIs(t, err, ErrCannotPlace)

	assert.Equal(t, before, s.State())
	assert.False(t, s.CanUndo())
}

func TestCanPlaceQueries(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3))
	before := s.State()

	assert.True(t, s.CanPlace(0, 8, 6))
	assert.False(t, s.CanPlace(0, 8, 7))
	assert.False(t, s.CanPlace(1, 0, 0))
	assert.False(t, s.CanPlace(-1, 0, 0))
	assert.False(t, s.CanPlace(3, 0, 0))
	s.AnyMovesLeft()

	assert.Equal(t, before, s.State())
}

func TestUndoRoundTrip(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), shape(0, 0, 1, 0, 1, 1), mono)
	_, err := s.Place(2, 8, 8)
	require.NoError(t, err)

	before := s.State()
	_, err = s.Place(1, 3, 3)
	require.NoError(t, err)
	require.True(t, s.CanUndo())

	require.NoError(t, s.Undo())
	after := s.State()
	assert.Equal(t, before.Board, after.Board)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Tray, after.Tray)
	assert.Equal(t, types.Playing, after.Phase)
	assert.False(t, after.CanUndo)

	assert.ErrorIs(t, s.Undo(), ErrNoSnapshot)
}

func TestUndoAfterClearAndRefill(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), bar(3), bar(3))
	_, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	_, err = s.Place(1, 0, 3)
	require.NoError(t, err)
	before := s.State()

	_, err = s.Place(2, 0, 6)
	require.NoError(t, err)
	require.NoError(t, s.Undo())

	st := s.State()
	assert.Equal(t, before.Board, st.Board)
	assert.Equal(t, before.Tray, st.Tray)
	assert.Equal(t, 6, st.Score)
	assert.Equal(t, 19, st.Best)
}

func TestUndoRestoresFadingCells(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), bar(3), bar(3))
	for i, col := range []int{0, 3, 6} {
		_, err := s.Place(i, 0, col)
		require.NoError(t, err)
	}
	setTray(s, mono)
	before := s.State()
	require.True(t, before.Clearing())

	_, err := s.Place(0, 5, 5)
	require.NoError(t, err)
	require.NoError(t, s.Undo())

	after := s.State()
	assert.Equal(t, before.Board, after.Board)
	assert.Equal(t, before.Tray, after.Tray)
	assert.Equal(t, before.Score, after.Score)
	assert.Greater(t, after.ClearGen, before.ClearGen)

	assert.False(t, s.SettleClears(before.ClearGen))
	assert.True(t, s.State().Clearing())
	assert.True(t, s.SettleClears(after.ClearGen))
	assert.False(t, s.State().Clearing())
	assert.Equal(t, types.Empty, s.State().Board[0][4])
}

// checkerboard fills every cell where row+col is odd, leaving isolated holes.
func checkerboard(s *Session) {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if (r+c)%2 == 1 {
				s.board.cells[r][c] = types.Filled
			}
		}
	}
}

func TestGameOverWhenNothingFits(t *testing.T) {
	s := newTestSession(t)
	checkerboard(s)
	domino := bar(2)
	setTray(s, mono, domino, domino)
	require.True(t, s.AnyMovesLeft())

	ended := 0
	endScore := -1
	s.OnGameOver(func(score int) {
		ended++
		endScore = score
	})

	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, types.GameOver, res.Phase)
	assert.Equal(t, types.GameOver, s.Phase())
	assert.False(t, s.AnyMovesLeft())
	assert.Equal(t, 1, ended)
	assert.Equal(t, 1, endScore)

	assert.False(t, s.CanPlace(1, 0, 0))
	_, err = s.Place(1, 1, 1)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, ended)

	require.NoError(t, s.Undo())
	assert.Equal(t, types.Playing, s.Phase())
	assert.Equal(t, types.Empty, s.State().Board[0][0])
	assert.True(t, s.AnyMovesLeft())
	assert.False(t, s.CanUndo())
}

func TestAnyMovesLeftEmptyTray(t *testing.T) {
	s := newTestSession(t)
	setTray(s)
	assert.True(t, s.AnyMovesLeft())

	checkerboard(s)
	setTray(s, bar(2))
	assert.False(t, s.AnyMovesLeft())
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(3), bar(3), bar(3))
	for i, col := range []int{0, 3, 6} {
		_, err := s.Place(i, 4, col)
		require.NoError(t, err)
	}
	best := s.Best()
	require.Greater(t, best, 0)

	s.Reset()
	st := s.State()
	assert.Equal(t, types.Grid{}, st.Board)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, best, st.Best)
	assert.Equal(t, types.Playing, st.Phase)
	assert.False(t, st.CanUndo)
	assert.Len(t, st.Tray, types.TraySize)
	for _, p := range st.Tray {
		assert.False(t, p.Used)
	}
	assert.ErrorIs(t, s.Undo(), ErrNoSnapshot)
}

func TestResetFromGameOver(t *testing.T) {
	s := newTestSession(t)
	checkerboard(s)
	setTray(s, mono, bar(2))
	_, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, types.GameOver, s.Phase())

	s.Reset()
	assert.Equal(t, types.Playing, s.Phase())
	assert.True(t, s.AnyMovesLeft())
}

func TestBestScorePersists(t *testing.T) {
	kv := store.NewMemoryStore()
	st := store.BestScore{KV: kv}

	s := newTestSession(t, WithStore(st))
	setTray(s, bar(3), bar(2))
	_, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Best())

	v, ok, err := kv.Get(store.BestScoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	require.NoError(t, s.Undo())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 3, s.Best())

	s.Reset()
	assert.Equal(t, 3, s.Best())

	next := newTestSession(t, WithStore(st))
	assert.Equal(t, 3, next.Best())
	setTray(next, mono)
	_, err = next.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, next.Best())
}

func TestBestScoreStoreFailureKeepsPlacement(t *testing.T) {
	fs := &failingStore{}
	s := newTestSession(t, WithStore(fs))
	assert.Equal(t, 0, s.Best())

	setTray(s, bar(2))
	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Points)
	assert.Equal(t, 2, s.Best())
	assert.Equal(t, 1, fs.saves)
}

func TestOnPlaceCallback(t *testing.T) {
	s := newTestSession(t)
	setTray(s, bar(2), mono)

	var got types.PlaceResult
	var state types.GameState
	s.OnPlace(func(r types.PlaceResult, st types.GameState) {
		got = r
		state = st
	})

	_, err := s.Place(1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Piece)
	assert.Equal(t, 2, got.Row)
	assert.Equal(t, 5, got.Col)
	assert.Equal(t, 1, got.Cells)
	assert.Equal(t, 1, state.Score)
	assert.True(t, state.CanUndo)
	assert.True(t, state.Tray[1].Used)
}
