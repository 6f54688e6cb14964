package blocks

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"blockudoku-term/engine"
	"blockudoku-term/logx"
	"blockudoku-term/shapes"
	"blockudoku-term/types"
)

var (
	ErrCannotPlace      = errors.New("piece does not fit there")
	ErrPieceUsed        = errors.New("piece already placed")
	ErrPieceIndex       = errors.New("piece index out of range")
	ErrGameOver         = errors.New("game is over")
	ErrNoSnapshot       = errors.New("nothing to undo")
	ErrTrayNotExhausted = errors.New("tray still has unused pieces")
)

var _ engine.GameEngine = (*Session)(nil)

// snapshot is the single undo slot. Cells that were fading are kept as
// Clearing; Undo starts a new clear generation for them.
type snapshot struct {
	cells types.Grid
	tray  Tray
	score int
	phase types.Phase
}

// Session owns the board, the tray, the score and the undo slot of one player.
// It is not safe for concurrent use.
type Session struct {
	cfg     engine.GameConfig
	catalog *shapes.Catalog
	store   engine.BestScoreStore
	log     logx.Logger

	board Board
	tray  Tray
	score int
	best  int
	phase types.Phase
	undo  *snapshot

	placeCallback func(result types.PlaceResult, state types.GameState)
	endCallback   func(score int)
}

// Option customizes a Session.
type Option func(*Session)

// WithStore loads and persists the best score through st.
func WithStore(st engine.BestScoreStore) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger sets the session logger.
func WithLogger(l logx.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithCatalog draws pieces from c instead of the default catalog.
func WithCatalog(c *shapes.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// NewSession creates a session with an empty board and a fresh tray.
func NewSession(cfg engine.GameConfig, opts ...Option) (*Session, error) {
	s := &Session{cfg: cfg, phase: types.Playing}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logx.NewNop()
	}
	if s.catalog == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c, err := shapes.NewCatalog(shapes.DefaultBaseShapes(), rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, fmt.Errorf("failed to build shape catalog: %w", err)
		}
		s.catalog = c
		s.log.Debugf("shape catalog ready: %d shapes, seed %d", c.Len(), seed)
	}
	if s.store != nil {
		best, err := s.store.LoadBest()
		if err != nil {
			s.log.Warnf("failed to load best score: %v", err)
		}
		s.best = best
	}
	s.tray = newTray(s.catalog)
	return s, nil
}

// State returns a copy of the session for rendering.
func (s *Session) State() types.GameState {
	return types.GameState{
		Board:    s.board.Cells(),
		Tray:     s.tray.Pieces(),
		Score:    s.score,
		Best:     s.best,
		Phase:    s.phase,
		CanUndo:  s.undo != nil,
		ClearGen: s.board.Generation(),
	}
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Best returns the best score seen, including earlier sessions.
func (s *Session) Best() int { return s.best }

// Phase returns Playing or GameOver.
func (s *Session) Phase() types.Phase { return s.phase }

// CanUndo returns true if an undo snapshot exists.
func (s *Session) CanUndo() bool { return s.undo != nil }

// CanPlace reports whether unused tray piece i fits at (row, col).
func (s *Session) CanPlace(i, row, col int) bool {
	if i < 0 || i >= types.TraySize {
		return false
	}
	p := s.tray.pieces[i]
	if p.Used {
		return false
	}
	return s.board.CanPlace(p.Shape, row, col)
}

// AnyMovesLeft reports whether some unused piece fits somewhere. An empty
// tray counts as having moves: it is refilled before anyone looks.
func (s *Session) AnyMovesLeft() bool {
	if s.tray.Unused() == 0 {
		return true
	}
	for _, p := range s.tray.pieces {
		if p.Used {
			continue
		}
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				if s.board.CanPlace(p.Shape, r, c) {
					return true
				}
			}
		}
	}
	return false
}

// Place commits tray piece i with its origin at (row, col).
func (s *Session) Place(i, row, col int) (types.PlaceResult, error) {
	if i < 0 || i >= types.TraySize {
		return types.PlaceResult{}, ErrPieceIndex
	}
	if s.phase == types.GameOver {
		return types.PlaceResult{}, ErrGameOver
	}
	piece := s.tray.pieces[i]
	if piece.Used {
		return types.PlaceResult{}, ErrPieceUsed
	}
	if !s.board.CanPlace(piece.Shape, row, col) {
		return types.PlaceResult{}, ErrCannotPlace
	}

	s.takeSnapshot()

	if err := s.board.Place(piece.Shape, row, col); err != nil {
		return types.PlaceResult{}, err
	}
	clears := s.board.DetectClears()
	points := s.cfg.Scoring.Points(len(piece.Shape), clears.Count())
	s.setScore(s.score + points)
	if err := s.tray.MarkUsed(i); err != nil {
		return types.PlaceResult{}, err
	}
	gen := s.board.ResolveClears(clears)

	refilled := false
	if s.tray.IsExhausted() {
		if err := s.tray.Refill(s.catalog); err != nil {
			return types.PlaceResult{}, err
		}
		refilled = true
	}

	if !s.AnyMovesLeft() {
		s.phase = types.GameOver
	}

	result := types.PlaceResult{
		Piece:    i,
		Row:      row,
		Col:      col,
		Cells:    len(piece.Shape),
		Clears:   clears,
		Points:   points,
		Refilled: refilled,
		Phase:    s.phase,
		ClearGen: gen,
	}
	s.log.Debugf("placed piece %d at %s: +%d (rows %v cols %v boxes %v), score %d",
		i, CellName(row, col), points, clears.Rows, clears.Cols, clears.Boxes, s.score)

	if s.placeCallback != nil {
		s.placeCallback(result, s.State())
	}
	if s.phase == types.GameOver {
		s.log.Infof("game over: score %d, best %d", s.score, s.best)
		if s.endCallback != nil {
			s.endCallback(s.score)
		}
	}
	return result, nil
}

// Undo restores the board, score and tray from before the last placement and
// leaves the game playable. The best score is not rolled back. Restored
// Clearing cells belong to the new clear generation reported by State.
func (s *Session) Undo() error {
	if s.undo == nil {
		return ErrNoSnapshot
	}
	snap := s.undo
	s.undo = nil
	s.board.cells = snap.cells
	s.board.gen++
	s.tray = snap.tray
	s.score = snap.score
	s.phase = types.Playing
	s.log.Debugf("undo: score %d", s.score)
	return nil
}

// Reset starts a new game. The best score is kept.
func (s *Session) Reset() {
	s.board.clear()
	s.score = 0
	s.tray = newTray(s.catalog)
	s.undo = nil
	s.phase = types.Playing
	s.log.Debugf("reset")
}

// SettleClears ends the fade of clear generation gen.
func (s *Session) SettleClears(gen int) bool {
	return s.board.Settle(gen)
}

// OnPlace registers a callback for committed placements.
func (s *Session) OnPlace(callback func(result types.PlaceResult, state types.GameState)) {
	s.placeCallback = callback
}

// OnGameOver registers a callback for when the game ends.
func (s *Session) OnGameOver(callback func(score int)) {
	s.endCallback = callback
}

func (s *Session) takeSnapshot() {
	s.undo = &snapshot{
		cells: s.board.Cells(),
		tray:  s.tray.clone(),
		score: s.score,
		phase: s.phase,
	}
}

func (s *Session) setScore(v int) {
	s.score = v
	if v <= s.best {
		return
	}
	s.best = v
	if s.store == nil {
		return
	}
	if err := s.store.SaveBest(v); err != nil {
		s.log.Warnf("failed to save best score: %v", err)
	}
}
