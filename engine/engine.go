// Package engine defines the interface between the puzzle engine and the
// presentation layer.
package engine

import (
	"time"

	"blockudoku-term/types"
)

// GameEngine is everything the presentation layer may call. All methods must
// be called from a single goroutine and must not be re-entered from the
// callbacks.
type GameEngine interface {
	// State returns a copy of the board, tray, score and phase.
	State() types.GameState

	// CanPlace reports whether unused tray piece i fits with its origin at
	// (row, col). It never changes state.
	CanPlace(piece, row, col int) bool

	// Place commits tray piece i at (row, col). A rejected placement returns
	// an error and leaves the game untouched.
	Place(piece, row, col int) (types.PlaceResult, error)

	// AnyMovesLeft reports whether some unused piece fits anywhere.
	AnyMovesLeft() bool

	// Undo restores the state from before the last placement.
	Undo() error

	// Reset starts a new game, keeping the best score.
	Reset()

	// SettleClears turns the cells of clear generation gen from Clearing to
	// Empty. It returns false when gen is stale.
	SettleClears(gen int) bool

	// OnPlace registers a callback run after every committed placement.
	OnPlace(func(result types.PlaceResult, state types.GameState))

	// OnGameOver registers a callback run when no piece can be placed.
	OnGameOver(func(score int))
}

// BestScoreStore persists the best score between sessions.
type BestScoreStore interface {
	LoadBest() (int, error)
	SaveBest(score int) error
}

// Scoring is the points policy. A placement earns CellPoints for every cell
// it fills plus ClearBonus*n*n for n rows, columns and boxes cleared at once.
type Scoring struct {
	CellPoints int `json:"cell_points"`
	ClearBonus int `json:"clear_bonus"`
}

// Points returns the score delta for one placement.
func (s Scoring) Points(cells, clears int) int {
	return cells*s.CellPoints + s.ClearBonus*clears*clears
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Seed       int64         // 0 picks a seed from the clock
	Scoring    Scoring       // points policy
	ClearDelay time.Duration // how long cleared cells stay in the Clearing state on screen
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Seed: 0,
		Scoring: Scoring{
			CellPoints: 1,
			ClearBonus: 10,
		},
		ClearDelay: 280 * time.Millisecond,
	}
}
