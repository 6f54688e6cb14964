package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// GameOverCard is shown when no tray piece fits anywhere on the board.
type GameOverCard struct {
	*MenuCard
	buttons []*MenuButton
	focus   int
}

// NewGameOverCard builds the card with Undo, Play Again and Menu buttons.
func NewGameOverCard(onUndo, onPlayAgain, onMenu func()) *GameOverCard {
	card := &GameOverCard{
		MenuCard: NewMenuCard("GAME OVER"),
		buttons: []*MenuButton{
			NewMenuButton("Undo", 'u', false, onUndo),
			NewMenuButton("Play Again", 'r', true, onPlayAgain),
			NewMenuButton("Menu", 'q', false, onMenu),
		},
	}
	card.SetFocused(true)
	card.setButtonFocus(1)
	return card
}

// SetScore fills in the final score and best score.
func (g *GameOverCard) SetScore(score, best int) {
	bestLine := CardLine{Label: "Best", Value: strconv.Itoa(best)}
	if score > 0 && score >= best {
		bestLine = CardLine{Label: "Best", Value: "new best!", Highlight: true}
	}
	g.SetLines(
		CardLine{Label: "Score", Value: strconv.Itoa(score)},
		bestLine,
	)
	g.setButtonFocus(1)
}

func (g *GameOverCard) setButtonFocus(i int) {
	n := len(g.buttons)
	g.focus = (i%n + n) % n
	for j, b := range g.buttons {
		b.SetFocused(j == g.focus)
	}
}

// Draw renders the card and its button row.
func (g *GameOverCard) Draw(screen tcell.Screen) {
	g.Box.DrawForSubclass(screen, g)
	if g.drawCard(screen) < 0 {
		return
	}

	x, y, width, height := g.GetInnerRect()
	total := -1
	for _, b := range g.buttons {
		total += b.Width() + 1
	}
	col := x + (width-total)/2
	row := y + height - 3
	for _, b := range g.buttons {
		col += b.Draw(screen, col, row) + 1
	}
}

// InputHandler moves focus with Tab and arrows and fires buttons.
func (g *GameOverCard) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return g.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyRight:
			g.setButtonFocus(g.focus + 1)
			return
		case tcell.KeyBacktab, tcell.KeyLeft:
			g.setButtonFocus(g.focus - 1)
			return
		}
		for _, b := range g.buttons {
			if b.HandleKey(event) {
				return
			}
		}
	})
}
