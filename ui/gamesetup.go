package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blockudoku-term/engine"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	help     *tview.TextView
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	base engine.GameConfig
	seed int64
}

// NewGameSetup creates a new game setup form. base supplies everything the
// form does not ask for.
func NewGameSetup(base engine.GameConfig, best int, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		base:     base,
		seed:     base.Seed,
	}

	form := tview.NewForm()

	seedText := ""
	if base.Seed != 0 {
		seedText = strconv.FormatInt(base.Seed, 10)
	}
	form.AddInputField("Seed (blank = random)", seedText, 20, func(text string, lastChar rune) bool {
		return (lastChar >= '0' && lastChar <= '9') || (lastChar == '-' && len(text) == 1)
	}, func(text string) {
		setup.seed = parseSeed(text)
	})

	form.AddButton("Start Game", func() {
		onStart(setup.Config())
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)
	setup.help = helpText
	setup.SetBest(best)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// SetBest updates the best score shown under the form.
func (s *GameSetupUI) SetBest(best int) {
	s.help.SetText("Tab/Shift+Tab: navigate fields  |  Enter: confirm  |  Best: " + strconv.Itoa(best))
}

// Config returns the game configuration currently entered.
func (s *GameSetupUI) Config() engine.GameConfig {
	cfg := s.base
	cfg.Seed = s.seed
	return cfg
}

// parseSeed reads a seed from the form. Anything unparsable means random.
func parseSeed(text string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
