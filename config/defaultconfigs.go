package config

import "blockudoku-term/engine"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground: true,
		FullWidthLetters:     false,
		ShadeBoxes:           true,
		Colors: ConfigColors{
			BoardColor:    236,
			BoardColorAlt: 238,
			FilledColor:   33,
			ClearingColor: 229,
			LabelColor:    245,
			CursorColorFG: 15,
			CursorColorBG: 4,
			GhostColor:    70,
			InvalidColor:  160,
		},
		Symbols: ConfigSymbols{
			Filled:   '█',
			Empty:    '·',
			Clearing: '▒',
			Ghost:    '▓',
		},
	}

	game := engine.DefaultConfig()
	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			ClearDelayMs: int(game.ClearDelay.Milliseconds()),
			Seed:         game.Seed,
			CellPoints:   game.Scoring.CellPoints,
			ClearBonus:   game.Scoring.ClearBonus,
		},
	}
}
