package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"

	"blockudoku-term/engine"
)

var (
	cfgFile = "blockudoku-term/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor    int `json:"board"`
	BoardColorAlt int `json:"board_alt"`
	FilledColor   int `json:"filled"`
	ClearingColor int `json:"clearing"`
	LabelColor    int `json:"label"`
	CursorColorFG int `json:"cursor_fg"`
	CursorColorBG int `json:"cursor_bg"`
	GhostColor    int `json:"ghost"`
	InvalidColor  int `json:"invalid"`
}

type ConfigSymbols struct {
	Filled   rune `json:"filled"`
	Empty    rune `json:"empty"`
	Clearing rune `json:"clearing"`
	Ghost    rune `json:"ghost"`
}

type Theme struct {
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	FullWidthLetters     bool          `json:"fullwidth_letters"`
	ShadeBoxes           bool          `json:"shade_boxes"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// GameSettings are the tunables of a session.
type GameSettings struct {
	ClearDelayMs int   `json:"clear_delay_ms"`
	Seed         int64 `json:"seed"`
	CellPoints   int   `json:"cell_points"`
	ClearBonus   int   `json:"clear_bonus"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameSettings `json:"game"`
}

// InitConfig returns the defaults overlaid with the user's config file, if any.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Filled, s.Empty, s.Clearing, s.Ghost} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Game.ClearDelayMs < 0 {
		return &InvalidConfig{"clear_delay_ms must not be negative"}
	}
	if c.Game.CellPoints != 1 {
		return &InvalidConfig{"cell_points must be 1"}
	}
	if c.Game.ClearBonus <= 0 {
		return &InvalidConfig{"clear_bonus must be positive"}
	}
	return nil
}

// GameConfig converts the game settings for the engine.
func (c *Config) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		Seed: c.Game.Seed,
		Scoring: engine.Scoring{
			CellPoints: c.Game.CellPoints,
			ClearBonus: c.Game.ClearBonus,
		},
		ClearDelay: time.Duration(c.Game.ClearDelayMs) * time.Millisecond,
	}
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err = os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err = json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
