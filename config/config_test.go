package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockudoku-term/engine"
)

func TestDefaultConfigMatchesEngine(t *testing.T) {
	cfg := DefaultConfig
	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.DefaultConfig(), cfg.GameConfig())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"control rune", func(c *Config) { c.Theme.Symbols.Filled = '\t' }},
		{"c1 rune", func(c *Config) { c.Theme.Symbols.Ghost = 130 }},
		{"negative delay", func(c *Config) { c.Game.ClearDelayMs = -1 }},
		{"negative bonus", func(c *Config) { c.Game.ClearBonus = -5 }},
		{"zero bonus", func(c *Config) { c.Game.ClearBonus = 0 }},
		{"zero cell points", func(c *Config) { c.Game.CellPoints = 0 }},
		{"double cell points", func(c *Config) { c.Game.CellPoints = 2 }},
	}
	def := DefaultConfig
	require.NoError(t, def.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.modify(&cfg)
			var invalid *InvalidConfig
			assert.ErrorAs(t, cfg.Validate(), &invalid)
		})
	}
}

func TestGameConfig(t *testing.T) {
	cfg := DefaultConfig
	cfg.Game = GameSettings{ClearDelayMs: 500, Seed: 42, CellPoints: 1, ClearBonus: 5}
	gc := cfg.GameConfig()
	assert.Equal(t, int64(42), gc.Seed)
	assert.Equal(t, 500*time.Millisecond, gc.ClearDelay)
	assert.Equal(t, engine.Scoring{CellPoints: 1, ClearBonus: 5}, gc.Scoring)
}

func TestReadAndSaveCfgFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig
	cfg.Game.Seed = 99
	cfg.Theme.Symbols.Filled = '#'
	require.NoError(t, saveCfgFile(path, &cfg, 0644))

	loaded := DefaultConfig
	require.NoError(t, readCfgFile(path, &loaded))
	assert.Equal(t, cfg, loaded)
}

func TestReadCfgFilePartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game": {"clear_bonus": 25}}`), 0644))

	loaded := DefaultConfig
	require.NoError(t, readCfgFile(path, &loaded))
	assert.Equal(t, 25, loaded.Game.ClearBonus)
	assert.Equal(t, DefaultConfig.Game.CellPoints, loaded.Game.CellPoints)
	assert.Equal(t, DefaultConfig.Theme, loaded.Theme)
}

func TestReadCfgFileErrors(t *testing.T) {
	cfg := DefaultConfig
	assert.NoError(t, readCfgFile(filepath.Join(t.TempDir(), "missing.json"), &cfg))

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	var invalid *InvalidConfig
	assert.ErrorAs(t, readCfgFile(path, &cfg), &invalid)
}
