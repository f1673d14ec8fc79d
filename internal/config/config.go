package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the app reads from the environment. Defaults
// reproduce the classic 16x16 board with 40 mines.
type Config struct {
	Rows      int `env:"MINESWEEPER_ROWS" envDefault:"16"`
	Cols      int `env:"MINESWEEPER_COLS" envDefault:"16"`
	Mines     int `env:"MINESWEEPER_MINES" envDefault:"40"`
	MaxScores int `env:"MINESWEEPER_MAX_SCORES" envDefault:"10"`

	// Difficulty, when set, overrides Rows/Cols/Mines with a named preset.
	Difficulty string `env:"MINESWEEPER_DIFFICULTY"`
}

// Preset is a named board difficulty.
type Preset struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Mines int    `json:"mines"`
}

// Presets returns the standard difficulty levels.
func Presets() []Preset {
	return []Preset{
		{Name: "beginner", Rows: 9, Cols: 9, Mines: 10},
		{Name: "intermediate", Rows: 16, Cols: 16, Mines: 40},
		{Name: "expert", Rows: 16, Cols: 30, Mines: 99},
	}
}

// PresetByName looks up a preset, reporting whether it exists.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Load parses the environment and validates the resulting board shape.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Difficulty != "" {
		preset, ok := PresetByName(cfg.Difficulty)
		if !ok {
			return Config{}, fmt.Errorf("unknown difficulty %q", cfg.Difficulty)
		}
		cfg.Rows, cfg.Cols, cfg.Mines = preset.Rows, preset.Cols, preset.Mines
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the board shape invariants shared with the game core.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.Mines < 0 || c.Mines >= c.Rows*c.Cols {
		return fmt.Errorf("mine count must be in [0, %d), got %d", c.Rows*c.Cols, c.Mines)
	}
	if c.MaxScores <= 0 {
		return fmt.Errorf("max scores must be positive, got %d", c.MaxScores)
	}
	return nil
}
