// Package config provides YAML-based configuration loading for the
// platform. Gameplay rules (grid size, gate intervals, scoring) are fixed
// engine constants; the config covers the render theme only.
package config

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Render RenderConfig `yaml:"render"`
}

// RenderConfig defines how the playfield is drawn.
type RenderConfig struct {
	Block    string `yaml:"block"`     // Rune used for locked cells
	Active   string `yaml:"active"`    // Rune used for the falling piece
	GridDots bool   `yaml:"grid_dots"` // Draw dots on empty playfield cells
}
