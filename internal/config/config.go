// Package config provides YAML-based configuration loading for BioBlitz:
// board size, infection timing, player names and an optional fixed opening.
package config

import "time"

// BioBlitzConfig contains all configuration for a BioBlitz match.
type BioBlitzConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Infection InfectionConfig `yaml:"infection"`
	Players   PlayersConfig   `yaml:"players"`

	// Opening is an optional fixed starting layout in text form, one row per
	// entry. When set it replaces random seeding and decides the board size.
	Opening []string `yaml:"opening,omitempty"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// InfectionConfig defines cascade timing.
type InfectionConfig struct {
	DelayMS int `yaml:"delay_ms"` // Delay before an infected cell spreads further
}

// Delay returns DelayMS as a duration.
func (c InfectionConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// PlayersConfig defines the names shown for each colour.
type PlayersConfig struct {
	GreenName string `yaml:"green_name"`
	RedName   string `yaml:"red_name"`
}

// Board size limits accepted by Validate.
const (
	MinBoardSide = 2
	MaxBoardRows = 40
	MaxBoardCols = 80
)
