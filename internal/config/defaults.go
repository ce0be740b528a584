package config

import (
	_ "embed"
)

//go:embed defaults/bioblitz.yaml
var defaultBioBlitzYAML []byte

// DefaultBioBlitzConfig returns the classic 11x22 configuration.
func DefaultBioBlitzConfig() BioBlitzConfig {
	return BioBlitzConfig{
		Board: BoardConfig{
			Rows: 11,
			Cols: 22,
		},
		Infection: InfectionConfig{
			DelayMS: 50,
		},
		Players: PlayersConfig{
			GreenName: "Green",
			RedName:   "Red",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bioblitz", "bioblitz_small", "bioblitz_large":
		return defaultBioBlitzYAML
	default:
		return nil
	}
}
