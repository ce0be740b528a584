package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadBioBlitz loads BioBlitz configuration.
// Search order: customPath -> ~/.bioblitz/configs/bioblitz.yaml -> ./configs/bioblitz.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error. Files
// found by searching are skipped silently when broken.
func LoadBioBlitz(customPath string) (BioBlitzConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("bioblitz.yaml"), filepath.Join("configs", "bioblitz.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBioBlitzConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("bioblitz"), &cfg); err != nil || cfg.Validate() != nil {
		return DefaultBioBlitzConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads one YAML file over the hardcoded defaults, so omitted keys
// keep their default values.
func loadFile(path string) (BioBlitzConfig, error) {
	cfg := DefaultBioBlitzConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bioblitz", "configs", filename)
}

// Validate checks board dimensions and timing. An opening replaces the
// configured board size: it must fit the size limits and give both colours a
// cell. Token syntax is checked by the game when the opening is parsed.
func (c BioBlitzConfig) Validate() error {
	if len(c.Opening) > 0 {
		if err := c.validateOpening(); err != nil {
			return err
		}
		return c.validateTiming()
	}
	if c.Board.Rows < MinBoardSide || c.Board.Cols < MinBoardSide {
		return fmt.Errorf("%w: board must be at least %dx%d, got %dx%d",
			ErrInvalidConfig, MinBoardSide, MinBoardSide, c.Board.Rows, c.Board.Cols)
	}
	if c.Board.Rows > MaxBoardRows || c.Board.Cols > MaxBoardCols {
		return fmt.Errorf("%w: board must be at most %dx%d, got %dx%d",
			ErrInvalidConfig, MaxBoardRows, MaxBoardCols, c.Board.Rows, c.Board.Cols)
	}
	return c.validateTiming()
}

// validateOpening checks the shape and owners of the opening lines. A single
// row is allowed as long as the board has two cells.
func (c BioBlitzConfig) validateOpening() error {
	rows, cols := 0, 0
	green, red := false, false
	for _, line := range c.Opening {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		rows++
		cols = max(cols, len(tokens))
		for _, tok := range tokens {
			switch tok[0] {
			case 'g', 'G':
				green = true
			case 'r', 'R':
				red = true
			}
		}
	}

	if rows*cols < 2 {
		return fmt.Errorf("%w: opening needs at least two cells", ErrInvalidConfig)
	}
	if rows > MaxBoardRows || cols > MaxBoardCols {
		return fmt.Errorf("%w: opening must be at most %dx%d, got %dx%d",
			ErrInvalidConfig, MaxBoardRows, MaxBoardCols, rows, cols)
	}
	if !green || !red {
		return fmt.Errorf("%w: opening needs at least one green and one red cell", ErrInvalidConfig)
	}
	return nil
}

func (c BioBlitzConfig) validateTiming() error {
	if c.Infection.DelayMS < 0 {
		return fmt.Errorf("%w: infection delay must not be negative, got %dms", ErrInvalidConfig, c.Infection.DelayMS)
	}
	return nil
}

// SizePreset names a standard board size.
type SizePreset string

const (
	SizeSmall   SizePreset = "small"
	SizeClassic SizePreset = "classic"
	SizeLarge   SizePreset = "large"
)

// SizePresets lists the presets from smallest to largest.
var SizePresets = []SizePreset{SizeSmall, SizeClassic, SizeLarge}

// Dimensions returns the rows and columns of the preset.
func (p SizePreset) Dimensions() (rows, cols int, ok bool) {
	switch p {
	case SizeSmall:
		return 7, 14, true
	case SizeClassic:
		return 11, 22, true
	case SizeLarge:
		return 15, 30, true
	default:
		return 0, 0, false
	}
}

// ParseSizePreset converts a preset name, as given on the command line.
func ParseSizePreset(name string) (SizePreset, error) {
	p := SizePreset(name)
	if _, _, ok := p.Dimensions(); !ok {
		return "", fmt.Errorf("%w: unknown board size %q (want small, classic or large)", ErrInvalidConfig, name)
	}
	return p, nil
}

// ApplySizePreset overrides the board dimensions with a preset.
// An empty or unknown preset leaves the config unchanged.
func ApplySizePreset(cfg *BioBlitzConfig, preset SizePreset) {
	rows, cols, ok := preset.Dimensions()
	if !ok {
		return
	}
	cfg.Board.Rows = rows
	cfg.Board.Cols = cols
}

// SpeedPreset names a standard infection delay.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}

// DelayMS returns the infection delay of the preset in milliseconds.
func (p SpeedPreset) DelayMS() (int, bool) {
	switch p {
	case SpeedSlow:
		return 120, true
	case SpeedNormal:
		return 50, true
	case SpeedFast:
		return 20, true
	case SpeedInstant:
		return 0, true
	default:
		return 0, false
	}
}

// ParseSpeedPreset converts a preset name, as given on the command line.
func ParseSpeedPreset(name string) (SpeedPreset, error) {
	p := SpeedPreset(name)
	if _, ok := p.DelayMS(); !ok {
		return "", fmt.Errorf("%w: unknown speed %q (want slow, normal, fast or instant)", ErrInvalidConfig, name)
	}
	return p, nil
}

// ApplySpeedPreset overrides the infection delay with a preset.
// An empty or unknown preset leaves the config unchanged.
func ApplySpeedPreset(cfg *BioBlitzConfig, preset SpeedPreset) {
	if ms, ok := preset.DelayMS(); ok {
		cfg.Infection.DelayMS = ms
	}
}
