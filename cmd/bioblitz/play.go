package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bioblitz/internal/config"
	"github.com/vovakirdan/bioblitz/internal/core"
	"github.com/vovakirdan/bioblitz/internal/games/bioblitz"
	"github.com/vovakirdan/bioblitz/internal/platform/tui"
	"github.com/vovakirdan/bioblitz/internal/registry"
	"github.com/vovakirdan/bioblitz/internal/storage"
)

var (
	flagSpeed string
	flagSize  string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a hotseat match",
	Long: `Start a two-player match on the given board variant (default: bioblitz).

Both players share the keyboard. Each colour keeps its own cursor, and the
cursor that moves is the one of the player whose turn it is.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Enter/Space       - Rotate the cell under the cursor
  P                 - Pause
  R                 - Rematch (after a win or while paused)
  B/Esc             - Leave the match
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot to ~/.bioblitz/screenshots

Speed options:
  slow     - 120ms between infection waves
  normal   - 50ms between infection waves
  fast     - 20ms between infection waves
  instant  - Infections resolve within a single tick

Size options (classic variant only, replaces any configured opening):
  small    - 7x14 board
  classic  - 11x22 board
  large    - 15x30 board

Without --speed a setup screen lets you pick the speed and colours.

Examples:
  bioblitz play
  bioblitz play bioblitz_large
  bioblitz play --speed instant --seed 42
  bioblitz play --size large
  bioblitz play --config ./opening.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Infection speed: slow, normal, fast, instant")
	playCmd.Flags().StringVar(&flagSize, "size", "", "Board size: "+sizeNames())
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "bioblitz"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bioblitz list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	// Size and speed are read when the match resets, which happens in tui.Run
	if cmd.Flags().Changed("size") {
		size, err := config.ParseSizePreset(flagSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bioblitz.SetBoardSize(size)
	}
	if cmd.Flags().Changed("speed") {
		speed, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bioblitz.SetSpeed(speed)
	} else {
		selection, quit, err := tui.RunSetup(game.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if quit || selection == nil {
			return
		}
		applySetup(selection)
	}

	store, recorder := openStore()
	outcome, runErr := tui.Run(game, recorder, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if outcome.SaveErr != nil {
		log.Warn("could not record match", "error", outcome.SaveErr)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the match database. Matches are still playable without
// one, so failures only produce a warning and a nil recorder.
func openStore() (*storage.Store, tui.ResultRecorder) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open match database", "path", flagDBPath, "error", err)
		return nil, nil
	}
	return store, store
}

// applySetup applies the choices made on the setup screen.
func applySetup(sel *tui.SetupSelection) {
	bioblitz.SetSpeed(sel.Speed)
	if theme, err := tui.ThemeByName(sel.Theme); err == nil {
		tui.SetTheme(theme)
	}
}

// sizeNames lists the board size presets for flag help.
func sizeNames() string {
	names := make([]string, len(config.SizePresets))
	for i, p := range config.SizePresets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
