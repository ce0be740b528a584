package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bioblitz/internal/platform/tui"
	"github.com/vovakirdan/bioblitz/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start BioBlitz with a variant picker menu",
	Long: `Start BioBlitz in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
Leaving a match with B or Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - Match history
  Q            - Quit

Examples:
  bioblitz menu
  bioblitz menu --fps 30
  bioblitz menu --db ./matches.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, recorder := openStore()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
			continue
		}

		selection, quit, err := tui.RunSetup(game.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if quit {
			break
		}
		if selection == nil {
			continue // Back to menu
		}
		applySetup(selection)

		// Fresh seed for each match unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		outcome, err := tui.Run(game, recorder, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		}
		if outcome.SaveErr != nil {
			log.Warn("could not record match", "error", outcome.SaveErr)
		}
		if !outcome.Back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
