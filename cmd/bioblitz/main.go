// bioblitz is a two-player territory game played in the terminal. Each
// player rotates arrow cells to infect the opponent's colony.
//
// Usage:
//
//	bioblitz list               - List board variants
//	bioblitz play [variant]     - Play a hotseat match
//	bioblitz menu               - Pick variants interactively
//	bioblitz serve              - Start SSH server for remote play
//	bioblitz history [variant]  - Show recorded matches
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible boards
//	--db <path>      - Set database path (default: ~/.bioblitz/matches.db)
//	--config <path>  - Load board settings from a YAML file
//	--theme <name>   - Colour theme: default, high-contrast, pastel
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bioblitz/internal/games/bioblitz"
	"github.com/vovakirdan/bioblitz/internal/platform/tui"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagTheme  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bioblitz",
	Short: "BioBlitz - Grow your colony in the terminal",
	Long: `BioBlitz is a two-player hotseat game. The board is a grid of arrow
cells owned by Green, Red or nobody. On your turn you rotate one of your
cells clockwise; if it then points at a neighbour of another colour, that
neighbour is infected and the infection spreads on its own. The colony
that wipes out the other wins.

Available commands:
  list     - Show all board variants
  play     - Play a match directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  history  - View recorded matches

Examples:
  bioblitz list
  bioblitz play
  bioblitz play bioblitz_small --speed fast
  bioblitz menu --theme pastel
  bioblitz serve --ssh :2222
  bioblitz history bioblitz`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		theme, err := tui.ThemeByName(flagTheme)
		if err != nil {
			return err
		}
		tui.SetTheme(theme)
		bioblitz.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	log.SetReportTimestamp(false)

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bioblitz/matches.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Colour theme: default, high-contrast, pastel")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
