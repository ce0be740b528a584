package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bioblitz/internal/registry"
	"github.com/vovakirdan/bioblitz/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recorded matches for a variant",
	Long: `Display the most recent matches, the win tally and averages for a
board variant (default: bioblitz).

Examples:
  bioblitz history
  bioblitz history bioblitz_small --limit 20
  bioblitz history bioblitz_large --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded matches of the variant")
}

func runHistory(_ *cobra.Command, args []string) error {
	gameID := "bioblitz"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'bioblitz list' to see available variants)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearMatches(gameID); err != nil {
			return fmt.Errorf("clearing matches: %w", err)
		}
		fmt.Printf("Cleared match history for %s.\n", game.Title())
		return nil
	}

	matches, err := store.RecentMatches(gameID, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Printf("Match History - %s\n", game.Title())
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bioblitz play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-6s  %-9s  %-5s  %-6s  %s\n", "Winner", "Green-Red", "Moves", "Time", "Date")
	fmt.Printf("  %-6s  %-9s  %-5s  %-6s  %s\n", "------", "---------", "-----", "----", "----")

	for _, m := range matches {
		score := fmt.Sprintf("%d-%d", m.GreenScore, m.RedScore)
		length := time.Duration(m.Duration) * time.Second
		fmt.Printf("  %-6s  %-9s  %-5d  %-6s  %s\n",
			m.Winner, score, m.Moves, length.String(), m.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	fmt.Println()
	fmt.Printf("Wins: green %d, red %d (%d played)\n", stats.Wins.Green, stats.Wins.Red, stats.MatchesCount)
	fmt.Printf("Best winning colony: %d cells\n", stats.BestScore)
	fmt.Printf("Average: %.1f moves, %.0fs per match\n", stats.AvgMoves, stats.AvgDuration)
	return nil
}
