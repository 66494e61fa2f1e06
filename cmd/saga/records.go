package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/platform/tui"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

var (
	flagRecordsLevel int
	flagRecordsClear bool
	flagRecordsTUI   bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show level stats and top scores",
	Long: `Display the player's wins, losses and best score per level, or the
top 10 scores of one level across all players.

Examples:
  saga records
  saga records --player alice
  saga records --level 2
  saga records --tui
  saga records --clear --player alice`,
	Args: cobra.NoArgs,
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLevel, "level", 0, "Show the top scores of this level")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete the player's results and progress")
	recordsCmd.Flags().BoolVar(&flagRecordsTUI, "tui", false, "Browse records interactively")
}

func runRecords(_ *cobra.Command, _ []string) {
	sagaCfg, cleanup, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	store, err := storage.Open(dbPath(sagaCfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRecordsClear:
		if err := store.ClearPlayer(flagPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing records: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared records of %s.\n", flagPlayer)

	case flagRecordsTUI:
		if err := tui.RunRecords(store, flagPlayer, 100, 30, tui.ThemeByName(flagTheme)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case flagRecordsLevel > 0:
		printTopScores(store, flagRecordsLevel)

	default:
		printLevelStats(store)
	}
}

func levelNames() map[int]string {
	names := map[int]string{}
	lvls, err := saga.Levels()
	if err != nil {
		return names
	}
	for _, l := range lvls {
		names[l.ID] = l.Name
	}
	return names
}

func printLevelStats(store *storage.Store) {
	stats, err := store.LevelStats(flagPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}
	latest, err := store.LatestLevel(flagPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Records - %s (levels up to %d unlocked)\n\n", flagPlayer, latest)
	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'saga play' to record your first dream!")
		return
	}

	names := levelNames()
	fmt.Printf("  %-3s  %-20s  %4s  %6s  %s\n", "ID", "Name", "Wins", "Losses", "Best")
	fmt.Printf("  %-3s  %-20s  %4s  %6s  %s\n", "--", "----", "----", "------", "----")
	for _, st := range stats {
		fmt.Printf("  %-3d  %-20s  %4d  %6d  %d\n", st.LevelID, names[st.LevelID], st.Wins, st.Losses, st.BestScore)
	}
}

func printTopScores(store *storage.Store, levelID int) {
	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := fmt.Sprintf("Level %d", levelID)
	if name, ok := levelNames()[levelID]; ok {
		title = fmt.Sprintf("%d. %s", levelID, name)
	}
	fmt.Printf("Top Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-14s  %-10s  %-6s  %s\n", "Rank", "Player", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-14s  %-10s  %-6s  %s\n", "----", "------", "-----", "------", "----")
	for i, r := range scores {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-14s  %-10d  %-6s  %s\n", i+1, r.Player, r.Score, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestScore(flagPlayer, levelID); err == nil {
		fmt.Printf("\nYour best: %d\n", best)
	}
}
