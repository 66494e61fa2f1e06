package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/registry"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level with its turns, objective and the player's progress.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	sagaCfg, cleanup, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	lvls, err := saga.Levels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	latest := lvls[len(lvls)-1].ID
	stats := map[int]storage.LevelStat{}
	if store := openStore(sagaCfg); store != nil {
		if l, err := store.LatestLevel(flagPlayer); err == nil {
			latest = l
		}
		if list, err := store.LevelStats(flagPlayer); err == nil {
			for _, st := range list {
				stats[st.LevelID] = st
			}
		}
		store.Close()
	}

	title := saga.GameID
	for _, g := range registry.List() {
		if g.ID == saga.GameID {
			title = g.Title
		}
	}
	fmt.Printf("%s - levels for %s:\n\n", title, flagPlayer)
	fmt.Printf("  %-3s  %-20s  %5s  %9s  %6s  %s\n", "ID", "Name", "Turns", "Objective", "Clouds", "Status")
	fmt.Printf("  %-3s  %-20s  %5s  %9s  %6s  %s\n", "--", "----", "-----", "---------", "------", "------")

	for _, l := range lvls {
		status := "open"
		st, played := stats[l.ID]
		switch {
		case l.ID > latest:
			status = "locked"
		case st.Wins > 0:
			status = fmt.Sprintf("won (best %d)", st.BestScore)
		case played:
			status = fmt.Sprintf("tried (best %d)", st.BestScore)
		}
		fmt.Printf("  %-3d  %-20s  %5d  %9d  %6d  %s\n", l.ID, l.Name, l.Turns, l.Objective, l.Clouds, status)
	}

	fmt.Println()
	fmt.Println("Run 'saga play' to pick a level.")
}
