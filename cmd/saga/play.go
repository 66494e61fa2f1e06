package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/platform/tui"
	"github.com/vovakirdan/tui-saga/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lullaby Saga",
	Long: `Start the level picker, or a level directly with --level.

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Space/Enter/Click - Select a tile
  U                 - Undo the last move
  N                 - Next level (after a win)
  R                 - Replay the level
  P                 - Pause
  B/Esc             - Back to the menu (when paused or the level is over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Debug keys (when debug.enabled is set in the config):
  C   - Play a random matching move
  X   - Reshuffle the board
  F1  - Win the level
  F2  - Lose the level

Examples:
  saga play
  saga play --level 3
  saga play --seed 42 --no-records
  saga play --levels ./my-levels --config ./saga.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start this level directly, skipping the menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	sagaCfg, cleanup, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
	}

	if !registry.Exists(saga.GameID) {
		fmt.Fprintf(os.Stderr, "Error: game %q is not registered\n", saga.GameID)
		os.Exit(1)
	}

	store := openStore(sagaCfg)

	var runErr error
	if flagLevel > 0 {
		var game registry.Game
		game, runErr = registry.CreateAt(saga.GameID, flagLevel)
		if runErr == nil {
			runErr = tui.Run(game, store, cfg, tui.ThemeByName(flagTheme))
		}
	} else {
		runErr = tui.RunSession(store, cfg, tui.ThemeByName(flagTheme))
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
