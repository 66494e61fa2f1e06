// saga is Lullaby Saga, a match-3 puzzle game for the terminal.
//
// Usage:
//
//	saga play              - Pick a level and play
//	saga play --level 3    - Play a level directly
//	saga list              - List levels and their records
//	saga levels check DIR  - Validate a directory of level files
//	saga records           - Show level stats and top scores
//	saga serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible deals
//	--config <path>   - Use a custom saga.yaml
//	--levels <dir>    - Load levels from a directory instead of the built-in set
//	--player <name>   - Player whose progress is used (default: local)
//	--db <path>       - Set records database path
//	--log             - Write debug logs to the XDG state directory
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-saga/internal/config"
	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/games/saga/levels"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagConfig    string
	flagLevelsDir string
	flagPlayer    string
	flagDBPath    string
	flagLog       bool
	flagNoRecords bool
	flagTheme     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "saga",
	Short: "Lullaby Saga - a match-3 puzzle in your terminal",
	Long: `Lullaby Saga is a match-3 puzzle game for the terminal. Select two
tiles to form a line or a shape of the same kind, earn the level's
objective before the turns run out, and unlock the next dream.

Available commands:
  play     - Pick a level and play
  list     - Show all levels and your progress
  levels   - Validate level files
  records  - View level stats and top scores
  serve    - Start SSH server for remote play

Examples:
  saga play
  saga play --level 2
  saga list --player alice
  saga levels check ./my-levels
  saga serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom saga.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", storage.DefaultPlayer, "Player name for progress and records")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&flagLog, "log", false, "Write debug logs to "+config.LogPath())
	rootCmd.PersistentFlags().BoolVar(&flagNoRecords, "no-records", false, "Play without saving results")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config and hands it, the level source and the logger to
// the saga package. The returned func closes the log file.
func setup() (config.SagaConfig, func(), error) {
	cfg, err := config.LoadSaga(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	saga.SetConfig(cfg)

	if flagLevelsDir != "" {
		saga.SetLevelLoader(levels.NewDirLoader(flagLevelsDir))
	}

	cleanup := func() {}
	if flagLog {
		path := config.LogPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return cfg, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cfg, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logger := log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "saga",
			Level:           log.DebugLevel,
		})
		saga.SetLogger(logger)
		cleanup = func() { f.Close() }
	}

	return cfg, cleanup, nil
}

// dbPath returns the --db flag or the configured records path.
func dbPath(cfg config.SagaConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.RecordsPath()
}

// openStore opens the records database. Play continues without one, so
// failures are only warned about.
func openStore(cfg config.SagaConfig) *storage.Store {
	if flagNoRecords {
		return nil
	}
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		return nil
	}
	return store
}
