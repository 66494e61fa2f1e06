package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-saga/internal/config"
	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Work with level files",
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate level files",
	Long: `Parse every level file in a directory and deal each level with the
configured tile pool. Without a directory the built-in levels are checked.

Examples:
  saga levels check
  saga levels check ./my-levels
  saga levels check ./my-levels --config ./big-pool.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevelsCheck,
}

func init() {
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevelsCheck(_ *cobra.Command, args []string) {
	cfg, err := config.LoadSaga(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loader := levels.Embedded()
	source := "built-in levels"
	switch {
	case len(args) == 1:
		loader = levels.NewDirLoader(args[0])
		source = args[0]
	case flagLevelsDir != "":
		loader = levels.NewDirLoader(flagLevelsDir)
		source = flagLevelsDir
	}

	opts := core.Options{
		Seed:          flagSeed,
		PointsPerTile: cfg.Scoring.PointsPerTile,
		Catalog: core.CatalogConfig{
			Variants: cfg.Tiles.VariantsPerCategory,
			Playable: cfg.Tiles.PlayablePerVariant,
			Filler:   cfg.Tiles.FillerPerVariant,
		},
		Logger: log.New(io.Discard),
	}

	ok, problems, err := loader.Check(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Checked %s\n\n", source)
	for _, l := range ok {
		ls := l.Spec()
		cols, rows := ls.Size()
		fmt.Printf("  ok    %3d  %-20s  %dx%d, %d tiles\n", l.ID, l.Name, cols, rows, ls.TileCount())
	}
	for _, p := range problems {
		fmt.Printf("  FAIL  %s\n", p.Error())
	}
	fmt.Println()

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d level files cannot be played\n", len(problems), len(ok)+len(problems))
		os.Exit(1)
	}
	fmt.Printf("%d levels ok\n", len(ok))
}
