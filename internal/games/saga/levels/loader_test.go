package levels_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/levels"
)

func TestEmbeddedLevels(t *testing.T) {
	all, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("embedded levels = %d, expected 10", len(all))
	}

	playable := len(core.Categories) * core.DefaultCatalog().Playable
	for i, lvl := range all {
		if lvl.ID != i+1 {
			t.Errorf("level %d has id %d", i+1, lvl.ID)
		}
		ls := lvl.Spec()
		if n := ls.TileCount(); n == 0 || n > playable {
			t.Errorf("level %d needs %d tiles, catalogue has %d", lvl.ID, n, playable)
		}
		if ls.Turns <= 0 {
			t.Errorf("level %d has %d turns", lvl.ID, ls.Turns)
		}
	}

	three := all[2].Spec()
	if !three.RaisedEdgeFloor {
		t.Error("level 3 does not raise its edge floor")
	}
	cols, rows := three.Size()
	if three.Depths[0][rows-1] != 0 || three.Depths[cols-1][rows-1] != 0 {
		t.Error("level 3 bottom corners are not empty")
	}
}

func TestEmbeddedLevelsBuildEngines(t *testing.T) {
	all, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	for _, lvl := range all {
		e, err := core.NewEngine(lvl.Spec(), core.Options{Seed: int64(lvl.ID)})
		if err != nil {
			t.Errorf("level %d: NewEngine failed: %v", lvl.ID, err)
			continue
		}
		if _, ok := core.FindMatch(e.Grid()); ok {
			t.Errorf("level %d dealt with a match on the board", lvl.ID)
		}
	}
}

func TestLoadByID(t *testing.T) {
	l := levels.Embedded()

	lvl, err := l.LoadByID(7)
	if err != nil {
		t.Fatalf("LoadByID(7) failed: %v", err)
	}
	if lvl.Turns != 50 || lvl.Objective != 173360 || lvl.Clouds != 52 {
		t.Errorf("level 7 = turns %d objective %d clouds %d", lvl.Turns, lvl.Objective, lvl.Clouds)
	}

	if _, err := l.LoadByID(99); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("LoadByID(99): err = %v, expected ErrLevelNotFound", err)
	}
}

func TestListIDs(t *testing.T) {
	ids, err := levels.Embedded().ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("ids[%d] = %d, expected %d", i, id, i+1)
		}
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":       "id: 2\nturns: 3\nobjective: 10\ngrid:\n  - \"111\"\n  - \"111\"\n",
		"nested/a.yml": "id: 1\nname: First\nturns: 4\nobjective: 20\ngrid:\n  - \"12\"\n",
		"broken.yaml":  "id: 3\nturns: 0\ngrid: []\n",
		"notes.txt":    "not a level",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	all, err := levels.NewDirLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("loaded %d levels, expected 2", len(all))
	}
	if all[0].ID != 1 || all[0].Name != "First" {
		t.Errorf("first level = %d %q", all[0].ID, all[0].Name)
	}
	if all[1].Name != "Level 2" {
		t.Errorf("unnamed level name = %q, expected %q", all[1].Name, "Level 2")
	}
	cols, rows := all[1].Spec().Size()
	if cols != 3 || rows != 2 {
		t.Errorf("level 2 size = %dx%d, expected 3x2", cols, rows)
	}
}

func TestCheckReportsUnplayableFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"01.yaml":     "id: 1\nturns: 3\nobjective: 10\ngrid:\n  - \"111\"\n  - \"111\"\n",
		"02.yaml":     "id: 2\nturns: 3\nobjective: 10\ngrid:\n  - \"222\"\n  - \"222\"\n  - \"222\"\n",
		"dup.yaml":    "id: 1\nturns: 5\nobjective: 10\ngrid:\n  - \"11\"\n",
		"broken.yaml": "id: 4\nturns: 0\ngrid: []\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	opts := core.Options{Seed: 1, Catalog: core.CatalogConfig{Variants: 1, Playable: 2, Filler: 0}}
	ok, problems, err := levels.NewDirLoader(dir).Check(opts)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(ok) != 1 || ok[0].ID != 1 {
		t.Errorf("playable levels = %v, expected only level 1", ok)
	}

	byFile := map[string]error{}
	for _, p := range problems {
		byFile[p.File] = p.Err
	}
	if len(byFile) != 3 {
		t.Fatalf("problems = %v, expected 3", problems)
	}
	if !errors.Is(byFile["02.yaml"], core.ErrPoolTooSmall) {
		t.Errorf("02.yaml error = %v, expected ErrPoolTooSmall", byFile["02.yaml"])
	}
	if byFile["dup.yaml"] == nil || byFile["broken.yaml"] == nil {
		t.Errorf("missing duplicate or parse problem: %v", problems)
	}
}
