package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
)

func depths(cols, rows, d int) [][]int {
	out := make([][]int, cols)
	for c := range out {
		out[c] = make([]int, rows)
		for r := range out[c] {
			out[c][r] = d
		}
	}
	return out
}

func TestPlaceInitialLayout(t *testing.T) {
	g, err := core.NewGrid(4, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	layout := depths(4, 3, 1)
	layout[0][0] = 3
	layout[3][2] = 0

	playable, _ := core.NewCatalog(core.DefaultCatalog())
	if err := g.PlaceInitialLayout(layout, playable); err != nil {
		t.Fatalf("PlaceInitialLayout failed: %v", err)
	}

	if got := g.GridCount(); got != 13 {
		t.Errorf("GridCount() = %d, expected 13", got)
	}
	if got := g.Depth(core.P(0, 0)); got != 3 {
		t.Errorf("Depth(0,0) = %d, expected 3", got)
	}
	if g.Top(core.P(3, 2)) != nil {
		t.Error("cell with depth 0 is not empty")
	}
	if got := g.Total(); got != len(playable) {
		t.Errorf("Total() = %d, expected %d", got, len(playable))
	}
	if got := len(g.Reserve()); got != len(playable)-13 {
		t.Errorf("reserve holds %d tiles, expected %d", got, len(playable)-13)
	}

	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < g.Rows(); r++ {
			for _, tile := range g.Stack(core.P(c, r)) {
				if tile.Loc != core.InGrid || tile.Col != c || tile.Row != r {
					t.Errorf("tile %d at (%d,%d) reports loc=%d pos=(%d,%d)", tile.ID, c, r, tile.Loc, tile.Col, tile.Row)
				}
			}
		}
	}
}

func TestPlaceInitialLayoutErrors(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	pool, _ := core.NewCatalog(core.CatalogConfig{Variants: 1, Playable: 1})

	err := g.PlaceInitialLayout(depths(2, 2, 2), pool)
	if !errors.Is(err, core.ErrPoolTooSmall) {
		t.Errorf("8 cells from 6 tiles: err = %v, expected ErrPoolTooSmall", err)
	}

	err = g.PlaceInitialLayout(depths(3, 2, 1), pool)
	if !errors.Is(err, core.ErrBadLayout) {
		t.Errorf("wrong column count: err = %v, expected ErrBadLayout", err)
	}

	bad := depths(2, 2, 1)
	bad[1][1] = -1
	err = g.PlaceInitialLayout(bad, pool)
	if !errors.Is(err, core.ErrBadLayout) {
		t.Errorf("negative depth: err = %v, expected ErrBadLayout", err)
	}

	if _, err := core.NewGrid(0, 3); !errors.Is(err, core.ErrBadLayout) {
		t.Errorf("NewGrid(0, 3): err = %v, expected ErrBadLayout", err)
	}
	if _, err := core.NewGridFromRows([]string{"AB", "A"}); !errors.Is(err, core.ErrBadLayout) {
		t.Errorf("ragged rows: err = %v, expected ErrBadLayout", err)
	}
	if _, err := core.NewGridFromRows([]string{"AZ"}); !errors.Is(err, core.ErrBadLayout) {
		t.Errorf("unknown letter: err = %v, expected ErrBadLayout", err)
	}
}

func TestMoveAllToReserve(t *testing.T) {
	g := mustGrid(t, []string{"AB.", "CDE"})
	g.MoveAllToReserve()

	if got := g.GridCount(); got != 0 {
		t.Errorf("GridCount() = %d after MoveAllToReserve, expected 0", got)
	}
	reserve := g.Reserve()
	if len(reserve) != 5 {
		t.Fatalf("reserve holds %d tiles, expected 5", len(reserve))
	}
	for _, tile := range reserve {
		if tile.Loc != core.InReserve {
			t.Errorf("tile %d loc = %d, expected reserve", tile.ID, tile.Loc)
		}
	}
}

func TestTopOf(t *testing.T) {
	g := mustGrid(t, []string{"A.", "BC"})

	testCases := []struct {
		pos      core.Pos
		category core.Category
		empty    bool
	}{
		{core.P(0, 0), core.CategoryA, false},
		{core.P(1, 0), 0, true},
		{core.P(1, 1), core.CategoryC, false},
		{core.P(-1, 0), 0, true},
		{core.P(0, 2), 0, true},
	}
	for _, tc := range testCases {
		tile := g.Top(tc.pos)
		if tc.empty {
			if tile != nil {
				t.Errorf("Top(%v) = %v, expected empty", tc.pos, tile.Category)
			}
			continue
		}
		if tile == nil || tile.Category != tc.category {
			t.Errorf("Top(%v) = %v, expected %v", tc.pos, tile, tc.category)
		}
	}
}

func TestCellAtInvertsTileXY(t *testing.T) {
	g, _ := core.NewGrid(6, 5)
	g.SetLayout(core.Layout{OriginX: 3, OriginY: 2, CellW: 4, CellH: 2})

	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < g.Rows(); r++ {
			p, ok := g.CellAt(g.TileX(c)+1, g.TileY(r)+1)
			if !ok || p != core.P(c, r) {
				t.Errorf("CellAt(TileX(%d), TileY(%d)) = %v %v", c, r, p, ok)
			}
		}
	}

	if _, ok := g.CellAt(1, 1); ok {
		t.Error("CellAt above the origin reported a cell")
	}
	if _, ok := g.CellAt(3+4*6, 2); ok {
		t.Error("CellAt right of the grid reported a cell")
	}
}

func TestGridString(t *testing.T) {
	rows := []string{"AB.", "CDE"}
	g := mustGrid(t, rows)
	if got, expected := g.String(), "AB.\nCDE"; got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
