package saga

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-saga/internal/config"
	platformcore "github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
)

func testConfig() platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		Seed:    12345,
		ScreenW: 100,
		ScreenH: 30,
	}
}

func newTestGame(t *testing.T, level int) *Game {
	t.Helper()
	g := New()
	g.cfg.Debug.Enabled = true
	if level > 0 {
		g.SelectLevel(level)
	}
	g.Reset(testConfig())
	if g.Engine() == nil {
		t.Fatalf("Reset() loaded no level: %v", g.loadErr)
	}
	return g
}

func input(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// settle steps until the deal-in animation finishes.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if !g.Engine().TilesMoving() {
			return
		}
		g.Step(input())
	}
	t.Fatal("tiles never stopped moving")
}

func TestResetStartsFirstLevel(t *testing.T) {
	g := newTestGame(t, 0)

	st := g.State()
	if st.Level != 1 {
		t.Errorf("Level = %d, expected 1", st.Level)
	}
	if st.Turns != 6 {
		t.Errorf("Turns = %d, expected 6", st.Turns)
	}
	if st.Score != 0 || st.GameOver {
		t.Errorf("fresh level state = %+v", st)
	}
	if g.Cursor() != core.P(3, 3) {
		t.Errorf("Cursor = %v, expected (3,3)", g.Cursor())
	}
}

func TestSelectLevel(t *testing.T) {
	g := newTestGame(t, 3)
	if st := g.State(); st.Level != 3 || st.Turns != 18 {
		t.Errorf("state = %+v, expected level 3 with 18 turns", st)
	}
	if !g.Engine().Level().RaisedEdgeFloor {
		t.Error("level 3 should raise the edge floor")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 2)
	g2 := newTestGame(t, 2)
	settle(t, g1)
	settle(t, g2)

	for i := 0; i < 3; i++ {
		g1.Step(input(platformcore.ActionCombo))
		g2.Step(input(platformcore.ActionCombo))
		settle(t, g1)
		settle(t, g2)
	}

	s1 := g1.Engine().Snapshot()
	s2 := g2.Engine().Snapshot()
	if s1.Score != s2.Score {
		t.Errorf("Score mismatch: %d vs %d", s1.Score, s2.Score)
	}
	if g1.Engine().Grid().String() != g2.Engine().Grid().String() {
		t.Errorf("boards differ:\n%s\nvs\n%s", g1.Engine().Grid(), g2.Engine().Grid())
	}
}

func TestCursorClamps(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)

	for i := 0; i < 10; i++ {
		g.Step(input(platformcore.ActionLeft, platformcore.ActionUp))
	}
	if g.Cursor() != core.P(0, 0) {
		t.Errorf("Cursor = %v, expected (0,0)", g.Cursor())
	}
	for i := 0; i < 10; i++ {
		g.Step(input(platformcore.ActionRight, platformcore.ActionDown))
	}
	if g.Cursor() != core.P(6, 6) {
		t.Errorf("Cursor = %v, expected (6,6)", g.Cursor())
	}
}

func TestClickSelectsCell(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)

	f := platformcore.NewInputFrame()
	f.AddClick(g.board.X+g.cellW+1, g.board.Y+2*g.cellH)
	g.Step(f)

	if g.Cursor() != core.P(1, 2) {
		t.Errorf("Cursor = %v, expected (1,2)", g.Cursor())
	}
	snap := g.Engine().Snapshot()
	if !snap.HasSelected || snap.Selected != core.P(1, 2) {
		t.Errorf("selection = %v (%v), expected (1,2)", snap.Selected, snap.HasSelected)
	}

	// Clicks outside the board do nothing.
	f = platformcore.NewInputFrame()
	f.AddClick(0, 0)
	g.Step(f)
	if g.Cursor() != core.P(1, 2) {
		t.Errorf("off-board click moved the cursor to %v", g.Cursor())
	}
}

func TestForceWinEndsOnceAndAdvances(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)

	res := g.Step(input(platformcore.ActionForceWin))
	if !res.Ended {
		t.Fatal("StepResult.Ended = false on the winning tick")
	}
	if !res.State.GameOver || !res.State.Won || res.State.Level != 1 {
		t.Errorf("state = %+v, expected level 1 won", res.State)
	}

	res = g.Step(input())
	if res.Ended {
		t.Error("Ended reported twice")
	}

	g.Step(input(platformcore.ActionNext))
	if st := g.State(); st.Level != 2 || st.GameOver {
		t.Errorf("after next: state = %+v, expected level 2 in play", st)
	}
}

func TestForceLossAndRestart(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)

	res := g.Step(input(platformcore.ActionForceLoss))
	if !res.Ended || res.State.Won {
		t.Fatalf("state = %+v, expected a loss", res.State)
	}

	// Next only follows a win.
	g.Step(input(platformcore.ActionNext))
	if st := g.State(); st.Level != 1 || !st.GameOver {
		t.Errorf("next after loss: state = %+v", st)
	}

	g.Step(input(platformcore.ActionRestart))
	if st := g.State(); st.Level != 1 || st.GameOver || st.Turns != 6 {
		t.Errorf("after restart: state = %+v, expected fresh level 1", st)
	}
}

func TestDebugKeysDisabled(t *testing.T) {
	g := newTestGame(t, 1)
	g.cfg.Debug.Enabled = false
	settle(t, g)

	g.Step(input(platformcore.ActionForceWin))
	if g.State().GameOver {
		t.Error("ForceWin worked with debug disabled")
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(input(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("game not paused")
	}
	moving := g.Engine().TilesMoving()
	for i := 0; i < 500; i++ {
		g.Step(input())
	}
	if g.Engine().TilesMoving() != moving {
		t.Error("animation advanced while paused")
	}
	g.Step(input(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("game still paused")
	}
}

func TestResizeKeepsLevel(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)
	g.Step(input(platformcore.ActionCombo))
	before := g.State()

	g.Resize(140, 40)
	after := g.State()
	if after.Score != before.Score || after.Turns != before.Turns || after.Level != before.Level {
		t.Errorf("resize changed state: %+v -> %+v", before, after)
	}
	if g.Engine().TilesMoving() {
		t.Error("tiles should snap after resize")
	}
	if tv, ok := g.Engine().Snapshot().TileAt(core.P(0, 0)); ok {
		if int(tv.X) != g.board.X || int(tv.Y) != g.board.Y {
			t.Errorf("tile (0,0) at (%v,%v), expected board origin (%d,%d)", tv.X, tv.Y, g.board.X, g.board.Y)
		}
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10})

	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small overlay, got:\n%s", screen)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)

	screen := platformcore.NewScreen(100, 30)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Lullaby Saga", "Cradle Meadow", "Turns 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// The cursor brackets its cell.
	x, y := g.cellOrigin(3, 3)
	if screen.Get(x, y) != '[' || screen.Get(x+g.cellW-1, y) != ']' {
		t.Errorf("cursor markers missing at (%d,%d): %q", x, y, screen.Row(y))
	}

	g.Step(input(platformcore.ActionForceWin))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level complete!") {
		t.Error("win overlay missing")
	}
}

func TestRenderCloudTile(t *testing.T) {
	g := &Game{board: platformcore.NewRect(0, 0, 3, 2), cellW: 3, cellH: 2}
	screen := platformcore.NewScreen(3, 2)

	g.renderTile(screen, core.TileView{Category: core.CategoryA, State: core.StateCloud, Depth: 2})

	if cell := screen.GetCell(0, 0); cell.Rune != '~' || cell.Color != platformcore.ColorGray {
		t.Errorf("cloud fill = %q/%d, expected '~' in gray", cell.Rune, cell.Color)
	}
	if cell := screen.GetCell(1, 0); cell.Rune != tileGlyphs[core.CategoryA] || cell.Color != tileColors[core.CategoryA] {
		t.Errorf("cloud glyph = %q/%d, expected the category glyph in its color", cell.Rune, cell.Color)
	}
	if got := screen.Get(2, 1); got != '2' {
		t.Errorf("depth marker = %q, expected '2'", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultSagaConfig()
	cfg.Scoring.PointsPerTile = 75
	cfg.Tiles.FillerPerVariant = 3

	opts := optionsFromConfig(cfg, 9, nil)
	if opts.Seed != 9 || opts.PointsPerTile != 75 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Catalog != (core.CatalogConfig{Variants: 1, Playable: 20, Filler: 3}) {
		t.Errorf("Catalog = %+v", opts.Catalog)
	}
	if opts.Layout.CellW != 4 || opts.Layout.CellH != 2 {
		t.Errorf("Layout = %+v", opts.Layout)
	}
}
