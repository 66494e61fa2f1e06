package saga

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
)

// tileGlyphs and tileColors are indexed by category.
var (
	tileGlyphs = [...]rune{'☾', '★', '☁', '♣', '♪', '♦'}
	tileColors = [...]platformcore.Color{
		platformcore.ColorRose,
		platformcore.ColorSky,
		platformcore.ColorMint,
		platformcore.ColorLavender,
		platformcore.ColorPeach,
		platformcore.ColorGold,
	}
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		g.renderHUD(dst, nil)
		msg := "Check the levels directory"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.renderOverlay(dst, "No level loaded", msg)
		return
	}

	snap := g.engine.Snapshot()
	g.renderHUD(dst, &snap)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst, snap)
	g.renderFooter(dst, snap)

	switch {
	case snap.Phase == core.PhaseWon && g.index+1 >= len(g.all):
		g.renderOverlay(dst, "Every dream dreamt!", fmt.Sprintf("Final score %d  R: replay  B: menu", snap.Score))
	case snap.Phase == core.PhaseWon:
		g.renderOverlay(dst, "Level complete!", fmt.Sprintf("Score %d  N: next  R: replay  B: menu", snap.Score))
	case snap.Phase == core.PhaseLost:
		g.renderOverlay(dst, "Out of turns", fmt.Sprintf("Score %d of %d  R: retry  B: menu", snap.Score, snap.Objective))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status and controls bars.
func (g *Game) renderHUD(dst *platformcore.Screen, snap *core.Snapshot) {
	hud := " Lullaby Saga"
	if snap != nil {
		hud = fmt.Sprintf(" Lullaby Saga │ %d/%d %s │ Score %d/%d │ Turns %d",
			g.index+1, len(g.all), snap.LevelName, snap.Score, snap.Objective, snap.Turns)
		if snap.Clouds > 0 {
			hud += fmt.Sprintf(" │ Clouds %d", snap.Clouds)
		}
		if snap.Multiplier > 1 {
			hud += fmt.Sprintf(" │ x%d", snap.Multiplier)
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorSky)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	controls := " ←↑↓→: Move │ Space: Select │ Click: Select │ U: Undo │ P: Pause │ B: Menu"
	if g.cfg.Debug.Enabled {
		controls += " │ C/X/F1/F2: Debug"
	}
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoard draws the frame, empty cells, tiles and the cursor. Tiles
// outside the board, such as refills dropping in, are clipped.
func (g *Game) renderBoard(dst *platformcore.Screen, snap core.Snapshot) {
	frame := platformcore.NewRect(g.board.X-1, g.board.Y-1, g.board.W+2, g.board.H+2)
	dst.DrawBox(frame, platformcore.ColorDimGray)

	occupied := make(map[core.Pos]bool, len(snap.Tiles))
	for _, t := range snap.Tiles {
		occupied[core.P(t.Col, t.Row)] = true
	}
	for c := 0; c < snap.Cols; c++ {
		for r := 0; r < snap.Rows; r++ {
			if occupied[core.P(c, r)] {
				continue
			}
			x, y := g.cellOrigin(c, r)
			dst.SetWithColor(x+(g.cellW-1)/2, y+(g.cellH-1)/2, '·', platformcore.ColorDimGray)
		}
	}

	for _, t := range snap.Tiles {
		if t.State == core.StateInvisible {
			continue
		}
		g.renderTile(dst, t)
	}

	if snap.HasSelected {
		g.renderMarker(dst, snap.Selected, platformcore.ColorBrightWhite)
	}
	if !snap.Phase.Terminal() {
		g.renderMarker(dst, g.cursor, platformcore.ColorBrightYellow)
	}
}

func (g *Game) cellOrigin(c, r int) (int, int) {
	return g.board.X + c*g.cellW, g.board.Y + r*g.cellH
}

// renderTile draws one tile at its animated position.
func (g *Game) renderTile(dst *platformcore.Screen, t core.TileView) {
	x := platformcore.Round(t.X)
	y := platformcore.Round(t.Y)
	color := platformcore.ColorWhite
	glyph := '?'
	if int(t.Category) < len(tileGlyphs) {
		glyph = tileGlyphs[t.Category]
		color = tileColors[t.Category]
	}

	fill := ' '
	fillColor := color
	switch t.State {
	case core.StateSelected, core.StateSpecialSelected:
		fill = '░'
	case core.StateRowClear:
		fill = '─'
	case core.StateColumnClear:
		fill = '│'
	case core.StateWrapped:
		fill = '▒'
	case core.StateCloud:
		fill = '~'
		fillColor = platformcore.ColorGray
	}

	for dy := 0; dy < g.cellH; dy++ {
		for dx := 0; dx < g.cellW; dx++ {
			if g.board.Contains(x+dx, y+dy) {
				dst.SetWithColor(x+dx, y+dy, fill, fillColor)
			}
		}
	}
	gx, gy := x+(g.cellW-1)/2, y+(g.cellH-1)/2
	if g.board.Contains(gx, gy) {
		dst.SetWithColor(gx, gy, glyph, color)
	}

	// Stacked tiles show their depth in the bottom-right corner.
	if t.Depth > 1 && g.cellH > 1 && !t.Moving {
		dx, dy := x+g.cellW-1, y+g.cellH-1
		if g.board.Contains(dx, dy) && t.Depth < 10 {
			dst.SetWithColor(dx, dy, rune('0'+t.Depth), platformcore.ColorDimGray)
		}
	}
}

// renderMarker brackets a cell.
func (g *Game) renderMarker(dst *platformcore.Screen, p core.Pos, color platformcore.Color) {
	x, y := g.cellOrigin(p.Col, p.Row)
	y += (g.cellH - 1) / 2
	if g.cellW < 3 {
		dst.SetWithColor(x+(g.cellW-1)/2, y, dst.Get(x+(g.cellW-1)/2, y), color)
		return
	}
	dst.SetWithColor(x, y, '[', color)
	dst.SetWithColor(x+g.cellW-1, y, ']', color)
}

func (g *Game) renderFooter(dst *platformcore.Screen, snap core.Snapshot) {
	y := g.board.Bottom() + 1
	line := g.message
	if line == "" && snap.Moving > 0 {
		line = "…"
	}
	if line != "" {
		dst.DrawTextCentered(y, line, platformcore.ColorLavender)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := len([]rune(line1))
	if l := len([]rune(line2)); l > w {
		w = l
	}
	box := dst.Bounds().Centered(w+4, 5)
	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorWhite)
}
