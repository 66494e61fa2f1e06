package core

type tileState struct {
	tile  *Tile
	state VisualState
	loc   Location
	col   int
	row   int
}

// undoState is the board before the last player move.
type undoState struct {
	cells   [][][]*Tile
	reserve []*Tile
	filler  []*Tile
	tiles   []tileState
	score   int
	turns   int
}

func (e *Engine) capture() *undoState {
	g := e.grid
	u := &undoState{
		cells:   make([][][]*Tile, g.cols),
		reserve: append([]*Tile(nil), g.reserve...),
		filler:  append([]*Tile(nil), g.filler...),
		score:   e.score,
		turns:   e.turns,
	}
	keep := func(t *Tile) {
		u.tiles = append(u.tiles, tileState{tile: t, state: t.State, loc: t.Loc, col: t.Col, row: t.Row})
	}
	for c := range g.cells {
		u.cells[c] = make([][]*Tile, g.rows)
		for r := range g.cells[c] {
			u.cells[c][r] = append([]*Tile(nil), g.cells[c][r]...)
			for _, t := range g.cells[c][r] {
				keep(t)
			}
		}
	}
	for _, t := range u.reserve {
		keep(t)
	}
	for _, t := range u.filler {
		keep(t)
	}
	return u
}

// Undo restores the board, pools, score and turns from before the last
// successful move. It reports false when there is nothing to undo, the
// level has ended or tiles are still moving. Only one move is kept.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.undo == nil || e.phase.Terminal() || len(e.moving) > 0 {
		return false
	}
	u := e.undo
	e.undo = nil
	e.sel = nil

	g := e.grid
	g.cells = u.cells
	g.reserve = u.reserve
	g.filler = u.filler
	for _, ts := range u.tiles {
		ts.tile.State = ts.state
		ts.tile.Loc = ts.loc
		ts.tile.Col, ts.tile.Row = ts.col, ts.row
	}
	g.SnapAll()
	for t := range e.moving {
		delete(e.moving, t)
	}

	e.score = u.score
	e.turns = u.turns
	e.multiplier = 1
	e.phase = PhaseAwaitingFirst
	e.log.Debug("undo", "level", e.level.ID, "score", e.score, "turns", e.turns)
	return true
}

// CanUndo reports whether Undo would restore a move.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undo != nil && !e.phase.Terminal()
}
