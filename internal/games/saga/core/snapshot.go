package core

// TileView is a read-only copy of a tile for rendering.
type TileView struct {
	ID       int
	Category Category
	Variant  int
	State    VisualState // StateCloud for a plain tile covering others
	Col      int
	Row      int
	Depth    int // stack height of the cell the tile tops
	X, Y     float64
	Moving   bool
}

// Snapshot is a consistent copy of the session taken under the engine lock.
type Snapshot struct {
	Cols int
	Rows int

	// Tiles holds the top tile of every non-empty cell, column by column.
	Tiles []TileView

	LevelID    int
	LevelName  string
	Phase      Phase
	Score      int
	Multiplier int
	Turns      int
	Objective  int
	Clouds     int

	Selected    Pos
	HasSelected bool

	Moving  int
	Reserve int
	Filler  int
	CanUndo bool

	Result *Result
}

// Snapshot copies the state the render loop needs.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.grid
	s := Snapshot{
		Cols:       g.cols,
		Rows:       g.rows,
		Tiles:      make([]TileView, 0, g.cols*g.rows),
		LevelID:    e.level.ID,
		LevelName:  e.level.Name,
		Phase:      e.phase,
		Score:      e.score,
		Multiplier: e.multiplier,
		Turns:      e.turns,
		Objective:  e.level.Objective,
		Clouds:     e.clouds,
		Moving:     len(e.moving),
		Reserve:    len(g.reserve),
		Filler:     len(g.filler),
		CanUndo:    e.undo != nil && !e.phase.Terminal(),
	}
	if e.sel != nil {
		s.Selected = e.sel.pos
		s.HasSelected = true
	}
	if e.result != nil {
		r := *e.result
		s.Result = &r
	}
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			stack := g.cells[c][r]
			if len(stack) == 0 {
				continue
			}
			t := stack[len(stack)-1]
			state := t.State
			if state == StateVisible && len(stack) > 1 {
				state = StateCloud
			}
			s.Tiles = append(s.Tiles, TileView{
				ID:       t.ID,
				Category: t.Category,
				Variant:  t.Variant,
				State:    state,
				Col:      c,
				Row:      r,
				Depth:    len(stack),
				X:        t.X,
				Y:        t.Y,
				Moving:   t.IsMoving(),
			})
		}
	}
	return s
}

// TileAt returns the view of the top tile at p.
func (s Snapshot) TileAt(p Pos) (TileView, bool) {
	for _, t := range s.Tiles {
		if t.Col == p.Col && t.Row == p.Row {
			return t, true
		}
	}
	return TileView{}, false
}
