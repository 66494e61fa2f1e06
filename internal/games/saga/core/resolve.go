package core

// resolve applies a classified shape: the pivot effect, the removals and
// the gravity pass over every column they touched.
func (e *Engine) resolve(m Move, s Shape) {
	for c := range e.affected {
		delete(e.affected, c)
	}
	pivot := s.PivotPos(m)
	pt := e.grid.Top(pivot)
	if pt == nil {
		return
	}
	e.affected[pivot.Col] = struct{}{}

	switch s.Effect() {
	case EffectLine:
		if e.rng.Intn(2) == 0 {
			pt.State = StateRowClear
		} else {
			pt.State = StateColumnClear
		}
	case EffectWrap:
		pt.State = StateWrapped
	case EffectFive:
		e.clearing = true
	case EffectPop:
		e.discard(e.grid.pop(pivot))
	}

	for _, o := range s.Offsets() {
		e.removeTile(pivot.Add(o.DC, o.DR))
	}
	e.clearing = false

	e.settle(e.affectedColumns())
}

// removeTile scores and discards the top tile at p. Removing a special
// tile clears its row, column or 3x3 area unless a clear is already
// running. Off-grid and empty cells are skipped.
func (e *Engine) removeTile(p Pos) {
	t := e.grid.pop(p)
	if t == nil {
		return
	}
	if !e.silent {
		e.score += e.opts.PointsPerTile * e.multiplier
	}
	state := t.State
	e.discard(t)
	e.affected[p.Col] = struct{}{}

	if e.clearing || !state.IsSpecial() {
		return
	}
	e.clearing = true
	switch state {
	case StateRowClear:
		for c := 0; c < e.grid.cols; c++ {
			if c != p.Col {
				e.removeTile(P(c, p.Row))
			}
		}
	case StateColumnClear:
		for r := 0; r < e.grid.rows; r++ {
			if r != p.Row {
				e.removeTile(P(p.Col, r))
			}
		}
	case StateWrapped:
		for dc := -1; dc <= 1; dc++ {
			for dr := -1; dr <= 1; dr++ {
				if dc != 0 || dr != 0 {
					e.removeTile(p.Add(dc, dr))
				}
			}
		}
	}
	e.clearing = false
}

// discard returns a tile to the filler pool.
func (e *Engine) discard(t *Tile) {
	if t == nil {
		return
	}
	delete(e.moving, t)
	t.Place(t.X, t.Y)
	t.State = StateInvisible
	e.grid.addFiller(t)
}

// cascade resolves matches that appear without player input, raising the
// multiplier once per resolution.
func (e *Engine) cascade() {
	for i := 0; ; i++ {
		m, ok := FindMatch(e.grid)
		if !ok {
			return
		}
		if i >= maxCascade {
			e.log.Warn("combo loop stopped", "level", e.level.ID, "resolutions", i)
			return
		}
		e.multiplier++
		e.log.Debug("combo", "multiplier", e.multiplier, "at", m.A)
		e.resolve(m, Classify(e.grid, m.A, m.B))
		e.ensureMove()
	}
}

func (e *Engine) affectedColumns() []int {
	cols := make([]int, 0, len(e.affected))
	for c := range e.affected {
		cols = append(cols, c)
	}
	return cols
}
