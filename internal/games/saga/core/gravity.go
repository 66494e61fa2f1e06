package core

import "slices"

// Settle compacts the given columns and refills their empty cells. With no
// arguments every column is settled. Settling a settled board moves nothing.
func (e *Engine) Settle(cols ...int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(cols) == 0 {
		cols = make([]int, e.grid.cols)
		for c := range cols {
			cols[c] = c
		}
	}
	e.settle(cols)
}

// settle fills every empty cell, scanning each column bottom-up. An empty
// cell takes the top tile of the nearest non-empty cell above it; when
// none is left it takes a filler tile that drops in from above the grid.
func (e *Engine) settle(cols []int) {
	cols = slices.Clone(cols)
	slices.Sort(cols)
	for _, c := range cols {
		if c < 0 || c >= e.grid.cols {
			continue
		}
		spawned := 0
		for r := e.floor(c); r >= 0; r-- {
			p := P(c, r)
			if e.grid.Depth(p) > 0 {
				continue
			}
			if src, ok := e.nearestAbove(p); ok {
				t := e.grid.pop(src)
				e.grid.push(p, t)
				e.animate(t, e.opts.TileSpeed)
				continue
			}
			t := e.drawFiller()
			if t == nil {
				continue
			}
			spawned++
			t.State = StateVisible
			e.grid.push(p, t)
			t.Place(e.grid.TileX(c), e.grid.TileY(0)-float64(spawned)*e.grid.layout.CellH*e.opts.SpawnOffset)
			e.animate(t, e.opts.TileSpeed)
		}
	}
}

// floor returns the lowest row that gravity fills in column c.
func (e *Engine) floor(c int) int {
	if e.level.RaisedEdgeFloor && (c == 0 || c == e.grid.cols-1) {
		return e.grid.rows - 2
	}
	return e.grid.rows - 1
}

func (e *Engine) nearestAbove(p Pos) (Pos, bool) {
	for r := p.Row - 1; r >= 0; r-- {
		q := P(p.Col, r)
		if e.grid.Depth(q) > 0 {
			return q, true
		}
	}
	return Pos{}, false
}

// drawFiller takes a refill tile from the filler pool, falling back to the
// reserve. It returns nil when both are empty.
func (e *Engine) drawFiller() *Tile {
	if n := len(e.grid.filler); n > 0 {
		return e.grid.removeFiller(e.pick(n))
	}
	if n := len(e.grid.reserve); n > 0 {
		t := e.grid.reserve[n-1]
		e.grid.reserve = e.grid.reserve[:n-1]
		return t
	}
	return nil
}

func (e *Engine) pick(n int) int {
	if e.opts.Draw == nil {
		return e.rng.Intn(n)
	}
	i := e.opts.Draw(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// ensureMove redeals the board when no swap produces a shape.
func (e *Engine) ensureMove() {
	if _, ok := FindMove(e.grid); ok {
		return
	}
	e.log.Debug("deadlock", "level", e.level.ID)
	e.deal()
}

// deal returns every grid tile to the reserve, shuffles it and places it
// again per the level layout, then silently resolves any match the deal
// produced. It retries until a move exists or the reshuffle budget runs
// out. Score and turns are untouched.
func (e *Engine) deal() bool {
	for attempt := 1; attempt <= e.opts.ReshuffleBudget; attempt++ {
		current := e.grid.Depths()
		e.grid.MoveAllToReserve()
		pool := e.grid.takeReserve()
		e.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		depths := e.level.Depths
		if e.level.TileCount() > len(pool) {
			// Tiles lost to the filler pool; keep the current shape.
			depths = current
		}
		if err := e.grid.PlaceInitialLayout(depths, pool); err != nil {
			e.log.Error("reshuffle failed", "level", e.level.ID, "err", err)
			return false
		}
		e.dealIn()
		e.preResolve()

		if _, ok := FindMove(e.grid); ok {
			e.log.Debug("dealt", "level", e.level.ID, "attempt", attempt)
			return true
		}
	}
	e.log.Warn("reshuffle budget exhausted", "level", e.level.ID, "budget", e.opts.ReshuffleBudget)
	return false
}

// dealIn shows every grid tile and drops it in from above the grid.
func (e *Engine) dealIn() {
	lift := float64(e.grid.rows) * e.grid.layout.CellH
	for c := 0; c < e.grid.cols; c++ {
		for r := 0; r < e.grid.rows; r++ {
			for _, t := range e.grid.cells[c][r] {
				t.State = StateVisible
				t.Place(e.grid.TileX(c), e.grid.TileY(r)-lift)
				e.animate(t, e.opts.DealSpeed)
			}
		}
	}
}

// preResolve clears matches on a fresh deal without scoring them.
func (e *Engine) preResolve() {
	e.silent = true
	defer func() { e.silent = false }()

	for i := 0; i < maxCascade; i++ {
		m, ok := FindMatch(e.grid)
		if !ok {
			break
		}
		e.resolve(m, Classify(e.grid, m.A, m.B))
	}
	for c := 0; c < e.grid.cols; c++ {
		for r := 0; r < e.grid.rows; r++ {
			for _, t := range e.grid.cells[c][r] {
				t.State = StateVisible
			}
		}
	}
}
