package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPoolTooSmall is returned when a layout needs more tiles than the pool holds.
	ErrPoolTooSmall = errors.New("tile pool smaller than layout")
	// ErrBadLayout is returned for empty, ragged or negative depth layouts.
	ErrBadLayout = errors.New("malformed level layout")
)

// Layout maps grid cells to screen coordinates.
// The origin is supplied by the renderer; cells have a constant size.
type Layout struct {
	OriginX float64
	OriginY float64
	CellW   float64
	CellH   float64
}

// DefaultLayout is a unit-cell layout anchored at the origin.
func DefaultLayout() Layout {
	return Layout{CellW: 1, CellH: 1}
}

// Grid is the tile store: a cols x rows matrix of tile stacks plus the
// reserve and filler pools. The top of a stack is its last element.
type Grid struct {
	cols    int
	rows    int
	cells   [][][]*Tile // [col][row]
	reserve []*Tile
	filler  []*Tile
	layout  Layout
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", cols, rows, ErrBadLayout)
	}
	g := &Grid{
		cols:   cols,
		rows:   rows,
		layout: DefaultLayout(),
	}
	g.cells = make([][][]*Tile, cols)
	for c := range g.cells {
		g.cells[c] = make([][]*Tile, rows)
	}
	return g, nil
}

// NewGridFromRows builds a depth-1 grid from rows of category letters.
// '.' or ' ' leaves a cell empty. Intended for fixtures and tests.
func NewGridFromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrBadLayout)
	}
	cols := len(rows[0])
	g, err := NewGrid(cols, len(rows))
	if err != nil {
		return nil, err
	}
	id := 0
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d: %w", r, len(line), cols, ErrBadLayout)
		}
		for c, ch := range line {
			if ch == '.' || ch == ' ' {
				continue
			}
			cat, ok := ParseCategory(ch)
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown category %q: %w", r, c, ch, ErrBadLayout)
			}
			g.push(P(c, r), &Tile{ID: id, Category: cat, State: StateVisible})
			id++
		}
	}
	g.SnapAll()
	return g, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Col >= 0 && p.Col < g.cols && p.Row >= 0 && p.Row < g.rows
}

// Top returns the top tile of the stack at p, or nil if the cell is empty
// or off the grid.
func (g *Grid) Top(p Pos) *Tile {
	if !g.InBounds(p) {
		return nil
	}
	stack := g.cells[p.Col][p.Row]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Depth returns the stack height at p (0 off the grid).
func (g *Grid) Depth(p Pos) int {
	if !g.InBounds(p) {
		return 0
	}
	return len(g.cells[p.Col][p.Row])
}

// Depths returns the current stack heights as a [col][row] matrix.
func (g *Grid) Depths() [][]int {
	out := make([][]int, g.cols)
	for c := range out {
		out[c] = make([]int, g.rows)
		for r := range out[c] {
			out[c][r] = len(g.cells[c][r])
		}
	}
	return out
}

// Stack returns a copy of the stack at p, bottom first.
func (g *Grid) Stack(p Pos) []*Tile {
	if !g.InBounds(p) {
		return nil
	}
	return append([]*Tile(nil), g.cells[p.Col][p.Row]...)
}

// GridCount returns the number of tiles on the grid.
func (g *Grid) GridCount() int {
	n := 0
	for c := range g.cells {
		for r := range g.cells[c] {
			n += len(g.cells[c][r])
		}
	}
	return n
}

// Total returns the number of tiles held by the grid and both pools.
func (g *Grid) Total() int {
	return g.GridCount() + len(g.reserve) + len(g.filler)
}

// Reserve returns a copy of the reserve pool.
func (g *Grid) Reserve() []*Tile { return append([]*Tile(nil), g.reserve...) }

// Filler returns a copy of the filler pool.
func (g *Grid) Filler() []*Tile { return append([]*Tile(nil), g.filler...) }

// SetFiller replaces the filler pool.
func (g *Grid) SetFiller(tiles []*Tile) {
	g.filler = nil
	for _, t := range tiles {
		g.addFiller(t)
	}
}

// Layout returns the current coordinate mapping.
func (g *Grid) Layout() Layout { return g.layout }

// SetLayout changes the coordinate mapping.
func (g *Grid) SetLayout(l Layout) {
	if l.CellW <= 0 {
		l.CellW = 1
	}
	if l.CellH <= 0 {
		l.CellH = 1
	}
	g.layout = l
}

// TileX returns the screen x of a column.
func (g *Grid) TileX(col int) float64 {
	return g.layout.OriginX + g.layout.CellW*float64(col)
}

// TileY returns the screen y of a row.
func (g *Grid) TileY(row int) float64 {
	return g.layout.OriginY + g.layout.CellH*float64(row)
}

// CellAt maps a screen point back to a grid cell.
func (g *Grid) CellAt(x, y float64) (Pos, bool) {
	dx := x - g.layout.OriginX
	dy := y - g.layout.OriginY
	if dx < 0 || dy < 0 {
		return Pos{}, false
	}
	p := P(int(dx/g.layout.CellW), int(dy/g.layout.CellH))
	return p, g.InBounds(p)
}

// SnapAll places every grid tile at its cell without animation.
func (g *Grid) SnapAll() {
	for c := range g.cells {
		for r := range g.cells[c] {
			for _, t := range g.cells[c][r] {
				t.Place(g.TileX(c), g.TileY(r))
			}
		}
	}
}

// PlaceInitialLayout fills each cell bottom-up to the depth given in
// depths ([col][row]) by popping tiles off the end of pool. Tiles left in
// the pool go to the reserve.
func (g *Grid) PlaceInitialLayout(depths [][]int, pool []*Tile) error {
	need, err := g.checkDepths(depths)
	if err != nil {
		return err
	}
	if need > len(pool) {
		return fmt.Errorf("layout needs %d tiles, pool has %d: %w", need, len(pool), ErrPoolTooSmall)
	}
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			for k := 0; k < depths[c][r]; k++ {
				t := pool[len(pool)-1]
				pool = pool[:len(pool)-1]
				g.push(P(c, r), t)
			}
		}
	}
	for _, t := range pool {
		g.addReserve(t)
	}
	return nil
}

// MoveAllToReserve empties every cell into the reserve, top of each stack first.
func (g *Grid) MoveAllToReserve() {
	for c := range g.cells {
		for r := range g.cells[c] {
			stack := g.cells[c][r]
			for i := len(stack) - 1; i >= 0; i-- {
				g.addReserve(stack[i])
			}
			g.cells[c][r] = stack[:0]
		}
	}
}

// takeReserve empties the reserve and returns its tiles.
func (g *Grid) takeReserve() []*Tile {
	out := g.reserve
	g.reserve = nil
	return out
}

func (g *Grid) checkDepths(depths [][]int) (int, error) {
	if len(depths) != g.cols {
		return 0, fmt.Errorf("layout has %d columns, grid has %d: %w", len(depths), g.cols, ErrBadLayout)
	}
	sum := 0
	for c, col := range depths {
		if len(col) != g.rows {
			return 0, fmt.Errorf("layout column %d has %d rows, grid has %d: %w", c, len(col), g.rows, ErrBadLayout)
		}
		for r, d := range col {
			if d < 0 {
				return 0, fmt.Errorf("negative depth at %v: %w", P(c, r), ErrBadLayout)
			}
			sum += d
		}
	}
	return sum, nil
}

func (g *Grid) push(p Pos, t *Tile) {
	t.Loc = InGrid
	t.Col, t.Row = p.Col, p.Row
	g.cells[p.Col][p.Row] = append(g.cells[p.Col][p.Row], t)
}

func (g *Grid) pop(p Pos) *Tile {
	if !g.InBounds(p) {
		return nil
	}
	stack := g.cells[p.Col][p.Row]
	if len(stack) == 0 {
		return nil
	}
	t := stack[len(stack)-1]
	g.cells[p.Col][p.Row] = stack[:len(stack)-1]
	return t
}

func (g *Grid) addReserve(t *Tile) {
	t.Loc = InReserve
	g.reserve = append(g.reserve, t)
}

func (g *Grid) addFiller(t *Tile) {
	t.Loc = InFiller
	g.filler = append(g.filler, t)
}

// removeFiller takes the filler tile at index i.
func (g *Grid) removeFiller(i int) *Tile {
	t := g.filler[i]
	g.filler = append(g.filler[:i], g.filler[i+1:]...)
	return t
}

// String renders the top of each cell as category letters, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if t := g.Top(P(c, r)); t != nil {
				b.WriteString(t.Category.String())
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
