// Package core implements the Lullaby Saga rule engine: the tile and grid
// store, the shape classifier, the cascade resolver, gravity and refill,
// and the session state machine that drives them.
//
// The package has no terminal or storage dependencies; a renderer reads
// Snapshot and feeds cell selections back through Engine.Select.
package core

import "fmt"

// Pos is a grid position. Col increases to the right, Row increases downward.
type Pos struct {
	Col int
	Row int
}

// P is a convenience constructor for Pos.
func P(col, row int) Pos {
	return Pos{Col: col, Row: row}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Add returns a new Pos offset by (dc, dr).
func (p Pos) Add(dc, dr int) Pos {
	return Pos{Col: p.Col + dc, Row: p.Row + dr}
}

// Adjacent reports whether o is orthogonally next to p.
func (p Pos) Adjacent(o Pos) bool {
	dc := p.Col - o.Col
	dr := p.Row - o.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// Move is an ordered swap between two cells. A is the cell selected first,
// B the cell selected second. A move found by the in-place match scan has A == B.
type Move struct {
	A Pos
	B Pos
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.A, m.B)
}
