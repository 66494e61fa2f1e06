package core

// swapView reads the grid as if the tops of a and b were exchanged.
type swapView struct {
	g    *Grid
	a, b Pos
}

func (v swapView) at(p Pos) *Tile {
	switch p {
	case v.a:
		return v.g.Top(v.b)
	case v.b:
		return v.g.Top(v.a)
	}
	return v.g.Top(p)
}

// matcher tests cells of the view against one reference tile.
type matcher struct {
	v   swapView
	ref *Tile
}

// eq reports whether (c, r) holds a tile of the reference category.
// Off-grid and empty cells never match.
func (p matcher) eq(c, r int) bool {
	return p.ref.Matches(p.v.at(P(c, r)))
}

// Classify returns the first shape produced by swapping the top tiles of a
// (selected first) and b (selected second). The grid is read as if the swap
// had already happened and is not modified. Classify(g, p, p) tests the
// board in place.
//
// Rules are tried in a fixed order and the first hit wins: five-in-line,
// then each arm direction with its junction and four-run refinements,
// then the centred runs.
func Classify(g *Grid, a, b Pos) Shape {
	v := swapView{g: g, a: a, b: b}
	onA := matcher{v: v, ref: v.at(a)}
	onB := matcher{v: v, ref: v.at(b)}
	ac, ar := a.Col, a.Row
	bc, br := b.Col, b.Row

	atA := func(k ShapeKind) Shape { return Shape{Kind: k, Pivot: SideA} }
	atB := func(k ShapeKind) Shape { return Shape{Kind: k, Pivot: SideB} }

	// Five in a line.
	if ar == br && onB.eq(bc, br-1) && onB.eq(bc, br-2) && onB.eq(bc, br+1) && onB.eq(bc, br+2) {
		return atB(ShapeFiveInColumn)
	}
	if ar == br && onA.eq(ac, ar-1) && onA.eq(ac, ar-2) && onA.eq(ac, ar+1) && onA.eq(ac, ar+2) {
		return atA(ShapeFiveInColumn)
	}
	if ac == bc && onB.eq(bc-1, br) && onB.eq(bc-2, br) && onB.eq(bc+1, br) && onB.eq(bc+2, br) {
		return atB(ShapeFiveInRow)
	}
	if ac == bc && onA.eq(ac-1, ar) && onA.eq(ac-2, ar) && onA.eq(ac+1, ar) && onA.eq(ac+2, ar) {
		return atA(ShapeFiveInRow)
	}

	// Run extending right from B.
	if ac != bc+1 && onB.eq(bc+1, br) && onB.eq(bc+2, br) {
		switch {
		case onB.eq(bc, br-1) && onB.eq(bc, br-2) && ar != br-1:
			return atB(ShapeRightPivotUp)
		case onB.eq(bc, br+1) && onB.eq(bc, br+2) && ar != br+1:
			return atB(ShapeRightPivotDn)
		case onB.eq(bc, br+1) && onB.eq(bc, br-1) && ac == bc-1:
			return atB(ShapeRightPivotTee)
		case onB.eq(bc-1, br) && ar != br:
			return atB(ShapeFourRight)
		}
		return atB(ShapeRunRight)
	}

	// Run extending down from B.
	if ar != br+1 && onB.eq(bc, br+1) && onB.eq(bc, br+2) {
		switch {
		case onB.eq(bc-1, br) && onB.eq(bc-2, br) && a != P(bc, br+1) && a != P(bc-1, br) && ac != bc-1:
			return atB(ShapeDownPivotLeft)
		case onB.eq(bc+1, br) && onB.eq(bc+2, br) && ac != bc+1:
			return atB(ShapeDownPivotRight)
		case onB.eq(bc-1, br) && onB.eq(bc+1, br) && ar == br-1:
			return atB(ShapeDownPivotTee)
		case onB.eq(bc, br-1) && ac != bc:
			return atB(ShapeFourDown)
		}
		return atB(ShapeRunDown)
	}

	// Run extending right from A.
	if ac != bc-1 && onA.eq(ac+1, ar) && onA.eq(ac+2, ar) {
		switch {
		case onA.eq(ac, ar-1) && onA.eq(ac, ar-2) && br != ar-1:
			return atA(ShapeRightPivotUp)
		case onA.eq(ac, ar+1) && onA.eq(ac, ar+2) && br != ar+1:
			return atA(ShapeRightPivotDn)
		case onA.eq(ac, ar-1) && onA.eq(ac, ar+1) && bc == ac-1:
			return atA(ShapeRightPivotTee)
		case onA.eq(ac-1, ar) && ar != br:
			return atA(ShapeFourRight)
		}
		return atA(ShapeRunRight)
	}

	// Run extending down from A.
	if ar != br-1 && onA.eq(ac, ar+1) && onA.eq(ac, ar+2) {
		switch {
		case onA.eq(ac+1, ar) && onA.eq(ac+2, ar) && bc != ac+1:
			return atA(ShapeDownPivotRight)
		case onA.eq(ac-1, ar) && onA.eq(ac-2, ar) && bc != ac-1:
			return atA(ShapeDownPivotLeft)
		case onA.eq(ac-1, ar) && onA.eq(ac+1, ar) && br == ar-1:
			return atA(ShapeDownPivotTee)
		case onA.eq(ac, ar-1) && ac != bc:
			return atA(ShapeFourDown)
		}
		return atA(ShapeRunDown)
	}

	// Run extending left from B.
	if ac != bc-1 && onB.eq(bc-1, br) && onB.eq(bc-2, br) {
		switch {
		case onB.eq(bc, br+1) && onB.eq(bc, br-1) && ac == bc-1:
			return atB(ShapeLeftPivotTee)
		case onB.eq(bc, br-1) && onB.eq(bc, br-2) && ar == br-1:
			return atB(ShapeLeftPivotUp)
		case onB.eq(bc+1, br) && ar != br:
			return atB(ShapeFourLeft)
		}
		return atB(ShapeRunLeft)
	}

	// Run extending up from B.
	if ar != br-1 && onB.eq(bc, br-1) && onB.eq(bc, br-2) {
		switch {
		case onB.eq(bc-1, br) && onB.eq(bc+1, br) && ar == br+1:
			return atB(ShapeUpPivotTee)
		case onB.eq(bc, br+1) && ac != bc:
			return atB(ShapeFourUp)
		}
		return atB(ShapeRunUp)
	}

	// Run extending left from A.
	if ac != bc+1 && onA.eq(ac-1, ar) && onA.eq(ac-2, ar) {
		switch {
		case onA.eq(ac, ar+1) && onA.eq(ac, ar-1) && bc == ac+1:
			return atA(ShapeLeftPivotTee)
		case onA.eq(ac, ar-1) && onA.eq(ac, ar-2) && br != ar-1:
			return atA(ShapeLeftPivotUp)
		case onA.eq(ac+1, ar) && ar != br:
			return atA(ShapeFourLeft)
		}
		return atA(ShapeRunLeft)
	}

	// Run extending up from A.
	if ar != br+1 && onA.eq(ac, ar-1) && onA.eq(ac, ar-2) {
		switch {
		case onA.eq(ac-1, ar) && onA.eq(ac+1, ar) && br == ar+1:
			return atA(ShapeUpPivotTee)
		case onA.eq(ac, ar+1) && ac != bc:
			return atA(ShapeFourUp)
		}
		return atA(ShapeRunUp)
	}

	// Centred runs.
	sideways := ac != bc+1 && ac != bc-1
	upright := ar != br+1 && ar != br-1
	if sideways && onB.eq(bc+1, br) && onB.eq(bc-1, br) {
		return atB(ShapeCentredRow)
	}
	if upright && onB.eq(bc, br+1) && onB.eq(bc, br-1) {
		return atB(ShapeCentredCol)
	}
	if sideways && onA.eq(ac+1, ar) && onA.eq(ac-1, ar) {
		return atA(ShapeCentredRow)
	}
	if upright && onA.eq(ac, ar+1) && onA.eq(ac, ar-1) {
		return atA(ShapeCentredCol)
	}

	return NoShape
}

// FindMove returns the first swap that produces a shape, scanning cells
// column by column and trying the right, left, lower and upper neighbour
// of each.
func FindMove(g *Grid) (Move, bool) {
	neighbours := [...]Offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			a := P(c, r)
			if g.Top(a) == nil {
				continue
			}
			for _, n := range neighbours {
				b := a.Add(n.DC, n.DR)
				if g.Top(b) == nil {
					continue
				}
				if !Classify(g, a, b).IsZero() {
					return Move{A: a, B: b}, true
				}
			}
		}
	}
	return Move{}, false
}

// FindMatch returns a cell that already forms a shape in place, scanning
// from the bottom-right corner.
func FindMatch(g *Grid) (Move, bool) {
	for c := g.cols - 1; c >= 0; c-- {
		for r := g.rows - 1; r >= 0; r-- {
			p := P(c, r)
			if g.Top(p) == nil {
				continue
			}
			if !Classify(g, p, p).IsZero() {
				return Move{A: p, B: p}, true
			}
		}
	}
	return Move{}, false
}
