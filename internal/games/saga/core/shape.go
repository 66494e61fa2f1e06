package core

import "fmt"

// ShapeKind identifies the geometry of a recognized match.
// The numeric value of each kind is its catalogue magnitude, so
// Shape.Code round-trips to the signed codes used by level tooling.
type ShapeKind int

const (
	ShapeNone ShapeKind = 0

	// Straight runs of three anchored at the pivot.
	ShapeRunRight     ShapeKind = 1
	ShapeRunDown      ShapeKind = 2
	ShapeRunLeft      ShapeKind = 3
	ShapeRunUp        ShapeKind = 4
	ShapeCentredRow   ShapeKind = 5
	ShapeCentredCol   ShapeKind = 6
	ShapeFiveInColumn ShapeKind = 7
	ShapeFiveInRow    ShapeKind = 8

	// Run right plus a perpendicular arm.
	ShapeRightTeeEnd   ShapeKind = 10
	ShapeRightEndUp    ShapeKind = 11
	ShapeRightEndDown  ShapeKind = 12
	ShapeRightMidUp    ShapeKind = 13
	ShapeRightMidDown  ShapeKind = 14
	ShapeRightPivotUp  ShapeKind = 15
	ShapeRightPivotDn  ShapeKind = 16
	ShapeRightPivotTee ShapeKind = 17

	// Run down plus a perpendicular arm.
	ShapeDownTeeEnd     ShapeKind = 20
	ShapeDownEndRight   ShapeKind = 21
	ShapeDownEndLeft    ShapeKind = 22
	ShapeDownMidRight   ShapeKind = 23
	ShapeDownMidLeft    ShapeKind = 24
	ShapeDownPivotRight ShapeKind = 25
	ShapeDownPivotLeft  ShapeKind = 26
	ShapeDownPivotTee   ShapeKind = 27

	// Run left plus a perpendicular arm.
	ShapeLeftTeeEnd   ShapeKind = 30
	ShapeLeftEndUp    ShapeKind = 31
	ShapeLeftEndDown  ShapeKind = 32
	ShapeLeftMidUp    ShapeKind = 33
	ShapeLeftMidDown  ShapeKind = 34
	ShapeLeftPivotUp  ShapeKind = 35
	ShapeLeftPivotTee ShapeKind = 37

	// Run up plus a perpendicular arm.
	ShapeUpTeeEnd   ShapeKind = 40
	ShapeUpEndRight ShapeKind = 41
	ShapeUpEndLeft  ShapeKind = 42
	ShapeUpMidRight ShapeKind = 43
	ShapeUpMidLeft  ShapeKind = 44
	ShapeUpPivotTee ShapeKind = 47

	// Centred row plus an arm on one flank.
	ShapeRowLeftTee   ShapeKind = 50
	ShapeRowLeftUp    ShapeKind = 51
	ShapeRowLeftDown  ShapeKind = 52
	ShapeRowRightUp   ShapeKind = 53
	ShapeRowRightDown ShapeKind = 54
	ShapeRowRightTee  ShapeKind = 55

	// Centred column plus an arm on one flank.
	ShapeColLowerTee   ShapeKind = 60
	ShapeColLowerRight ShapeKind = 61
	ShapeColLowerLeft  ShapeKind = 62
	ShapeColUpperRight ShapeKind = 63
	ShapeColUpperLeft  ShapeKind = 64
	ShapeColUpperTee   ShapeKind = 65

	// Straight runs of four; the pivot becomes a line clearer.
	ShapeFourRight ShapeKind = 100
	ShapeFourDown  ShapeKind = 200
	ShapeFourLeft  ShapeKind = 300
	ShapeFourUp    ShapeKind = 400
)

// Offset is a (dc, dr) displacement from the pivot.
type Offset struct {
	DC int
	DR int
}

// removalOffsets lists, per kind, the non-pivot cells a match removes.
var removalOffsets = map[ShapeKind][]Offset{
	ShapeRunRight:      {{1, 0}, {2, 0}},
	ShapeFourRight:     {{1, 0}, {2, 0}, {-1, 0}},
	ShapeRightTeeEnd:   {{1, 0}, {2, 0}, {2, 1}, {2, -1}},
	ShapeRightEndUp:    {{1, 0}, {2, 0}, {2, -1}, {2, -2}},
	ShapeRightEndDown:  {{1, 0}, {2, 0}, {2, 1}, {2, 2}},
	ShapeRightMidUp:    {{1, 0}, {2, 0}, {1, -1}, {1, -2}},
	ShapeRightMidDown:  {{1, 0}, {2, 0}, {1, 1}, {1, 2}},
	ShapeRightPivotUp:  {{1, 0}, {2, 0}, {0, -1}, {0, -2}},
	ShapeRightPivotDn:  {{1, 0}, {2, 0}, {0, 1}, {0, 2}},
	ShapeRightPivotTee: {{1, 0}, {2, 0}, {0, 1}, {0, -1}},

	ShapeRunDown:        {{0, 1}, {0, 2}},
	ShapeFourDown:       {{0, 1}, {0, 2}, {0, -1}},
	ShapeDownTeeEnd:     {{0, 1}, {0, 2}, {1, 2}, {-1, 2}},
	ShapeDownEndRight:   {{0, 1}, {0, 2}, {1, 2}, {2, 2}},
	ShapeDownEndLeft:    {{0, 1}, {0, 2}, {-1, 2}, {-2, 2}},
	ShapeDownMidRight:   {{0, 1}, {0, 2}, {1, 1}, {2, 1}},
	ShapeDownMidLeft:    {{0, 1}, {0, 2}, {-1, 1}, {-2, 1}},
	ShapeDownPivotRight: {{0, 1}, {0, 2}, {1, 0}, {2, 0}},
	ShapeDownPivotLeft:  {{0, 1}, {0, 2}, {-1, 0}, {-2, 0}},
	ShapeDownPivotTee:   {{0, 1}, {0, 2}, {1, 0}, {-1, 0}},

	ShapeRunLeft:      {{-1, 0}, {-2, 0}},
	ShapeFourLeft:     {{-1, 0}, {-2, 0}, {1, 0}},
	ShapeLeftTeeEnd:   {{-1, 0}, {-2, 0}, {-2, -1}, {-2, 1}},
	ShapeLeftEndUp:    {{-1, 0}, {-2, 0}, {-2, -2}, {-2, -1}},
	ShapeLeftEndDown:  {{-1, 0}, {-2, 0}, {-2, 1}, {-2, 2}},
	ShapeLeftMidUp:    {{-1, 0}, {-2, 0}, {-1, -1}, {-1, -2}},
	ShapeLeftMidDown:  {{-1, 0}, {-2, 0}, {-1, 1}, {-1, 2}},
	ShapeLeftPivotUp:  {{-1, 0}, {-2, 0}, {0, -1}, {0, -2}},
	ShapeLeftPivotTee: {{-1, 0}, {-2, 0}, {0, 1}, {0, -1}},

	ShapeRunUp:      {{0, -1}, {0, -2}},
	ShapeFourUp:     {{0, -1}, {0, -2}, {0, 1}},
	ShapeUpTeeEnd:   {{0, -1}, {0, -2}, {-1, -2}, {1, -2}},
	ShapeUpEndRight: {{0, -1}, {0, -2}, {1, -2}, {2, -2}},
	ShapeUpEndLeft:  {{0, -1}, {0, -2}, {-1, -2}, {-2, -2}},
	ShapeUpMidRight: {{0, -1}, {0, -2}, {1, -1}, {2, -1}},
	ShapeUpMidLeft:  {{0, -1}, {0, -2}, {-1, -1}, {-2, -1}},
	ShapeUpPivotTee: {{0, -1}, {0, -2}, {-1, 0}, {1, 0}},

	ShapeCentredRow:   {{-1, 0}, {1, 0}},
	ShapeRowLeftTee:   {{-1, 0}, {1, 0}, {-1, -1}, {-1, 1}},
	ShapeRowLeftUp:    {{-1, 0}, {1, 0}, {-1, -1}, {-1, -2}},
	ShapeRowLeftDown:  {{-1, 0}, {1, 0}, {-1, 1}, {-1, 2}},
	ShapeRowRightUp:   {{-1, 0}, {1, 0}, {1, -1}, {1, -2}},
	ShapeRowRightDown: {{-1, 0}, {1, 0}, {1, 1}, {1, 2}},
	ShapeRowRightTee:  {{-1, 0}, {1, 0}, {1, -1}, {1, 1}},

	ShapeCentredCol:    {{0, 1}, {0, -1}},
	ShapeColLowerTee:   {{0, 1}, {0, -1}, {1, 1}, {-1, 1}},
	ShapeColLowerRight: {{0, 1}, {0, -1}, {1, 1}, {2, 1}},
	ShapeColLowerLeft:  {{0, 1}, {0, -1}, {-1, 1}, {-2, 1}},
	ShapeColUpperRight: {{0, 1}, {0, -1}, {1, -1}, {2, -1}},
	ShapeColUpperLeft:  {{0, 1}, {0, -1}, {-1, -1}, {-2, -1}},
	ShapeColUpperTee:   {{0, 1}, {0, -1}, {1, -1}, {-1, -1}},

	ShapeFiveInColumn: {{0, -2}, {0, -1}, {0, 1}, {0, 2}},
	ShapeFiveInRow:    {{-2, 0}, {-1, 0}, {1, 0}, {2, 0}},
}

// Valid reports whether k is a catalogue kind.
func (k ShapeKind) Valid() bool {
	_, ok := removalOffsets[k]
	return ok
}

// Effect is what a resolved match does to its pivot tile.
type Effect int

const (
	EffectNone Effect = iota
	EffectPop         // pivot returns to the filler pool unscored
	EffectFive        // pivot stays; nested special clears are suppressed
	EffectWrap        // pivot becomes a wrapped tile
	EffectLine        // pivot becomes a row or column clearer
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case EffectPop:
		return "pop"
	case EffectFive:
		return "five"
	case EffectWrap:
		return "wrap"
	case EffectLine:
		return "line"
	default:
		return "none"
	}
}

// Effect returns the pivot effect of the kind.
func (k ShapeKind) Effect() Effect {
	switch {
	case !k.Valid() || k == ShapeNone:
		return EffectNone
	case k >= 100:
		return EffectLine
	case k > 9:
		return EffectWrap
	case k == ShapeFiveInColumn || k == ShapeFiveInRow:
		return EffectFive
	default:
		return EffectPop
	}
}

// Side selects which swap cell anchors a match.
type Side int

const (
	SideB Side = iota // the cell the first-selected tile moved into
	SideA             // the cell selected first
)

// Shape is a classified match: its geometry and the side holding the pivot.
type Shape struct {
	Kind  ShapeKind
	Pivot Side
}

// NoShape is the zero classification.
var NoShape = Shape{}

// IsZero reports whether no pattern was recognized.
func (s Shape) IsZero() bool {
	return s.Kind == ShapeNone
}

// Code returns the signed catalogue code: positive when anchored at B,
// negative when anchored at A.
func (s Shape) Code() int {
	if s.Pivot == SideA {
		return -int(s.Kind)
	}
	return int(s.Kind)
}

// ShapeFromCode converts a signed catalogue code back into a Shape.
func ShapeFromCode(code int) (Shape, bool) {
	if code == 0 {
		return NoShape, true
	}
	side := SideB
	if code < 0 {
		side = SideA
		code = -code
	}
	k := ShapeKind(code)
	if !k.Valid() {
		return NoShape, false
	}
	return Shape{Kind: k, Pivot: side}, true
}

// PivotPos returns the pivot cell of the shape for a move.
func (s Shape) PivotPos(m Move) Pos {
	if s.Pivot == SideA {
		return m.A
	}
	return m.B
}

// Offsets returns the non-pivot cells removed by the shape.
func (s Shape) Offsets() []Offset {
	return removalOffsets[s.Kind]
}

// Effect returns the pivot effect.
func (s Shape) Effect() Effect {
	return s.Kind.Effect()
}

// String returns a string representation of the shape.
func (s Shape) String() string {
	if s.IsZero() {
		return "none"
	}
	side := "B"
	if s.Pivot == SideA {
		side = "A"
	}
	return fmt.Sprintf("%d@%s", s.Kind, side)
}
