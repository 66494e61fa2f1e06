package core

import "math"

// Category is the match-compatibility class of a tile.
// Two tiles match if and only if they share a category.
type Category int

const (
	CategoryA Category = iota
	CategoryB
	CategoryC
	CategoryD
	CategoryE
	CategoryF
)

// Categories lists every category in catalogue order.
var Categories = []Category{CategoryA, CategoryB, CategoryC, CategoryD, CategoryE, CategoryF}

// String returns the category letter.
func (c Category) String() string {
	if c < CategoryA || c > CategoryF {
		return "?"
	}
	return string(rune('A' + int(c)))
}

// ParseCategory converts a letter (A..F, case-insensitive) into a Category.
func ParseCategory(r rune) (Category, bool) {
	switch {
	case r >= 'A' && r <= 'F':
		return Category(r - 'A'), true
	case r >= 'a' && r <= 'f':
		return Category(r - 'a'), true
	}
	return 0, false
}

// VisualState is the display tag of a tile.
type VisualState int

const (
	StateInvisible VisualState = iota
	StateVisible
	StateSelected
	StateRowClear
	StateColumnClear
	StateWrapped
	StateSpecialSelected
	StateCloud
)

// String returns a human-readable name for the state.
func (s VisualState) String() string {
	switch s {
	case StateInvisible:
		return "invisible"
	case StateVisible:
		return "visible"
	case StateSelected:
		return "selected"
	case StateRowClear:
		return "row-clear"
	case StateColumnClear:
		return "column-clear"
	case StateWrapped:
		return "wrapped"
	case StateSpecialSelected:
		return "special-selected"
	case StateCloud:
		return "cloud"
	default:
		return "unknown"
	}
}

// IsSpecial reports whether the state triggers an areal removal.
func (s VisualState) IsSpecial() bool {
	return s == StateRowClear || s == StateColumnClear || s == StateWrapped
}

// Location says which container owns a tile.
type Location int

const (
	InReserve Location = iota
	InGrid
	InFiller
)

// Tile is a single game piece.
// Position fields are in layout units; Col/Row are only meaningful while
// the tile is InGrid.
type Tile struct {
	ID       int
	Category Category
	Variant  int
	State    VisualState
	Loc      Location
	Col      int
	Row      int

	X, Y             float64
	TargetX, TargetY float64
	Speed            float64
	moving           bool
}

// Pos returns the grid cell of the tile.
func (t *Tile) Pos() Pos {
	return Pos{Col: t.Col, Row: t.Row}
}

// Matches reports whether two tiles share a category.
func (t *Tile) Matches(o *Tile) bool {
	return t != nil && o != nil && t.Category == o.Category
}

// SetTarget sets the destination of the next movement.
func (t *Tile) SetTarget(x, y float64) {
	t.TargetX = x
	t.TargetY = y
}

// StartMovingToTarget begins moving toward the target at speed units per tick.
// A tile already at its target does not start moving.
func (t *Tile) StartMovingToTarget(speed float64) {
	t.Speed = speed
	t.moving = t.X != t.TargetX || t.Y != t.TargetY
}

// IsMoving reports whether the tile is still travelling.
func (t *Tile) IsMoving() bool {
	return t.moving
}

// Place puts the tile at (x, y) and cancels any motion.
func (t *Tile) Place(x, y float64) {
	t.X, t.Y = x, y
	t.TargetX, t.TargetY = x, y
	t.moving = false
}

// Update advances the tile one tick toward its target.
func (t *Tile) Update() {
	if !t.moving {
		return
	}
	dx := t.TargetX - t.X
	dy := t.TargetY - t.Y
	dist := math.Hypot(dx, dy)
	if dist <= t.Speed || t.Speed <= 0 {
		t.X, t.Y = t.TargetX, t.TargetY
		t.moving = false
		return
	}
	t.X += dx / dist * t.Speed
	t.Y += dy / dist * t.Speed
}
