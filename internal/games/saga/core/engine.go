package core

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// maxCascade bounds the combo loop of a single move.
const maxCascade = 512

// Phase is the session state.
type Phase int

const (
	PhaseAwaitingFirst Phase = iota
	PhaseAwaitingSecond
	PhaseResolving
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirst:
		return "awaiting-first"
	case PhaseAwaitingSecond:
		return "awaiting-second"
	case PhaseResolving:
		return "resolving"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Outcome describes what a selection did.
type Outcome int

const (
	OutcomeIgnored    Outcome = iota // off grid, empty cell or level over
	OutcomeBusy                      // tiles are still moving
	OutcomeSelected                  // first tile selected
	OutcomeDeselected                // selected tile clicked again
	OutcomeReselected                // non-adjacent tile replaced the selection
	OutcomeRejected                  // swap produced no shape and was reverted
	OutcomeMatched                   // swap resolved
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeBusy:
		return "busy"
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeReselected:
		return "reselected"
	case OutcomeRejected:
		return "rejected"
	case OutcomeMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// LevelSpec is the configuration of one level.
type LevelSpec struct {
	ID        int
	Name      string
	Depths    [][]int // starting stack depth per cell, [col][row]
	Turns     int
	Objective int
	Clouds    int

	// RaisedEdgeFloor makes the first and last column settle one row
	// above the bottom of the grid.
	RaisedEdgeFloor bool
}

// Size returns the grid dimensions implied by Depths.
func (l LevelSpec) Size() (cols, rows int) {
	if len(l.Depths) == 0 {
		return 0, 0
	}
	return len(l.Depths), len(l.Depths[0])
}

// TileCount returns the sum of the starting depths.
func (l LevelSpec) TileCount() int {
	n := 0
	for _, col := range l.Depths {
		for _, d := range col {
			n += d
		}
	}
	return n
}

// Result is reported once when a level ends.
type Result struct {
	LevelID   int
	Won       bool
	Score     int
	TurnsLeft int
}

// Options tunes an Engine. Zero fields take their defaults.
type Options struct {
	Seed            int64 // 0 seeds from the clock
	PointsPerTile   int
	ReshuffleBudget int
	TileSpeed       float64 // cells per tick
	DealSpeed       float64 // cells per tick
	SpawnOffset     float64 // cells between stacked refill spawns
	Catalog         CatalogConfig
	Layout          Layout
	Logger          *log.Logger

	// OnLevelEnd is called once with the result when the level is won or
	// lost. It runs with the engine lock held and must not call back into
	// the engine.
	OnLevelEnd func(Result)

	// Draw picks the index of the filler tile used for a refill from a
	// pool of n tiles. Nil draws uniformly at random.
	Draw func(n int) int
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		PointsPerTile:   60,
		ReshuffleBudget: 10,
		TileSpeed:       0.5,
		DealSpeed:       0.75,
		SpawnOffset:     1,
		Catalog:         DefaultCatalog(),
		Layout:          DefaultLayout(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PointsPerTile <= 0 {
		o.PointsPerTile = d.PointsPerTile
	}
	if o.ReshuffleBudget <= 0 {
		o.ReshuffleBudget = d.ReshuffleBudget
	}
	if o.TileSpeed <= 0 {
		o.TileSpeed = d.TileSpeed
	}
	if o.DealSpeed <= 0 {
		o.DealSpeed = d.DealSpeed
	}
	if o.SpawnOffset <= 0 {
		o.SpawnOffset = d.SpawnOffset
	}
	if o.Catalog.Variants <= 0 || o.Catalog.Playable <= 0 || o.Catalog.Filler < 0 {
		o.Catalog = d.Catalog
	}
	if o.Layout.CellW <= 0 || o.Layout.CellH <= 0 {
		o.Layout = d.Layout
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

type selection struct {
	pos  Pos
	tile *Tile
	held VisualState
}

// Engine is one level session. All methods are safe for concurrent use;
// input and the render loop serialize on a single lock.
type Engine struct {
	mu sync.Mutex

	opts  Options
	log   *log.Logger
	rng   *rand.Rand
	grid  *Grid
	level LevelSpec
	phase Phase
	sel   *selection

	score      int
	multiplier int
	turns      int
	clouds     int

	affected map[int]struct{} // columns touched by the current removal
	clearing bool             // an areal clear is in progress
	silent   bool             // removals do not score

	// moving references tiles that are animating. The tiles stay owned by
	// their grid cell or pool.
	moving map[*Tile]struct{}

	undo   *undoState
	result *Result
}

func newEngine(level LevelSpec, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		opts:       opts,
		log:        opts.Logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		level:      level,
		phase:      PhaseAwaitingFirst,
		multiplier: 1,
		turns:      level.Turns,
		clouds:     level.Clouds,
		affected:   make(map[int]struct{}),
		moving:     make(map[*Tile]struct{}),
	}
}

// NewEngine builds the tile catalogue, deals it onto a grid shaped by the
// level depths and pre-resolves any match on the dealt board.
// Configuration errors wrap ErrBadLayout or ErrPoolTooSmall.
func NewEngine(level LevelSpec, opts Options) (*Engine, error) {
	cols, rows := level.Size()
	g, err := NewGrid(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", level.ID, err)
	}
	e := newEngine(level, opts)
	g.SetLayout(e.opts.Layout)
	e.grid = g

	playable, filler := NewCatalog(e.opts.Catalog)
	e.rng.Shuffle(len(playable), func(i, j int) {
		playable[i], playable[j] = playable[j], playable[i]
	})
	if err := g.PlaceInitialLayout(level.Depths, playable); err != nil {
		return nil, fmt.Errorf("level %d: %w", level.ID, err)
	}
	g.SetFiller(filler)

	e.deal()
	e.score = 0
	e.log.Debug("level loaded", "level", level.ID, "tiles", level.TileCount(), "turns", level.Turns)
	return e, nil
}

// NewEngineFromGrid wraps an existing grid without dealing or
// pre-resolving it. When level.Depths is nil the grid's current depths
// become the level layout.
func NewEngineFromGrid(g *Grid, level LevelSpec, opts Options) (*Engine, error) {
	if level.Depths == nil {
		level.Depths = g.Depths()
	}
	if _, err := g.checkDepths(level.Depths); err != nil {
		return nil, fmt.Errorf("level %d: %w", level.ID, err)
	}
	e := newEngine(level, opts)
	if opts.Layout.CellW > 0 && opts.Layout.CellH > 0 {
		g.SetLayout(opts.Layout)
		g.SnapAll()
	}
	e.grid = g
	return e, nil
}

// Select handles a click on a grid cell.
func (e *Engine) Select(p Pos) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.Terminal() {
		return OutcomeIgnored
	}
	if len(e.moving) > 0 {
		return OutcomeBusy
	}
	t := e.grid.Top(p)
	if t == nil {
		return OutcomeIgnored
	}
	e.multiplier = 1

	if e.sel == nil {
		e.selectTile(p, t)
		return OutcomeSelected
	}
	if e.sel.pos == p {
		e.clearSelection()
		return OutcomeDeselected
	}
	if !e.sel.pos.Adjacent(p) {
		e.clearSelection()
		e.selectTile(p, t)
		return OutcomeReselected
	}

	m := Move{A: e.sel.pos, B: p}
	e.clearSelection()
	shape := Classify(e.grid, m.A, m.B)
	if shape.IsZero() {
		e.bounce(m)
		return OutcomeRejected
	}

	e.undo = e.capture()
	e.turns--
	e.play(m, shape)
	e.afterMove()
	return OutcomeMatched
}

// ForceCombo performs the first available move without spending a turn.
// It reports false when no move exists or the engine cannot accept input.
func (e *Engine) ForceCombo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.Terminal() || len(e.moving) > 0 {
		return false
	}
	m, ok := FindMove(e.grid)
	if !ok {
		return false
	}
	e.clearSelection()
	e.multiplier = 1
	e.play(m, Classify(e.grid, m.A, m.B))
	e.phase = PhaseAwaitingFirst
	return true
}

// Reshuffle redeals the board without changing score or turns.
func (e *Engine) Reshuffle() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.Terminal() {
		return
	}
	e.clearSelection()
	e.deal()
}

// ForceWin ends the level as won.
func (e *Engine) ForceWin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.phase.Terminal() {
		e.finish(true)
	}
}

// ForceLoss ends the level as lost.
func (e *Engine) ForceLoss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.phase.Terminal() {
		e.finish(false)
	}
}

// Update advances every moving tile by one tick.
func (e *Engine) Update() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for t := range e.moving {
		t.Update()
		if !t.IsMoving() {
			delete(e.moving, t)
		}
	}
}

// TilesMoving reports whether any tile is animating.
func (e *Engine) TilesMoving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.moving) > 0
}

// Phase returns the current session state.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Result returns the level result once the level has ended.
func (e *Engine) Result() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// Level returns the level configuration.
func (e *Engine) Level() LevelSpec {
	return e.level
}

// Grid exposes the underlying store for inspection. Callers must not use
// it while another goroutine drives the engine.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// SetLayout changes the screen mapping and snaps every tile into place.
func (e *Engine) SetLayout(l Layout) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.grid.SetLayout(l)
	e.grid.SnapAll()
	for t := range e.moving {
		delete(e.moving, t)
	}
}

// CellAt maps a screen point to a grid cell.
func (e *Engine) CellAt(x, y float64) (Pos, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.CellAt(x, y)
}

// play swaps the move, resolves it and runs the combo loop.
func (e *Engine) play(m Move, s Shape) {
	e.phase = PhaseResolving
	e.swap(m)
	e.resolve(m, s)
	e.ensureMove()
	e.cascade()
}

func (e *Engine) afterMove() {
	if e.turns <= 0 {
		e.finish(e.score >= e.level.Objective && e.clouds == 0)
		return
	}
	e.phase = PhaseAwaitingFirst
}

func (e *Engine) finish(won bool) {
	e.clearSelection()
	e.result = &Result{
		LevelID:   e.level.ID,
		Won:       won,
		Score:     e.score,
		TurnsLeft: e.turns,
	}
	if won {
		e.phase = PhaseWon
	} else {
		e.phase = PhaseLost
		for c := 0; c < e.grid.cols; c++ {
			for r := 0; r < e.grid.rows; r++ {
				for _, t := range e.grid.cells[c][r] {
					t.State = StateInvisible
				}
			}
		}
	}
	e.undo = nil
	e.log.Info("level ended", "level", e.level.ID, "won", won, "score", e.score)
	if e.opts.OnLevelEnd != nil {
		e.opts.OnLevelEnd(*e.result)
	}
}

func (e *Engine) selectTile(p Pos, t *Tile) {
	e.sel = &selection{pos: p, tile: t, held: t.State}
	if t.State == StateVisible {
		t.State = StateSelected
	} else {
		t.State = StateSpecialSelected
	}
	e.phase = PhaseAwaitingSecond
}

func (e *Engine) clearSelection() {
	if e.sel == nil {
		return
	}
	e.sel.tile.State = e.sel.held
	e.sel = nil
	if !e.phase.Terminal() {
		e.phase = PhaseAwaitingFirst
	}
}

// swap exchanges the top tiles of a move and animates both.
func (e *Engine) swap(m Move) {
	ta := e.grid.pop(m.A)
	tb := e.grid.pop(m.B)
	e.grid.push(m.A, tb)
	e.grid.push(m.B, ta)
	e.animate(ta, e.opts.TileSpeed)
	e.animate(tb, e.opts.TileSpeed)
}

// bounce shows a rejected swap: each tile starts at the other cell and
// travels home.
func (e *Engine) bounce(m Move) {
	ta := e.grid.Top(m.A)
	tb := e.grid.Top(m.B)
	ta.Place(e.grid.TileX(m.B.Col), e.grid.TileY(m.B.Row))
	tb.Place(e.grid.TileX(m.A.Col), e.grid.TileY(m.A.Row))
	e.animate(ta, e.opts.TileSpeed)
	e.animate(tb, e.opts.TileSpeed)
}

// animate sends t toward its cell at speed cells per tick.
func (e *Engine) animate(t *Tile, speed float64) {
	l := e.grid.layout
	unit := l.CellH
	if l.CellW > unit {
		unit = l.CellW
	}
	t.SetTarget(e.grid.TileX(t.Col), e.grid.TileY(t.Row))
	t.StartMovingToTarget(speed * unit)
	if t.IsMoving() {
		e.moving[t] = struct{}{}
	} else {
		delete(e.moving, t)
	}
}
