// Package saga provides the Lullaby Saga match-3 game for the platform.
package saga

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-saga/internal/config"
	platformcore "github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/levels"
	"github.com/vovakirdan/tui-saga/internal/registry"
)

// GameID is the registry identifier.
const GameID = "saga"

const (
	hudHeight    = 4 // title, separator, controls, separator
	footerHeight = 2
	minCellW     = 2
	minCellH     = 1
)

// Package-level settings shared by every game instance. The CLI sets them
// once before the first game is created.
var (
	settingsMu  sync.RWMutex
	sagaConfig  = config.DefaultSagaConfig()
	levelLoader = levels.Embedded()
	baseLogger  = log.New(io.Discard)
)

// SetConfig sets the configuration used by new games.
func SetConfig(cfg config.SagaConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	sagaConfig = cfg
}

// SetLevelLoader sets where new games load levels from.
func SetLevelLoader(l *levels.Loader) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = levels.Embedded()
	}
	levelLoader = l
}

// SetLogger sets the logger handed to every engine.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	baseLogger = l
}

func settings() (config.SagaConfig, *levels.Loader, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return sagaConfig, levelLoader, baseLogger
}

// Levels returns the levels new games will play, sorted by ID.
func Levels() ([]levels.Level, error) {
	_, loader, _ := settings()
	return loader.LoadAll()
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts a saga engine to the platform loop.
type Game struct {
	cfg    config.SagaConfig
	loader *levels.Loader
	base   *log.Logger
	logger *log.Logger
	rng    *rand.Rand

	all        []levels.Level
	index      int
	startLevel int
	loadErr    error

	engine  *core.Engine
	pending *core.Result // set by the engine when the level ends
	result  *core.Result

	cursor  core.Pos
	message string
	paused  bool

	screenW  int
	screenH  int
	cellW    int
	cellH    int
	board    platformcore.Rect
	tooSmall bool
}

// New creates a game using the package settings.
func New() *Game {
	cfg, loader, logger := settings()
	return &Game{
		cfg:    cfg,
		loader: loader,
		base:   logger,
		logger: logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Lullaby Saga"
}

// SelectLevel makes the next Reset start at the given level ID.
func (g *Game) SelectLevel(id int) {
	g.startLevel = id
}

// Reset loads the levels and starts the selected one.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.logger = g.base
	if cfg.Player != "" {
		g.logger = g.base.With("player", cfg.Player)
	}

	g.all, g.loadErr = g.loader.LoadAll()
	if g.loadErr == nil && len(g.all) == 0 {
		g.loadErr = levels.ErrLevelNotFound
	}
	if g.loadErr != nil {
		g.engine = nil
		return
	}

	g.index = 0
	for i, l := range g.all {
		if l.ID == g.startLevel {
			g.index = i
		}
	}
	g.loadLevel(g.index)
}

// loadLevel starts the level at index i of the loaded set.
func (g *Game) loadLevel(i int) {
	g.index = i
	g.pending = nil
	g.result = nil
	g.paused = false
	g.message = ""

	ls := g.all[i].Spec()
	g.calculateLayout(ls)

	opts := optionsFromConfig(g.cfg, g.rng.Int63(), g.logger)
	opts.Layout = g.layout()
	opts.OnLevelEnd = func(r core.Result) {
		g.pending = &r
	}

	e, err := core.NewEngine(ls, opts)
	if err != nil {
		g.loadErr = err
		g.engine = nil
		g.logger.Error("cannot start level", "level", ls.ID, "err", err)
		return
	}
	g.loadErr = nil
	g.engine = e

	cols, rows := ls.Size()
	g.cursor = core.P(cols/2, rows/2)
}

// optionsFromConfig maps the config file onto engine options.
func optionsFromConfig(c config.SagaConfig, seed int64, logger *log.Logger) core.Options {
	return core.Options{
		Seed:            seed,
		PointsPerTile:   c.Scoring.PointsPerTile,
		ReshuffleBudget: c.Board.ReshuffleBudget,
		TileSpeed:       c.Animation.TileSpeed,
		DealSpeed:       c.Animation.DealSpeed,
		SpawnOffset:     c.Animation.SpawnOffset,
		Catalog: core.CatalogConfig{
			Variants: c.Tiles.VariantsPerCategory,
			Playable: c.Tiles.PlayablePerVariant,
			Filler:   c.Tiles.FillerPerVariant,
		},
		Layout: core.Layout{
			CellW: float64(c.Board.CellWidth),
			CellH: float64(c.Board.CellHeight),
		},
		Logger: logger,
	}
}

// calculateLayout sizes the cells to fit the screen and centers the board.
// Cells shrink from the configured size down to the minimum before the
// screen is declared too small.
func (g *Game) calculateLayout(ls core.LevelSpec) {
	cols, rows := ls.Size()
	availW := g.screenW - 2
	availH := g.screenH - hudHeight - footerHeight - 2

	g.cellW = g.cfg.Board.CellWidth
	g.cellH = g.cfg.Board.CellHeight
	if cols > 0 && availW/cols < g.cellW {
		g.cellW = availW / cols
	}
	if rows > 0 && availH/rows < g.cellH {
		g.cellH = availH / rows
	}
	if g.cellW < minCellW || g.cellH < minCellH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	area := platformcore.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footerHeight)
	g.board = area.Centered(cols*g.cellW, rows*g.cellH)
}

func (g *Game) layout() core.Layout {
	return core.Layout{
		OriginX: float64(g.board.X),
		OriginY: float64(g.board.Y),
		CellW:   float64(g.cellW),
		CellH:   float64(g.cellH),
	}
}

// Resize re-centers the board without restarting the level.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine == nil {
		return
	}
	g.calculateLayout(g.engine.Level())
	if !g.tooSmall {
		g.engine.SetLayout(g.layout())
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.engine == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	phase := g.engine.Phase()
	if in.Has(platformcore.ActionPause) && !phase.Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.engine.Update()

	if phase.Terminal() {
		switch {
		case in.Has(platformcore.ActionRestart):
			g.loadLevel(g.index)
		case in.Has(platformcore.ActionNext) && phase == core.PhaseWon && g.index+1 < len(g.all):
			g.loadLevel(g.index + 1)
		}
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(platformcore.ActionSelect) {
		g.selectAt(g.cursor)
	}
	for _, c := range in.Clicks {
		if p, ok := g.engine.CellAt(float64(c.X), float64(c.Y)); ok {
			g.cursor = p
			g.selectAt(p)
		}
	}
	if in.Has(platformcore.ActionUndo) {
		if g.engine.Undo() {
			g.message = "Move undone"
		}
	}
	if g.cfg.Debug.Enabled {
		g.debugActions(in)
	}

	res := platformcore.StepResult{}
	if g.pending != nil {
		g.result = g.pending
		g.pending = nil
		res.Ended = true
	}
	res.State = g.State()
	return res
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	cols, rows := g.engine.Level().Size()
	c, r := g.cursor.Col, g.cursor.Row
	if in.Has(platformcore.ActionLeft) {
		c--
	}
	if in.Has(platformcore.ActionRight) {
		c++
	}
	if in.Has(platformcore.ActionUp) {
		r--
	}
	if in.Has(platformcore.ActionDown) {
		r++
	}
	g.cursor = core.P(platformcore.Clamp(c, 0, cols-1), platformcore.Clamp(r, 0, rows-1))
}

func (g *Game) selectAt(p core.Pos) {
	switch g.engine.Select(p) {
	case core.OutcomeRejected:
		g.message = "No match there"
	case core.OutcomeMatched:
		g.message = ""
	case core.OutcomeSelected, core.OutcomeReselected:
		g.message = fmt.Sprintf("Selected %s", p)
	case core.OutcomeDeselected:
		g.message = ""
	}
}

func (g *Game) debugActions(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionCombo):
		if g.engine.ForceCombo() {
			g.message = "Combo played"
		}
	case in.Has(platformcore.ActionShuffle):
		g.engine.Reshuffle()
		g.message = "Board reshuffled"
	case in.Has(platformcore.ActionForceWin):
		g.engine.ForceWin()
	case in.Has(platformcore.ActionForceLoss):
		g.engine.ForceLoss()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{GameOver: g.loadErr != nil}
	}
	snap := g.engine.Snapshot()
	return platformcore.GameState{
		Score:    snap.Score,
		GameOver: snap.Phase.Terminal(),
		Won:      snap.Phase == core.PhaseWon,
		Paused:   g.paused,
		Level:    snap.LevelID,
		Turns:    snap.Turns,
	}
}

// Engine returns the engine of the level in play, or nil.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() core.Pos {
	return g.cursor
}

// Message returns the status line text.
func (g *Game) Message() string {
	return g.message
}

// LevelIndex returns the position of the level in play in the loaded set.
func (g *Game) LevelIndex() int {
	return g.index
}
