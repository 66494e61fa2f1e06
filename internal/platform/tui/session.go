package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/registry"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeRecords
	modeGame
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the records screen reachable from the menu. Used locally and over SSH.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	theme     Theme
	sessionID string
	mode      sessionMode
	menu      LevelMenuModel
	records   RecordsModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model. Every result recorded in
// the session shares one session ID.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, theme Theme) SessionModel {
	if cfg.Player == "" {
		cfg.Player = storage.DefaultPlayer
	}
	return SessionModel{
		store:     store,
		config:    cfg,
		theme:     theme,
		sessionID: uuid.NewString(),
		menu:      NewLevelMenuModel(store, cfg, theme),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu's own tea.Quit
// is dropped; its flags drive the session instead.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(LevelMenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() || m.menu.WantsBack() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRecords() {
		m.mode = modeRecords
		m.records = NewRecordsModel(m.store, m.config.Player, m.config.ScreenW, m.config.ScreenH, m.theme)
		return m, m.records.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.CreateAt(saga.GameID, selected.ID)
		if err != nil {
			return m, nil
		}

		gameModel := NewGameModel(game, m.store, m.config, m.sessionID).WithPalette(m.theme.Palette)
		m.gameModel = &gameModel
		m.mode = modeGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRecords, cmd := m.records.Update(msg)
	if recordsModel, ok := newRecords.(RecordsModel); ok {
		m.records = recordsModel
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// backToMenu rebuilds the menu so it shows newly unlocked levels.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.mode = modeMenu
	m.gameModel = nil
	m.menu = NewLevelMenuModel(m.store, m.config, m.theme)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case modeRecords:
		return m.records.View()
	}
	return m.menu.View()
}

// SessionID returns the ID shared by the session's recorded results.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// InGame reports whether a level is being played.
func (m SessionModel) InGame() bool {
	return m.mode == modeGame
}

// RunSession runs the menu, records and game screens in one program.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, theme Theme) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, theme),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
