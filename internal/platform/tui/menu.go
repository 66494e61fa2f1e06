package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-saga/internal/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

// LevelEntry is one row of the level picker.
type LevelEntry struct {
	ID        int
	Name      string
	Turns     int
	Objective int
	Clouds    int
	Locked    bool
	Wins      int
	Best      int
	Played    bool
}

// LevelMenuModel is the level picker. Levels above the player's latest
// unlocked level are shown but cannot be started.
type LevelMenuModel struct {
	entries      []LevelEntry
	cursor       int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	notice       string
	loadErr      error
	selected     *LevelEntry
	quitting     bool
	back         bool
	openRecords  bool
	scrollOffset int
}

// NewLevelMenuModel creates a level picker for the player in cfg. Without
// a store every level is unlocked.
func NewLevelMenuModel(store *storage.Store, cfg core.RuntimeConfig, theme Theme) LevelMenuModel {
	m := LevelMenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     theme,
	}
	m.entries, m.loadErr = loadLevelEntries(store, playerOf(cfg))

	// Start on the highest unlocked level.
	for i, e := range m.entries {
		if !e.Locked {
			m.cursor = i
		}
	}
	m.updateScroll()
	return m
}

func playerOf(cfg core.RuntimeConfig) string {
	if cfg.Player == "" {
		return storage.DefaultPlayer
	}
	return cfg.Player
}

// loadLevelEntries joins the level set with the player's records.
func loadLevelEntries(store *storage.Store, player string) ([]LevelEntry, error) {
	lvls, err := saga.Levels()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, errors.New("no levels found")
	}

	latest := lvls[len(lvls)-1].ID
	stats := map[int]storage.LevelStat{}
	if store != nil {
		if latest, err = store.LatestLevel(player); err != nil {
			return nil, err
		}
		list, err := store.LevelStats(player)
		if err != nil {
			return nil, err
		}
		for _, st := range list {
			stats[st.LevelID] = st
		}
	}

	entries := make([]LevelEntry, len(lvls))
	for i, l := range lvls {
		st, played := stats[l.ID]
		entries[i] = LevelEntry{
			ID:        l.ID,
			Name:      l.Name,
			Turns:     l.Turns,
			Objective: l.Objective,
			Clouds:    l.Clouds,
			Locked:    l.ID > latest,
			Wins:      st.Wins,
			Best:      st.BestScore,
			Played:    played,
		}
	}
	return entries, nil
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		if e.Locked {
			m.notice = fmt.Sprintf("Win level %d to unlock %s", e.ID-1, e.Name)
			return m, nil
		}
		m.selected = &e
		return m, tea.Quit
	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	visible := m.height - 12 // title, subtitle, notice and footer
	if visible < 3 {
		visible = 3
	}
	return visible
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("L U L L A B Y   S A G A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Choose a dream, "+playerOf(m.config)), m.width))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(centerText(m.theme.MenuItemLocked.Render("Cannot load levels: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	end := m.scrollOffset + m.visibleItems()
	if end > len(m.entries) {
		end = len(m.entries)
	}
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderEntry(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.theme.MenuItemActive.Render(m.notice), m.width))
	}
	b.WriteString("\n\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LevelMenuModel) renderEntry(i int) string {
	e := m.entries[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	status := fmt.Sprintf("%2d turns  goal %d", e.Turns, e.Objective)
	switch {
	case e.Locked:
		status = "locked"
	case e.Wins > 0:
		status = fmt.Sprintf("best %d  ✓", e.Best)
	case e.Played:
		status = fmt.Sprintf("best %d", e.Best)
	}
	line := fmt.Sprintf("%s%2d. %-20s %s", cursor, e.ID, e.Name, status)

	var style lipgloss.Style
	switch {
	case i == m.cursor:
		style = m.theme.MenuItemActive
	case e.Locked:
		style = m.theme.MenuItemLocked
	case e.Wins > 0:
		style = m.theme.MenuItemWon
	default:
		style = m.theme.MenuItemNormal
	}
	return style.Render(line)
}

// Selected returns the chosen level, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelEntry {
	return m.selected
}

// Entries returns the level rows.
func (m LevelMenuModel) Entries() []LevelEntry {
	return m.entries
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// WantsRecords returns true if user asked for the records screen.
func (m LevelMenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m LevelMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
