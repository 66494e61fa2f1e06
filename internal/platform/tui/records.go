package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-saga/internal/games/saga"
	"github.com/vovakirdan/tui-saga/internal/storage"
)

const (
	maxRecords  = 100
	recentLimit = 50
)

// RecordsView selects which table the records screen shows.
type RecordsView int

const (
	ViewLevels RecordsView = iota
	ViewRecent
	ViewTop
	recordsViewCount
)

func (v RecordsView) String() string {
	switch v {
	case ViewLevels:
		return "Levels"
	case ViewRecent:
		return "Recent"
	case ViewTop:
		return "Top scores"
	}
	return "?"
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevLevel key.Binding
	NextLevel key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevLevel, k.NextLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.PrevLevel, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel shows the player's level stats, recent results and the
// top scores of each level.
type RecordsModel struct {
	store     *storage.Store
	player    string
	levelIDs  []int
	names     map[int]string
	view      RecordsView
	levelPos  int // level shown by the top scores view
	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	theme     Theme
	width     int
	height    int
	rowCount  int
	loadErr   error
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates a records screen for player.
func NewRecordsModel(store *storage.Store, player string, width, height int, theme Theme) RecordsModel {
	if player == "" {
		player = storage.DefaultPlayer
	}
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:  store,
		player: player,
		names:  map[int]string{},
		keys:   DefaultRecordsKeyMap(),
		help:   h,
		theme:  theme,
		width:  width,
		height: height,
	}

	lvls, err := saga.Levels()
	if err != nil {
		m.loadErr = err
	}
	for _, l := range lvls {
		m.levelIDs = append(m.levelIDs, l.ID)
		m.names[l.ID] = l.Name
	}

	m.reload()
	return m
}

// columns returns the table columns of the current view.
func (m *RecordsModel) columns() []table.Column {
	switch m.view {
	case ViewRecent:
		return []table.Column{
			{Title: "Level", Width: 18},
			{Title: "Result", Width: 7},
			{Title: "Score", Width: 8},
			{Title: "Turns", Width: 6},
			{Title: "Date", Width: 14},
		}
	case ViewTop:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 14},
		}
	default:
		return []table.Column{
			{Title: "#", Width: 4},
			{Title: "Level", Width: 18},
			{Title: "Wins", Width: 6},
			{Title: "Losses", Width: 7},
			{Title: "Best", Width: 8},
		}
	}
}

// createTable creates a table sized for the current view.
func (m *RecordsModel) createTable(rows []table.Row) table.Model {
	height := m.height - 10 // title, tabs, help and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Inherit(m.theme.TableHeader)
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)

	return t
}

// reload queries the store for the current view and rebuilds the table.
func (m *RecordsModel) reload() {
	rows, err := m.loadRows()
	if err != nil {
		m.loadErr = err
		rows = nil
	}
	m.rowCount = len(rows)
	m.table = m.createTable(rows)
}

func (m *RecordsModel) loadRows() ([]table.Row, error) {
	if m.store == nil {
		return nil, nil
	}

	switch m.view {
	case ViewRecent:
		results, err := m.store.RecentResults(m.player, recentLimit)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(results))
		for i, r := range results {
			outcome := "lost"
			if r.Won {
				outcome = "won"
			}
			rows[i] = table.Row{
				m.levelName(r.LevelID),
				outcome,
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.TurnsLeft),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	case ViewTop:
		id := m.currentLevel()
		if id == 0 {
			return nil, nil
		}
		results, err := m.store.TopScores(id, maxRecords)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(results))
		for i, r := range results {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				r.Player,
				fmt.Sprintf("%d", r.Score),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	default:
		stats, err := m.store.LevelStats(m.player)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(stats))
		for i, st := range stats {
			rows[i] = table.Row{
				fmt.Sprintf("%d", st.LevelID),
				m.levelName(st.LevelID),
				fmt.Sprintf("%d", st.Wins),
				fmt.Sprintf("%d", st.Losses),
				fmt.Sprintf("%d", st.BestScore),
			}
		}
		return rows, nil
	}
}

func (m *RecordsModel) levelName(id int) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return fmt.Sprintf("Level %d", id)
}

func (m *RecordsModel) currentLevel() int {
	if len(m.levelIDs) == 0 {
		return 0
	}
	return m.levelIDs[m.levelPos]
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % recordsViewCount
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + recordsViewCount - 1) % recordsViewCount
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			if m.view == ViewTop && len(m.levelIDs) > 0 {
				m.levelPos = (m.levelPos + 1) % len(m.levelIDs)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if m.view == ViewTop && len(m.levelIDs) > 0 {
				m.levelPos = (m.levelPos + len(m.levelIDs) - 1) % len(m.levelIDs)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("DREAM RECORDS - %s", m.player)
	if m.view == ViewTop && m.currentLevel() != 0 {
		title = fmt.Sprintf("TOP SCORES - %d. %s", m.currentLevel(), m.levelName(m.currentLevel()))
	}
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.theme.Border.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RecordsModel) renderTabs() string {
	tabs := make([]string, recordsViewCount)
	for v := RecordsView(0); v < recordsViewCount; v++ {
		if v == m.view {
			tabs[v] = m.theme.TableSelected.Padding(0, 1).Render(v.String())
		} else {
			tabs[v] = m.theme.MenuDescription.Render(" " + v.String() + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return m.theme.Empty.Render("Records are off.\nStart without --no-records to keep them.")
	case m.loadErr != nil:
		return m.theme.Empty.Render("Cannot load records:\n" + m.loadErr.Error())
	case m.rowCount == 0:
		return m.theme.Empty.Render("No dreams recorded yet.\nFinish a level to see it here!")
	}
	return m.table.View()
}

// CurrentView returns the active view.
func (m RecordsModel) CurrentView() RecordsView {
	return m.view
}

// Rows returns the number of rows in the active table.
func (m RecordsModel) Rows() int {
	return m.rowCount
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records screen on its own.
func RunRecords(store *storage.Store, player string, width, height int, theme Theme) error {
	p := tea.NewProgram(
		NewRecordsModel(store, player, width, height, theme),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
