package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/raanman3d/internal/registry"
	"github.com/vovakirdan/raanman3d/internal/storage"
)

const (
	maxRuns    = 50 // runs loaded into the table
	bestsWidth = 36 // level bests panel, border included
	runsWidth  = 58 // run table, border included
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Mode key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Mode}, {k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Mode: key.NewBinding(key.WithKeys("tab", "left", "right"), key.WithHelp("tab", "3D/2D")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the recorded runs of one mode: the best run per
// level next to a table of the top runs with their seeds.
type ScoreboardModel struct {
	games     []registry.GameInfo
	mode      int
	store     *storage.Store
	stats     *storage.GameStats
	bests     []storage.LevelBest
	runs      []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   newScoreboardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 9},
			{Title: "Seed", Width: 10},
			{Title: "Time", Width: 6},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// gameID returns the mode currently shown, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.mode].ID
}

// load refreshes stats, level bests and runs for the current mode. Storage
// errors leave the board empty.
func (m *ScoreboardModel) load() {
	m.stats, m.bests, m.runs = nil, nil, nil
	if id := m.gameID(); m.store != nil && id != "" {
		if stats, err := m.store.GameStats(id); err == nil {
			m.stats = stats
		}
		if bests, err := m.store.LevelBests(id); err == nil {
			m.bests = bests
		}
		if runs, err := m.store.TopScores(id, maxRuns); err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.LevelID,
			fmt.Sprintf("%d", r.Seed),
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mode):
			if len(m.games) > 1 {
				m.mode = (m.mode + 1) % len(m.games)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "RUNS"
	if len(m.games) > 0 {
		title = "RUNS - " + m.games[m.mode].Title
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render(title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardDimStyle.Render(m.summary())))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardDimStyle.Italic(true).Render("No runs recorded yet.")))
		b.WriteString("\n")
	} else {
		bests := boardPanelStyle.Render(m.renderBests())
		runs := boardPanelStyle.Render(m.table.View())
		if m.width >= bestsWidth+runsWidth+2 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bests, "  ", runs))
		} else {
			b.WriteString(lipgloss.JoinVertical(lipgloss.Left, bests, runs))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the one-line aggregate for the current mode.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no runs"
	}
	return fmt.Sprintf("%d runs  avg %.0f  last %s",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderBests lists the best run of every level that has been played.
func (m ScoreboardModel) renderBests() string {
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Level bests"))
	for _, lb := range m.bests {
		level := lb.LevelID
		if level == "" {
			level = "?"
		}
		fmt.Fprintf(&b, "\n%-9s %7d  %5s  seed %d", level, lb.Best, formatDuration(lb.Duration), lb.Seed)
		fmt.Fprintf(&b, "\n%s", boardDimStyle.Render(fmt.Sprintf("          %d runs", lb.Runs)))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
