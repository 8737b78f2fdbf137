package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/raanman3d/internal/core"
	"github.com/vovakirdan/raanman3d/internal/registry"
	"github.com/vovakirdan/raanman3d/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(32)
)

// MenuItem is one playable mode with its recorded level bests.
type MenuItem struct {
	GameID string
	Title  string
	Bests  []storage.LevelBest
}

// Best is the top score over every level, 0 when nothing is recorded.
func (it MenuItem) Best() int {
	best := 0
	for _, lb := range it.Bests {
		best = max(best, lb.Best)
	}
	return best
}

// MenuModel picks the mode to play. The selected mode's level bests are shown
// beside the list.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered mode. A nil store shows no bests.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if bests, err := store.LevelBests(g.ID); err == nil {
				item.Bests = bests
			}
		}
		items = append(items, item)
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(0, m.cursor-1)
		case MenuActionDown:
			m.cursor = max(0, min(len(m.items)-1, m.cursor+1))
		case MenuActionSelect:
			if len(m.items) > 0 {
				it := m.items[m.cursor]
				m.selected = &it
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	list.WriteString(menuDimStyle.Render("mode"))
	for i, it := range m.items {
		line := fmt.Sprintf(" %-12s", it.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(line)
		}
		list.WriteString("\n" + line)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", menuPanelStyle.Render(m.bestsPanel()))

	w := m.config.ScreenW
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, menuTitleStyle.Render("R A A N M A N")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center,
		menuDimStyle.Render("up/down: mode  enter: play  tab: runs  q: quit")))
	b.WriteString("\n")
	return b.String()
}

// bestsPanel lists the highlighted mode's best score per level.
func (m MenuModel) bestsPanel() string {
	if len(m.items) == 0 {
		return menuDimStyle.Render("no modes registered")
	}
	it := m.items[m.cursor]
	if len(it.Bests) == 0 {
		return menuDimStyle.Render("no runs yet")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "best %d", it.Best())
	for _, lb := range it.Bests {
		fmt.Fprintf(&b, "\n%-9s %7d  seed %d", lb.LevelID, lb.Best, lb.Seed)
	}
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized if the window changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		res.Quit = true
	default:
		res.GameID = m.Selected().GameID
	}
	return res, nil
}
