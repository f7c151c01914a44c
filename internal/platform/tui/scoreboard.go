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

	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/scores"
	"github.com/vovakirdan/quadfall/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the view list sidebar
	sidebarWidth       = 20 // Width of the view list sidebar
	maxRounds          = 50 // Max history rows to load
)

var tableStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// tableStyles returns the shared table styles. With highlight unset the
// cursor row is drawn like any other row.
func tableStyles(highlight bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if highlight {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

// rankingTable lists the ranking. A positive rank highlights that row.
func rankingTable(list []int, rank int) table.Model {
	rows := make([]table.Row, len(list))
	for i, s := range list {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprintf("%d", s)}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(tableStyles(rank > 0))
	if rank > 0 {
		t.SetCursor(rank - 1)
	}
	return t
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// scoreView is one page of the scoreboard.
type scoreView int

const (
	viewRanking scoreView = iota
	viewTopRounds
	viewRecentRounds
)

var scoreViewTitles = []string{"Ranking", "Best rounds", "Recent rounds"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextView, k.PrevView, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	ranking  *scores.Ranking
	history  *storage.Store // nil hides the round views
	views    []scoreView
	cursor   int
	stats    *storage.Stats
	table    table.Model
	empty    bool
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(ranking *scores.Ranking, history *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	views := []scoreView{viewRanking}
	if history != nil {
		views = append(views, viewTopRounds, viewRecentRounds)
	}

	m := ScoreboardModel{
		ranking: ranking,
		history: history,
		views:   views,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	if history != nil {
		if stats, err := history.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.load()
	return m
}

// load fills the table for the selected view.
func (m *ScoreboardModel) load() {
	switch m.views[m.cursor] {
	case viewRanking:
		list := m.ranking.Read()
		m.table = rankingTable(list, 0)
		m.empty = len(list) == 0 || list[0] == 0
	default:
		m.table = m.roundsTable()
	}
	m.table.Focus()
	m.table.SetStyles(tableStyles(true))
	m.table.SetHeight(core.Clamp(m.height-10, 3, len(m.table.Rows())+1))
	m.table.GotoTop()
}

// roundsTable lists recorded rounds for the selected history view.
func (m *ScoreboardModel) roundsTable() table.Model {
	var (
		rounds []storage.RoundRecord
		err    error
	)
	if m.views[m.cursor] == viewTopRounds {
		rounds, err = m.history.TopRounds(maxRounds)
	} else {
		rounds, err = m.history.RecentRounds(maxRounds)
	}
	if err != nil {
		rounds = nil
	}
	m.empty = len(rounds) == 0

	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Pieces),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.Catalog,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Pieces", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Shapes", Width: 8},
			{Title: "Date", Width: 13},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.cursor = (m.cursor + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.views) - 1
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("QUADFALL - %s", scoreViewTitles[m.views[m.cursor]])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Rounds > 0 {
		line := fmt.Sprintf("%d rounds · best %d · avg %.1f · %d pieces · %s played",
			m.stats.Rounds, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalPieces,
			m.stats.TotalTime.Round(time.Second))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	if m.width >= minWidthForSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar listing the views.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + scoreViewTitles[v]))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the scoreboard with view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(scoreViewTitles[v])
		} else {
			tabs[i] = tabStyle.Render(" " + scoreViewTitles[v] + " ")
		}
	}

	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}

	return m.table.View()
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(ranking *scores.Ranking, history *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(ranking, history, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
