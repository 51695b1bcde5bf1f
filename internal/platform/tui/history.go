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

	"github.com/vovakirdan/tui-maze/internal/storage"
)

// History layout constants
const (
	maxRuns        = 200 // Max runs to load
	historyChrome  = 9   // Lines used by title, stats, borders and help
	minTableHeight = 3
)

// HistoryKeyMap defines the key bindings for the run history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Filter   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
	ShowHelp key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Filter, k.ShowHelp, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "oldest"),
		),
		Filter: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "completed only"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	runs          []storage.Run
	stats         *storage.Stats
	completedOnly bool
	table         table.Model
	help          help.Model
	keys          HistoryKeyMap
	width         int
	height        int
	quitting      bool
}

// NewHistoryModel creates a history model from the given runs and stats.
// Stats may be nil.
func NewHistoryModel(runs []storage.Run, stats *storage.Stats, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := HistoryModel{
		runs:   runs,
		stats:  stats,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// HistoryColumns returns the run table columns.
func HistoryColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 12},
		{Title: "Size", Width: 9},
		{Title: "Seed", Width: 20},
		{Title: "Steps", Width: 7},
		{Title: "Done", Width: 4},
		{Title: "Time", Width: 9},
		{Title: "From", Width: 4},
	}
}

// HistoryRow formats a run as a table row.
func HistoryRow(r storage.Run) table.Row {
	done := "no"
	if r.Completed {
		done = "yes"
	}
	return table.Row{
		r.CreatedAt.Local().Format("Jan 02 15:04"),
		fmt.Sprintf("%dx%d", r.Rows, r.Cols),
		fmt.Sprintf("%d", r.Seed),
		fmt.Sprintf("%d", r.Steps),
		done,
		r.Duration.Round(time.Millisecond).String(),
		r.Source,
	}
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(HistoryColumns()),
		table.WithFocused(true),
		table.WithHeight(max(minTableHeight, m.height-historyChrome)),
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

// visibleRuns returns the runs that pass the current filter.
func (m HistoryModel) visibleRuns() []storage.Run {
	if !m.completedOnly {
		return m.runs
	}
	out := make([]storage.Run, 0, len(m.runs))
	for _, r := range m.runs {
		if r.Completed {
			out = append(out, r)
		}
	}
	return out
}

// updateTableRows updates the table with the visible runs.
func (m *HistoryModel) updateTableRows() {
	runs := m.visibleRuns()
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = HistoryRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.completedOnly = !m.completedOnly
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.ShowHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "MAZE HISTORY"
	if m.completedOnly {
		title += " (completed)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(StatsLine(m.stats)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.visibleRuns()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun 'maze run' or 'maze generate' to create one!")
	}

	return m.table.View()
}

// StatsLine summarizes aggregate run statistics on one line.
func StatsLine(stats *storage.Stats) string {
	if stats == nil || stats.Runs == 0 {
		return "no runs"
	}
	line := fmt.Sprintf("%d runs, %d completed, %d cells carved",
		stats.Runs, stats.Completed, stats.TotalCells)
	if stats.Completed > 0 {
		line += fmt.Sprintf(", avg %s", stats.AvgDuration.Round(time.Millisecond))
	}
	line += fmt.Sprintf(", largest %dx%d", stats.LargestRows, stats.LargestCols)
	return line
}

// IsQuitting returns true if user wants to quit.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory loads recent runs from store and shows them.
func RunHistory(store *storage.Store, width, height int) error {
	runs, err := store.RecentRuns(maxRuns)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewHistoryModel(runs, stats, width, height),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
