// Package tui provides a read-only terminal browser for scored result files.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riskline/riskline/internal/model"
)

// Columns displayed in the review table, in order, when the file has them.
var reviewColumns = []struct {
	name  string
	width int
}{
	{"transaction_id", 14},
	{"account_id", 12},
	{"amount", 10},
	{"channel", 10},
	{"fraud_probability", 18},
	{"predicted_is_suspicious", 10},
	{"fraud_pattern", 36},
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Model is the bubbletea model for browsing a scored batch.
type Model struct {
	title string
	table table.Model
	total int
}

// NewModel builds the review browser over an already-scored batch.
func NewModel(title string, batch model.Batch) Model {
	present := make(map[string]bool, len(batch.Columns))
	for _, c := range batch.Columns {
		present[c] = true
	}

	var cols []table.Column
	var names []string
	for _, rc := range reviewColumns {
		if present[rc.name] {
			cols = append(cols, table.Column{Title: rc.name, Width: rc.width})
			names = append(names, rc.name)
		}
	}

	rows := make([]table.Row, len(batch.Records))
	for i, rec := range batch.Records {
		row := make(table.Row, len(names))
		for j, name := range names {
			row[j] = rec.Fields[name]
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#FF6B6B"))
	t.SetStyles(styles)

	return Model{
		title: title,
		table: t,
		total: len(batch.Records),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 4)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("%s · %d records", m.title, m.total))
	help := helpStyle.Render("↑/↓ scroll · q quit")
	return header + "\n" + m.table.View() + "\n" + help
}

// Run opens the review browser and blocks until the user quits.
func Run(title string, batch model.Batch) error {
	p := tea.NewProgram(NewModel(title, batch), tea.WithOutput(os.Stdout))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("review browser failed: %w", err)
	}
	return nil
}
