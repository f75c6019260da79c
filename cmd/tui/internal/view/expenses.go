package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/expenditure"
)

// ExpensesModel lists recorded expenditures in a table.
type ExpensesModel struct {
	CommonModel
	coord *coordinator.Coordinator

	table        table.Model
	expenditures []*expenditure.Expenditure
	err          error
}

func NewExpensesModel(coord *coordinator.Coordinator) ExpensesModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 15},
		{Title: "Account", Width: 10},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExpensesModel{coord: coord, table: t}
}

func (m ExpensesModel) Title() string { return "Expenditures" }
func (m ExpensesModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.expenditures = msg.expenditures
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenditures))
	for _, e := range m.expenditures {
		rows = append(rows, table.Row{
			e.ID,
			FormatDate(e.Timestamp),
			FormatMoney(e.Amount),
			e.CategoryName,
			e.AccountID,
			e.Description,
		})
	}

	m.table.SetRows(rows)
}

type loadExpensesMsg struct {
	expenditures []*expenditure.Expenditure
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadExpensesMsg{expenditures: m.coord.Expenditures()}
	}
}
