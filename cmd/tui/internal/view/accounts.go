package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/ledger"
)

type accountsState int

const (
	accountsStateList accountsState = iota
	accountsStateCredit
	accountsStateAdd
)

// AccountsModel lists accounts and supports crediting and creating them.
type AccountsModel struct {
	CommonModel
	coord *coordinator.Coordinator

	state    accountsState
	table    table.Model
	accounts []*ledger.Account
	form     *huh.Form

	formID     string
	formName   string
	formAmount string

	status string
}

func NewAccountsModel(coord *coordinator.Coordinator) AccountsModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 25},
		{Title: "Balance", Width: 12},
		{Title: "Expenditures", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return AccountsModel{coord: coord, table: t}
}

func (m AccountsModel) Title() string { return "Accounts" }
func (m AccountsModel) ShortHelp() string {
	return "c: credit | n: new account | r: refresh | Esc: back"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAccountsMsg:
		m.accounts = msg.accounts
		m.refreshTable()

		return m, nil

	case accountActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = accountsStateList
		m.form = nil

		return m, m.loadCmd()
	}

	switch m.state {
	case accountsStateList:
		return m.updateList(msg)
	case accountsStateCredit, accountsStateAdd:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m AccountsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "c":
			if len(m.accounts) == 0 {
				return m, nil
			}
			m.formAmount = ""
			m.form = m.buildCreditForm()
			m.state = accountsStateCredit

			return m, m.form.Init()
		case "n":
			m.formID = ""
			m.formName = ""
			m.form = m.buildAddForm()
			m.state = accountsStateAdd

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = accountsStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == accountsStateCredit {
		return m, m.creditCmd()
	}

	return m, m.addCmd()
}

func (m AccountsModel) View() string {
	if m.state != accountsStateList && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(statusLine + tableView)
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.accounts))
	for _, acct := range m.accounts {
		rows = append(rows, table.Row{
			acct.ID(),
			acct.Name(),
			FormatMoney(acct.Balance()),
			fmt.Sprintf("%d", len(acct.ExpenditureIDs())),
		})
	}

	m.table.SetRows(rows)
}

func (m AccountsModel) selectedAccount() *ledger.Account {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return nil
	}

	return m.accounts[idx]
}

func (m AccountsModel) buildCreditForm() *huh.Form {
	acct := m.selectedAccount()
	title := "Credit amount"
	if acct != nil {
		title = fmt.Sprintf("Credit %s (%s)", acct.Name(), acct.ID())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(title).
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amt, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("amount must be a number")
					}
					if !amt.IsPositive() {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m AccountsModel) buildAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("id").
				Title("Account ID").
				Value(&m.formID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("id cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

// Messages

type loadAccountsMsg struct {
	accounts []*ledger.Account
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadAccountsMsg{accounts: m.coord.Accounts()}
	}
}

type accountActionMsg struct {
	status string
	err    error
}

func (m AccountsModel) creditCmd() tea.Cmd {
	acct := m.selectedAccount()
	amount := decimal.RequireFromString(strings.TrimSpace(m.form.GetString("amount")))
	coord := m.coord

	return func() tea.Msg {
		if acct == nil {
			return accountActionMsg{err: ledger.ErrNotFound}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		if err := coord.CreditAccount(ctx, acct.ID(), amount); err != nil {
			return accountActionMsg{err: err}
		}

		return accountActionMsg{status: fmt.Sprintf("Credited %s to %s", amount.StringFixed(2), acct.ID())}
	}
}

func (m AccountsModel) addCmd() tea.Cmd {
	id := strings.TrimSpace(m.form.GetString("id"))
	name := strings.TrimSpace(m.form.GetString("name"))
	coord := m.coord

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := coord.AddAccount(ctx, ledger.NewAccount(id, name, decimal.Zero)); err != nil {
			return accountActionMsg{err: err}
		}

		return accountActionMsg{status: fmt.Sprintf("Created account %s", id)}
	}
}
