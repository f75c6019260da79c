package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/coordinator"
)

type addExpenseState int

const (
	addStateForm addExpenseState = iota
	addStateResult
)

// AddExpenseModel records a new expenditure against an account.
type AddExpenseModel struct {
	CommonModel
	coord *coordinator.Coordinator

	state addExpenseState
	form  *huh.Form

	formID       string
	formAccount  string
	formCategory string
	formAmount   string
	formDesc     string

	status string
	err    error
}

func NewAddExpenseModel(coord *coordinator.Coordinator) AddExpenseModel {
	m := AddExpenseModel{coord: coord, state: addStateForm}
	m.form = m.buildForm()

	return m
}

func (m AddExpenseModel) Title() string { return "Add Expenditure" }
func (m AddExpenseModel) ShortHelp() string {
	return "Enter: confirm | Esc: back"
}

func (m AddExpenseModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case addStateForm:
		return m.updateForm(msg)
	case addStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m AddExpenseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = addStateResult

	return m, m.recordCmd()
}

func (m AddExpenseModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordResultMsg:
		m.status = msg.status
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "a":
			m.formID = ""
			m.formAmount = ""
			m.formDesc = ""
			m.status = ""
			m.err = nil
			m.form = m.buildForm()
			m.state = addStateForm

			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m AddExpenseModel) View() string {
	switch m.state {
	case addStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case addStateResult:
		if m.err != nil {
			body := lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Render(fmt.Sprintf("Rejected: %v", m.err))

			return lipgloss.NewStyle().Padding(1).Render(
				body + "\n\n" + lipgloss.NewStyle().Faint(true).Render("a: try again | Esc: back"),
			)
		}

		body := lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render(m.status)

		return lipgloss.NewStyle().Padding(1).Render(
			body + "\n\n" + lipgloss.NewStyle().Faint(true).Render("a: add another | Esc: back"),
		)
	}

	return ""
}

func (m AddExpenseModel) buildForm() *huh.Form {
	accountOpts := make([]huh.Option[string], 0)
	for _, acct := range m.coord.Accounts() {
		label := fmt.Sprintf("%s (%s, balance %s)", acct.Name(), acct.ID(), FormatMoney(acct.Balance()))
		accountOpts = append(accountOpts, huh.NewOption(label, acct.ID()))
	}

	categoryOpts := make([]huh.Option[string], 0)
	for _, cat := range m.coord.Categories() {
		categoryOpts = append(categoryOpts, huh.NewOption(cat.Name, cat.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOpts...).
				Value(&m.formAccount),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOpts...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount").
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

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("id").
				Title("ID (leave blank to auto-generate)").
				Value(&m.formID),
		),
	).WithWidth(50).WithShowHelp(false)
}

// Messages

type recordResultMsg struct {
	status string
	err    error
}

func (m AddExpenseModel) recordCmd() tea.Cmd {
	req := coordinator.Request{
		ID:           strings.TrimSpace(m.form.GetString("id")),
		AccountID:    m.form.GetString("account"),
		CategoryName: m.form.GetString("category"),
		Amount:       decimal.RequireFromString(strings.TrimSpace(m.form.GetString("amount"))),
		Description:  strings.TrimSpace(m.form.GetString("description")),
		Timestamp:    time.Now(),
	}
	coord := m.coord

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		res := coord.AddExpenditure(ctx, req)
		if !res.Committed() {
			return recordResultMsg{err: res.Err}
		}

		status := fmt.Sprintf(
			"Recorded %s: %s for %s",
			res.Expenditure.ID,
			FormatMoney(res.Expenditure.Amount),
			res.Expenditure.Description,
		)

		return recordResultMsg{status: status}
	}
}
