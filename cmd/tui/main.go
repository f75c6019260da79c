package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/blip-cmd/xpense/cmd/tui/internal/view"
	"github.com/blip-cmd/xpense/internal/alert"
	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/config"
	"github.com/blip-cmd/xpense/internal/container"
	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
	"github.com/blip-cmd/xpense/internal/persistence"
	"github.com/blip-cmd/xpense/internal/persistence/flatfile"
	"github.com/blip-cmd/xpense/internal/persistence/postgres"
)

type model struct {
	coord  *coordinator.Coordinator
	alerts *alert.Center

	currentView Screen
	history     *container.Stack[Screen]

	expensesView view.ExpensesModel
	addView      view.AddExpenseModel
	accountsView view.AccountsModel
	alertsView   view.AlertsModel
}

type Screen int

const (
	ScreenMenu     Screen = 0
	ScreenExpenses Screen = 1
	ScreenAdd      Screen = 2
	ScreenAccounts Screen = 3
	ScreenAlerts   Screen = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	threshold, err := cfg.Threshold()
	if err != nil {
		slog.Error("invalid low-balance threshold", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	persister, err := newPersister(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up persistence", "backend", cfg.Persistence.Backend, "error", err)
		os.Exit(1)
	}

	alerts := alert.NewCenter(threshold)
	coord := coordinator.New(
		ledger.New(alerts),
		category.NewRegistry(),
		expenditure.NewStore(cfg.Ledger.IDPrefix),
		alerts,
		persister,
	)

	if err := coord.Load(ctx); err != nil {
		slog.Error("failed to load persisted state", "error", err)
		os.Exit(1)
	}

	return model{
		coord:        coord,
		alerts:       alerts,
		currentView:  ScreenMenu,
		history:      container.NewStack[Screen](),
		expensesView: view.NewExpensesModel(coord),
		addView:      view.NewAddExpenseModel(coord),
		accountsView: view.NewAccountsModel(coord),
		alertsView:   view.NewAlertsModel(alerts),
	}
}

func newPersister(ctx context.Context, cfg *config.Config) (persistence.Persister, error) {
	switch cfg.Persistence.Backend {
	case "flatfile":
		return flatfile.New(cfg.Persistence.DataDir)
	case "postgres":
		db, err := postgres.Open(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		store := postgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		return store, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) navigate(to Screen) {
	m.history.Push(m.currentView)
	m.currentView = to
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ScreenMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.navigate(ScreenExpenses)
				m.expensesView = view.NewExpensesModel(m.coord)

				return m, m.expensesView.Init()
			case "2":
				m.navigate(ScreenAdd)
				m.addView = view.NewAddExpenseModel(m.coord)

				return m, m.addView.Init()
			case "3":
				m.navigate(ScreenAccounts)
				m.accountsView = view.NewAccountsModel(m.coord)

				return m, m.accountsView.Init()
			case "4":
				m.navigate(ScreenAlerts)
				m.alertsView = view.NewAlertsModel(m.alerts)

				return m, m.alertsView.Init()
			}
		}
	case view.BackMsg:
		prev, ok := m.history.Pop()
		if !ok {
			prev = ScreenMenu
		}
		m.currentView = prev

		return m, nil
	}

	switch m.currentView {
	case ScreenExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ScreenAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddExpenseModel)
	case ScreenAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ScreenAlerts:
		var newModel tea.Model
		newModel, cmd = m.alertsView.Update(msg)
		m.alertsView = newModel.(view.AlertsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ScreenMenu:
		alertLine := "4. Alerts"
		if n := m.alerts.Pending(); n > 0 {
			alertLine = fmt.Sprintf("4. Alerts (%d pending)", n)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Xpense\n\n" +
				"1. List Expenditures\n" +
				"2. Add Expenditure\n" +
				"3. Accounts\n" +
				alertLine + "\n\n" +
				"q. Quit",
		)
	case ScreenExpenses:
		return m.expensesView.View()
	case ScreenAdd:
		return m.addView.View()
	case ScreenAccounts:
		return m.accountsView.View()
	case ScreenAlerts:
		return m.alertsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
