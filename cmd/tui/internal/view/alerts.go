package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blip-cmd/xpense/internal/alert"
)

// AlertsModel shows pending alerts. Alerts are consumed when displayed,
// highest priority first.
type AlertsModel struct {
	CommonModel
	center *alert.Center

	alerts []alert.Alert
}

func NewAlertsModel(center *alert.Center) AlertsModel {
	return AlertsModel{center: center}
}

func (m AlertsModel) Title() string { return "Alerts" }
func (m AlertsModel) ShortHelp() string {
	return "r: check again | Esc: back"
}

func (m AlertsModel) Init() tea.Cmd {
	return m.drainCmd()
}

func (m AlertsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case drainAlertsMsg:
		m.alerts = msg.alerts
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.drainCmd()
		}
	}

	return m, nil
}

func (m AlertsModel) View() string {
	if len(m.alerts) == 0 {
		return lipgloss.NewStyle().Padding(2).Faint(true).Render("No pending alerts.")
	}

	var b strings.Builder
	for _, a := range m.alerts {
		b.WriteString(m.renderAlert(a))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m AlertsModel) renderAlert(a alert.Alert) string {
	label, color := priorityBadge(a.Priority)

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render(fmt.Sprintf("[%s]", label))

	return fmt.Sprintf("%s %s  %s", badge, FormatDate(a.CreatedAt), a.Message)
}

func priorityBadge(p int) (string, string) {
	switch p {
	case alert.PriorityCritical:
		return "CRITICAL", "203"
	case alert.PriorityWarning:
		return "WARNING", "214"
	default:
		return "INFO", "39"
	}
}

// Messages

type drainAlertsMsg struct {
	alerts []alert.Alert
}

func (m AlertsModel) drainCmd() tea.Cmd {
	center := m.center

	return func() tea.Msg {
		return drainAlertsMsg{alerts: center.DrainAll()}
	}
}
