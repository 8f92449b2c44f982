package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/panel"
)

var tabTitles = []string{"Countdowns", "WiFi", "Status"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCountdowns:
		list := m.countdowns.View()
		if m.ctrl.Snapshot().Phase == panel.ListLoading {
			list = lipgloss.JoinHorizontal(lipgloss.Top, m.spinner.View(), list)
		}
		content = docStyle.Render(list)
	case constants.StateWiFi:
		content = docStyle.Render(m.network.WiFiView())
	case constants.StateStatus:
		content = docStyle.Render(m.network.StatusView())
	case constants.StateEditing:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.form.View(),
			m.viewScanButton(),
		))
	case constants.StateEditWiFi, constants.StateConfirmation:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewNotice(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNotice() string {
	switch m.notice.Level {
	case panel.LevelError:
		return errorStyle.Render(m.notice.Message)
	case panel.LevelSuccess:
		return successStyle.Render(m.notice.Message)
	default:
		return infoStyle.Render(m.notice.Message)
	}
}

func (m Model) viewScanButton() string {
	btn := m.ctrl.Snapshot().Scan
	if btn.Disabled {
		return infoStyle.Render(m.spinner.View() + " " + btn.Label)
	}
	return inactiveTabStyle.Render("[ctrl+s] " + btn.Label)
}
