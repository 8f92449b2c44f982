package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/countdownctl/internal/constants"
	apperrors "github.com/julianstephens/countdownctl/internal/errors"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/panel"
	"github.com/julianstephens/countdownctl/internal/tui/components/countdowns"
	"github.com/julianstephens/countdownctl/internal/tui/components/network"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		// Tabs, notice and help take four lines.
		m.countdowns.SetSize(msg.Width-h, msg.Height-v-4)
		m.network.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusLoadedMsg, countdownsLoadedMsg, wifiLoadedMsg:
		// Failures are already reflected in the controller state.
		m.sync()
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = panel.Notice{}
		}
		return m, nil

	case operationMsg:
		return m.handleOperation(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case constants.StateEditing:
		return m.updateCountdownForm(msg)
	case constants.StateEditWiFi:
		return m.updateWiFiForm(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	switch msg := msg.(type) {
	case countdowns.AddCountdownMsg:
		m.ctrl.OpenAdd()
		return m, m.openCountdownForm()

	case countdowns.EditCountdownMsg:
		if !m.ctrl.OpenEdit(msg.UID) {
			return m, nil
		}
		return m, m.openCountdownForm()

	case countdowns.DeleteCountdownMsg:
		uid := msg.UID
		return m, m.confirm(constants.ConfirmDelete, func() tea.Cmd {
			return m.deleteCountdown(uid)
		})

	case network.EditWiFiMsg:
		m.wifiForm = &models.WiFiCredentials{SSID: m.ctrl.Snapshot().WiFiSSID}
		m.form = NewWiFiForm(m.wifiForm)
		m.state = constants.StateEditWiFi
		return m, m.form.Init()

	case network.RestartMsg:
		return m, m.confirm(constants.ConfirmRestart, m.restart)

	case network.RefreshMsg:
		return m, tea.Batch(m.loadStatus(), m.loadCountdowns(), m.loadWiFi())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab, m.keys.Right):
			m.tab = (m.tab + 1) % constants.NumMainTabs
			m.state = m.tab
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab, m.keys.Left):
			m.tab = (m.tab - 1 + constants.NumMainTabs) % constants.NumMainTabs
			m.state = m.tab
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateCountdowns:
		m.countdowns, cmd = m.countdowns.Update(msg)
	case constants.StateWiFi, constants.StateStatus:
		m.network, cmd = m.network.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m Model) updateCountdownForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.CloseModal()
			m.state = m.tab
			return m, nil
		case key.Matches(msg, m.keys.Scan):
			if m.scanning {
				return m, nil
			}
			// Keep what was typed so far; the scan only replaces the uid.
			m.ctrl.UpdateForm(*m.countdownForm)
			m.scanning = true
			return m, m.scan()
		}
	}

	cmd := m.updateForm(msg)
	switch m.form.State {
	case huh.StateCompleted:
		if m.saving {
			return m, cmd
		}
		m.saving = true
		return m, tea.Batch(cmd, m.submit(*m.countdownForm))
	case huh.StateAborted:
		m.ctrl.CloseModal()
		m.state = m.tab
	}
	return m, cmd
}

func (m Model) updateWiFiForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.state = m.tab
		return m, nil
	}

	cmd := m.updateForm(msg)
	switch m.form.State {
	case huh.StateCompleted:
		creds := *m.wifiForm
		return m, tea.Batch(cmd, m.confirm(constants.ConfirmWiFiSave, func() tea.Cmd {
			return m.saveWiFi(creds)
		}))
	case huh.StateAborted:
		m.state = m.tab
	}
	return m, cmd
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.pendingAction = nil
		m.state = m.tab
		return m, nil
	}

	cmds := []tea.Cmd{m.updateForm(msg)}
	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmation.Confirmed && m.pendingAction != nil {
			cmds = append(cmds, m.pendingAction())
		}
		m.pendingAction = nil
		m.state = m.tab
	case huh.StateAborted:
		m.pendingAction = nil
		m.state = m.tab
	}
	return m, tea.Batch(cmds...)
}

// handleOperation shows the outcome of a device operation and moves the
// dialogs along.
func (m Model) handleOperation(msg operationMsg) (tea.Model, tea.Cmd) {
	n := msg.notice
	if n.IsZero() && msg.err != nil {
		var opErr *apperrors.OperationError
		if errors.As(msg.err, &opErr) {
			n = panel.Notice{Level: panel.LevelError, Message: opErr.Notice}
		}
	}
	cmds := []tea.Cmd{m.setNotice(n)}

	switch msg.op {
	case opScan:
		m.scanning = false
		if m.state == constants.StateEditing {
			cmds = append(cmds, m.openCountdownForm())
		}
	case opSubmit:
		m.saving = false
		if msg.err == nil {
			m.state = m.tab
			m.form = nil
		} else if m.ctrl.Snapshot().Modal.IsOpen() {
			// The dialog stays open with the submitted values.
			cmds = append(cmds, m.openCountdownForm())
		}
	}

	m.sync()
	return m, tea.Batch(cmds...)
}
