package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/panel"
)

type statusLoadedMsg struct{ err error }

type countdownsLoadedMsg struct{ err error }

type wifiLoadedMsg struct{ err error }

// operationMsg carries the outcome of a device operation.
type operationMsg struct {
	op     string
	notice panel.Notice
	err    error
}

type noticeExpiredMsg struct{ seq int }

const (
	opSubmit  = "submit"
	opScan    = "scan"
	opDelete  = "delete"
	opWiFi    = "wifi"
	opRestart = "restart"
)

func (m Model) loadStatus() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return statusLoadedMsg{err: ctrl.LoadStatus(ctx)}
	}
}

func (m Model) loadCountdowns() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return countdownsLoadedMsg{err: ctrl.LoadCountdowns(ctx)}
	}
}

func (m Model) loadWiFi() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return wifiLoadedMsg{err: ctrl.LoadWiFi(ctx)}
	}
}

func (m Model) submit(form panel.Form) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		n, err := ctrl.Submit(ctx, form)
		return operationMsg{op: opSubmit, notice: n, err: err}
	}
}

func (m Model) scan() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		n, err := ctrl.ScanCard(ctx)
		return operationMsg{op: opScan, notice: n, err: err}
	}
}

// The dialogs below already asked for confirmation, so the controller
// gets AlwaysConfirm.

func (m Model) deleteCountdown(uid string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		n, err := ctrl.Delete(ctx, uid, panel.AlwaysConfirm)
		return operationMsg{op: opDelete, notice: n, err: err}
	}
}

func (m Model) saveWiFi(creds models.WiFiCredentials) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		n, err := ctrl.SaveWiFi(ctx, creds, panel.AlwaysConfirm)
		return operationMsg{op: opWiFi, notice: n, err: err}
	}
}

func (m Model) restart() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		n, err := ctrl.Restart(ctx, panel.AlwaysConfirm)
		return operationMsg{op: opRestart, notice: n, err: err}
	}
}
