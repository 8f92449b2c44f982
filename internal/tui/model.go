package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/panel"
	"github.com/julianstephens/countdownctl/internal/tui/components/countdowns"
	"github.com/julianstephens/countdownctl/internal/tui/components/network"
)

// noticeTTL is how long a notice stays on screen.
const noticeTTL = 5 * time.Second

type Model struct {
	ctx           context.Context
	ctrl          *panel.Controller
	state         constants.SessionState
	tab           constants.SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model
	countdowns    countdowns.Model
	network       network.Model
	form          *huh.Form
	countdownForm *panel.Form
	wifiForm      *models.WiFiCredentials
	confirmation  *ConfirmationFormModel
	pendingAction func() tea.Cmd
	notice        panel.Notice
	noticeSeq     int
	scanning      bool
	saving        bool
	quitting      bool
	width         int
	height        int
	now           func() time.Time
}

// NewModel creates the panel UI on top of ctrl. baseURL is only displayed.
func NewModel(ctx context.Context, ctrl *panel.Controller, baseURL string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		ctrl:       ctrl,
		state:      constants.StateCountdowns,
		tab:        constants.StateCountdowns,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		countdowns: countdowns.New(0, 0),
		network:    network.New(baseURL, 0, 0),
		now:        time.Now,
	}
}

// actionKeys returns the bindings of the current view.
func (m Model) actionKeys() []key.Binding {
	switch m.state {
	case constants.StateCountdowns:
		ck := countdowns.DefaultKeyMap()
		return []key.Binding{ck.Add, ck.Edit, ck.Delete}
	case constants.StateWiFi:
		return []key.Binding{m.network.Keys().EditWiFi}
	case constants.StateStatus:
		nk := m.network.Keys()
		return []key.Binding{nk.Refresh, nk.Restart}
	case constants.StateEditing:
		return []key.Binding{m.keys.Scan, m.keys.Cancel}
	default:
		return []key.Binding{m.keys.Cancel}
	}
}

func (m Model) inDialog() bool {
	return m.state == constants.StateEditing ||
		m.state == constants.StateEditWiFi ||
		m.state == constants.StateConfirmation
}

func (m Model) ShortHelp() []key.Binding {
	if m.inDialog() {
		return m.actionKeys()
	}
	return append([]key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	return [][]key.Binding{global, navigation, m.actionKeys()}
}

// Init starts the three page-load fetches independently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadStatus(),
		m.loadCountdowns(),
		m.loadWiFi(),
	)
}

// sync copies the controller state into the components.
func (m *Model) sync() {
	m.countdowns.SetView(m.ctrl.Render(m.now()))
	m.network.SetState(m.ctrl.Snapshot())
}

// setNotice shows n and schedules its removal.
func (m *Model) setNotice(n panel.Notice) tea.Cmd {
	if n.IsZero() {
		return nil
	}
	m.notice = n
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// openCountdownForm builds the dialog from the controller's current form.
func (m *Model) openCountdownForm() tea.Cmd {
	snap := m.ctrl.Snapshot()
	form := snap.Form
	m.countdownForm = &form
	m.form = NewCountdownForm(snap.Modal.Title(), m.countdownForm)
	m.state = constants.StateEditing
	return m.form.Init()
}

func (m *Model) confirm(message string, action func() tea.Cmd) tea.Cmd {
	m.confirmation = &ConfirmationFormModel{Message: message}
	m.pendingAction = action
	m.form = NewConfirmationForm(m.confirmation)
	m.state = constants.StateConfirmation
	return m.form.Init()
}
