package network

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/panel"
)

type EditWiFiMsg struct{}

type RestartMsg struct{}

type RefreshMsg struct{}

type KeyMap struct {
	EditWiFi key.Binding
	Restart  key.Binding
	Refresh  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		EditWiFi: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "WiFi ändern"),
		),
		Restart: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "neu starten"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "aktualisieren"),
		),
	}
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(8)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// Model shows the device status and WiFi panels. Which one is drawn
// depends on the active tab; both share the key bindings.
type Model struct {
	keys    KeyMap
	status  panel.StatusView
	ssid    string
	baseURL string
	width   int
	height  int
}

func New(baseURL string, width, height int) Model {
	return Model{
		keys:    DefaultKeyMap(),
		status:  panel.State{}.StatusView(),
		baseURL: baseURL,
		width:   width,
		height:  height,
	}
}

// SetState copies what the panels show from a controller snapshot.
func (m *Model) SetState(s panel.State) {
	m.status = s.StatusView()
	m.ssid = s.WiFiSSID
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.EditWiFi):
			return m, func() tea.Msg { return EditWiFiMsg{} }
		case key.Matches(msg, m.keys.Restart):
			return m, func() tea.Msg { return RestartMsg{} }
		case key.Matches(msg, m.keys.Refresh):
			return m, func() tea.Msg { return RefreshMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// StatusView renders the network status panel.
func (m Model) StatusView() string {
	return strings.Join([]string{
		row("Modus", m.status.Mode),
		row("IP", m.status.IP),
		row("SSID", m.status.SSID),
		"",
		row("Gerät", m.baseURL),
	}, "\n")
}

// WiFiView renders the stored WiFi settings.
func (m Model) WiFiView() string {
	ssid := m.ssid
	if ssid == "" {
		ssid = constants.Placeholder
	}
	return strings.Join([]string{
		row("SSID", ssid),
		"",
		fmt.Sprintf("[%s] %s", m.keys.EditWiFi.Help().Key, m.keys.EditWiFi.Help().Desc),
	}, "\n")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
