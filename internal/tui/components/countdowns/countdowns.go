package countdowns

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/panel"
)

type AddCountdownMsg struct{}

type EditCountdownMsg struct {
	UID string
}

type DeleteCountdownMsg struct {
	UID string
}

type Item struct {
	Card panel.Card
}

func (i Item) Title() string {
	return i.Card.Name
}

func (i Item) Description() string {
	parts := []string{i.Card.DaysLine, constants.DateLinePrefix + i.Card.Date, constants.UIDLinePrefix + i.Card.UID}
	return strings.Join(parts, "  ")
}

func (i Item) FilterValue() string { return i.Card.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "hinzufügen"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "bearbeiten"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "löschen"),
		),
	}
}

var messageStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Italic(true).
	Padding(1, 0)

// Model shows the rendered countdown list. While the list is loading,
// failed or empty it shows the matching message instead.
type Model struct {
	list    list.Model
	keys    KeyMap
	message string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Countdowns"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{
		list:    l,
		keys:    keys,
		message: constants.ListLoading,
	}
}

// SetView replaces the displayed cards.
func (m *Model) SetView(v panel.ListView) {
	m.message = v.Message
	items := make([]list.Item, len(v.Cards))
	for i, c := range v.Cards {
		items[i] = Item{Card: c}
	}
	m.list.SetItems(items)
}

// Selected returns the uid under the cursor.
func (m Model) Selected() (string, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return "", false
	}
	return item.Card.UID, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddCountdownMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if uid, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditCountdownMsg{UID: uid} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if uid, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteCountdownMsg{UID: uid} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
