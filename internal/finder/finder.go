// Package finder implements the in-process fuzzy-finder overlay used
// by the "search" command: a bubbles/list filtered by sahilm/fuzzy,
// in place of shelling out to an external fuzzy-finder subprocess.
package finder

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Item is one entry seeded into the finder: a commit hash paired with
// the label line shown to the user.
type Item struct {
	Hash  string
	Label string
}

func (i Item) FilterValue() string { return i.Label }
func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return i.Hash }

// listFilter adapts sahilm/fuzzy's matching to bubbles/list's
// FilterFunc contract: it is installed as the overlay's live filter, so
// every keystroke narrows and reorders candidates by fuzzy match
// quality through this package's own fuzzy.Find call.
func listFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	out := make([]list.Rank, 0, len(matches))
	for _, m := range matches {
		out = append(out, list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes})
	}
	return out
}

// AcceptedMsg is sent when the user confirms a selection.
type AcceptedMsg struct{ Hash string }

// AbortedMsg is sent when the user cancels out of the overlay.
type AbortedMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Model is the finder overlay's bubbletea model.
type Model struct {
	list list.Model
}

// New seeds a finder overlay with items, typically every log entry
// that has a non-empty hash.
func New(items []Item, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	l := list.New(listItems, delegate, width, height)
	l.Title = "search"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Filter = listFilter
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation/filter keys and Enter/Esc to accept or
// abort.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return AbortedMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(Item); ok {
				hash := item.Hash
				return m, func() tea.Msg { return AcceptedMsg{Hash: hash} }
			}
			return m, func() tea.Msg { return AbortedMsg{} }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	return m.list.View()
}

// SetSize resizes the underlying list.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
