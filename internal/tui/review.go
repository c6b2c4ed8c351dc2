// Package tui holds the interactive screens of dancectl. The only one at
// the moment is the merge review: a conflict-by-conflict walk through the
// differences between the local catalog and a remote snapshot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/remote"
)

// ReviewOutcome is what the user decided during one review session.
type ReviewOutcome struct {
	Applied []remote.Change // changes to merge into the local catalog
	Ignored int             // changes explicitly kept local
}

type changeItem struct {
	change remote.Change
}

func (i changeItem) Title() string {
	return fmt.Sprintf("[%s] %s", i.change.Kind, i.change.Remote.Name)
}

func (i changeItem) Description() string {
	return i.change.Fingerprint
}

func (i changeItem) FilterValue() string {
	return i.change.Remote.Name + " " + i.change.Fingerprint
}

type reviewModel struct {
	list    list.Model
	local   catalog.Catalog
	keys    ReviewKeys
	outcome ReviewOutcome
	width   int
	height  int
}

// RunReview walks the user through the given changes one by one. Applied
// changes are collected in the outcome; nothing touches the catalog here.
// The caller merges after the screen closes.
func RunReview(local catalog.Catalog, changes []remote.Change) (ReviewOutcome, error) {
	items := make([]list.Item, len(changes))
	for i, ch := range changes {
		items[i] = changeItem{change: ch}
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = StyleHighlight
	d.Styles.SelectedDesc = StyleHelp

	l := list.New(items, d, 0, 0)
	l.Title = fmt.Sprintf("%d remote differences", len(changes))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp

	keys := NewReviewKeys()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return keys.ShortHelp()
	}

	m := reviewModel{list: l, local: local, keys: keys}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return ReviewOutcome{}, fmt.Errorf("running review: %w", err)
	}
	return final.(reviewModel).outcome, nil
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/2, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Apply):
			if item, ok := m.list.SelectedItem().(changeItem); ok {
				m.outcome.Applied = append(m.outcome.Applied, item.change)
				m.removeSelected()
			}
			if len(m.list.Items()) == 0 {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Ignore):
			if _, ok := m.list.SelectedItem().(changeItem); ok {
				m.outcome.Ignored++
				m.removeSelected()
			}
			if len(m.list.Items()) == 0 {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.ApplyAll):
			for _, it := range m.list.Items() {
				m.outcome.Applied = append(m.outcome.Applied, it.(changeItem).change)
			}
			m.list.SetItems(nil)
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *reviewModel) removeSelected() {
	idx := m.list.Index()
	m.list.RemoveItem(idx)
	if idx >= len(m.list.Items()) && idx > 0 {
		m.list.Select(idx - 1)
	}
	m.list.Title = fmt.Sprintf("%d remote differences", len(m.list.Items()))
}

func (m reviewModel) View() string {
	left := m.list.View()
	right := m.detailView()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m reviewModel) detailView() string {
	item, ok := m.list.SelectedItem().(changeItem)
	if !ok {
		return StyleHelp.Render("nothing selected")
	}
	ch := item.change

	var local *catalog.Entry
	if e, ok := m.local[ch.Fingerprint]; ok {
		local = e
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(ch.Remote.Name) + "\n")
	b.WriteString(StyleHelp.Render(ch.Fingerprint) + "\n\n")

	writeField := func(label, localVal, remoteVal string) {
		b.WriteString(StyleNormal.Render(label) + "\n")
		if localVal == remoteVal {
			b.WriteString("  " + localVal + "\n")
			return
		}
		b.WriteString("  " + StyleLocal.Render("local:  "+localVal) + "\n")
		b.WriteString("  " + StyleRemote.Render("remote: "+remoteVal) + "\n")
	}

	localOr := func(f func(*catalog.Entry) string) string {
		if local == nil {
			return "(no local entry)"
		}
		return f(local)
	}

	writeField("Name",
		localOr(func(e *catalog.Entry) string { return e.Name }),
		ch.Remote.Name)
	writeField("Author",
		localOr(func(e *catalog.Entry) string { return e.Author }),
		ch.Remote.Author)
	writeField("Credits",
		localOr(func(e *catalog.Entry) string { return strings.Join(e.Credits, " / ") }),
		strings.Join(ch.Remote.Credits, " / "))
	writeField("Comment",
		localOr(func(e *catalog.Entry) string { return e.Comment }),
		ch.Remote.Comment)

	width := m.width / 2
	if width <= 0 {
		width = 40
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(b.String())
}
