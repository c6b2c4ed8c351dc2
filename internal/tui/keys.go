package tui

import "github.com/charmbracelet/bubbles/key"

// ReviewKeys are the bindings of the merge review screen.
type ReviewKeys struct {
	Apply    key.Binding
	Ignore   key.Binding
	ApplyAll key.Binding
	Quit     key.Binding
}

// NewReviewKeys creates the standard review bindings.
func NewReviewKeys() ReviewKeys {
	return ReviewKeys{
		Apply: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("a", "apply remote"),
		),
		Ignore: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "keep local"),
		),
		ApplyAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "apply all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "done"),
		),
	}
}

// ShortHelp returns the bindings for the help line.
func (k ReviewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Ignore, k.ApplyAll, k.Quit}
}
