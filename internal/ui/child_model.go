package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is a component the page routes messages to. The page owns
// the tea.Model; children only render strings.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithSize is implemented by children that respond to resize events.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithFocus is implemented by children that take keyboard focus.
type ModelWithFocus interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

var (
	_ ChildModel     = (*SelectorModel)(nil)
	_ ModelWithSize  = (*SelectorModel)(nil)
	_ ModelWithFocus = (*SelectorModel)(nil)
)
