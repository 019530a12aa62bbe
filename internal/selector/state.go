// Package selector holds the interaction state of the contact selector and
// the pure reducer that moves it between states. Side effects such as timers,
// focus changes and host notification are returned as values for the caller
// to execute.
package selector

import (
	"github.com/oakwood-commons/contactpick/internal/filter"
	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// NoHighlight marks that no visible row is highlighted.
const NoHighlight = -1

// State is the complete interaction state of one selector instance.
type State struct {
	// Candidates is the full list supplied by the host.
	Candidates []contact.Contact
	// Visible is Candidates filtered by Query.
	Visible []contact.Contact
	// RawQuery follows every keystroke; Query trails it by the debounce delay.
	RawQuery string
	Query    string
	// DebouncePending is set while a debounce task is outstanding.
	DebouncePending bool

	Open      bool
	Focused   bool
	Highlight int
	Selection *contact.Contact
}

// New returns a closed selector over candidates with an optional default
// selection.
func New(candidates []contact.Contact, defaultSelected *contact.Contact) State {
	s := State{
		Candidates: candidates,
		Visible:    filter.Contacts(candidates, ""),
		Highlight:  NoHighlight,
	}
	if defaultSelected != nil {
		c := *defaultSelected
		s.Selection = &c
	}
	return s
}

// HighlightValid reports whether the highlight is NoHighlight or a valid
// index into Visible.
func (s State) HighlightValid() bool {
	return s.Highlight == NoHighlight || (s.Highlight >= 0 && s.Highlight < len(s.Visible))
}

// Highlighted returns the highlighted contact, if any.
func (s State) Highlighted() (contact.Contact, bool) {
	if s.Highlight < 0 || s.Highlight >= len(s.Visible) {
		return contact.Contact{}, false
	}
	return s.Visible[s.Highlight], true
}

// DisplayLabel is the overlay text shown in the input: the selection label
// while the query is empty, otherwise nothing.
func (s State) DisplayLabel() string {
	if s.Selection == nil || s.RawQuery != "" {
		return ""
	}
	return s.Selection.Label()
}
