// Package a11y describes the selector as an accessibility tree: a combobox
// input that owns a listbox of options. The tree is derived from
// selector.State and can be rendered as HTML or as an indented text tree.
package a11y

import (
	"fmt"

	"github.com/oakwood-commons/contactpick/internal/selector"
)

const (
	ListboxID      = "contact-listbox"
	ListboxLabel   = "Contacts"
	OptionIDPrefix = "contact-option-"

	ClearLabel = "Clear selection"
	OpenLabel  = "Open dropdown"
	CloseLabel = "Close dropdown"
)

// Options carries host-provided display strings.
type Options struct {
	Placeholder string
	EmptyText   string
}

// Combobox is the text input.
type Combobox struct {
	Value            string
	Placeholder      string
	Overlay          string
	Expanded         bool
	Focused          bool
	Controls         string
	Autocomplete     string
	ActiveDescendant string
}

// Button is an icon button next to the input.
type Button struct {
	Label string
}

// Option is one row of the listbox.
type Option struct {
	ID       string
	Index    int
	Name     string
	Email    string
	Label    string
	Selected bool
}

// Listbox is the popup list. It exists only while the panel is open.
type Listbox struct {
	ID        string
	Label     string
	Query     string
	Options   []Option
	EmptyText string
}

// Tree is the full accessibility structure of one selector.
type Tree struct {
	Combobox Combobox
	Clear    *Button
	Toggle   Button
	Listbox  *Listbox
}

// OptionID returns the element id of the visible row at index.
func OptionID(index int) string {
	return fmt.Sprintf("%s%d", OptionIDPrefix, index)
}

// Build derives the accessibility tree for s.
func Build(s selector.State, opts Options) Tree {
	t := Tree{
		Combobox: Combobox{
			Value:        s.RawQuery,
			Placeholder:  opts.Placeholder,
			Overlay:      s.DisplayLabel(),
			Expanded:     s.Open,
			Focused:      s.Focused,
			Controls:     ListboxID,
			Autocomplete: "list",
		},
		Toggle: Button{Label: OpenLabel},
	}
	if s.Selection != nil {
		t.Clear = &Button{Label: ClearLabel}
	}
	if !s.Open {
		return t
	}

	t.Toggle.Label = CloseLabel
	if s.Highlight >= 0 {
		t.Combobox.ActiveDescendant = OptionID(s.Highlight)
	}
	lb := &Listbox{
		ID:        ListboxID,
		Label:     ListboxLabel,
		Query:     s.Query,
		EmptyText: opts.EmptyText,
		Options:   make([]Option, 0, len(s.Visible)),
	}
	for i, c := range s.Visible {
		lb.Options = append(lb.Options, Option{
			ID:       OptionID(i),
			Index:    i,
			Name:     c.Name,
			Email:    c.Email,
			Label:    c.Label(),
			Selected: i == s.Highlight,
		})
	}
	t.Listbox = lb
	return t
}

// SelectedOption returns the option referenced by aria-activedescendant.
func (t Tree) SelectedOption() (Option, bool) {
	if t.Listbox == nil {
		return Option{}, false
	}
	for _, o := range t.Listbox.Options {
		if o.Selected {
			return o, true
		}
	}
	return Option{}, false
}
