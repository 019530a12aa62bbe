package ui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

var people = []contact.Contact{
	{ID: "1", Name: "Alice Young", Email: "alice@x.com"},
	{ID: "2", Name: "Bob Young", Email: "bob@x.com"},
	{ID: "3", Name: "Carol Stone", Email: "carol@y.org"},
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	if len(s) > 5 && s[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(s[5]), Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// typeText sends each rune of s as a key press.
func typeText(m *SelectorModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(m *SelectorModel, keys ...string) {
	for _, k := range keys {
		m.Update(keyPress(k))
	}
}

func newTestSelector(opts SelectorOptions) *SelectorModel {
	if opts.Candidates == nil {
		opts.Candidates = people
	}
	if opts.Width == 0 {
		opts.Width = 40
	}
	opts.NoColor = true
	return NewSelectorModel(opts)
}

func manyContacts(n int) []contact.Contact {
	return contact.GenerateSeeded(n, contact.DefaultSeed)
}

func displayWidth(s string) int {
	return ansi.StringWidth(s)
}
