package ui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/contactpick/internal/config"
)

// Action names a key-triggered behavior.
type Action string

const (
	ActionNone    Action = ""
	ActionDown    Action = "down"
	ActionUp      Action = "up"
	ActionEnter   Action = "enter"
	ActionEscape  Action = "escape"
	ActionClear   Action = "clear"
	ActionToggle  Action = "toggle"
	ActionFocus   Action = "focus"
	ActionShowAll Action = "show_all"
	ActionAccept  Action = "accept"
	ActionCopy    Action = "copy"
	ActionQuit    Action = "quit"
)

// KeyMap holds the bindings for the selector and the page hosting it.
type KeyMap struct {
	Down    key.Binding
	Up      key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Clear   key.Binding
	Toggle  key.Binding
	Focus   key.Binding
	ShowAll key.Binding
	Accept  key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is used when no configuration is supplied.
func DefaultKeyMap() KeyMap {
	return KeyMapFromConfig(config.KeysConfig{})
}

// KeyMapFromConfig builds bindings from config, falling back to the
// built-in keys for actions left empty.
func KeyMapFromConfig(kc config.KeysConfig) KeyMap {
	bind := func(keys, def []string, desc string) key.Binding {
		if len(keys) == 0 {
			keys = def
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey(keys), desc))
	}
	return KeyMap{
		Down:    bind(kc.Down, []string{"down"}, "next"),
		Up:      bind(kc.Up, []string{"up"}, "prev"),
		Enter:   bind(kc.Enter, []string{"enter"}, "select"),
		Escape:  bind(kc.Escape, []string{"esc"}, "close"),
		Clear:   bind(kc.Clear, []string{"ctrl+x"}, "clear"),
		Toggle:  bind(kc.Toggle, []string{"f4"}, "toggle"),
		Focus:   bind(kc.Focus, []string{"tab"}, "focus"),
		ShowAll: bind(kc.ShowAll, []string{"ctrl+a"}, "show all"),
		Accept:  bind(kc.Accept, []string{"ctrl+s"}, "accept"),
		Copy:    bind(kc.Copy, []string{"ctrl+y"}, "copy"),
		Quit:    bind(kc.Quit, []string{"ctrl+c"}, "quit"),
	}
}

// Action resolves a key string (tea.KeyMsg.String()) to an action.
// Selector actions take precedence over page actions.
func (k KeyMap) Action(keyStr string) Action {
	ordered := []struct {
		b key.Binding
		a Action
	}{
		{k.Down, ActionDown},
		{k.Up, ActionUp},
		{k.Enter, ActionEnter},
		{k.Escape, ActionEscape},
		{k.Clear, ActionClear},
		{k.Toggle, ActionToggle},
		{k.Focus, ActionFocus},
		{k.ShowAll, ActionShowAll},
		{k.Accept, ActionAccept},
		{k.Copy, ActionCopy},
		{k.Quit, ActionQuit},
	}
	for _, o := range ordered {
		if key.Matches(keyString(keyStr), o.b) {
			return o.a
		}
	}
	return ActionNone
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Enter, k.Escape, k.Clear, k.ShowAll, k.Accept, k.Quit}
}

// FullHelp groups every binding.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Enter, k.Escape},
		{k.Clear, k.Toggle, k.Focus},
		{k.ShowAll, k.Accept, k.Copy, k.Quit},
	}
}

type keyString string

func (s keyString) String() string { return string(s) }

func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return strings.ReplaceAll(keys[0], "ctrl+", "^")
}
