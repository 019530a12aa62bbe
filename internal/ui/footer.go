package ui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
)

// FooterModel renders the key binding hints at the bottom of the page.
type FooterModel struct {
	NoColor bool
	Keys    KeyMap
	help    help.Model
}

// NewFooterModel creates a footer for keys.
func NewFooterModel(keys KeyMap, noColor bool) FooterModel {
	h := help.New()
	h.ShortSeparator = "  "
	return FooterModel{Keys: keys, NoColor: noColor, help: h}
}

// View renders the short help line.
func (m FooterModel) View() string {
	h := m.help
	keyStyle := lipgloss.NewStyle()
	descStyle := lipgloss.NewStyle()
	if !m.NoColor {
		keyStyle = keyStyle.Foreground(CurrentTheme().FooterKey).Background(lipgloss.Color("240")).Bold(true)
		descStyle = descStyle.Foreground(CurrentTheme().Muted)
	}
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = descStyle
	return h.ShortHelpView(m.Keys.ShortHelp())
}
