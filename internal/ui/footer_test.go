package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/contactpick/internal/config"
)

func TestFooterViewListsShortHelp(t *testing.T) {
	out := NewFooterModel(DefaultKeyMap(), true).View()
	for _, want := range []string{"down", "next", "enter", "select", "^x", "clear", "^c", "quit"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "no color output")
}

func TestFooterViewUsesConfiguredKeys(t *testing.T) {
	km := KeyMapFromConfig(config.KeysConfig{Quit: []string{"q"}})
	out := NewFooterModel(km, true).View()
	assert.Contains(t, out, "q quit")
}
