package ui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates startup input (Vim-like tokens and literal
// text) against m and returns the updated model. Commands produced along
// the way are discarded, so callers that need settled filtering should use
// a zero debounce delay.
//
// Besides key tokens such as <Down>, <CR> or <C-x>, mouse tokens are
// accepted: <Click:x,y>, <Hover:x,y>, <WheelUp:x,y> and <WheelDown:x,y>
// in screen cells.
func ApplyStartupKeys(m tea.Model, keys []string) tea.Model {
	if len(keys) == 0 || m == nil {
		return m
	}
	send := func(msg tea.Msg) {
		if updated, _ := m.Update(msg); updated != nil {
			m = updated
		}
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f12>").
		if strings.HasPrefix(token, `\`) {
			for _, r := range strings.TrimPrefix(token, `\`) {
				send(tea.KeyPressMsg{Code: r, Text: string(r)})
			}
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				for _, r := range segment.text {
					send(tea.KeyPressMsg{Code: r, Text: string(r)})
				}
				continue
			}
			if msg, ok := mouseMsgFromToken(segment.text); ok {
				send(msg)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					send(msg)
				}
				continue
			}
			// Unknown <...> tokens are typed literally.
			for _, r := range segment.text {
				send(tea.KeyPressMsg{Code: r, Text: string(r)})
			}
		}
	}
	return m
}

// tokenSegment is a parsed part of a token: a <...> key or literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into segments of vim-style keys and literal text.
// Example: "<Down>ali" -> [segment{text: "<Down>", isVimKey: true}, segment{text: "ali", isVimKey: false}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

// keyMsgsFromToken parses a Vim-like token into key messages.
// Examples: "<Esc>", "<CR>", "<Tab>", "<Space>", "<BS>", "<C-x>", "<A-Down>", "<F4>".
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))

	var mod tea.KeyMod
	switch {
	case strings.HasPrefix(inner, "c-") && len(inner) > 2:
		if inner == "c-[" {
			return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
		}
		mod = tea.ModCtrl
		inner = inner[2:]
	case strings.HasPrefix(inner, "a-") && len(inner) > 2:
		mod = tea.ModAlt
		inner = inner[2:]
	}

	code, text, ok := keyCode(inner)
	if !ok {
		return nil, false
	}
	if mod != 0 {
		text = ""
	}
	return []tea.KeyPressMsg{{Code: code, Text: text, Mod: mod}}, true
}

func keyCode(name string) (rune, string, bool) {
	switch name {
	case "esc", "escape":
		return tea.KeyEscape, "", true
	case "cr", "enter", "return":
		return tea.KeyEnter, "", true
	case "tab":
		return tea.KeyTab, "", true
	case "space":
		return ' ', " ", true
	case "bs", "backspace":
		return tea.KeyBackspace, "", true
	case "left":
		return tea.KeyLeft, "", true
	case "right":
		return tea.KeyRight, "", true
	case "up":
		return tea.KeyUp, "", true
	case "down":
		return tea.KeyDown, "", true
	case "home":
		return tea.KeyHome, "", true
	case "end":
		return tea.KeyEnd, "", true
	}
	if strings.HasPrefix(name, "f") {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= len(functionKeys) {
			return functionKeys[n-1], "", true
		}
	}
	if r := []rune(name); len(r) == 1 {
		return r[0], name, true
	}
	return 0, "", false
}

var functionKeys = [...]rune{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5, tea.KeyF6,
	tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10, tea.KeyF11, tea.KeyF12,
}

// mouseMsgFromToken parses <Click:x,y>, <Hover:x,y>, <WheelUp:x,y> and
// <WheelDown:x,y>.
func mouseMsgFromToken(token string) (tea.Msg, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	kind, coords, ok := strings.Cut(inner, ":")
	if !ok {
		return nil, false
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return nil, false
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return nil, false
	}
	switch strings.ToLower(kind) {
	case "click":
		return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}, true
	case "hover":
		return tea.MouseMotionMsg{X: x, Y: y}, true
	case "wheelup":
		return tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelUp}, true
	case "wheeldown":
		return tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown}, true
	}
	return nil, false
}
