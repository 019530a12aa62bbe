package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/contactpick/internal/highlight"
)

// Layout, relative to the component origin:
//
//	row 0        input box top border
//	row 1        │ <field> × ▼ │
//	row 2        input box bottom border
//	row 3        dropdown top border (open only)
//	rows 4..     one row per visible option
//	last row     dropdown bottom border with the position counter
const (
	inputBoxRows  = 3
	inputTextRow  = 1
	dropdownTop   = inputBoxRows
	firstRowLine  = dropdownTop + 1
	fieldPadding  = 8
	clearGlyph    = "×"
	openGlyph     = "▼"
	closeGlyph    = "▲"
	rowMarker     = "›"
	ellipsisGlyph = "…"
)

type hitRegion int

const (
	hitOutside hitRegion = iota
	hitInput
	hitClear
	hitToggle
	hitRow
	hitPanel
)

func (m *SelectorModel) fieldWidth() int {
	return m.width - fieldPadding
}

// viewportRows is the number of option rows the dropdown shows.
func (m *SelectorModel) viewportRows() int {
	n := len(m.state.Visible)
	if n > m.opts.MaxRows {
		n = m.opts.MaxRows
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Height returns the number of lines View renders.
func (m *SelectorModel) Height() int {
	if !m.state.Open {
		return inputBoxRows
	}
	return inputBoxRows + m.viewportRows() + 2
}

// Width returns the rendered width in columns.
func (m *SelectorModel) Width() int { return m.width }

func (m *SelectorModel) hitTest(x, y int) hitRegion {
	if x < 0 || x >= m.width || y < 0 {
		return hitOutside
	}
	if y < inputBoxRows {
		if y == inputTextRow {
			w := m.width
			switch {
			case m.state.Selection != nil && (x == w-6 || x == w-5):
				return hitClear
			case x >= w-4 && x <= w-2:
				return hitToggle
			}
		}
		return hitInput
	}
	if !m.state.Open || y >= m.Height() {
		return hitOutside
	}
	if _, ok := m.rowAt(x, y); ok {
		return hitRow
	}
	return hitPanel
}

// rowAt maps a component-relative cell to the index of a visible option.
func (m *SelectorModel) rowAt(x, y int) (int, bool) {
	if !m.state.Open || x < 1 || x >= m.width-1 {
		return 0, false
	}
	line := y - firstRowLine
	if line < 0 || line >= m.viewportRows() {
		return 0, false
	}
	i := m.offset + line
	if i >= len(m.state.Visible) {
		return 0, false
	}
	return i, true
}

func (m *SelectorModel) inDropdown(x, y int) bool {
	return m.state.Open && x >= 0 && x < m.width && y >= dropdownTop && y < m.Height()
}

type selectorStyles struct {
	border, focusBorder lipgloss.Style
	text, muted, match  lipgloss.Style
	selected, selMatch  lipgloss.Style
	overlay, glyph      lipgloss.Style
}

func newSelectorStyles(th Theme, noColor bool) selectorStyles {
	plain := lipgloss.NewStyle()
	if noColor {
		return selectorStyles{
			border: plain, focusBorder: plain,
			text: plain, muted: plain, match: plain,
			selected: plain, selMatch: plain,
			overlay: plain, glyph: plain,
		}
	}
	return selectorStyles{
		border:      plain.Foreground(th.Border),
		focusBorder: plain.Foreground(th.Accent),
		text:        plain.Foreground(th.Text),
		muted:       plain.Foreground(th.Muted),
		match:       plain.Foreground(th.Match).Bold(true),
		selected:    plain.Foreground(th.SelectedFG).Background(th.SelectedBG),
		selMatch:    plain.Foreground(th.Match).Background(th.SelectedBG).Bold(true),
		overlay:     plain.Foreground(th.Overlay),
		glyph:       plain.Foreground(th.Accent),
	}
}

// View implements ChildModel.
func (m *SelectorModel) View() string {
	th := CurrentTheme()
	st := newSelectorStyles(th, m.opts.NoColor)
	b := borderForStyle(th.BorderStyle)
	w := m.width
	inner := w - 2

	edge := st.border
	if m.state.Focused {
		edge = st.focusBorder
	}

	lines := make([]string, 0, m.Height())
	lines = append(lines, edge.Render(b.TopLeft+strings.Repeat(b.Top, inner)+b.TopRight))

	clearCell := " "
	if m.state.Selection != nil {
		clearCell = st.glyph.Render(clearGlyph)
	}
	toggle := openGlyph
	if m.state.Open {
		toggle = closeGlyph
	}
	lines = append(lines, edge.Render(b.Left)+" "+m.renderField(st)+" "+clearCell+" "+st.glyph.Render(toggle)+" "+edge.Render(b.Right))
	lines = append(lines, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight))

	if !m.state.Open {
		return strings.Join(lines, "\n")
	}

	lines = append(lines, st.border.Render(b.TopLeft+strings.Repeat(b.Top, inner)+b.TopRight))
	if len(m.state.Visible) == 0 {
		lines = append(lines, st.border.Render(b.Left)+fitCell(" "+st.muted.Render(m.opts.EmptyText), inner, lipgloss.NewStyle())+st.border.Render(b.Right))
	} else {
		end := m.offset + m.viewportRows()
		if end > len(m.state.Visible) {
			end = len(m.state.Visible)
		}
		for i := m.offset; i < end; i++ {
			lines = append(lines, st.border.Render(b.Left)+m.renderRow(st, i, inner)+st.border.Render(b.Right))
		}
	}
	lines = append(lines, st.border.Render(m.bottomBorder(b, inner)))
	return strings.Join(lines, "\n")
}

func (m *SelectorModel) renderField(st selectorStyles) string {
	fw := m.fieldWidth()
	if label := m.state.DisplayLabel(); label != "" {
		label = runewidth.Truncate(label, fw, ellipsisGlyph)
		return fitCell(st.overlay.Render(label), fw, lipgloss.NewStyle())
	}
	field := m.input.View()
	if m.opts.NoColor {
		field = ansi.Strip(field)
	}
	return fitCell(field, fw, lipgloss.NewStyle())
}

func (m *SelectorModel) renderRow(st selectorStyles, i, width int) string {
	c := m.state.Visible[i]
	base, hit := st.text, st.match
	emailBase := st.muted
	marker := " "
	if i == m.state.Highlight {
		base, hit, emailBase = st.selected, st.selMatch, st.selected
		marker = rowMarker
	}

	var sb strings.Builder
	sb.WriteString(base.Render(marker + " "))
	writeSegments(&sb, highlight.Render(c.Name, m.state.Query), base, hit)
	sb.WriteString(base.Render("  "))
	writeSegments(&sb, highlight.Render(c.Email, m.state.Query), emailBase, hit)
	return fitCell(sb.String(), width, base)
}

func writeSegments(sb *strings.Builder, segs []highlight.Segment, plain, matched lipgloss.Style) {
	for _, seg := range segs {
		if seg.Matched {
			sb.WriteString(matched.Render(seg.Text))
			continue
		}
		sb.WriteString(plain.Render(seg.Text))
	}
}

func (m *SelectorModel) bottomBorder(b lipgloss.Border, inner int) string {
	n := len(m.state.Visible)
	var label string
	switch {
	case m.state.Highlight >= 0:
		label = fmt.Sprintf(" %d/%d ", m.state.Highlight+1, n)
	case n == 1:
		label = " 1 contact "
	default:
		label = fmt.Sprintf(" %d contacts ", n)
	}
	lw := runewidth.StringWidth(label)
	if lw+2 > inner {
		return b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight
	}
	return b.BottomLeft + strings.Repeat(b.Bottom, inner-lw-1) + label + b.Bottom + b.BottomRight
}

// fitCell truncates or pads an ANSI string to exactly width columns. Padding
// is rendered with pad so row backgrounds extend to the border.
func fitCell(s string, width int, pad lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, ellipsisGlyph)
	}
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += pad.Render(strings.Repeat(" ", gap))
	}
	return s
}
