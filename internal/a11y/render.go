package a11y

import (
	"html"
	"strconv"
	"strings"

	"github.com/rohanthewiz/element"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/contactpick/internal/highlight"
)

// HTML renders the tree as static markup with the ARIA attributes a browser
// would expose. Matched query text is wrapped in <mark>.
func (t Tree) HTML() string {
	b := element.NewBuilder()
	cb := t.Combobox

	input := []string{
		"type", "text",
		"role", "combobox",
		"aria-expanded", strconv.FormatBool(cb.Expanded),
		"aria-autocomplete", cb.Autocomplete,
		"aria-controls", cb.Controls,
		"placeholder", html.EscapeString(cb.Placeholder),
		"value", html.EscapeString(cb.Value),
	}
	if cb.ActiveDescendant != "" {
		input = append(input, "aria-activedescendant", cb.ActiveDescendant)
	}

	b.DivClass("contact-selector").R(
		b.DivClass("contact-selector__field").R(
			b.Input(input...),
			func() (x any) {
				if cb.Overlay != "" {
					b.Div("class", "contact-selector__selection", "aria-hidden", "true").T(html.EscapeString(cb.Overlay))
				}
				if t.Clear != nil {
					b.Button("type", "button", "aria-label", t.Clear.Label).T("&times;")
				}
				b.Button("type", "button", "aria-label", t.Toggle.Label).T(toggleGlyph(cb.Expanded))
				return
			}(),
		),
		func() (x any) {
			if t.Listbox == nil {
				return
			}
			lb := t.Listbox
			b.Ul("id", lb.ID, "role", "listbox", "aria-label", lb.Label).R(
				func() (x any) {
					if len(lb.Options) == 0 {
						b.Li("class", "contact-selector__empty").T(html.EscapeString(lb.EmptyText))
						return
					}
					for _, o := range lb.Options {
						b.Li(
							"id", o.ID,
							"role", "option",
							"aria-selected", strconv.FormatBool(o.Selected),
							"aria-label", html.EscapeString(o.Label),
						).R(
							b.Span("class", "contact-selector__name").T(markSegments(o.Name, lb.Query)),
							b.Span("class", "contact-selector__email").T(markSegments(o.Email, lb.Query)),
						)
					}
					return
				}(),
			)
			return
		}(),
	)
	return b.String()
}

func markSegments(text, query string) string {
	var sb strings.Builder
	for _, seg := range highlight.Render(text, query) {
		if seg.Matched {
			sb.WriteString("<mark>")
			sb.WriteString(html.EscapeString(seg.Text))
			sb.WriteString("</mark>")
			continue
		}
		sb.WriteString(html.EscapeString(seg.Text))
	}
	return sb.String()
}

func toggleGlyph(expanded bool) string {
	if expanded {
		return "&#9650;"
	}
	return "&#9660;"
}

// Text renders the tree as an indented outline of roles, names and states.
func (t Tree) Text() string {
	cb := t.Combobox
	root := treeprint.NewWithRoot(describe("combobox", "", comboName(cb), comboStates(cb)))
	if t.Clear != nil {
		root.AddNode(describe("button", "", t.Clear.Label, nil))
	}
	root.AddNode(describe("button", "", t.Toggle.Label, nil))
	if lb := t.Listbox; lb != nil {
		list := root.AddBranch(describe("listbox", lb.ID, lb.Label, []string{strconv.Itoa(len(lb.Options)) + " options"}))
		if len(lb.Options) == 0 {
			list.AddNode(describe("status", "", lb.EmptyText, nil))
		}
		for _, o := range lb.Options {
			var states []string
			if o.Selected {
				states = append(states, "selected")
			}
			list.AddNode(describe("option", o.ID, o.Label, states))
		}
	}
	return root.String()
}

func comboName(cb Combobox) string {
	switch {
	case cb.Value != "":
		return cb.Value
	case cb.Overlay != "":
		return cb.Overlay
	default:
		return cb.Placeholder
	}
}

func comboStates(cb Combobox) []string {
	states := []string{"collapsed"}
	if cb.Expanded {
		states[0] = "expanded"
	}
	if cb.Focused {
		states = append(states, "focused")
	}
	if cb.ActiveDescendant != "" {
		states = append(states, "activedescendant="+cb.ActiveDescendant)
	}
	return states
}

func describe(role, id, name string, states []string) string {
	var sb strings.Builder
	sb.WriteString(role)
	if id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	if name != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(name))
	}
	if len(states) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(states, ", "))
		sb.WriteString("]")
	}
	return sb.String()
}
