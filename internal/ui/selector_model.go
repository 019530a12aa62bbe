package ui

import (
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/contactpick/internal/selector"
	"github.com/oakwood-commons/contactpick/pkg/contact"
)

const (
	DefaultPlaceholder = "Search contacts..."
	DefaultEmptyText   = "No contacts found"
	DefaultDebounce    = 300 * time.Millisecond
	DefaultMaxRows     = 8
	DefaultWidth       = 60
	minSelectorWidth   = 20
)

// SelectedMsg is sent to the host after a commit (Contact set) or a clear
// (Contact nil).
type SelectedMsg struct {
	Contact *contact.Contact
}

// SelectorOptions configures a SelectorModel.
type SelectorOptions struct {
	Candidates  []contact.Contact
	Default     *contact.Contact
	Placeholder string
	EmptyText   string
	// Debounce is the delay between typing and filtering. Zero filters
	// synchronously.
	Debounce time.Duration
	MaxRows  int
	Width    int
	Keys     KeyMap
	NoColor  bool
	// OnSelect is called with a copy of the committed contact, or nil when
	// the selection is cleared.
	OnSelect func(*contact.Contact)
	Logger   logr.Logger
}

var selectorSeq atomic.Int64

// SelectorModel adapts terminal key and mouse events to the selector
// reducer and executes the effects it requests.
type SelectorModel struct {
	id    int
	opts  SelectorOptions
	state selector.State
	input textinput.Model
	deb   debouncer
	log   logr.Logger

	// Screen position of the component's top-left cell.
	originX, originY int
	width            int

	offset    int
	listening bool
	settle    *string
	cmds      []tea.Cmd
}

var _ selector.Effects = (*SelectorModel)(nil)

// NewSelectorModel returns a closed, unfocused selector.
func NewSelectorModel(opts SelectorOptions) *SelectorModel {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.EmptyText == "" {
		opts.EmptyText = DefaultEmptyText
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Keys.Down.Keys() == nil {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	id := int(selectorSeq.Add(1))
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder

	m := &SelectorModel{
		id:    id,
		opts:  opts,
		state: selector.New(opts.Candidates, opts.Default),
		input: ti,
		deb:   debouncer{delay: opts.Debounce, owner: id},
		log:   opts.Logger.WithValues("component", "selector", "id", id),
	}
	m.SetWidth(opts.Width)
	return m
}

// Init implements ChildModel.
func (m *SelectorModel) Init() tea.Cmd { return nil }

// State returns the current interaction state.
func (m *SelectorModel) State() selector.State { return m.state }

// Selection returns the committed contact, if any.
func (m *SelectorModel) Selection() *contact.Contact {
	if m.state.Selection == nil {
		return nil
	}
	c := *m.state.Selection
	return &c
}

// Options returns the resolved options.
func (m *SelectorModel) Options() SelectorOptions { return m.opts }

// Offset returns the index of the first visible dropdown row.
func (m *SelectorModel) Offset() int { return m.offset }

// Listening reports whether the outside-click listener is registered.
func (m *SelectorModel) Listening() bool { return m.listening }

// SetOrigin records where the component is drawn so mouse events can be
// hit-tested in screen coordinates.
func (m *SelectorModel) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetWidth sets the component width in columns.
func (m *SelectorModel) SetWidth(w int) {
	if w < minSelectorWidth {
		w = minSelectorWidth
	}
	m.width = w
	m.input.SetWidth(m.fieldWidth())
}

// SetSize implements ModelWithSize. The selector never grows past its
// configured width.
func (m *SelectorModel) SetSize(width, _ int) {
	w := m.opts.Width
	if width > 0 && width < w {
		w = width
	}
	m.SetWidth(w)
}

// Focus implements ModelWithFocus.
func (m *SelectorModel) Focus() tea.Cmd {
	return m.Dispatch(selector.Focus{})
}

// Blur implements ModelWithFocus. Leaving the component behaves like a
// click outside it.
func (m *SelectorModel) Blur() {
	m.Dispatch(selector.OutsideClick{})
}

// Focused implements ModelWithFocus.
func (m *SelectorModel) Focused() bool { return m.state.Focused }

// SetCandidates replaces the candidate list.
func (m *SelectorModel) SetCandidates(list []contact.Contact) tea.Cmd {
	return m.Dispatch(selector.SetCandidates{Candidates: list})
}

// SetDefault replaces the default selection.
func (m *SelectorModel) SetDefault(c *contact.Contact) tea.Cmd {
	return m.Dispatch(selector.SetDefault{Contact: c})
}

// Close releases the pending debounce task and the outside listener.
func (m *SelectorModel) Close() {
	m.Dispatch(selector.Unmount{})
}

// Dispatch feeds ev to the reducer, runs the resulting effects and returns
// the commands they produced.
func (m *SelectorModel) Dispatch(ev selector.Event) tea.Cmd {
	m.dispatch(ev)
	return m.takeCmds()
}

func (m *SelectorModel) dispatch(ev selector.Event) {
	prevQuery, prevOpen := m.state.Query, m.state.Open
	next, effects := selector.Reduce(m.state, ev)
	m.state = next
	selector.Apply(m, effects)

	if m.state.Query != prevQuery || m.state.Open != prevOpen {
		m.offset = 0
	}
	m.clampOffset()
	m.syncInput()

	if m.settle != nil {
		q := *m.settle
		m.settle = nil
		m.dispatch(selector.DebounceElapsed{Query: q})
	}
}

func (m *SelectorModel) takeCmds() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *SelectorModel) syncInput() {
	if m.input.Value() != m.state.RawQuery {
		m.input.SetValue(m.state.RawQuery)
		m.input.CursorEnd()
	}
}

// Notify implements selector.Effects.
func (m *SelectorModel) Notify(c *contact.Contact) {
	if c != nil {
		m.log.V(1).Info("contact selected", "contact", c.ID)
	} else {
		m.log.V(1).Info("selection cleared")
	}
	if m.opts.OnSelect != nil {
		m.opts.OnSelect(copyContact(c))
	}
	msg := SelectedMsg{Contact: copyContact(c)}
	m.cmds = append(m.cmds, func() tea.Msg { return msg })
}

// StartDebounce implements selector.Effects.
func (m *SelectorModel) StartDebounce(query string) {
	if m.opts.Debounce <= 0 {
		m.deb.Cancel()
		q := query
		m.settle = &q
		return
	}
	m.cmds = append(m.cmds, m.deb.Start(query))
}

// CancelDebounce implements selector.Effects.
func (m *SelectorModel) CancelDebounce() {
	m.deb.Cancel()
	m.settle = nil
}

// ListenOutside implements selector.Effects.
func (m *SelectorModel) ListenOutside(enabled bool) {
	m.listening = enabled
}

// ScrollIntoView implements selector.Effects. The viewport only moves when
// the row is outside it.
func (m *SelectorModel) ScrollIntoView(index int) {
	rows := m.viewportRows()
	switch {
	case index < m.offset:
		m.offset = index
	case index >= m.offset+rows:
		m.offset = index - rows + 1
	}
}

// FocusInput implements selector.Effects.
func (m *SelectorModel) FocusInput() {
	if cmd := m.input.Focus(); cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// BlurInput implements selector.Effects.
func (m *SelectorModel) BlurInput() {
	m.input.Blur()
}

// Update implements ChildModel.
func (m *SelectorModel) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		if !m.deb.Accept(msg) {
			m.log.V(1).Info("stale debounce dropped", "query", msg.Query)
			return m, nil
		}
		return m, m.Dispatch(selector.DebounceElapsed{Query: msg.Query})

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		return m, m.handleClick(mouse.X-m.originX, mouse.Y-m.originY)

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		if i, ok := m.rowAt(mouse.X-m.originX, mouse.Y-m.originY); ok && i != m.state.Highlight {
			return m, m.Dispatch(selector.HoverRow{Index: i})
		}
		return m, nil

	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		if !m.inDropdown(mouse.X-m.originX, mouse.Y-m.originY) {
			return m, nil
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.scroll(-1)
		case tea.MouseWheelDown:
			m.scroll(1)
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.state.RawQuery {
			return m, tea.Batch(cmd, m.Dispatch(selector.Type{Value: v}))
		}
		return m, cmd
	}
}

func (m *SelectorModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.opts.Keys.Action(msg.String()) {
	case ActionDown:
		return m.Dispatch(selector.ArrowDown{})
	case ActionUp:
		return m.Dispatch(selector.ArrowUp{})
	case ActionEnter:
		return m.Dispatch(selector.Enter{})
	case ActionEscape:
		return m.Dispatch(selector.Escape{})
	case ActionClear:
		if m.state.Selection != nil {
			return m.Dispatch(selector.Clear{})
		}
		return nil
	case ActionToggle:
		return m.Dispatch(selector.Toggle{})
	case ActionFocus:
		if !m.state.Focused {
			return m.Dispatch(selector.Focus{})
		}
		return nil
	case ActionShowAll, ActionAccept, ActionCopy, ActionQuit:
		return nil
	}

	var cmds []tea.Cmd
	if !m.state.Focused {
		if msg.Text == "" {
			return nil
		}
		// Typing into an unfocused selector focuses it first.
		cmds = append(cmds, m.Dispatch(selector.Focus{}))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if v := m.input.Value(); v != m.state.RawQuery {
		cmds = append(cmds, m.Dispatch(selector.Type{Value: v}))
	}
	return tea.Batch(cmds...)
}

func (m *SelectorModel) handleClick(x, y int) tea.Cmd {
	switch m.hitTest(x, y) {
	case hitClear:
		return m.Dispatch(selector.Clear{})
	case hitToggle:
		return m.Dispatch(selector.Toggle{})
	case hitInput:
		return m.Dispatch(selector.Focus{})
	case hitRow:
		i, _ := m.rowAt(x, y)
		return m.Dispatch(selector.ClickRow{Index: i})
	case hitPanel:
		return nil
	}
	if !m.listening {
		return nil
	}
	m.log.V(1).Info("outside click", "x", x, "y", y)
	return m.Dispatch(selector.OutsideClick{})
}

func (m *SelectorModel) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *SelectorModel) clampOffset() {
	maxOffset := len(m.state.Visible) - m.viewportRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func copyContact(c *contact.Contact) *contact.Contact {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
