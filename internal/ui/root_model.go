package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

const (
	DefaultTitle        = "Contact Selector"
	DefaultToast        = 3 * time.Second
	DefaultInitialCount = 20

	pageMarginX  = 2
	selectorTopY = 3
)

// RootOptions configures the demo page.
type RootOptions struct {
	Title string
	// All is every available contact. The page starts by offering the first
	// InitialCount of them; zero offers all.
	All          []contact.Contact
	InitialCount int
	Selector     SelectorOptions
	Toast        time.Duration
	NoColor      bool
	Width        int
	Height       int
	Logger       logr.Logger
}

type toastExpiredMsg struct{ id int }

// RootModel is the demo page: a title, the selector, a card describing the
// current selection and a transient toast. It owns quitting.
type RootModel struct {
	opts     RootOptions
	selector *SelectorModel
	footer   FooterModel
	log      logr.Logger

	showAll      bool
	selected     *contact.Contact
	toast        string
	toastID      int
	toastPending bool

	width, height int

	accepted bool
	aborted  bool
}

// NewRootModel builds the page and its selector.
func NewRootModel(opts RootOptions) *RootModel {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Toast == 0 {
		opts.Toast = DefaultToast
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.Selector.Keys.Down.Keys() == nil {
		opts.Selector.Keys = DefaultKeyMap()
	}
	opts.Selector.NoColor = opts.Selector.NoColor || opts.NoColor
	if opts.Selector.Logger.GetSink() == nil {
		opts.Selector.Logger = opts.Logger
	}

	m := &RootModel{
		opts:   opts,
		footer: NewFooterModel(opts.Selector.Keys, opts.NoColor),
		log:    opts.Logger,
		width:  opts.Width,
		height: opts.Height,
	}
	m.showAll = opts.InitialCount <= 0 || opts.InitialCount >= len(opts.All)
	sel := opts.Selector
	sel.Candidates = m.offered()
	hostOnSelect := sel.OnSelect
	sel.OnSelect = func(c *contact.Contact) {
		m.onSelect(c)
		if hostOnSelect != nil {
			hostOnSelect(c)
		}
	}
	m.selector = NewSelectorModel(sel)
	m.selected = m.selector.Selection()
	m.selector.SetOrigin(pageMarginX, selectorTopY)
	m.selector.SetSize(m.width-2*pageMarginX, m.height)
	return m
}

// Selector returns the embedded selector.
func (m *RootModel) Selector() *SelectorModel { return m.selector }

// Selected returns the contact shown in the selection card.
func (m *RootModel) Selected() *contact.Contact { return copyContact(m.selected) }

// Result reports the accepted contact. ok is false when the user quit
// without accepting.
func (m *RootModel) Result() (c *contact.Contact, ok bool) {
	if !m.accepted {
		return nil, false
	}
	return copyContact(m.selected), true
}

// Aborted reports whether the user quit without accepting.
func (m *RootModel) Aborted() bool { return m.aborted }

// Toast returns the visible toast text.
func (m *RootModel) Toast() string { return m.toast }

// ShowingAll reports whether every contact is offered.
func (m *RootModel) ShowingAll() bool { return m.showAll }

func (m *RootModel) offered() []contact.Contact {
	if m.showAll || m.opts.InitialCount >= len(m.opts.All) {
		return m.opts.All
	}
	return m.opts.All[:m.opts.InitialCount]
}

// Init implements tea.Model.
func (m *RootModel) Init() tea.Cmd {
	return m.selector.Init()
}

// Update implements tea.Model.
func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.selector.SetSize(m.width-2*pageMarginX, m.height)
		return m, nil

	case SelectedMsg:
		// Selections arrive synchronously through OnSelect.
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyPressMsg:
		switch m.opts.Selector.Keys.Action(msg.String()) {
		case ActionQuit:
			m.aborted = true
			m.selector.Close()
			return m, tea.Quit
		case ActionAccept:
			m.accepted = true
			m.selector.Close()
			return m, tea.Quit
		case ActionShowAll:
			return m, m.toggleShowAll()
		case ActionCopy:
			return m, m.copySelected()
		}

	case tea.MouseClickMsg:
		// Hit-test the page before the selector resizes on close.
		mouse := msg.Mouse()
		onButton := mouse.Button == tea.MouseLeft && m.onShowAllButton(mouse.X, mouse.Y)
		_, cmd := m.selector.Update(msg)
		if onButton {
			cmd = tea.Batch(cmd, m.toggleShowAll())
		}
		return m, tea.Batch(cmd, m.takeToastCmd())
	}

	_, cmd := m.selector.Update(msg)
	return m, tea.Batch(cmd, m.takeToastCmd())
}

func (m *RootModel) onSelect(c *contact.Contact) {
	m.selected = copyContact(c)
	if c != nil {
		m.setToast("You selected " + c.Name)
	}
}

func (m *RootModel) toggleShowAll() tea.Cmd {
	m.showAll = !m.showAll
	m.log.V(1).Info("candidate list changed", "count", len(m.offered()))
	return m.selector.SetCandidates(m.offered())
}

func (m *RootModel) copySelected() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	if err := CopyToClipboard(m.selected.Email); err != nil {
		m.log.Error(err, "copy to clipboard")
		m.setToast("Copy failed: " + err.Error())
	} else {
		m.setToast("Copied " + m.selected.Email)
	}
	return m.takeToastCmd()
}

func (m *RootModel) setToast(text string) {
	m.toastID++
	m.toast = text
	m.toastPending = true
}

// takeToastCmd schedules expiry of a toast set since the last call.
// A negative toast duration keeps toasts until replaced.
func (m *RootModel) takeToastCmd() tea.Cmd {
	if !m.toastPending {
		return nil
	}
	m.toastPending = false
	if m.opts.Toast < 0 {
		return nil
	}
	id := m.toastID
	return tea.Tick(m.opts.Toast, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m *RootModel) showAllLabel() string {
	if m.opts.InitialCount <= 0 || m.opts.InitialCount >= len(m.opts.All) {
		return ""
	}
	if m.showAll {
		return fmt.Sprintf("[ Show first %d contacts ]", m.opts.InitialCount)
	}
	return fmt.Sprintf("[ Show all %d contacts ]", len(m.opts.All))
}

func (m *RootModel) showAllButtonY() int {
	return selectorTopY + m.selector.Height() + 1
}

func (m *RootModel) onShowAllButton(x, y int) bool {
	label := m.showAllLabel()
	if label == "" || y != m.showAllButtonY() {
		return false
	}
	return x >= pageMarginX && x < pageMarginX+ansi.StringWidth(label)
}

// Render draws the page as a string.
func (m *RootModel) Render() string {
	th := CurrentTheme()
	title := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle()
	accent := lipgloss.NewStyle()
	success := lipgloss.NewStyle().Bold(true)
	if !m.opts.NoColor {
		title = title.Foreground(th.Accent)
		muted = muted.Foreground(th.Muted)
		accent = accent.Foreground(th.Accent)
		success = success.Foreground(th.Success)
	}
	margin := strings.Repeat(" ", pageMarginX)

	lines := []string{
		margin + title.Render(m.opts.Title),
		margin + muted.Render(fmt.Sprintf("Search and select from %d contacts", len(m.offered()))),
		"",
	}
	for _, l := range strings.Split(m.selector.View(), "\n") {
		lines = append(lines, margin+l)
	}
	lines = append(lines, "")
	if label := m.showAllLabel(); label != "" {
		lines = append(lines, margin+accent.Render(label))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "", margin+title.Render("Selected Contact"))
	if m.selected == nil {
		lines = append(lines, margin+muted.Render("No contact selected"))
	} else {
		lines = append(lines,
			margin+muted.Render("Name:  ")+m.selected.Name,
			margin+muted.Render("Email: ")+m.selected.Email,
			margin+muted.Render("ID:    ")+m.selected.ID,
		)
	}
	if m.toast != "" {
		lines = append(lines, "", margin+success.Render("✓ "+m.toast))
	}

	footer := margin + m.footer.View()
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, footer)

	view := strings.Join(lines, "\n")
	if m.opts.NoColor {
		view = ansi.Strip(view)
	}
	return view
}

// View implements tea.Model.
func (m *RootModel) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
