package selector

import (
	"github.com/oakwood-commons/contactpick/internal/filter"
	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// Reduce applies ev to s and returns the next state plus the effects the
// caller must run. It never mutates s and performs no I/O.
func Reduce(s State, ev Event) (State, []Effect) {
	t := &transition{s: s}

	switch e := ev.(type) {
	case Focus:
		if !t.s.Focused {
			t.s.Focused = true
			t.emit(FocusInput{})
		}
		t.setOpen(true)

	case Type:
		t.s.Focused = true
		t.setOpen(true)
		if e.Value == t.s.RawQuery {
			break
		}
		t.s.RawQuery = e.Value
		t.startDebounce()

	case DebounceElapsed:
		// a completed task for anything but the current raw value is stale
		if !t.s.DebouncePending || e.Query != t.s.RawQuery {
			break
		}
		t.s.DebouncePending = false
		t.setQuery(e.Query)

	case ArrowDown:
		if !t.s.Open {
			t.setOpen(true)
			break
		}
		if n := len(t.s.Visible); n > 0 {
			t.setHighlight((t.s.Highlight + 1) % n)
		}

	case ArrowUp:
		n := len(t.s.Visible)
		if !t.s.Open || n == 0 {
			break
		}
		if t.s.Highlight <= 0 {
			t.setHighlight(n - 1)
		} else {
			t.setHighlight(t.s.Highlight - 1)
		}

	case Enter:
		if !t.s.Open {
			t.setOpen(true)
			break
		}
		if c, ok := t.s.Highlighted(); ok {
			t.commit(c)
		}

	case Escape:
		if !t.s.Open {
			break
		}
		t.setOpen(false)
		t.blur()

	case ClickRow:
		if t.s.Open && e.Index >= 0 && e.Index < len(t.s.Visible) {
			t.commit(t.s.Visible[e.Index])
		}

	case HoverRow:
		if t.s.Open && e.Index >= 0 && e.Index < len(t.s.Visible) {
			t.setHighlight(e.Index)
		}

	case Clear:
		if t.s.Selection == nil {
			break
		}
		t.s.Selection = nil
		t.emit(Notify{})
		hadQuery := t.s.RawQuery != ""
		t.s.RawQuery = ""
		t.s.Focused = true
		t.emit(FocusInput{})
		if t.s.Open {
			if hadQuery {
				t.startDebounce()
			}
		} else {
			t.setOpen(true)
		}

	case OutsideClick:
		if !t.s.Open {
			break
		}
		t.setOpen(false)
		t.blur()

	case Toggle:
		if t.s.Open {
			t.setOpen(false)
			break
		}
		t.setOpen(true)
		if !t.s.Focused {
			t.s.Focused = true
			t.emit(FocusInput{})
		}

	case SetCandidates:
		t.s.Candidates = e.Candidates
		t.s.Visible = filter.Contacts(e.Candidates, t.s.Query)
		t.s.Highlight = NoHighlight

	case SetDefault:
		if e.Contact == nil {
			t.s.Selection = nil
			break
		}
		c := *e.Contact
		t.s.Selection = &c

	case Unmount:
		t.cancelDebounce()
		if t.s.Open {
			t.s.Open = false
			t.s.Highlight = NoHighlight
			t.emit(ListenOutside{Enabled: false})
		}
	}

	return t.s, t.fx
}

type transition struct {
	s  State
	fx []Effect
}

func (t *transition) emit(effects ...Effect) {
	t.fx = append(t.fx, effects...)
}

// setOpen is the only place Open changes. Any change settles the debounced
// query, drops the highlight and swaps the outside-click listener.
func (t *transition) setOpen(open bool) {
	if t.s.Open == open {
		return
	}
	t.cancelDebounce()
	if t.s.Query != t.s.RawQuery {
		t.s.Query = t.s.RawQuery
		t.s.Visible = filter.Contacts(t.s.Candidates, t.s.Query)
	}
	t.s.Open = open
	t.s.Highlight = NoHighlight
	t.emit(ListenOutside{Enabled: open})
}

func (t *transition) setQuery(q string) {
	if q == t.s.Query {
		return
	}
	t.s.Query = q
	t.s.Visible = filter.Contacts(t.s.Candidates, q)
	t.s.Highlight = NoHighlight
}

func (t *transition) setHighlight(i int) {
	if i == t.s.Highlight {
		return
	}
	t.s.Highlight = i
	if i >= 0 {
		t.emit(ScrollIntoView{Index: i})
	}
}

func (t *transition) startDebounce() {
	t.s.DebouncePending = true
	t.emit(StartDebounce{Query: t.s.RawQuery})
}

func (t *transition) cancelDebounce() {
	if !t.s.DebouncePending {
		return
	}
	t.s.DebouncePending = false
	t.emit(CancelDebounce{})
}

func (t *transition) blur() {
	if !t.s.Focused {
		return
	}
	t.s.Focused = false
	t.emit(BlurInput{})
}

// commit selects c, clears the query, closes the panel and releases the
// input. Typing or focusing again reopens the list.
func (t *transition) commit(c contact.Contact) {
	t.s.Selection = &c
	t.s.RawQuery = ""
	t.setOpen(false)
	t.blur()
	chosen := c
	t.emit(Notify{Contact: &chosen})
}
