package selector

import "github.com/oakwood-commons/contactpick/pkg/contact"

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

type (
	// Focus is sent when the input gains focus.
	Focus struct{}
	// Type carries the input's new raw value after a keystroke.
	Type struct{ Value string }
	// DebounceElapsed is sent when the debounce task for Query completes.
	DebounceElapsed struct{ Query string }
	ArrowDown       struct{}
	ArrowUp         struct{}
	Enter           struct{}
	Escape          struct{}
	// ClickRow commits the visible row at Index.
	ClickRow struct{ Index int }
	// HoverRow moves the highlight to the visible row at Index.
	HoverRow struct{ Index int }
	// Clear is the clear-selection button.
	Clear struct{}
	// OutsideClick is a pointer press outside the component.
	OutsideClick struct{}
	// Toggle is the open/close button.
	Toggle struct{}
	// SetCandidates replaces the host-supplied list.
	SetCandidates struct{ Candidates []contact.Contact }
	// SetDefault replaces the selection without notifying the host.
	SetDefault struct{ Contact *contact.Contact }
	// Unmount releases timers and listeners.
	Unmount struct{}
)

func (Focus) isEvent()           {}
func (Type) isEvent()            {}
func (DebounceElapsed) isEvent() {}
func (ArrowDown) isEvent()       {}
func (ArrowUp) isEvent()         {}
func (Enter) isEvent()           {}
func (Escape) isEvent()          {}
func (ClickRow) isEvent()        {}
func (HoverRow) isEvent()        {}
func (Clear) isEvent()           {}
func (OutsideClick) isEvent()    {}
func (Toggle) isEvent()          {}
func (SetCandidates) isEvent()   {}
func (SetDefault) isEvent()      {}
func (Unmount) isEvent()         {}
