package selector

import "github.com/oakwood-commons/contactpick/pkg/contact"

// Effects executes the side effects Reduce requests. The terminal adapter
// implements it; tests record calls.
type Effects interface {
	// Notify tells the host about a commit (non-nil) or a clear (nil).
	Notify(c *contact.Contact)
	// StartDebounce replaces any outstanding debounce task with one for query.
	StartDebounce(query string)
	CancelDebounce()
	// ListenOutside registers or releases the outside-click listener.
	ListenOutside(enabled bool)
	// ScrollIntoView keeps the visible row at index on screen.
	ScrollIntoView(index int)
	FocusInput()
	BlurInput()
}

// Effect is a side effect requested by Reduce.
type Effect interface {
	apply(Effects)
}

type (
	Notify         struct{ Contact *contact.Contact }
	StartDebounce  struct{ Query string }
	CancelDebounce struct{}
	ListenOutside  struct{ Enabled bool }
	ScrollIntoView struct{ Index int }
	FocusInput     struct{}
	BlurInput      struct{}
)

func (e Notify) apply(fx Effects)         { fx.Notify(e.Contact) }
func (e StartDebounce) apply(fx Effects)  { fx.StartDebounce(e.Query) }
func (CancelDebounce) apply(fx Effects)   { fx.CancelDebounce() }
func (e ListenOutside) apply(fx Effects)  { fx.ListenOutside(e.Enabled) }
func (e ScrollIntoView) apply(fx Effects) { fx.ScrollIntoView(e.Index) }
func (FocusInput) apply(fx Effects)       { fx.FocusInput() }
func (BlurInput) apply(fx Effects)        { fx.BlurInput() }

// Apply runs effects against fx in order.
func Apply(fx Effects, effects []Effect) {
	for _, e := range effects {
		e.apply(fx)
	}
}
