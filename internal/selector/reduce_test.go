package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

var young = []contact.Contact{
	{ID: "1", Name: "Alice Young", Email: "alice@x.com"},
	{ID: "2", Name: "Bob Young", Email: "bob@x.com"},
}

var mixed = []contact.Contact{
	{ID: "1", Name: "Alice Young", Email: "alice@x.com"},
	{ID: "2", Name: "Bob Young", Email: "bob@x.com"},
	{ID: "3", Name: "Carol King", Email: "carol@acme.co"},
	{ID: "4", Name: "Dan Hill", Email: "dhill@acme.co"},
}

// recorder implements Effects by logging calls.
type recorder struct {
	notified  []*contact.Contact
	debounces []string
	cancels   int
	listening bool
	scrolled  []int
	focused   bool
	blurs     int
}

func (r *recorder) Notify(c *contact.Contact)  { r.notified = append(r.notified, c) }
func (r *recorder) StartDebounce(q string)     { r.debounces = append(r.debounces, q) }
func (r *recorder) CancelDebounce()            { r.cancels++ }
func (r *recorder) ListenOutside(enabled bool) { r.listening = enabled }
func (r *recorder) ScrollIntoView(index int)   { r.scrolled = append(r.scrolled, index) }
func (r *recorder) FocusInput()                { r.focused = true }
func (r *recorder) BlurInput() {
	r.focused = false
	r.blurs++
}

// run feeds events through Reduce, applying effects to rec.
func run(t *testing.T, s State, rec *recorder, events ...Event) State {
	t.Helper()
	for _, ev := range events {
		var fx []Effect
		s, fx = Reduce(s, ev)
		Apply(rec, fx)
		require.True(t, s.HighlightValid(), "highlight %d invalid for %d visible after %T", s.Highlight, len(s.Visible), ev)
	}
	return s
}

// typeAndSettle types q and lets its debounce task complete.
func typeAndSettle(q string) []Event {
	return []Event{Type{Value: q}, DebounceElapsed{Query: q}}
}

func TestEndToEndCommit(t *testing.T) {
	rec := &recorder{}
	s := New(young, nil)

	s = run(t, s, rec, Type{Value: "young"})
	assert.True(t, s.Open)
	assert.Equal(t, "young", s.RawQuery)
	assert.Equal(t, []string{"young"}, rec.debounces)

	s = run(t, s, rec, DebounceElapsed{Query: "young"})
	assert.Equal(t, young, s.Visible)
	assert.Equal(t, NoHighlight, s.Highlight)

	s = run(t, s, rec, ArrowDown{}, ArrowDown{})
	assert.Equal(t, 1, s.Highlight)

	s = run(t, s, rec, Enter{})
	require.Len(t, rec.notified, 1)
	assert.Equal(t, "2", rec.notified[0].ID)
	require.NotNil(t, s.Selection)
	assert.Equal(t, "Bob Young", s.Selection.Name)
	assert.False(t, s.Open)
	assert.Empty(t, s.RawQuery)
	assert.Empty(t, s.Query)
	assert.False(t, rec.listening)
	assert.False(t, s.Focused)
	assert.Equal(t, "Bob Young (bob@x.com)", s.DisplayLabel())

	s = run(t, s, rec, Focus{})
	assert.True(t, s.Focused)
	assert.True(t, s.Open, "focusing after a commit reopens the list")
}

func TestArrowDownFromClosedOpensWithoutHighlight(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(young, nil), rec, ArrowDown{})
	assert.True(t, s.Open)
	assert.Equal(t, NoHighlight, s.Highlight)
	assert.True(t, rec.listening)

	s = run(t, s, rec, ArrowDown{})
	assert.Equal(t, 0, s.Highlight)
}

func TestNavigationWraps(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		event  Event
		expect int
	}{
		{name: "down from none", start: NoHighlight, event: ArrowDown{}, expect: 0},
		{name: "down", start: 1, event: ArrowDown{}, expect: 2},
		{name: "down from last wraps", start: 3, event: ArrowDown{}, expect: 0},
		{name: "up", start: 2, event: ArrowUp{}, expect: 1},
		{name: "up from first wraps", start: 0, event: ArrowUp{}, expect: 3},
		{name: "up from none goes to last", start: NoHighlight, event: ArrowUp{}, expect: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, New(mixed, nil), &recorder{}, Focus{})
			s.Highlight = tt.start
			s, fx := Reduce(s, tt.event)
			assert.Equal(t, tt.expect, s.Highlight)
			assert.Equal(t, []Effect{ScrollIntoView{Index: tt.expect}}, fx)
		})
	}
}

func TestNavigationOnEmptyListIsNoop(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Focus{})
	s = run(t, s, rec, typeAndSettle("zzz")...)
	require.Empty(t, s.Visible)

	for _, ev := range []Event{ArrowDown{}, ArrowUp{}, Enter{}} {
		next, fx := Reduce(s, ev)
		assert.Equal(t, s, next, "%T changed state", ev)
		assert.Empty(t, fx, "%T produced effects", ev)
	}
}

func TestArrowUpWhileClosedIsNoop(t *testing.T) {
	s := New(mixed, nil)
	next, fx := Reduce(s, ArrowUp{})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)
}

func TestHighlightResets(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Focus{}, ArrowDown{}, ArrowDown{})
	require.Equal(t, 1, s.Highlight)

	t.Run("debounced query change", func(t *testing.T) {
		next := run(t, s, &recorder{}, typeAndSettle("acme")...)
		assert.Equal(t, NoHighlight, next.Highlight)
		assert.Len(t, next.Visible, 2)
	})

	t.Run("raw query alone keeps highlight until debounce", func(t *testing.T) {
		next := run(t, s, &recorder{}, Type{Value: "a"})
		assert.Equal(t, 1, next.Highlight)
		assert.Equal(t, mixed, next.Visible)
	})

	t.Run("close and reopen", func(t *testing.T) {
		next := run(t, s, &recorder{}, Toggle{})
		assert.False(t, next.Open)
		assert.Equal(t, NoHighlight, next.Highlight)
		next = run(t, next, &recorder{}, Toggle{})
		assert.True(t, next.Open)
		assert.Equal(t, NoHighlight, next.Highlight)
	})

	t.Run("candidate list replaced", func(t *testing.T) {
		next := run(t, s, &recorder{}, SetCandidates{Candidates: young})
		assert.Equal(t, NoHighlight, next.Highlight)
		assert.Equal(t, young, next.Visible)
	})
}

func TestSameDebouncedQueryKeepsHighlight(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Focus{})
	s = run(t, s, rec, typeAndSettle("young")...)
	s = run(t, s, rec, ArrowDown{})
	s = run(t, s, rec, Type{Value: "youn"}, Type{Value: "young"}, DebounceElapsed{Query: "young"})
	assert.Equal(t, 0, s.Highlight)
}

func TestStaleDebounceIsIgnored(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Type{Value: "a"}, Type{Value: "al"})
	assert.Equal(t, []string{"a", "al"}, rec.debounces)

	next, fx := Reduce(s, DebounceElapsed{Query: "a"})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)

	next = run(t, s, rec, DebounceElapsed{Query: "al"})
	assert.Equal(t, "al", next.Query)
	assert.False(t, next.DebouncePending)

	// a second delivery for the same task finds nothing pending
	again, fx := Reduce(next, DebounceElapsed{Query: "al"})
	assert.Equal(t, next, again)
	assert.Empty(t, fx)
}

func TestClosingCancelsPendingDebounce(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Type{Value: "acme"})
	require.True(t, s.DebouncePending)

	s = run(t, s, rec, Escape{})
	assert.Equal(t, 1, rec.cancels)
	assert.False(t, s.DebouncePending)
	assert.Equal(t, "acme", s.Query, "closing settles the debounced query")
	assert.Len(t, s.Visible, 2)
	assert.False(t, s.Focused)
	assert.Equal(t, 1, rec.blurs)
}

func TestEscape(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Focus{}, ArrowDown{}, Escape{})
	assert.False(t, s.Open)
	assert.False(t, s.Focused)
	assert.Nil(t, s.Selection)
	assert.Empty(t, rec.notified)

	next, fx := Reduce(s, Escape{})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)
}

func TestEnterWithoutHighlightIsNoop(t *testing.T) {
	s := run(t, New(mixed, nil), &recorder{}, Focus{})
	next, fx := Reduce(s, Enter{})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)
}

func TestEnterWhileClosedOpens(t *testing.T) {
	s, fx := Reduce(New(mixed, nil), Enter{})
	assert.True(t, s.Open)
	assert.Equal(t, []Effect{ListenOutside{Enabled: true}}, fx)
}

func TestRowClickAndHover(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Focus{}, HoverRow{Index: 2}, HoverRow{Index: 3}, HoverRow{Index: 9})
	assert.Equal(t, 3, s.Highlight)
	assert.Equal(t, []int{2, 3}, rec.scrolled)
	assert.Empty(t, rec.notified, "hover must not notify")

	s = run(t, s, rec, ClickRow{Index: 2})
	require.Len(t, rec.notified, 1)
	assert.Equal(t, "3", rec.notified[0].ID)
	assert.Equal(t, "Carol King", s.Selection.Name)
	assert.False(t, s.Open)

	// rows are inert while closed
	next, fx := Reduce(s, ClickRow{Index: 0})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)
}

func TestOneNotificationPerCommitOrClear(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec,
		Focus{}, ArrowDown{}, ArrowDown{}, ArrowUp{}, HoverRow{Index: 3},
	)
	assert.Empty(t, rec.notified)

	s = run(t, s, rec, Enter{})
	assert.Len(t, rec.notified, 1)

	s = run(t, s, rec, Clear{})
	require.Len(t, rec.notified, 2)
	assert.Nil(t, rec.notified[1])

	// clearing again with nothing selected does nothing
	run(t, s, rec, Toggle{}, Clear{})
	assert.Len(t, rec.notified, 2)
}

func TestOutsideClick(t *testing.T) {
	rec := &recorder{}
	def := mixed[0]
	s := run(t, New(mixed, &def), rec, Focus{}, ArrowDown{}, OutsideClick{})
	assert.False(t, s.Open)
	assert.Empty(t, rec.notified)
	require.NotNil(t, s.Selection)
	assert.Equal(t, "1", s.Selection.ID)
	assert.False(t, rec.listening)

	next, fx := Reduce(s, OutsideClick{})
	assert.Equal(t, s, next)
	assert.Empty(t, fx)
}

func TestClear(t *testing.T) {
	def := mixed[1]
	rec := &recorder{}
	s := New(mixed, &def)
	assert.Equal(t, "Bob Young (bob@x.com)", s.DisplayLabel())

	s = run(t, s, rec, Clear{})
	assert.Nil(t, s.Selection)
	assert.Empty(t, s.RawQuery)
	require.Len(t, rec.notified, 1)
	assert.Nil(t, rec.notified[0])
	assert.True(t, rec.focused)
	assert.True(t, s.Focused)
	assert.True(t, s.Open, "refocusing opens the panel")
	assert.Empty(t, s.DisplayLabel())
}

func TestClearWhileTypingRestartsDebounce(t *testing.T) {
	def := mixed[1]
	rec := &recorder{}
	s := run(t, New(mixed, &def), rec, typeAndSettle("acme")...)
	s = run(t, s, rec, Clear{})
	assert.Empty(t, s.RawQuery)
	assert.Equal(t, "acme", s.Query)
	assert.True(t, s.DebouncePending)
	assert.Equal(t, []string{"acme", ""}, rec.debounces)

	s = run(t, s, rec, DebounceElapsed{Query: ""})
	assert.Equal(t, mixed, s.Visible)
}

func TestOverlayHidesWhileTyping(t *testing.T) {
	def := mixed[0]
	s := run(t, New(mixed, &def), &recorder{}, Type{Value: "b"})
	assert.Empty(t, s.DisplayLabel())
	require.NotNil(t, s.Selection, "typing does not discard the selection")
}

func TestToggleFocusesInput(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Toggle{})
	assert.True(t, s.Open)
	assert.True(t, s.Focused)
	assert.True(t, rec.focused)

	s = run(t, s, rec, Toggle{})
	assert.False(t, s.Open)
	assert.True(t, s.Focused)
}

func TestSetDefault(t *testing.T) {
	c := mixed[2]
	s, fx := Reduce(New(mixed, nil), SetDefault{Contact: &c})
	require.NotNil(t, s.Selection)
	assert.Equal(t, "3", s.Selection.ID)
	assert.Empty(t, fx)

	c.Name = "mutated"
	assert.Equal(t, "Carol King", s.Selection.Name, "selection is copied")

	s, _ = Reduce(s, SetDefault{})
	assert.Nil(t, s.Selection)
}

func TestUnmount(t *testing.T) {
	rec := &recorder{}
	s := run(t, New(mixed, nil), rec, Type{Value: "a"})
	s = run(t, s, rec, Unmount{})
	assert.Equal(t, 1, rec.cancels)
	assert.False(t, rec.listening)
	assert.False(t, s.Open)
	assert.False(t, s.DebouncePending)
}

func TestEffectsOrderOnCommit(t *testing.T) {
	s := run(t, New(young, nil), &recorder{}, Type{Value: "bob"})
	s.Highlight = 1
	_, fx := Reduce(s, Enter{})
	chosen := young[1]
	want := []Effect{
		CancelDebounce{},
		ListenOutside{Enabled: false},
		BlurInput{},
		Notify{Contact: &chosen},
	}
	if diff := cmp.Diff(want, fx); diff != "" {
		t.Errorf("commit effects mismatch (-want +got):\n%s", diff)
	}
}

func TestRandomEventsKeepInvariants(t *testing.T) {
	all := contact.GenerateSeeded(40, contact.DefaultSeed)
	r := rand.New(rand.NewPCG(11, 13))
	queries := []string{"", "a", "an", "young", "@gmail", "zz", "e"}

	rec := &recorder{}
	s := New(all, nil)
	commits := 0
	clears := 0
	for i := 0; i < 2000; i++ {
		var ev Event
		switch r.IntN(12) {
		case 0:
			ev = Focus{}
		case 1:
			ev = Type{Value: queries[r.IntN(len(queries))]}
		case 2:
			ev = DebounceElapsed{Query: s.RawQuery}
		case 3, 4:
			ev = ArrowDown{}
		case 5:
			ev = ArrowUp{}
		case 6:
			ev = Enter{}
		case 7:
			ev = Escape{}
		case 8:
			ev = HoverRow{Index: r.IntN(len(all) + 2)}
		case 9:
			ev = ClickRow{Index: r.IntN(len(all) + 2)}
		case 10:
			ev = OutsideClick{}
		default:
			if r.IntN(2) == 0 {
				ev = Clear{}
			} else {
				ev = Toggle{}
			}
		}

		before := len(rec.notified)
		wasOpen := s.Open
		next, fx := Reduce(s, ev)
		Apply(rec, fx)
		require.True(t, next.HighlightValid(), "step %d %T", i, ev)
		if wasOpen != next.Open {
			assert.Equal(t, NoHighlight, next.Highlight, "step %d %T", i, ev)
		}
		switch delta := len(rec.notified) - before; delta {
		case 0:
		case 1:
			if rec.notified[before] == nil {
				clears++
			} else {
				commits++
			}
		default:
			t.Fatalf("step %d %T notified %d times", i, ev, delta)
		}
		s = next
	}
	assert.Positive(t, commits)
	assert.Positive(t, clears)
}
