package ui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
)

// debounceMsg is delivered when a debounce task fires. Owner and ID let the
// receiving selector discard messages from replaced or cancelled tasks.
type debounceMsg struct {
	Owner int
	ID    uint64
	Query string
}

// debouncer runs at most one delayed task at a time. Starting a task
// cancels the previous one.
type debouncer struct {
	delay  time.Duration
	owner  int
	seq    uint64
	live   uint64
	cancel context.CancelFunc
}

// Start schedules query to be delivered after the delay.
func (d *debouncer) Start(query string) tea.Cmd {
	d.Cancel()
	d.seq++
	d.live = d.seq
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	msg := debounceMsg{Owner: d.owner, ID: d.live, Query: query}
	delay := d.delay
	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return msg
		}
	}
}

// Cancel stops the outstanding task, if any. A message already in flight
// is rejected by Accept.
func (d *debouncer) Cancel() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.live = 0
}

// Accept reports whether msg came from the live task and retires it.
func (d *debouncer) Accept(msg debounceMsg) bool {
	if msg.Owner != d.owner || msg.ID == 0 || msg.ID != d.live {
		return false
	}
	d.live = 0
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	return true
}

// Pending reports whether a task is outstanding.
func (d *debouncer) Pending() bool {
	return d.live != 0
}
