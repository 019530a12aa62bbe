package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerDeliversAfterDelay(t *testing.T) {
	d := debouncer{delay: 5 * time.Millisecond, owner: 7}
	cmd := d.Start("al")
	require.NotNil(t, cmd)
	assert.True(t, d.Pending())

	msg, ok := cmd().(debounceMsg)
	require.True(t, ok)
	assert.Equal(t, 7, msg.Owner)
	assert.Equal(t, "al", msg.Query)
	assert.True(t, d.Accept(msg))
	assert.False(t, d.Pending())
	assert.False(t, d.Accept(msg), "a message is accepted once")
}

func TestDebouncerCancelledTaskDeliversNothing(t *testing.T) {
	d := debouncer{delay: time.Hour, owner: 1}
	cmd := d.Start("a")
	d.Cancel()
	assert.False(t, d.Pending())

	done := make(chan any, 1)
	go func() { done <- cmd() }()
	select {
	case got := <-done:
		assert.Nil(t, got)
	case <-time.After(time.Second):
		t.Fatal("cancelled debounce task did not return")
	}
}

func TestDebouncerRestartInvalidatesPrevious(t *testing.T) {
	d := debouncer{delay: time.Hour, owner: 1}
	first := d.Start("a")
	second := d.Start("ab")
	require.NotNil(t, first)
	require.NotNil(t, second)

	// The first task was cancelled by the restart.
	assert.Nil(t, first())

	stale := debounceMsg{Owner: 1, ID: d.live - 1, Query: "a"}
	assert.False(t, d.Accept(stale))
	assert.True(t, d.Pending())

	assert.False(t, d.Accept(debounceMsg{Owner: 2, ID: d.live, Query: "ab"}), "wrong owner")
	assert.True(t, d.Accept(debounceMsg{Owner: 1, ID: d.live, Query: "ab"}))
}

func TestDebouncerInFlightMessageRejectedAfterCancel(t *testing.T) {
	d := debouncer{delay: time.Millisecond, owner: 3}
	msg, ok := d.Start("q")().(debounceMsg)
	require.True(t, ok)

	d.Cancel()
	assert.False(t, d.Accept(msg))
}
