// Package debounce coalesces bursts of input into one delayed action.
package debounce

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period after the last input before a search runs.
const DefaultDelay = 500 * time.Millisecond

// Msg is sent when a quiet period ends.
// Key and ID are compared against the Debouncer to drop superseded ticks.
type Msg struct {
	Key string
	ID  int
}

// Debouncer tracks at most one pending delayed action.
// It is not safe for concurrent use; it is driven from a bubbletea Update loop.
type Debouncer struct {
	key     string
	delay   time.Duration
	id      int
	pending bool
}

// New creates a debouncer. key distinguishes ticks of different debouncers
// sharing one program.
func New(key string, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{key: key, delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Input re-arms the timer for a new input value and returns the tick command.
// Any earlier pending tick is invalidated. A blank value only cancels.
func (d *Debouncer) Input(value string) tea.Cmd {
	d.Cancel()
	if strings.TrimSpace(value) == "" {
		return nil
	}

	d.pending = true
	msg := Msg{Key: d.key, ID: d.id}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Fire reports whether msg is the live tick. A live tick fires once.
func (d *Debouncer) Fire(msg Msg) bool {
	if !d.pending || msg.Key != d.key || msg.ID != d.id {
		return false
	}
	d.pending = false
	return true
}

// Cancel invalidates the pending tick, if any
func (d *Debouncer) Cancel() {
	d.id++
	d.pending = false
}

// Pending reports whether a tick is armed and not yet fired
func (d *Debouncer) Pending() bool {
	return d.pending
}
