// Package debounce delays propagation of a rapidly changing value until it
// has been stable for a fixed interval. Only the trailing value is delivered.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the settle interval used for search input
const DefaultDelay = 300 * time.Millisecond

var nextID atomic.Int64

// SettledMsg is delivered by the tick scheduled in Trigger
type SettledMsg[T any] struct {
	id    int64
	tag   int
	Value T
}

// Debouncer debounces values inside a bubbletea program. Each Trigger bumps a
// generation tag; only the tick carrying the newest tag is accepted by Settle.
// The zero value is not usable; create one with New.
type Debouncer[T any] struct {
	id    int64
	tag   int
	delay time.Duration
}

// New creates a debouncer with the given delay
func New[T any](delay time.Duration) Debouncer[T] {
	return Debouncer[T]{id: nextID.Add(1), delay: delay}
}

// Delay returns the settle interval
func (d Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger records v as the latest input and returns the command that
// reports it once the delay has elapsed
func (d *Debouncer[T]) Trigger(v T) tea.Cmd {
	d.tag++
	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return SettledMsg[T]{id: id, tag: tag, Value: v}
	})
}

// Settle reports whether msg is the settled value of the latest Trigger.
// A given tag is accepted once: Settle invalidates it on success.
func (d *Debouncer[T]) Settle(msg SettledMsg[T]) (T, bool) {
	var zero T
	if msg.id != d.id || msg.tag != d.tag {
		return zero, false
	}
	d.tag++
	return msg.Value, true
}

// Owns reports whether msg was produced by this debouncer, settled or not
func (d Debouncer[T]) Owns(msg SettledMsg[T]) bool {
	return msg.id == d.id
}

// Stop discards any pending tick. Call it when the consuming view goes away.
func (d *Debouncer[T]) Stop() {
	d.tag++
}
