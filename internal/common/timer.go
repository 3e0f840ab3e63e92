// Package common provides small shared utilities for the decode pipeline.
package common

import (
	"fmt"
	"time"
)

// Timer measures a pipeline stage with optional naming.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
}

// NewTimer creates and starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// NewNamedTimer creates and starts a timer with the given name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Elapsed returns the time since the timer started without stopping it.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop stops the timer and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// Duration returns the recorded duration (only valid after Stop).
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Name returns the timer name (empty string if unnamed).
func (t *Timer) Name() string {
	return t.name
}

// String returns a formatted representation of the timer.
func (t *Timer) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s: %v", t.name, t.duration)
	}
	return fmt.Sprintf("%v", t.duration)
}
