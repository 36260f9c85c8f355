// Package hold implements the per-intent hold-window debounce used for consecutive attacks.
//
// Each intent is independently Idle or Waiting. The first held sample captures the
// reference held duration and enters Waiting; the first later sample whose elapsed time
// since the reference reaches the delay fires once and returns to Idle. A down or up edge
// of the associated key resets the intent without firing.
package hold

import (
	"math"
	"time"
)

// Intent identifies an independently debounced attack intent.
type Intent int

const (
	IntentRight Intent = iota
	IntentLeft
	IntentBoth
	IntentPower
	numIntents
)

// Intents lists every intent.
var Intents = [...]Intent{IntentRight, IntentLeft, IntentBoth, IntentPower}

// String returns a human-readable intent label.
func (i Intent) String() string {
	switch i {
	case IntentRight:
		return "right"
	case IntentLeft:
		return "left"
	case IntentBoth:
		return "both"
	case IntentPower:
		return "power"
	default:
		return "unknown"
	}
}

// Seconds converts a held duration in seconds to a Duration rounded to the microsecond.
//
// Postcondition: Non-finite and negative inputs return 0.
func Seconds(secs float64) time.Duration {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return 0
	}
	return time.Duration(math.Round(secs*1e6)) * time.Microsecond
}

type window struct {
	waiting   bool
	reference time.Duration
}

// Timers holds the hold-window state of every intent.
// The zero value has every intent Idle.
//
// Invariant: reference is zero whenever waiting is false.
type Timers struct {
	windows [numIntents]window
}

// Reset returns intent i to Idle without firing.
func (t *Timers) Reset(i Intent) {
	if i < 0 || i >= numIntents {
		return
	}
	t.windows[i] = window{}
}

// ResetAll returns every intent to Idle.
func (t *Timers) ResetAll() {
	t.windows = [numIntents]window{}
}

// Waiting reports whether intent i is inside a hold window.
func (t *Timers) Waiting(i Intent) bool {
	if i < 0 || i >= numIntents {
		return false
	}
	return t.windows[i].waiting
}

// Reference returns the held duration captured when intent i entered its window.
//
// Postcondition: Returns 0 when the intent is Idle.
func (t *Timers) Reference(i Intent) time.Duration {
	if i < 0 || i >= numIntents {
		return 0
	}
	return t.windows[i].reference
}

// Sample feeds one held sample for intent i and reports whether the window expired.
//
// Precondition: held is the key's held duration for this sample.
// Postcondition: When delay <= 0 the intent stays Idle and false is returned.
// When true is returned the intent is Idle.
func (t *Timers) Sample(i Intent, held, delay time.Duration) bool {
	if delay <= 0 || i < 0 || i >= numIntents {
		return false
	}
	w := &t.windows[i]
	if !w.waiting {
		w.waiting = true
		w.reference = held
	}
	if held-w.reference >= delay {
		*w = window{}
		return true
	}
	return false
}
