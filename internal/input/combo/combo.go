// Package combo tracks the held state of the three combo-modifier keys.
package combo

// Set identifies one of the three combo binding sets.
type Set int

const (
	SetNone Set = iota
	SetPrimary
	SetAlt1
	SetAlt2
)

// Sets lists the binding sets in routing priority order.
var Sets = [...]Set{SetPrimary, SetAlt1, SetAlt2}

// String returns a human-readable set label.
func (s Set) String() string {
	switch s {
	case SetPrimary:
		return "primary"
	case SetAlt1:
		return "alt1"
	case SetAlt2:
		return "alt2"
	default:
		return "none"
	}
}

func (s Set) index() (int, bool) {
	switch s {
	case SetPrimary, SetAlt1, SetAlt2:
		return int(s) - 1, true
	default:
		return 0, false
	}
}

// Tracker holds the pressed state of each combo modifier.
//
// Invariant: a modifier whose set is disabled is never recorded as pressed.
type Tracker struct {
	enabled [3]bool
	pressed [3]bool
}

// NewTracker creates a Tracker. enabled reports, per set, whether that set's
// modifier key is bound.
//
// Postcondition: Active() == SetNone.
func NewTracker(enabled func(Set) bool) *Tracker {
	t := &Tracker{}
	for _, s := range Sets {
		i, _ := s.index()
		t.enabled[i] = enabled(s)
	}
	return t
}

// Enabled reports whether the set's modifier key is configured.
func (t *Tracker) Enabled(s Set) bool {
	i, ok := s.index()
	return ok && t.enabled[i]
}

// Update records the pressed state of the modifier for set s.
// Updates for SetNone or disabled sets are ignored.
func (t *Tracker) Update(s Set, pressed bool) {
	i, ok := s.index()
	if !ok || !t.enabled[i] {
		return
	}
	t.pressed[i] = pressed
}

// Pressed reports whether the modifier for set s is currently held.
func (t *Tracker) Pressed(s Set) bool {
	i, ok := s.index()
	return ok && t.pressed[i]
}

// Active returns the set whose modifier is the only one held, or SetNone when zero or
// several modifiers are held.
func (t *Tracker) Active() Set {
	active := SetNone
	for _, s := range Sets {
		i, _ := s.index()
		if !t.pressed[i] || !t.enabled[i] {
			continue
		}
		if active != SetNone {
			return SetNone
		}
		active = s
	}
	return active
}

// Reset releases every modifier.
func (t *Tracker) Reset() {
	t.pressed = [3]bool{}
}
