package binding

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/attackinput/internal/input"
	"github.com/cory-johannsen/attackinput/internal/input/combo"
)

// Validate checks the layout for bindings whose routing would be ambiguous at runtime.
//
// Postcondition: Returns nil if the layout is consistent, or an error describing every
// conflict: a key bound both under a set with a modifier and under a set without one,
// a modifier key that is also an attack key, a modifier key shared by two sets, or a
// key bound to two roles in one set.
func (l Layout) Validate() error {
	var errs []string

	for _, s := range combo.Sets {
		k := l.Set(s)
		attack := []input.OptionalKey{k.Right, k.Left, k.Both}
		for i := 0; i < len(attack); i++ {
			for j := i + 1; j < len(attack); j++ {
				if code, ok := attack[i].Code(); ok && attack[j].Matches(code) {
					errs = append(errs, fmt.Sprintf("%s: key %d bound to more than one attack role", s, code))
				}
			}
		}
		if code, ok := k.Modifier.Code(); ok && l.IsPowerKey(code) {
			errs = append(errs, fmt.Sprintf("%s: modifier key %d is also an attack key", s, code))
		}
	}

	for i, a := range combo.Sets {
		code, ok := l.Set(a).Modifier.Code()
		if !ok {
			continue
		}
		for _, b := range combo.Sets[i+1:] {
			if l.Set(b).Modifier.Matches(code) {
				errs = append(errs, fmt.Sprintf("modifier key %d is shared by %s and %s", code, a, b))
			}
		}
	}

	for _, gated := range combo.Sets {
		gk := l.Set(gated)
		if !gk.Gated() {
			continue
		}
		for _, open := range combo.Sets {
			openKeys := l.Set(open)
			if openKeys.Gated() {
				continue
			}
			for _, key := range []input.OptionalKey{gk.Right, gk.Left, gk.Both} {
				code, bound := key.Code()
				if bound && openKeys.Role(code) != RoleNone {
					errs = append(errs, fmt.Sprintf(
						"key %d is bound under %s (modifier required) and %s (no modifier)",
						code, gated, open,
					))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("key layout conflicts: %s", strings.Join(errs, "; "))
	}
	return nil
}
