// Package condition provides status-effect tracking and the player-state
// predicates that gate dialogue and travel.
package condition

import "sort"

// StatusSet tracks the named status effects currently applied to one
// combatant, mapped to turns remaining. It is not safe for concurrent use;
// the caller must serialise access.
type StatusSet struct {
	effects map[string]int
}

// NewStatusSet creates an empty StatusSet.
func NewStatusSet() *StatusSet {
	return &StatusSet{effects: make(map[string]int)}
}

// Apply adds or refreshes a status effect.
//
// Precondition: turns must be >= 1.
// Postcondition: Has(effect) is true; on re-apply the remaining duration is
// replaced with turns, even when that shortens it.
func (s *StatusSet) Apply(effect string, turns int) {
	s.effects[effect] = turns
}

// Remove deletes the effect from the set. Absent effects are a no-op.
//
// Postcondition: Has(effect) is false.
func (s *StatusSet) Remove(effect string) {
	delete(s.effects, effect)
}

// Tick decrements the remaining duration of every effect by one turn and
// removes those that reach zero.
//
// Postcondition: For every name in the returned slice, Has(name) is false.
// The returned slice is sorted for stable wear-off messaging.
func (s *StatusSet) Tick() []string {
	var expired []string
	for name, turns := range s.effects {
		turns--
		if turns <= 0 {
			expired = append(expired, name)
			delete(s.effects, name)
			continue
		}
		s.effects[name] = turns
	}
	sort.Strings(expired)
	return expired
}

// Has reports whether the effect is currently active.
func (s *StatusSet) Has(effect string) bool {
	_, ok := s.effects[effect]
	return ok
}
