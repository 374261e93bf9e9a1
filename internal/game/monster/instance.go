package monster

import (
	"fmt"
	"strings"
)

// Instance is a live monster engaged in an encounter.
type Instance struct {
	// ID uniquely identifies this runtime instance within an encounter,
	// in the form "{template_id}:{index}".
	ID string
	// TemplateID is the source template's ID.
	TemplateID string
	// Name is copied from the template for display.
	Name string
	// Description is copied from the template.
	Description string
	// CurrentHP is the instance's current hit points.
	CurrentHP int
	// MaxHP is the instance's maximum hit points.
	MaxHP int
	// AttackPower is the flat damage dealt per counterattack.
	AttackPower int
	// XPReward is granted on defeat.
	XPReward int
	// Drops lists item IDs awarded on defeat.
	Drops []string
}

// NewInstance creates a live monster instance from a template.
//
// Precondition: id must be non-empty; tmpl must be non-nil.
// Postcondition: CurrentHP equals tmpl.MaxHP.
func NewInstance(id string, tmpl *Template) *Instance {
	return &Instance{
		ID:          id,
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		CurrentHP:   tmpl.MaxHP,
		MaxHP:       tmpl.MaxHP,
		AttackPower: tmpl.AttackPower,
		XPReward:    tmpl.XPReward,
		Drops:       tmpl.Drops,
	}
}

// Alive reports whether the instance has hit points remaining.
func (i *Instance) Alive() bool {
	return i.CurrentHP > 0
}

// TakeDamage reduces CurrentHP by amount. CurrentHP may go negative; the
// caller detects death through Alive.
func (i *Instance) TakeDamage(amount int) {
	i.CurrentHP -= amount
}

// DisplayName returns the monster's display name.
func (i *Instance) DisplayName() string {
	return i.Name
}

// Health returns (current, max) hit points.
func (i *Instance) Health() (int, int) {
	return i.CurrentHP, i.MaxHP
}

// SetHP overwrites CurrentHP. Values outside [0, MaxHP] are allowed; item
// effects clamp where they need to.
func (i *Instance) SetHP(hp int) {
	i.CurrentHP = hp
}

// TemplateIDOf extracts the template ID portion of an instance ID of the
// form "{template_id}:{index}". IDs without a separator are returned as-is.
func TemplateIDOf(instanceID string) string {
	if idx := strings.IndexByte(instanceID, ':'); idx >= 0 {
		return instanceID[:idx]
	}
	return instanceID
}

// Spawner issues encounter-unique instance IDs per template.
type Spawner struct {
	registry *Registry
	counters map[string]int
}

// NewSpawner creates a Spawner backed by the given template registry.
func NewSpawner(registry *Registry) *Spawner {
	return &Spawner{
		registry: registry,
		counters: make(map[string]int),
	}
}

// Spawn instantiates a monster from templateID with a fresh instance ID.
//
// Postcondition: Successive spawns of the same template yield distinct IDs
// "{template_id}:0", "{template_id}:1", and so on.
func (s *Spawner) Spawn(templateID string) (*Instance, error) {
	tmpl, ok := s.registry.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("monster: Spawner.Spawn: unknown template %q", templateID)
	}
	id := fmt.Sprintf("%s:%d", templateID, s.counters[templateID])
	s.counters[templateID]++
	return NewInstance(id, tmpl), nil
}

// SpawnAll instantiates one monster per template ID in order.
//
// Postcondition: Returns an instance per ID, or an error on the first
// unknown template; on error, the partial result is discarded.
func (s *Spawner) SpawnAll(templateIDs []string) ([]*Instance, error) {
	out := make([]*Instance, 0, len(templateIDs))
	for _, id := range templateIDs {
		inst, err := s.Spawn(id)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}
