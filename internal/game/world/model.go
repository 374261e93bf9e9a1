// Package world provides the location model and the read-only catalog built
// from content files at startup.
package world

import (
	"fmt"
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/condition"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/npc"
)

// Kind tags a location with its environment variant.
type Kind string

// Location kinds.
const (
	KindCity       Kind = "city"
	KindWilderness Kind = "wilderness"
	KindDungeon    Kind = "dungeon"
	KindSwamp      Kind = "swamp"
	KindVolcanic   Kind = "volcanic"
)

// LanternItemName is the item name that reveals swamp locations.
const LanternItemName = "Lantern"

// ConditionalExit is a travel link gated on player-state predicates.
// Matching exits contribute their description to the location text.
type ConditionalExit struct {
	Direction   string
	Destination string
	Description string
	Conditions  []condition.Predicate
}

// SpawnOnDefeat describes a replacement monster spawned when an instance of
// the keying template dies at this location.
type SpawnOnDefeat struct {
	SpawnTemplateID string
	Message         string
}

// Script holds optional Lua hook sources attached to a location.
type Script struct {
	// OnEnter runs when the player arrives. Its return value is appended
	// to the arrival text.
	OnEnter string
	// OnDefeat runs after a monster dies here. Its return value is
	// appended to the combat text.
	OnDefeat string
}

// Location is one place in the world. Topology (exits, kind, descriptions) is
// fixed at load; the entity collections (NPCs, Monsters, Items) are owned by
// the location and mutate as the game runs.
type Location struct {
	ID          string
	Name        string
	Description string
	Kind        Kind

	// Exits maps direction to destination location ID.
	Exits map[string]string
	// ConditionalExits are evaluated in file order.
	ConditionalExits []ConditionalExit
	// SpawnsOnDefeat is keyed by monster template ID.
	SpawnsOnDefeat map[string]SpawnOnDefeat

	NPCs     []*npc.Def
	Monsters []*monster.Instance
	Items    []*item.Item

	// HazardDescription is appended to dungeon descriptions.
	HazardDescription string
	// HiddenDescription replaces swamp descriptions while the player has
	// no lantern.
	HiddenDescription string
	// SpawnChance is carried content data for wilderness-family
	// locations; the engine preserves it without consulting it.
	SpawnChance float64

	Script Script
}

// Viewer is the player state a location consults when describing itself.
type Viewer interface {
	condition.State
	// HasItemNamed reports whether the player carries an item with the
	// given display name.
	HasItemNamed(name string) bool
}

// describeSuffixes dispatches kind-specific description behavior without a
// type hierarchy. A nil entry means the base description stands alone.
var describeSuffixes = map[Kind]func(*Location, Viewer, string) string{
	KindDungeon: func(l *Location, _ Viewer, base string) string {
		return base + l.HazardDescription + "\n"
	},
	KindSwamp: func(l *Location, v Viewer, base string) string {
		if v.HasItemNamed(LanternItemName) {
			return base
		}
		return l.HiddenDescription
	},
}

// Describe renders the location for the given player state: name,
// description, matching conditional-exit hints, and the entities present,
// followed by any kind-specific suffix.
func (l *Location) Describe(v Viewer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n%s\n", l.Name, l.Description)
	for _, ce := range l.ConditionalExits {
		if condition.CheckAll(ce.Conditions, v) {
			b.WriteString(ce.Description)
			b.WriteByte('\n')
		}
	}
	if len(l.NPCs) > 0 {
		names := make([]string, len(l.NPCs))
		for i, n := range l.NPCs {
			names[i] = n.Name
		}
		fmt.Fprintf(&b, "You see: %s\n", strings.Join(names, ", "))
	}
	if len(l.Monsters) > 0 {
		names := make([]string, len(l.Monsters))
		for i, m := range l.Monsters {
			names[i] = m.Name
		}
		fmt.Fprintf(&b, "DANGER: %s is here!\n", strings.Join(names, ", "))
	}
	if len(l.Items) > 0 {
		names := make([]string, len(l.Items))
		for i, it := range l.Items {
			names[i] = it.Name()
		}
		fmt.Fprintf(&b, "On the ground: %s\n", strings.Join(names, ", "))
	}

	base := b.String()
	if suffix, ok := describeSuffixes[l.Kind]; ok {
		return suffix(l, v, base)
	}
	return base
}

// AvailableExits returns every direction the player may travel right now:
// the unconditional exits plus conditional exits whose predicates hold.
// Directions are returned with their destination IDs.
func (l *Location) AvailableExits(st condition.State) map[string]string {
	out := make(map[string]string, len(l.Exits)+len(l.ConditionalExits))
	for dir, dest := range l.Exits {
		out[dir] = dest
	}
	for _, ce := range l.ConditionalExits {
		if condition.CheckAll(ce.Conditions, st) {
			out[ce.Direction] = ce.Destination
		}
	}
	return out
}

// Destination resolves a travel direction against exits and conditional
// exits, honoring conditional-exit predicates.
//
// Postcondition: Returns ("", false) when the direction does not exist or
// its conditions fail.
func (l *Location) Destination(direction string, st condition.State) (string, bool) {
	if dest, ok := l.Exits[direction]; ok {
		return dest, true
	}
	for _, ce := range l.ConditionalExits {
		if ce.Direction == direction && condition.CheckAll(ce.Conditions, st) {
			return ce.Destination, true
		}
	}
	return "", false
}

// LivingMonsters reports whether any monster at the location is alive.
func (l *Location) LivingMonsters() bool {
	for _, m := range l.Monsters {
		if m.Alive() {
			return true
		}
	}
	return false
}

// MonsterByID returns the monster instance with the given instance ID.
func (l *Location) MonsterByID(id string) (*monster.Instance, bool) {
	for _, m := range l.Monsters {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// NPCByID returns the NPC with the given definition ID.
func (l *Location) NPCByID(id string) (*npc.Def, bool) {
	for _, n := range l.NPCs {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// TakeItem removes and returns the ground item with the given definition ID.
//
// Postcondition: On success the item is no longer in l.Items.
func (l *Location) TakeItem(id string) (*item.Item, bool) {
	for i, it := range l.Items {
		if it.ID() == id {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return it, true
		}
	}
	return nil, false
}

// HasItemNamed reports whether an item with the given display name lies on
// the ground here.
func (l *Location) HasItemNamed(name string) bool {
	for _, it := range l.Items {
		if it.Name() == name {
			return true
		}
	}
	return false
}

// PruneDead removes dead monsters, preserving order.
//
// Postcondition: Every remaining monster is alive.
func (l *Location) PruneDead() {
	alive := l.Monsters[:0]
	for _, m := range l.Monsters {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	l.Monsters = alive
}
