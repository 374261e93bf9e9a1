package item

import "fmt"

// Item is a live instance of a Def. Items are created by Registry.Instantiate
// and owned by exactly one collection at a time (a location's ground, a
// monster's drop list, a container, or the player's inventory).
type Item struct {
	// Def is the immutable definition this instance was created from.
	Def *Def
	// Contained holds a container's remaining contents. Drained on first open.
	Contained []*Item
}

// ID returns the definition id. Item instances share their definition's id;
// uniqueness checks compare definition ids, not instance identity.
func (it *Item) ID() string { return it.Def.ID }

// Name returns the display name.
func (it *Item) Name() string { return it.Def.Name }

// Kind returns the item's variant tag.
func (it *Item) Kind() Kind { return it.Def.Kind }

// UsableInCombat reports whether the item may be used as a combat action.
func (it *Item) UsableInCombat() bool {
	switch it.Def.Kind {
	case KindPotion, KindEffectPotion, KindOffensive:
		return true
	default:
		return false
	}
}

// UsableInField reports whether the item may be used outside combat.
// Offensive items are combat-only.
func (it *Item) UsableInField() bool {
	switch it.Def.Kind {
	case KindPotion, KindEffectPotion, KindContainer:
		return true
	default:
		return false
	}
}

// Target is the subset of a combat participant that item effects mutate.
// Both the player and monster instances satisfy it.
type Target interface {
	// DisplayName is the name used in effect messages.
	DisplayName() string
	// Health returns (current hp, max hp).
	Health() (int, int)
	// SetHP overwrites current hp. Callers may set values above max or below
	// zero; clamping is the effect's responsibility where required.
	SetHP(hp int)
}

// EffectSink accepts timed status effects. Only the player satisfies it.
type EffectSink interface {
	ApplyStatusEffect(effect string, turns int)
}

// ItemSink receives items from opened containers. Only the player satisfies it.
type ItemSink interface {
	GiveItem(it *Item)
}

// Heal applies a potion to t, clamping at max hp.
//
// Precondition: it.Kind() == KindPotion.
// Postcondition: t's hp equals min(old hp + HealAmount, max hp). If no healing
// occurred the message reports full health instead of a heal amount.
func (it *Item) Heal(t Target) string {
	hp, maxHP := t.Health()
	healed := it.Def.HealAmount
	if hp+healed > maxHP {
		healed = maxHP - hp
	}
	if healed <= 0 {
		return fmt.Sprintf("%s uses the %s, but their health is already full.", t.DisplayName(), it.Def.Name)
	}
	t.SetHP(hp + healed)
	newHP, _ := t.Health()
	return fmt.Sprintf("%s uses the %s and heals for %d HP. (HP: %d/%d)", t.DisplayName(), it.Def.Name, healed, newHP, maxHP)
}

// ApplyEffect applies an effect potion's status effect to t.
//
// Precondition: it.Kind() == KindEffectPotion.
func (it *Item) ApplyEffect(t interface {
	Target
	EffectSink
}) string {
	t.ApplyStatusEffect(it.Def.Effect, it.Def.EffectTurns)
	return fmt.Sprintf("%s uses the %s. You feel a strange energy course through you.", t.DisplayName(), it.Def.Name)
}

// Strike applies an offensive item's fixed damage to t. The hp floor is NOT
// enforced here; death is detected by the caller's is-alive check.
//
// Precondition: it.Kind() == KindOffensive.
func (it *Item) Strike(t Target) string {
	hp, _ := t.Health()
	t.SetHP(hp - it.Def.DamageAmount)
	return fmt.Sprintf("You use the %s on %s, dealing %d damage!", it.Def.Name, t.DisplayName(), it.Def.DamageAmount)
}

// Open transfers a container's contents to sink and empties the container
// permanently.
//
// Precondition: it.Kind() == KindContainer.
// Postcondition: it.Contained is empty.
func (it *Item) Open(sink ItemSink) string {
	if len(it.Contained) == 0 {
		return fmt.Sprintf("You open the %s, but it's empty.", it.Def.Name)
	}
	msg := fmt.Sprintf("You open the %s and find:\n", it.Def.Name)
	for _, inner := range it.Contained {
		sink.GiveItem(inner)
		msg += fmt.Sprintf("- %s\n", inner.Name())
	}
	it.Contained = nil
	return msg
}
