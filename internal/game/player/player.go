// Package player defines the player character's state: base and live stats,
// inventory, quests, progression counters, and status effects.
package player

import (
	"github.com/oakhaven/wayfarer/internal/game/condition"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/skill"
)

// Quest is one entry in the player's quest log, copied from a quest template
// when granted.
type Quest struct {
	Name  string
	State string
}

// Player is the single player character. Base stats change only through
// leveling and explicit upgrades; live stats are recomputed from them by the
// stat recalculation pass.
type Player struct {
	Name string

	// Live stats. HP may go negative during damage application before an
	// Alive check; heals clamp at MaxHP.
	HP             int
	MaxHP          int
	AttackPower    int
	CriticalChance float64

	// Base stats feeding recalculation.
	BaseMaxHP          int
	BaseAttackPower    int
	BaseCriticalChance float64

	Inventory []*item.Item
	Quests    map[string]*Quest

	// CurrentLocationID and PreviousLocationID form a single-step travel
	// history; retreat swaps back one step.
	CurrentLocationID  string
	PreviousLocationID string
	// Discovered holds every location ID the player has ever visited.
	// It only grows.
	Discovered map[string]bool

	Level         int
	XP            int
	XPToNextLevel int
	SkillPoints   int

	// UnlockedSkills is append-only.
	UnlockedSkills []string
	// ActiveAbilities holds one tracker per unlocked active skill; the
	// trackers persist across combats.
	ActiveAbilities []*skill.ActiveAbility
	// ClassID is set exactly once, at the mandatory level-10 choice.
	ClassID string

	Status *condition.StatusSet
}

// New creates a level-1 player at the given location with the given base
// stats. Live stats start equal to base stats, and the retreat history
// points at the starting location so a retreat before any move stays put.
func New(name string, hp, maxHP, attackPower int, critChance float64, locationID string) *Player {
	p := &Player{
		Name:               name,
		HP:                 hp,
		MaxHP:              maxHP,
		AttackPower:        attackPower,
		CriticalChance:     critChance,
		BaseMaxHP:          maxHP,
		BaseAttackPower:    attackPower,
		BaseCriticalChance: critChance,
		Quests:             make(map[string]*Quest),
		CurrentLocationID:  locationID,
		PreviousLocationID: locationID,
		Discovered:         map[string]bool{locationID: true},
		Level:              1,
		XPToNextLevel:      100,
		Status:             condition.NewStatusSet(),
	}
	return p
}

// Alive reports whether the player has hit points remaining.
func (p *Player) Alive() bool {
	return p.HP > 0
}

// TakeDamage subtracts amount from HP. HP is allowed to go negative; the
// caller decides when to check Alive.
func (p *Player) TakeDamage(amount int) {
	p.HP -= amount
}

// DisplayName returns the player's name.
func (p *Player) DisplayName() string {
	return p.Name
}

// Health returns (current, max) hit points.
func (p *Player) Health() (int, int) {
	return p.HP, p.MaxHP
}

// SetHP overwrites HP. Item effects clamp where they need to.
func (p *Player) SetHP(hp int) {
	p.HP = hp
}

// ApplyStatusEffect adds or refreshes a named status effect.
func (p *Player) ApplyStatusEffect(effect string, turns int) {
	p.Status.Apply(effect, turns)
}

// GiveItem transfers ownership of it to the player's inventory.
func (p *Player) GiveItem(it *item.Item) {
	p.Inventory = append(p.Inventory, it)
}

// ItemByID returns the first inventory item with the given definition ID.
func (p *Player) ItemByID(id string) (*item.Item, bool) {
	for _, it := range p.Inventory {
		if it.ID() == id {
			return it, true
		}
	}
	return nil, false
}

// RemoveItem removes and returns the first inventory item with the given
// definition ID.
//
// Postcondition: On success the returned item is no longer in Inventory.
func (p *Player) RemoveItem(id string) (*item.Item, bool) {
	for i, it := range p.Inventory {
		if it.ID() == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return it, true
		}
	}
	return nil, false
}

// HasItem reports whether the player carries an item with the given
// definition ID.
func (p *Player) HasItem(itemID string) bool {
	_, ok := p.ItemByID(itemID)
	return ok
}

// HasItemNamed reports whether the player carries an item with the given
// display name.
func (p *Player) HasItemNamed(name string) bool {
	for _, it := range p.Inventory {
		if it.Name() == name {
			return true
		}
	}
	return false
}

// QuestState returns the state of the named quest, or ("", false) if the
// player has never received it.
func (p *Player) QuestState(questID string) (string, bool) {
	q, ok := p.Quests[questID]
	if !ok {
		return "", false
	}
	return q.State, true
}

// GrantQuest adds the quest to the log in the active state.
//
// Postcondition: Returns false and leaves the log unchanged if the quest was
// already granted.
func (p *Player) GrantQuest(questID, name string) bool {
	if _, exists := p.Quests[questID]; exists {
		return false
	}
	p.Quests[questID] = &Quest{Name: name, State: condition.QuestActive}
	return true
}

// CompleteQuest marks the quest completed.
//
// Postcondition: Returns true only on the transition to completed; repeat
// calls and unknown quests return false.
func (p *Player) CompleteQuest(questID string) bool {
	q, ok := p.Quests[questID]
	if !ok || q.State == condition.QuestCompleted {
		return false
	}
	q.State = condition.QuestCompleted
	return true
}

// MoveTo travels to locationID, recording the single-step history and
// marking the destination discovered.
func (p *Player) MoveTo(locationID string) {
	p.PreviousLocationID = p.CurrentLocationID
	p.CurrentLocationID = locationID
	p.Discovered[locationID] = true
}

// Retreat returns the player to the previous location. The single-slot
// history means the pre-retreat location becomes the new previous location.
func (p *Player) Retreat() {
	p.CurrentLocationID, p.PreviousLocationID = p.PreviousLocationID, p.CurrentLocationID
}

// HasSkill reports whether skillID has been unlocked.
func (p *Player) HasSkill(skillID string) bool {
	for _, id := range p.UnlockedSkills {
		if id == skillID {
			return true
		}
	}
	return false
}

// AbilityByID returns the active-ability tracker for the given skill ID.
func (p *Player) AbilityByID(skillID string) (*skill.ActiveAbility, bool) {
	for _, a := range p.ActiveAbilities {
		if a.SkillID == skillID {
			return a, true
		}
	}
	return nil, false
}

// TickCooldowns decrements every ability cooldown by one turn, flooring at
// zero.
func (p *Player) TickCooldowns() {
	for _, a := range p.ActiveAbilities {
		a.TickCooldown()
	}
}
