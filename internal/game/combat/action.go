// Package combat implements turn-based combat resolution: player actions,
// the monster defeat chain, counterattacks, and end-of-turn decay.
package combat

// ActionType identifies what the player intends to do on their combat turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionAbility
	ActionUseItem
	ActionRetreat
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionUseItem:
		return "use"
	case ActionRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Action is one fully-specified combat action.
type Action struct {
	Type ActionType
	// TargetID is the monster instance ID for attack, ability, and
	// offensive item use.
	TargetID string
	// AbilityID is the skill ID behind the ability for ActionAbility.
	AbilityID string
	// ItemID is the item definition ID for ActionUseItem.
	ItemID string
}
