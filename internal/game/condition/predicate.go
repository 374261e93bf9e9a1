package condition

import "fmt"

// Predicate types recognised in dialogue entries and conditional exits.
const (
	TypeHasItem        = "has_item"
	TypeQuestCompleted = "quest_completed"
	TypeQuestActive    = "quest_active"
)

// Quest states used by the quest_* predicates.
const (
	QuestActive    = "active"
	QuestCompleted = "completed"
)

// Predicate is one player-state check loaded from content YAML.
type Predicate struct {
	Type    string `yaml:"type"`
	ItemID  string `yaml:"item_id,omitempty"`
	QuestID string `yaml:"quest_id,omitempty"`
}

// Validate checks that the predicate names a known type with the field that
// type requires.
func (p Predicate) Validate() error {
	switch p.Type {
	case TypeHasItem:
		if p.ItemID == "" {
			return fmt.Errorf("condition %q: item_id must not be empty", p.Type)
		}
	case TypeQuestCompleted, TypeQuestActive:
		if p.QuestID == "" {
			return fmt.Errorf("condition %q: quest_id must not be empty", p.Type)
		}
	default:
		return fmt.Errorf("condition: unknown type %q", p.Type)
	}
	return nil
}

// State is the view of player state the predicates consult.
type State interface {
	// HasItem reports whether the player carries an item with the given
	// definition ID.
	HasItem(itemID string) bool
	// QuestState returns the state of the named quest, or ("", false) if
	// the player has never received it.
	QuestState(questID string) (string, bool)
}

// Check evaluates the predicate against the given player state. Unknown
// predicate types fail closed.
func (p Predicate) Check(st State) bool {
	switch p.Type {
	case TypeHasItem:
		return st.HasItem(p.ItemID)
	case TypeQuestCompleted:
		state, ok := st.QuestState(p.QuestID)
		return ok && state == QuestCompleted
	case TypeQuestActive:
		state, ok := st.QuestState(p.QuestID)
		return ok && state == QuestActive
	default:
		return false
	}
}

// CheckAll reports whether every predicate holds. An empty list holds
// vacuously.
func CheckAll(preds []Predicate, st State) bool {
	for _, p := range preds {
		if !p.Check(st) {
			return false
		}
	}
	return true
}
