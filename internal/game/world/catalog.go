package world

import (
	"fmt"

	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/npc"
	"github.com/oakhaven/wayfarer/internal/game/skill"
)

// QuestDef is a quest template. A copy enters the player's quest log with
// state "active" when granted.
type QuestDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// CompletedBy names the monster template whose defeat completes the
	// quest.
	CompletedBy string `yaml:"completed_by,omitempty"`
}

// StartState is the new-game player definition loaded from content.
type StartState struct {
	Name            string   `yaml:"name"`
	HP              int      `yaml:"hp"`
	MaxHP           int      `yaml:"max_hp"`
	AttackPower     int      `yaml:"attack_power"`
	CriticalChance  float64  `yaml:"critical_chance"`
	StartLocationID string   `yaml:"start_location_id"`
	InventoryIDs    []string `yaml:"inventory_ids"`
}

// Catalog is the read-only world assembled once at load time. Lookups go
// through the catalog; live entity state lives on the Locations themselves.
type Catalog struct {
	Locations map[string]*Location
	Items     *item.Registry
	Monsters  *monster.Registry
	NPCs      *npc.Registry
	Skills    *skill.Registry
	Classes   *class.Registry
	Quests    map[string]*QuestDef
	Start     StartState

	// Spawner issues fresh instance IDs for mid-game spawns, continuing
	// the sequence begun during load.
	Spawner *monster.Spawner
}

// Location returns the location for id, or (nil, false) if not found.
func (c *Catalog) Location(id string) (*Location, bool) {
	l, ok := c.Locations[id]
	return l, ok
}

// Quest returns the quest template for id, or (nil, false) if not found.
func (c *Catalog) Quest(id string) (*QuestDef, bool) {
	q, ok := c.Quests[id]
	return q, ok
}

// QuestCompletedBy returns the quest template completed by defeating the
// given monster template, or (nil, false) when none is.
func (c *Catalog) QuestCompletedBy(templateID string) (*QuestDef, bool) {
	for _, q := range c.Quests {
		if q.CompletedBy == templateID {
			return q, true
		}
	}
	return nil, false
}

// Validate checks cross-references between catalog sections.
//
// Postcondition: Returns nil iff every exit, conditional exit, spawn table
// entry, quest, container content, and start-state reference resolves and
// container contents are acyclic; returns an error naming the first dangling
// reference otherwise.
func (c *Catalog) Validate() error {
	if err := c.Items.ValidateContents(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	for id, loc := range c.Locations {
		if loc.ID != id {
			return fmt.Errorf("world: location key %q does not match location ID %q", id, loc.ID)
		}
		for dir, dest := range loc.Exits {
			if _, ok := c.Locations[dest]; !ok {
				return fmt.Errorf("world: location %q: exit %q targets unknown location %q", id, dir, dest)
			}
		}
		for _, ce := range loc.ConditionalExits {
			if _, ok := c.Locations[ce.Destination]; !ok {
				return fmt.Errorf("world: location %q: conditional exit %q targets unknown location %q", id, ce.Direction, ce.Destination)
			}
			for _, pred := range ce.Conditions {
				if err := pred.Validate(); err != nil {
					return fmt.Errorf("world: location %q: conditional exit %q: %w", id, ce.Direction, err)
				}
			}
		}
		for tplID, spawn := range loc.SpawnsOnDefeat {
			if _, ok := c.Monsters.Template(tplID); !ok {
				return fmt.Errorf("world: location %q: spawns_on_defeat keyed by unknown template %q", id, tplID)
			}
			if _, ok := c.Monsters.Template(spawn.SpawnTemplateID); !ok {
				return fmt.Errorf("world: location %q: spawns_on_defeat spawns unknown template %q", id, spawn.SpawnTemplateID)
			}
		}
	}
	for id, q := range c.Quests {
		if q.ID != id {
			return fmt.Errorf("world: quest key %q does not match quest ID %q", id, q.ID)
		}
		if q.Name == "" {
			return fmt.Errorf("world: quest %q: name must not be empty", id)
		}
		if q.CompletedBy != "" {
			if _, ok := c.Monsters.Template(q.CompletedBy); !ok {
				return fmt.Errorf("world: quest %q: completed_by names unknown template %q", id, q.CompletedBy)
			}
		}
	}
	for _, d := range c.Skills.All() {
		for _, req := range d.Requirements {
			if req.Type == skill.ReqSkill {
				if _, ok := c.Skills.Def(req.SkillID); !ok {
					return fmt.Errorf("world: skill %q: requirement names unknown skill %q", d.ID, req.SkillID)
				}
			}
		}
	}
	for _, cl := range c.Classes.All() {
		for _, sid := range cl.StartingSkills {
			if _, ok := c.Skills.Def(sid); !ok {
				return fmt.Errorf("world: class %q: starting skill %q not found", cl.ID, sid)
			}
		}
		for _, sid := range cl.SkillPool {
			if _, ok := c.Skills.Def(sid); !ok {
				return fmt.Errorf("world: class %q: skill pool entry %q not found", cl.ID, sid)
			}
		}
	}
	if c.Start.StartLocationID == "" {
		return fmt.Errorf("world: player start_location_id must not be empty")
	}
	if _, ok := c.Locations[c.Start.StartLocationID]; !ok {
		return fmt.Errorf("world: player start location %q not found", c.Start.StartLocationID)
	}
	for _, id := range c.Start.InventoryIDs {
		if _, ok := c.Items.Def(id); !ok {
			return fmt.Errorf("world: player starting item %q not found", id)
		}
	}
	return nil
}
