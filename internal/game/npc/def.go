// Package npc provides non-player character definitions: conditional
// dialogue, healers, and quest or item grants.
package npc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakhaven/wayfarer/internal/game/condition"
)

// DialogueEntry is one candidate line of dialogue. Entries are evaluated in
// order and the first whose conditions all hold is spoken.
type DialogueEntry struct {
	Text       string                `yaml:"text"`
	Conditions []condition.Predicate `yaml:"conditions,omitempty"`
	// GivesQuestID names a quest granted the first time this entry is
	// spoken. Item grants below only fire alongside the quest grant, so
	// both happen at most once per player.
	GivesQuestID string   `yaml:"gives_quest_id,omitempty"`
	GivesItems   []string `yaml:"gives_items,omitempty"`
}

// HealingDialogue marks an NPC as a healer. When present it takes precedence
// over the regular dialogue entries.
type HealingDialogue struct {
	// PreHeal is spoken before restoring the player to full health.
	PreHeal string `yaml:"pre_heal"`
	// PostHeal is spoken after the heal.
	PostHeal string `yaml:"post_heal"`
	// Default is spoken when the player is already at full health.
	Default string `yaml:"default"`
}

// Def defines an NPC loaded from YAML.
type Def struct {
	ID              string           `yaml:"id"`
	Name            string           `yaml:"name"`
	Description     string           `yaml:"description,omitempty"`
	Dialogue        []DialogueEntry  `yaml:"dialogue,omitempty"`
	HealingDialogue *HealingDialogue `yaml:"healing_dialogue,omitempty"`
	// TeachesSkills is carried content data; the engine does not consult
	// it when resolving talk interactions.
	TeachesSkills []string `yaml:"teaches_skills,omitempty"`
}

// Validate checks that the Def satisfies basic invariants.
func (d *Def) Validate() error {
	if d.ID == "" {
		return errors.New("npc: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("npc %q: name must not be empty", d.ID)
	}
	for i, entry := range d.Dialogue {
		if entry.Text == "" {
			return fmt.Errorf("npc %q: dialogue entry %d: text must not be empty", d.ID, i)
		}
		for _, pred := range entry.Conditions {
			if err := pred.Validate(); err != nil {
				return fmt.Errorf("npc %q: dialogue entry %d: %w", d.ID, i, err)
			}
		}
	}
	if h := d.HealingDialogue; h != nil {
		if h.PreHeal == "" || h.PostHeal == "" || h.Default == "" {
			return fmt.Errorf("npc %q: healing_dialogue requires pre_heal, post_heal, and default", d.ID)
		}
	}
	return nil
}

// SelectDialogue returns the first dialogue entry whose conditions all hold
// against the given player state, or nil when none matches.
func (d *Def) SelectDialogue(st condition.State) *DialogueEntry {
	for i := range d.Dialogue {
		if condition.CheckAll(d.Dialogue[i].Conditions, st) {
			return &d.Dialogue[i]
		}
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files in dir and parses each as a Def.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all parsed NPCs or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}
	var defs []*Def
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var d Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid npc in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// Registry holds all known NPC definitions keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds d to the registry.
//
// Postcondition: Def(d.ID) returns (d, true); returns error on duplicate ID.
func (r *Registry) Register(d *Def) error {
	if _, exists := r.defs[d.ID]; exists {
		return fmt.Errorf("npc: Registry.Register: npc ID %q already registered", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Def returns the definition for id, or (nil, false) if not found.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered definitions.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}
