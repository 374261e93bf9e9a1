// Package skill provides skill definitions, unlock requirements, and the
// runtime cooldown trackers for active combat abilities.
package skill

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type discriminates passive skills (permanent stat modifiers) from active
// skills (combat abilities with a cooldown).
type Type string

// Skill types.
const (
	TypePassive Type = "passive"
	TypeActive  Type = "active"
)

// Requirement kinds.
const (
	ReqLevel = "level"
	ReqSkill = "skill"
)

// Requirement gates a skill unlock on player state. Exactly one of Value or
// SkillID is meaningful, depending on Type.
type Requirement struct {
	// Type is "level" or "skill".
	Type string `yaml:"type"`
	// Value is the minimum player level for level requirements.
	Value int `yaml:"value"`
	// SkillID is the prerequisite skill for skill requirements.
	SkillID string `yaml:"skill_id"`
}

// StatMod holds the live-stat deltas a passive skill contributes during
// recalculation.
type StatMod struct {
	MaxHP          int     `yaml:"max_hp"`
	AttackPower    int     `yaml:"attack_power"`
	CriticalChance float64 `yaml:"critical_chance"`
}

// CombatAbility holds an active skill's combat parameters.
type CombatAbility struct {
	// DamageBonus is added to the player's attack power when the ability fires.
	DamageBonus int `yaml:"damage_bonus"`
	// Cooldown is the number of combat turns before the ability can fire again.
	Cooldown int `yaml:"cooldown"`
}

// Def defines a skill loaded from YAML.
type Def struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Type         Type          `yaml:"type"`
	Cost         int           `yaml:"cost"`
	Requirements []Requirement `yaml:"requirements"`
	// StatMod is required for passive skills.
	StatMod *StatMod `yaml:"stat_mod"`
	// Ability is required for active skills.
	Ability *CombatAbility `yaml:"ability"`
}

// Validate checks that the Def satisfies its invariants.
//
// Postcondition: Returns nil iff the definition is internally consistent.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch d.Type {
	case TypePassive:
		if d.StatMod == nil {
			errs = append(errs, errors.New("stat_mod is required for passive skills"))
		}
		if d.Ability != nil {
			errs = append(errs, errors.New("ability is only valid for active skills"))
		}
	case TypeActive:
		if d.Ability == nil {
			errs = append(errs, errors.New("ability is required for active skills"))
		} else if d.Ability.Cooldown < 1 {
			errs = append(errs, errors.New("ability cooldown must be >= 1"))
		}
		if d.StatMod != nil {
			errs = append(errs, errors.New("stat_mod is only valid for passive skills"))
		}
	default:
		errs = append(errs, fmt.Errorf("type must be passive or active, got %q", d.Type))
	}
	if d.Cost < 0 {
		errs = append(errs, errors.New("cost must be >= 0"))
	}
	for i, req := range d.Requirements {
		switch req.Type {
		case ReqLevel:
			if req.Value < 1 {
				errs = append(errs, fmt.Errorf("requirement[%d]: level value must be >= 1", i))
			}
		case ReqSkill:
			if req.SkillID == "" {
				errs = append(errs, fmt.Errorf("requirement[%d]: skill_id must not be empty", i))
			}
		default:
			errs = append(errs, fmt.Errorf("requirement[%d]: type must be level or skill, got %q", i, req.Type))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("skill %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files in dir and returns the parsed,
// validated skill definitions.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all definitions or the first parse/validate error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skill dir %q: %w", dir, err)
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
			return nil, fmt.Errorf("invalid skill in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// Registry holds all known skill definitions keyed by ID.
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
		return fmt.Errorf("skill: Registry.Register: skill ID %q already registered", d.ID)
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
