// Package class provides player class definitions for the one-time level-10
// specialization choice.
package class

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatMods holds the permanent live-stat deltas a class contributes during
// every stat recalculation after it is chosen.
type StatMods struct {
	MaxHP          int     `yaml:"max_hp"`
	AttackPower    int     `yaml:"attack_power"`
	CriticalChance float64 `yaml:"critical_chance"`
}

// Def defines a playable class loaded from YAML.
type Def struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	ShortDescription string `yaml:"short_description"`
	// BaseMods is applied to the player's live stats on every recalculation
	// once the class is chosen.
	BaseMods StatMods `yaml:"base_mods"`
	// StartingSkills are unlocked free of skill-point cost on selection.
	StartingSkills []string `yaml:"starting_skills"`
	// SkillPool lists the skill IDs exclusive to this class. Skills in no
	// class's pool are general and available to everyone.
	SkillPool []string `yaml:"skill_pool"`
}

// Validate checks that the Def satisfies basic invariants.
func (d *Def) Validate() error {
	if d.ID == "" {
		return errors.New("class: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("class %q: name must not be empty", d.ID)
	}
	return nil
}

// InPool reports whether skillID belongs to this class's exclusive pool.
func (d *Def) InPool(skillID string) bool {
	for _, id := range d.SkillPool {
		if id == skillID {
			return true
		}
	}
	return false
}

// LoadDefs reads all *.yaml and *.yml files in dir and parses each as a Def.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed classes or a non-nil error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading class dir %q: %w", dir, err)
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
			return nil, fmt.Errorf("invalid class in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// Registry holds all known class definitions keyed by ID.
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
		return fmt.Errorf("class: Registry.Register: class ID %q already registered", d.ID)
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

// AnyPoolContains reports whether skillID belongs to any class's exclusive
// pool. Skills outside every pool form the general pool.
func (r *Registry) AnyPoolContains(skillID string) bool {
	for _, d := range r.defs {
		if d.InPool(skillID) {
			return true
		}
	}
	return false
}
