// Package item provides item definitions as tagged variants, the item
// registry, and per-kind use effects.
package item

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates item behavior. The zero value is invalid; plain carryable
// items use KindBasic.
type Kind string

// Item kinds.
const (
	KindBasic        Kind = "basic"
	KindPotion       Kind = "potion"
	KindEffectPotion Kind = "effect_potion"
	KindOffensive    Kind = "offensive"
	KindContainer    Kind = "container"
)

// validKinds is the set of recognized item kinds.
var validKinds = map[Kind]bool{
	KindBasic:        true,
	KindPotion:       true,
	KindEffectPotion: true,
	KindOffensive:    true,
	KindContainer:    true,
}

// Def defines the static properties of an item loaded from YAML.
// Kind-specific fields are only meaningful for their kind and must be zero
// otherwise (enforced by Validate).
type Def struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"kind"`
	Value       int    `yaml:"value"`
	// IsUnique suppresses duplicate drops when a copy is already owned by the
	// player or lying on the ground at the drop location.
	IsUnique bool `yaml:"is_unique"`
	// TeachesSkills is carried content data; the engine does not consult
	// it when an item is received.
	TeachesSkills []string `yaml:"teaches_skills"`

	// Potion.
	HealAmount int `yaml:"heal_amount"`
	// Effect potion.
	Effect      string `yaml:"effect"`
	EffectTurns int    `yaml:"effect_turns"`
	// Offensive.
	DamageAmount int `yaml:"damage_amount"`
	// Container.
	ContainedItemIDs []string `yaml:"contained_item_ids"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid for d.Kind.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind must be one of basic, potion, effect_potion, offensive, container; got %q", d.Kind))
	}
	if d.Kind == KindPotion && d.HealAmount < 1 {
		errs = append(errs, errors.New("heal_amount must be >= 1 for potions"))
	}
	if d.Kind == KindEffectPotion {
		if d.Effect == "" {
			errs = append(errs, errors.New("effect is required for effect potions"))
		}
		if d.EffectTurns < 1 {
			errs = append(errs, errors.New("effect_turns must be >= 1 for effect potions"))
		}
	}
	if d.Kind == KindOffensive && d.DamageAmount < 1 {
		errs = append(errs, errors.New("damage_amount must be >= 1 for offensive items"))
	}
	if d.Kind != KindContainer && len(d.ContainedItemIDs) > 0 {
		errs = append(errs, errors.New("contained_item_ids is only valid for containers"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files from dir, parses each as a Def,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
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
			return nil, fmt.Errorf("invalid item in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}
