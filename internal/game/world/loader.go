package world

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/condition"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/npc"
	"github.com/oakhaven/wayfarer/internal/game/skill"
)

// Content directory layout under the content root.
const (
	itemsDir     = "items"
	skillsDir    = "skills"
	classesDir   = "classes"
	monstersDir  = "monsters"
	npcsDir      = "npcs"
	locationsDir = "locations"
	questsFile   = "quests.yaml"
	playerFile   = "player.yaml"
)

// yamlLocation is the YAML representation of a location file.
type yamlLocation struct {
	ID               string                       `yaml:"id"`
	Name             string                       `yaml:"name"`
	Description      string                       `yaml:"description"`
	Kind             string                       `yaml:"kind"`
	Exits            map[string]string            `yaml:"exits,omitempty"`
	ConditionalExits []yamlConditionalExit        `yaml:"conditional_exits,omitempty"`
	NPCIDs           []string                     `yaml:"npc_ids,omitempty"`
	MonsterIDs       []string                     `yaml:"monster_ids,omitempty"`
	ItemIDs          []string                     `yaml:"item_ids,omitempty"`
	SpawnsOnDefeat   map[string]yamlSpawnOnDefeat `yaml:"spawns_on_defeat,omitempty"`
	HazardDesc       string                       `yaml:"hazard_description,omitempty"`
	HiddenDesc       string                       `yaml:"hidden_description,omitempty"`
	SpawnChance      float64                      `yaml:"spawn_chance,omitempty"`
	Script           yamlScript                   `yaml:"script,omitempty"`
}

type yamlConditionalExit struct {
	Direction   string                `yaml:"direction"`
	Destination string                `yaml:"destination_id"`
	Description string                `yaml:"description"`
	Conditions  []condition.Predicate `yaml:"conditions,omitempty"`
}

type yamlSpawnOnDefeat struct {
	SpawnTemplateID string `yaml:"monster_id_to_spawn"`
	Message         string `yaml:"message"`
}

type yamlScript struct {
	OnEnter  string `yaml:"on_enter,omitempty"`
	OnDefeat string `yaml:"on_defeat,omitempty"`
}

var validKinds = map[Kind]bool{
	KindCity:       true,
	KindWilderness: true,
	KindDungeon:    true,
	KindSwamp:      true,
	KindVolcanic:   true,
}

// Load reads the whole content root and assembles a validated Catalog.
//
// Precondition: root must contain the items/, skills/, classes/, monsters/,
// npcs/, and locations/ directories plus quests.yaml and player.yaml.
// Postcondition: Returns a Catalog whose cross-references all resolve, with
// monster instances pre-assigned "{template_id}:{index}" IDs, or a non-nil
// error.
func Load(root string) (*Catalog, error) {
	cat := &Catalog{
		Locations: make(map[string]*Location),
		Items:     item.NewRegistry(),
		Monsters:  monster.NewRegistry(),
		NPCs:      npc.NewRegistry(),
		Skills:    skill.NewRegistry(),
		Classes:   class.NewRegistry(),
		Quests:    make(map[string]*QuestDef),
	}

	itemDefs, err := item.LoadDefs(filepath.Join(root, itemsDir))
	if err != nil {
		return nil, err
	}
	for _, d := range itemDefs {
		if err := cat.Items.Register(d); err != nil {
			return nil, err
		}
	}
	// Contents must be acyclic before any location instantiates an item.
	if err := cat.Items.ValidateContents(); err != nil {
		return nil, err
	}

	skillDefs, err := skill.LoadDefs(filepath.Join(root, skillsDir))
	if err != nil {
		return nil, err
	}
	for _, d := range skillDefs {
		if err := cat.Skills.Register(d); err != nil {
			return nil, err
		}
	}

	classDefs, err := class.LoadDefs(filepath.Join(root, classesDir))
	if err != nil {
		return nil, err
	}
	for _, d := range classDefs {
		if err := cat.Classes.Register(d); err != nil {
			return nil, err
		}
	}

	templates, err := monster.LoadTemplates(filepath.Join(root, monstersDir))
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		if err := cat.Monsters.Register(t); err != nil {
			return nil, err
		}
	}

	npcDefs, err := npc.LoadDefs(filepath.Join(root, npcsDir))
	if err != nil {
		return nil, err
	}
	for _, d := range npcDefs {
		if err := cat.NPCs.Register(d); err != nil {
			return nil, err
		}
	}

	if err := loadQuests(filepath.Join(root, questsFile), cat); err != nil {
		return nil, err
	}
	if err := loadStartState(filepath.Join(root, playerFile), cat); err != nil {
		return nil, err
	}

	cat.Spawner = monster.NewSpawner(cat.Monsters)
	if err := loadLocations(filepath.Join(root, locationsDir), cat); err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func loadQuests(path string, cat *Catalog) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading quests file %q: %w", path, err)
	}
	var quests []*QuestDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&quests); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	for _, q := range quests {
		if q.ID == "" {
			return fmt.Errorf("%s: quest id must not be empty", path)
		}
		if _, exists := cat.Quests[q.ID]; exists {
			return fmt.Errorf("%s: quest ID %q already defined", path, q.ID)
		}
		cat.Quests[q.ID] = q
	}
	return nil
}

func loadStartState(path string, cat *Catalog) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading player file %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat.Start); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	if cat.Start.MaxHP == 0 {
		cat.Start.MaxHP = cat.Start.HP
	}
	return nil
}

func loadLocations(dir string, cat *Catalog) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading location dir %q: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		var yl yamlLocation
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&yl); err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}
		loc, err := buildLocation(yl, cat)
		if err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
		if _, exists := cat.Locations[loc.ID]; exists {
			return fmt.Errorf("loading %q: location ID %q already defined", path, loc.ID)
		}
		cat.Locations[loc.ID] = loc
	}
	if len(cat.Locations) == 0 {
		return fmt.Errorf("no location files found in %s", dir)
	}
	return nil
}

func buildLocation(yl yamlLocation, cat *Catalog) (*Location, error) {
	if yl.ID == "" {
		return nil, fmt.Errorf("location id must not be empty")
	}
	if yl.Name == "" {
		return nil, fmt.Errorf("location %q: name must not be empty", yl.ID)
	}
	kind := Kind(yl.Kind)
	if !validKinds[kind] {
		return nil, fmt.Errorf("location %q: unknown kind %q", yl.ID, yl.Kind)
	}

	loc := &Location{
		ID:                yl.ID,
		Name:              yl.Name,
		Description:       yl.Description,
		Kind:              kind,
		Exits:             yl.Exits,
		SpawnsOnDefeat:    make(map[string]SpawnOnDefeat, len(yl.SpawnsOnDefeat)),
		HazardDescription: yl.HazardDesc,
		HiddenDescription: yl.HiddenDesc,
		SpawnChance:       yl.SpawnChance,
		Script: Script{
			OnEnter:  yl.Script.OnEnter,
			OnDefeat: yl.Script.OnDefeat,
		},
	}
	if loc.Exits == nil {
		loc.Exits = map[string]string{}
	}

	for _, ce := range yl.ConditionalExits {
		loc.ConditionalExits = append(loc.ConditionalExits, ConditionalExit{
			Direction:   ce.Direction,
			Destination: ce.Destination,
			Description: ce.Description,
			Conditions:  ce.Conditions,
		})
	}
	for tplID, spawn := range yl.SpawnsOnDefeat {
		loc.SpawnsOnDefeat[tplID] = SpawnOnDefeat(spawn)
	}

	for _, id := range yl.NPCIDs {
		def, ok := cat.NPCs.Def(id)
		if !ok {
			return nil, fmt.Errorf("location %q: unknown npc %q", yl.ID, id)
		}
		loc.NPCs = append(loc.NPCs, def)
	}
	for _, tplID := range yl.MonsterIDs {
		inst, err := cat.Spawner.Spawn(tplID)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", yl.ID, err)
		}
		loc.Monsters = append(loc.Monsters, inst)
	}
	for _, id := range yl.ItemIDs {
		it, err := cat.Items.Instantiate(id)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", yl.ID, err)
		}
		loc.Items = append(loc.Items, it)
	}
	return loc, nil
}
