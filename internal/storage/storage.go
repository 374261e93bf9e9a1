// Package storage defines the save-game snapshot and the store interface the
// game loop persists through.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("storage: save not found")

// QuestEntry is one quest-log entry in a snapshot.
type QuestEntry struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// Snapshot is the flat persisted form of a player. Live stats and active
// abilities are not stored; they are rebuilt from base values and unlocked
// skills on load.
type Snapshot struct {
	Name               string                `json:"name"`
	HP                 int                   `json:"hp"`
	BaseMaxHP          int                   `json:"base_max_hp"`
	BaseAttackPower    int                   `json:"base_attack_power"`
	BaseCriticalChance float64               `json:"base_critical_chance"`
	CurrentLocationID  string                `json:"current_location_id"`
	InventoryIDs       []string              `json:"inventory_ids"`
	Quests             map[string]QuestEntry `json:"quests"`
	Discovered         []string              `json:"discovered_locations"`
	Level              int                   `json:"level"`
	XP                 int                   `json:"xp"`
	XPToNextLevel      int                   `json:"xp_to_next_level"`
	SkillPoints        int                   `json:"skill_points"`
	UnlockedSkills     []string              `json:"unlocked_skills"`
	ClassID            string                `json:"class_id,omitempty"`
}

// SlotInfo summarizes one stored save for slot listings.
type SlotInfo struct {
	Slot      string
	Name      string
	Level     int
	UpdatedAt time.Time
}

// SaveStore persists snapshots keyed by slot. Saves are full-snapshot
// replaces, never partial merges.
type SaveStore interface {
	// Save writes snap into slot, replacing any previous snapshot there.
	Save(ctx context.Context, slot string, snap *Snapshot) error
	// Load reads the snapshot in slot, or ErrNotFound.
	Load(ctx context.Context, slot string) (*Snapshot, error)
	// Slots lists stored saves, most recently updated first.
	Slots(ctx context.Context) ([]SlotInfo, error)
	// Close releases the underlying resources.
	Close() error
}
