package session

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/oakhaven/wayfarer/internal/game/dice"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/skill"
	"github.com/oakhaven/wayfarer/internal/game/stats"
	"github.com/oakhaven/wayfarer/internal/game/world"
	"github.com/oakhaven/wayfarer/internal/storage"
)

// Capture flattens the player into a persistable snapshot. Live stats and
// ability cooldowns are not stored; Restore rebuilds them.
func Capture(p *player.Player) *storage.Snapshot {
	snap := &storage.Snapshot{
		Name:               p.Name,
		HP:                 p.HP,
		BaseMaxHP:          p.BaseMaxHP,
		BaseAttackPower:    p.BaseAttackPower,
		BaseCriticalChance: p.BaseCriticalChance,
		CurrentLocationID:  p.CurrentLocationID,
		InventoryIDs:       make([]string, 0, len(p.Inventory)),
		Quests:             make(map[string]storage.QuestEntry, len(p.Quests)),
		Level:              p.Level,
		XP:                 p.XP,
		XPToNextLevel:      p.XPToNextLevel,
		SkillPoints:        p.SkillPoints,
		UnlockedSkills:     append([]string(nil), p.UnlockedSkills...),
		ClassID:            p.ClassID,
	}
	for _, it := range p.Inventory {
		snap.InventoryIDs = append(snap.InventoryIDs, it.ID())
	}
	for id, q := range p.Quests {
		snap.Quests[id] = storage.QuestEntry{Name: q.Name, State: q.State}
	}
	for id := range p.Discovered {
		snap.Discovered = append(snap.Discovered, id)
	}
	sort.Strings(snap.Discovered)
	return snap
}

// Restore rebuilds a session from a snapshot against the loaded catalog.
// Live stats are recalculated from base values, class, and passive skills;
// ability trackers are re-derived from unlocked active skills with cooldowns
// reset. Snapshots with non-positive progression counters are rejected as
// malformed.
//
// Postcondition: HP never exceeds the recalculated MaxHP.
func Restore(cat *world.Catalog, snap *storage.Snapshot, logger *zap.Logger, src dice.Source) (*Session, error) {
	if snap.Level < 1 {
		return nil, fmt.Errorf("session: save has invalid level %d", snap.Level)
	}
	if snap.XPToNextLevel < 1 {
		return nil, fmt.Errorf("session: save has invalid xp threshold %d", snap.XPToNextLevel)
	}
	p := player.New(snap.Name, snap.HP, snap.BaseMaxHP, snap.BaseAttackPower, snap.BaseCriticalChance, snap.CurrentLocationID)
	if _, ok := cat.Location(snap.CurrentLocationID); !ok {
		return nil, fmt.Errorf("session: save references unknown location %q", snap.CurrentLocationID)
	}

	for _, id := range snap.InventoryIDs {
		it, err := cat.Items.Instantiate(id)
		if err != nil {
			return nil, fmt.Errorf("session: restoring inventory: %w", err)
		}
		p.GiveItem(it)
	}
	for id, entry := range snap.Quests {
		p.Quests[id] = &player.Quest{Name: entry.Name, State: entry.State}
	}
	for _, id := range snap.Discovered {
		p.Discovered[id] = true
	}

	p.Level = snap.Level
	p.XP = snap.XP
	p.XPToNextLevel = snap.XPToNextLevel
	p.SkillPoints = snap.SkillPoints
	p.ClassID = snap.ClassID

	for _, skillID := range snap.UnlockedSkills {
		def, ok := cat.Skills.Def(skillID)
		if !ok {
			return nil, fmt.Errorf("session: save references unknown skill %q", skillID)
		}
		p.UnlockedSkills = append(p.UnlockedSkills, skillID)
		if def.Type == skill.TypeActive {
			p.ActiveAbilities = append(p.ActiveAbilities, skill.NewActiveAbility(def))
		}
	}

	stats.Recalculate(p, cat.Skills, cat.Classes)
	p.HP = snap.HP
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}

	return newSession(cat, p, logger, src), nil
}
