// Package stats implements the live-stat recalculation pass.
package stats

import (
	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/skill"
)

// Recalculate rebuilds the player's live stats from base stats, the chosen
// class's base mods, and every unlocked passive skill's stat mods, then
// clamps HP at the new MaxHP. Status effects are not part of this pass; they
// act on live HP directly.
//
// Must be called after class selection, skill unlock, level-up stat choice,
// and save-game load.
//
// Postcondition: Idempotent while base stats, class, and unlocked skills are
// unchanged. HP never increases; it only drops via the MaxHP clamp.
func Recalculate(p *player.Player, skills *skill.Registry, classes *class.Registry) {
	p.MaxHP = p.BaseMaxHP
	p.AttackPower = p.BaseAttackPower
	p.CriticalChance = p.BaseCriticalChance

	if p.ClassID != "" {
		if def, ok := classes.Def(p.ClassID); ok {
			p.MaxHP += def.BaseMods.MaxHP
			p.AttackPower += def.BaseMods.AttackPower
			p.CriticalChance += def.BaseMods.CriticalChance
		}
	}

	for _, skillID := range p.UnlockedSkills {
		def, ok := skills.Def(skillID)
		if !ok || def.Type != skill.TypePassive || def.StatMod == nil {
			continue
		}
		p.MaxHP += def.StatMod.MaxHP
		p.AttackPower += def.StatMod.AttackPower
		p.CriticalChance += def.StatMod.CriticalChance
	}

	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}
