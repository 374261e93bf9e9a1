// Package progression implements leveling, the skill tree, the one-time
// class choice, and level-up stat upgrades.
package progression

import (
	"fmt"

	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/skill"
	"github.com/oakhaven/wayfarer/internal/game/stats"
)

// Controller resolves all progression operations against the loaded skill
// and class catalogs.
type Controller struct {
	Skills  *skill.Registry
	Classes *class.Registry
}

// NewController creates a Controller over the given catalogs.
func NewController(skills *skill.Registry, classes *class.Registry) *Controller {
	return &Controller{Skills: skills, Classes: classes}
}

// AddXP grants amount XP, leveling up as many times as the thresholds allow.
// Each level-up iteration independently checks the class-choice trigger.
//
// Postcondition: classChoicePending is true iff some iteration reached
// exactly level 10 with no class chosen. Live stats are not recalculated
// here; the caller does that after resolving any pending choice.
func (c *Controller) AddXP(p *player.Player, amount int) (message string, leveledUp, classChoicePending bool) {
	p.XP += amount
	message = fmt.Sprintf("You gain %d XP.", amount)
	for p.XP >= p.XPToNextLevel {
		triggered := levelUp(p)
		leveledUp = true
		if triggered {
			classChoicePending = true
		}
		message += fmt.Sprintf("\n**LEVEL UP!** You are now level %d!", p.Level)
	}
	return message, leveledUp, classChoicePending
}

// levelUp performs one level-up iteration and reports whether it triggered
// the one-time mandatory class choice.
func levelUp(p *player.Player) bool {
	p.Level++
	p.XP -= p.XPToNextLevel
	// Integer multiply-then-divide is exact floor(threshold * 1.5).
	p.XPToNextLevel = p.XPToNextLevel * 3 / 2
	p.BaseMaxHP += 5
	p.BaseAttackPower++
	p.SkillPoints++
	p.HP = p.MaxHP

	return p.Level == 10 && p.ClassID == ""
}

// UnlockSkill validates and applies one skill unlock. free skips the
// skill-point cost but not the requirement checks.
//
// Postcondition: The first failing precondition returns its message with the
// player unchanged; on success the skill is appended to UnlockedSkills, the
// cost deducted unless free, and an ability tracker added for active skills.
// The caller recalculates stats afterward.
func (c *Controller) UnlockSkill(p *player.Player, skillID string, free bool) string {
	def, ok := c.Skills.Def(skillID)
	if !ok {
		return "Skill not found."
	}
	if p.HasSkill(skillID) {
		return "You have already unlocked this skill."
	}
	if !free && p.SkillPoints < def.Cost {
		return "You don't have enough skill points."
	}
	for _, req := range def.Requirements {
		switch req.Type {
		case skill.ReqLevel:
			if p.Level < req.Value {
				return fmt.Sprintf("You do not meet the level requirement of %d.", req.Value)
			}
		case skill.ReqSkill:
			if !p.HasSkill(req.SkillID) {
				name := req.SkillID
				if prereq, ok := c.Skills.Def(req.SkillID); ok {
					name = prereq.Name
				}
				return fmt.Sprintf("You need to unlock '%s' first.", name)
			}
		}
	}

	if !free {
		p.SkillPoints -= def.Cost
	}
	p.UnlockedSkills = append(p.UnlockedSkills, skillID)
	if def.Type == skill.TypeActive {
		p.ActiveAbilities = append(p.ActiveAbilities, skill.NewActiveAbility(def))
	}
	return fmt.Sprintf("You have unlocked: %s!", def.Name)
}

// ChooseClass makes the permanent class selection, unlocks the class's
// starting skills free of cost, and recalculates stats.
//
// Precondition: p.ClassID must be unset.
// Postcondition: p.ClassID is set and never reassigned by this method.
func (c *Controller) ChooseClass(p *player.Player, classID string) (string, error) {
	if p.ClassID != "" {
		return "", fmt.Errorf("progression: class already chosen (%s)", p.ClassID)
	}
	def, ok := c.Classes.Def(classID)
	if !ok {
		return "", fmt.Errorf("progression: unknown class %q", classID)
	}
	p.ClassID = def.ID
	for _, skillID := range def.StartingSkills {
		c.UnlockSkill(p, skillID, true)
	}
	stats.Recalculate(p, c.Skills, c.Classes)
	return fmt.Sprintf("You have chosen the path of the %s! Your journey continues.", def.Name), nil
}

// AvailableSkills returns the skills the player could unlock right now: the
// general pool (skills in no class's pool) plus the chosen class's pool,
// filtered to locked skills whose requirements are met.
func (c *Controller) AvailableSkills(p *player.Player) []*skill.Def {
	var pool []string
	for _, def := range c.Skills.All() {
		if !c.Classes.AnyPoolContains(def.ID) {
			pool = append(pool, def.ID)
		}
	}
	if p.ClassID != "" {
		if def, ok := c.Classes.Def(p.ClassID); ok {
			pool = append(pool, def.SkillPool...)
		}
	}

	var available []*skill.Def
	for _, skillID := range pool {
		def, ok := c.Skills.Def(skillID)
		if !ok || p.HasSkill(skillID) {
			continue
		}
		if c.requirementsMet(p, def) {
			available = append(available, def)
		}
	}
	return available
}

func (c *Controller) requirementsMet(p *player.Player, def *skill.Def) bool {
	for _, req := range def.Requirements {
		switch req.Type {
		case skill.ReqLevel:
			if p.Level < req.Value {
				return false
			}
		case skill.ReqSkill:
			if !p.HasSkill(req.SkillID) {
				return false
			}
		}
	}
	return true
}
