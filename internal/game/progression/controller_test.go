package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/skill"
)

func testController(t *testing.T) *Controller {
	t.Helper()
	skills := skill.NewRegistry()
	defs := []*skill.Def{
		{ID: "toughness", Name: "Toughness", Type: skill.TypePassive, Cost: 1, StatMod: &skill.StatMod{MaxHP: 10}},
		{ID: "iron_skin", Name: "Iron Skin", Type: skill.TypePassive, Cost: 2,
			Requirements: []skill.Requirement{{Type: skill.ReqSkill, SkillID: "toughness"}},
			StatMod:      &skill.StatMod{MaxHP: 20}},
		{ID: "power_strike", Name: "Power Strike", Type: skill.TypeActive, Cost: 1,
			Requirements: []skill.Requirement{{Type: skill.ReqLevel, Value: 3}},
			Ability:      &skill.CombatAbility{DamageBonus: 10, Cooldown: 3}},
		{ID: "whirlwind", Name: "Whirlwind", Type: skill.TypeActive, Cost: 2,
			Ability: &skill.CombatAbility{DamageBonus: 15, Cooldown: 4}},
	}
	for _, d := range defs {
		require.NoError(t, skills.Register(d))
	}

	classes := class.NewRegistry()
	require.NoError(t, classes.Register(&class.Def{
		ID: "warrior", Name: "Warrior", ShortDescription: "A front-line fighter",
		BaseMods:       class.StatMods{MaxHP: 20, AttackPower: 5},
		StartingSkills: []string{"whirlwind"},
		SkillPool:      []string{"whirlwind"},
	}))
	require.NoError(t, classes.Register(&class.Def{
		ID: "mage", Name: "Mage", ShortDescription: "A wielder of the arcane",
		BaseMods: class.StatMods{AttackPower: 8},
	}))
	return NewController(skills, classes)
}

func newTestPlayer() *player.Player {
	return player.New("Tester", 50, 50, 5, 0.1, "town")
}

func TestAddXPNoLevel(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()

	msg, leveled, classPending := c.AddXP(p, 40)
	assert.Equal(t, "You gain 40 XP.", msg)
	assert.False(t, leveled)
	assert.False(t, classPending)
	assert.Equal(t, 40, p.XP)
}

func TestAddXPLevelUpCarriesOverflow(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()

	msg, leveled, classPending := c.AddXP(p, 130)
	assert.True(t, leveled)
	assert.False(t, classPending)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 30, p.XP)
	assert.Equal(t, 150, p.XPToNextLevel)
	assert.Equal(t, 55, p.BaseMaxHP)
	assert.Equal(t, 6, p.BaseAttackPower)
	assert.Equal(t, 1, p.SkillPoints)
	assert.Equal(t, "You gain 130 XP.\n**LEVEL UP!** You are now level 2!", msg)
}

func TestAddXPMultiLevel(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()

	// 100 + 150 = 250 clears two levels with 10 left over.
	_, leveled, _ := c.AddXP(p, 260)
	assert.True(t, leveled)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 10, p.XP)
	assert.Equal(t, 225, p.XPToNextLevel)
	assert.Equal(t, 2, p.SkillPoints)
}

func TestXPThresholdFloors(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.XPToNextLevel = 101

	c.AddXP(p, 101)
	// floor(101 * 1.5) = 151
	assert.Equal(t, 151, p.XPToNextLevel)
}

func TestLevelUpRestoresHP(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.HP = 12

	c.AddXP(p, 100)
	assert.Equal(t, p.MaxHP, p.HP)
}

func TestClassChoiceTriggersAtLevelTen(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.Level = 9
	p.XPToNextLevel = 100

	_, leveled, classPending := c.AddXP(p, 100)
	assert.True(t, leveled)
	assert.True(t, classPending)
	assert.Equal(t, 10, p.Level)
}

func TestClassChoiceNotTriggeredWhenClassed(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.Level = 9
	p.XPToNextLevel = 100
	p.ClassID = "warrior"

	_, _, classPending := c.AddXP(p, 100)
	assert.False(t, classPending)
}

func TestUnlockSkill(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.SkillPoints = 3

	msg := c.UnlockSkill(p, "toughness", false)
	assert.Equal(t, "You have unlocked: Toughness!", msg)
	assert.Equal(t, 2, p.SkillPoints)
	assert.True(t, p.HasSkill("toughness"))

	msg = c.UnlockSkill(p, "toughness", false)
	assert.Equal(t, "You have already unlocked this skill.", msg)
	assert.Equal(t, 2, p.SkillPoints)
}

func TestUnlockSkillFailuresLeavePlayerUnchanged(t *testing.T) {
	c := testController(t)

	p := newTestPlayer()
	assert.Equal(t, "Skill not found.", c.UnlockSkill(p, "fireball", false))

	assert.Equal(t, "You don't have enough skill points.", c.UnlockSkill(p, "toughness", false))
	assert.Empty(t, p.UnlockedSkills)

	p.SkillPoints = 5
	assert.Equal(t, "You do not meet the level requirement of 3.", c.UnlockSkill(p, "power_strike", false))
	assert.Equal(t, 5, p.SkillPoints)
	assert.Empty(t, p.UnlockedSkills)

	assert.Equal(t, "You need to unlock 'Toughness' first.", c.UnlockSkill(p, "iron_skin", false))
	assert.Equal(t, 5, p.SkillPoints)
	assert.Empty(t, p.UnlockedSkills)
}

func TestUnlockActiveSkillAddsAbility(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.Level = 3
	p.SkillPoints = 1

	c.UnlockSkill(p, "power_strike", false)
	require.Len(t, p.ActiveAbilities, 1)
	assert.Equal(t, "power_strike", p.ActiveAbilities[0].SkillID)
	assert.True(t, p.ActiveAbilities[0].Ready())
}

func TestUnlockSkillFreeSkipsCostOnly(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()

	msg := c.UnlockSkill(p, "toughness", true)
	assert.Equal(t, "You have unlocked: Toughness!", msg)
	assert.Equal(t, 0, p.SkillPoints)

	// Requirements still apply even when free.
	assert.Equal(t, "You do not meet the level requirement of 3.", c.UnlockSkill(p, "power_strike", true))
}

func TestChooseClassExactlyOnce(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()

	msg, err := c.ChooseClass(p, "warrior")
	require.NoError(t, err)
	assert.Equal(t, "You have chosen the path of the Warrior! Your journey continues.", msg)
	assert.Equal(t, "warrior", p.ClassID)
	assert.True(t, p.HasSkill("whirlwind"))
	assert.Equal(t, 70, p.MaxHP)
	assert.Equal(t, 10, p.AttackPower)

	_, err = c.ChooseClass(p, "mage")
	assert.Error(t, err)
	assert.Equal(t, "warrior", p.ClassID)
}

func TestChooseClassUnknown(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	_, err := c.ChooseClass(p, "bard")
	assert.Error(t, err)
	assert.Empty(t, p.ClassID)
}

func TestAvailableSkillsGeneralPoolOnlyBeforeClass(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.Level = 3

	ids := availableIDs(c, p)
	assert.ElementsMatch(t, []string{"toughness", "power_strike"}, ids)
}

func TestAvailableSkillsIncludeClassPoolAfterChoice(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.Level = 3
	p.ClassID = "warrior"

	ids := availableIDs(c, p)
	assert.ElementsMatch(t, []string{"toughness", "power_strike", "whirlwind"}, ids)
}

func TestAvailableSkillsFiltersUnlockedAndUnmet(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.UnlockedSkills = []string{"toughness"}

	ids := availableIDs(c, p)
	// power_strike needs level 3; iron_skin's prerequisite is met.
	assert.ElementsMatch(t, []string{"iron_skin"}, ids)
}

func TestApplyUpgrade(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.SkillPoints = 2

	msg, err := c.ApplyUpgrade(p, "hp")
	require.NoError(t, err)
	assert.Equal(t, "You chose: Increase Max HP by 10. Your power grows!", msg)
	assert.Equal(t, 60, p.BaseMaxHP)
	assert.Equal(t, 60, p.MaxHP)
	assert.Equal(t, 1, p.SkillPoints)

	msg, err = c.ApplyUpgrade(p, "attack")
	require.NoError(t, err)
	assert.Equal(t, 7, p.AttackPower)
	assert.Equal(t, 0, p.SkillPoints)
}

func TestApplyUpgradeUnknown(t *testing.T) {
	c := testController(t)
	p := newTestPlayer()
	p.SkillPoints = 1

	_, err := c.ApplyUpgrade(p, "luck")
	assert.Error(t, err)
	assert.Equal(t, 1, p.SkillPoints)
}

func TestXPNeverLostAcrossLevels(t *testing.T) {
	c := testController(t)
	rapid.Check(t, func(t *rapid.T) {
		p := newTestPlayer()
		total := 0
		for _, amount := range rapid.SliceOfN(rapid.IntRange(1, 500), 1, 20).Draw(t, "grants") {
			total += amount
			c.AddXP(p, amount)
		}

		// Replay the thresholds from level 1 to recover total XP spent.
		spent := 0
		threshold := 100
		for level := 1; level < p.Level; level++ {
			spent += threshold
			threshold = threshold * 3 / 2
		}
		assert.Equal(t, total, spent+p.XP)
		assert.Equal(t, threshold, p.XPToNextLevel)
	})
}

func availableIDs(c *Controller, p *player.Player) []string {
	defs := c.AvailableSkills(p)
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}
