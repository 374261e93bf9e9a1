package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakhaven/wayfarer/internal/game/class"
	"github.com/oakhaven/wayfarer/internal/game/condition"
	"github.com/oakhaven/wayfarer/internal/game/dice"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/npc"
	"github.com/oakhaven/wayfarer/internal/game/skill"
	"github.com/oakhaven/wayfarer/internal/game/world"
	"github.com/oakhaven/wayfarer/internal/scripting"
)

// newCatalog builds a two-location world by hand: a town with a healer, an
// elder quest-giver, and a lantern on the ground, and a cave to the east
// holding one goblin.
func newCatalog(t *testing.T) *world.Catalog {
	t.Helper()

	items := item.NewRegistry()
	for _, d := range []*item.Def{
		{ID: "lantern", Name: "Lantern", Kind: item.KindBasic},
		{ID: "healing_potion", Name: "Healing Potion", Kind: item.KindPotion, HealAmount: 20},
		{ID: "bomb", Name: "Fire Bomb", Kind: item.KindOffensive, DamageAmount: 50},
		{ID: "supply_pack", Name: "Supply Pack", Kind: item.KindContainer, ContainedItemIDs: []string{"healing_potion"}},
		{ID: "old_map", Name: "Old Map", Kind: item.KindBasic},
	} {
		require.NoError(t, items.Register(d))
	}

	monsters := monster.NewRegistry()
	require.NoError(t, monsters.Register(&monster.Template{
		ID: "goblin", Name: "Goblin", MaxHP: 12, AttackPower: 3, XPReward: 25,
	}))

	skills := skill.NewRegistry()
	require.NoError(t, skills.Register(&skill.Def{
		ID: "toughness", Name: "Toughness", Description: "Harden up.",
		Type: skill.TypePassive, Cost: 1, StatMod: &skill.StatMod{MaxHP: 10},
	}))
	require.NoError(t, skills.Register(&skill.Def{
		ID: "power_strike", Name: "Power Strike", Description: "A heavy blow.",
		Type: skill.TypeActive, Cost: 1,
		Ability: &skill.CombatAbility{DamageBonus: 10, Cooldown: 3},
	}))

	classes := class.NewRegistry()
	require.NoError(t, classes.Register(&class.Def{
		ID: "warrior", Name: "Warrior", ShortDescription: "Hits hard",
		BaseMods: class.StatMods{MaxHP: 20, AttackPower: 5},
	}))
	require.NoError(t, classes.Register(&class.Def{
		ID: "mage", Name: "Mage", ShortDescription: "Thinks hard",
		BaseMods: class.StatMods{CriticalChance: 0.1},
	}))

	healer := &npc.Def{
		ID: "sister_ana", Name: "Sister Ana",
		HealingDialogue: &npc.HealingDialogue{
			PreHeal:  "You look hurt. Hold still.",
			PostHeal: "There. Good as new.",
			Default:  "You seem healthy enough to me.",
		},
	}
	elder := &npc.Def{
		ID: "elder", Name: "Elder Bram",
		Dialogue: []npc.DialogueEntry{
			{
				Text:       "Have you dealt with that goblin yet?",
				Conditions: []condition.Predicate{{Type: condition.TypeQuestActive, QuestID: "slay_goblin"}},
			},
			{
				Text:         "A goblin haunts the cave east of here. Deal with it.",
				GivesQuestID: "slay_goblin",
				GivesItems:   []string{"old_map"},
			},
		},
	}

	cat := &world.Catalog{
		Locations: map[string]*world.Location{},
		Items:     items,
		Monsters:  monsters,
		NPCs:      npc.NewRegistry(),
		Skills:    skills,
		Classes:   classes,
		Quests: map[string]*world.QuestDef{
			"slay_goblin": {ID: "slay_goblin", Name: "Slay the Goblin", CompletedBy: "goblin"},
		},
		Start: world.StartState{
			Name: "Tester", HP: 50, MaxHP: 50, AttackPower: 5, CriticalChance: 0.1,
			StartLocationID: "town", InventoryIDs: []string{"healing_potion"},
		},
		Spawner: monster.NewSpawner(monsters),
	}

	town := &world.Location{
		ID: "town", Name: "Town Square", Description: "A quiet square.",
		Kind:  world.KindCity,
		Exits: map[string]string{"east": "cave"},
		NPCs:  []*npc.Def{healer, elder},
	}
	lantern, err := items.Instantiate("lantern")
	require.NoError(t, err)
	town.Items = []*item.Item{lantern}

	cave := &world.Location{
		ID: "cave", Name: "Goblin Cave", Description: "A damp cave.",
		Kind:  world.KindDungeon,
		Exits: map[string]string{"west": "town"},
	}
	goblin, err := cat.Spawner.Spawn("goblin")
	require.NoError(t, err)
	cave.Monsters = []*monster.Instance{goblin}

	cat.Locations["town"] = town
	cat.Locations["cave"] = cave
	return cat
}

func newTestSession(t *testing.T, src dice.Source) *Session {
	t.Helper()
	s, err := New(newCatalog(t), zap.NewNop(), src)
	require.NoError(t, err)
	return s
}

func TestNewStartsAtTownWithInventory(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, ModeExplore, s.Mode())
	assert.Equal(t, "town", s.Player.CurrentLocationID)
	assert.Equal(t, 50, s.Player.HP)
	require.Len(t, s.Player.Inventory, 1)
	assert.Equal(t, "healing_potion", s.Player.Inventory[0].ID())
}

func TestNewEntersCombatWhenStartIsHostile(t *testing.T) {
	cat := newCatalog(t)
	cat.Start.StartLocationID = "cave"

	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, ModeCombat, s.Mode())
}

func TestNewRejectsUnknownStartingItem(t *testing.T) {
	cat := newCatalog(t)
	cat.Start.InventoryIDs = []string{"excalibur"}

	_, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting inventory")
}

func TestHandleLineParsing(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "", s.HandleLine("   "))
	assert.Equal(t, `Unknown command "dance".`, s.HandleLine("dance"))
	assert.Equal(t, "You can't do that right now.", s.HandleLine("attack goblin:0"))
	assert.Equal(t, "go what?", s.HandleLine("go"))
}

func TestLookDescribesLocation(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	out := s.HandleLine("look")
	assert.Contains(t, out, "**Town Square**")
	assert.Contains(t, out, "A quiet square.")
}

func TestTravelIntoHostileLocation(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	out := s.HandleLine("go east")
	assert.Contains(t, out, "You go east.")
	assert.Contains(t, out, "You step into the Goblin Cave... Goblin block(s) your way!")
	assert.Equal(t, ModeCombat, s.Mode())
	assert.Equal(t, "cave", s.Player.CurrentLocationID)
}

func TestTravelBlockedDirection(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "You can't go that way.", s.HandleLine("go north"))
	assert.Equal(t, "town", s.Player.CurrentLocationID)
}

func TestPickUpItem(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "You pick up the Lantern.", s.HandleLine("get lantern"))
	assert.Empty(t, s.Location().Items)
	assert.True(t, s.Player.HasItemNamed("Lantern"))

	assert.Equal(t, "You don't see that here.", s.HandleLine("get lantern"))
}

func TestInventoryListing(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "You are carrying:\n- Healing Potion", s.HandleLine("inventory"))

	s.Player.RemoveItem("healing_potion")
	assert.Equal(t, "Your inventory is empty.", s.HandleLine("inventory"))
}

func TestTalkToHealerWhenHurt(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.HP = 20

	out := s.HandleLine("talk sister_ana")
	assert.Contains(t, out, `**Sister Ana says:** "You look hurt. Hold still."`)
	assert.Contains(t, out, `**Sister Ana says:** "There. Good as new."`)
	assert.Equal(t, s.Player.MaxHP, s.Player.HP)
}

func TestTalkToHealerAtFullHealth(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	out := s.HandleLine("talk sister_ana")
	assert.Equal(t, `**Sister Ana says:** "You seem healthy enough to me."`, out)
}

func TestTalkGrantsQuestAndItemsOnce(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	out := s.HandleLine("talk elder")
	assert.Contains(t, out, `**Elder Bram says:** "A goblin haunts the cave east of here. Deal with it."`)
	assert.Contains(t, out, "New Quest: Slay the Goblin")
	assert.Contains(t, out, "You received: Old Map!")
	state, ok := s.Player.QuestState("slay_goblin")
	require.True(t, ok)
	assert.Equal(t, condition.QuestActive, state)

	// The active-quest line now matches first; nothing is granted again.
	again := s.HandleLine("talk elder")
	assert.Equal(t, `**Elder Bram says:** "Have you dealt with that goblin yet?"`, again)
	count := 0
	for _, it := range s.Player.Inventory {
		if it.ID() == "old_map" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTalkToMissingNPC(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "There is no one here by that name.", s.HandleLine("talk ghost"))
}

func TestUsePotionInField(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.HP = 25

	out := s.HandleLine("use healing_potion")
	assert.Contains(t, out, "heals for 20 HP")
	assert.Equal(t, 45, s.Player.HP)
	assert.Empty(t, s.Player.Inventory)
}

func TestUseContainerInField(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	pack, err := s.Catalog.Items.Instantiate("supply_pack")
	require.NoError(t, err)
	s.Player.GiveItem(pack)

	out := s.HandleLine("use supply_pack")
	assert.Contains(t, out, "You open the Supply Pack and find:")
	assert.Contains(t, out, "- Healing Potion")

	// The pack is consumed; the starting potion plus the found one remain.
	potions := 0
	for _, it := range s.Player.Inventory {
		if it.ID() == "healing_potion" {
			potions++
		}
		assert.NotEqual(t, "supply_pack", it.ID())
	}
	assert.Equal(t, 2, potions)
}

func TestUseOffensiveItemRejectedInField(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	bomb, err := s.Catalog.Items.Instantiate("bomb")
	require.NoError(t, err)
	s.Player.GiveItem(bomb)

	assert.Equal(t, "You can't use the Fire Bomb right now.", s.HandleLine("use bomb"))
	assert.True(t, s.Player.HasItemNamed("Fire Bomb"))
}

func TestUseMissingItem(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "You don't have that item.", s.HandleLine("use excalibur"))
}

func TestQuitRequested(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	assert.Equal(t, "", s.HandleLine("quit"))
	assert.True(t, s.QuitRequested)
}

func TestSkillsMenuFlow(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.SkillPoints = 2

	out := s.HandleLine("skills")
	assert.Equal(t, ModeSkillsMenu, s.Mode())
	assert.Contains(t, out, "--- Skill Tree ---")
	assert.Contains(t, out, "Skill Points: 2")
	assert.Contains(t, out, "- power_strike: Power Strike (Cost: 1) A heavy blow.")
	assert.Contains(t, out, "- toughness: Toughness (Cost: 1) Harden up.")

	out = s.HandleLine("unlock toughness")
	assert.Contains(t, out, "You have unlocked: Toughness!")
	assert.Contains(t, out, "Skill Points: 1")
	assert.Equal(t, 60, s.Player.MaxHP)

	out = s.HandleLine("exit")
	assert.Equal(t, "You return to your senses.", out)
	assert.Equal(t, ModeExplore, s.Mode())
}

func TestCombatAttackAndRetreat(t *testing.T) {
	// Retreat draw of 1 means the goblin's free hit misses.
	s := newTestSession(t, dice.NewSequenceSource(1))
	s.HandleLine("go east")
	require.Equal(t, ModeCombat, s.Mode())

	out := s.HandleLine("attack goblin:0")
	assert.Contains(t, out, "You attack the Goblin, dealing 5 damage.")
	assert.Contains(t, out, "The Goblin attacks you, dealing 3 damage.")

	out = s.HandleLine("retreat")
	assert.Contains(t, out, "You flee from combat!")
	assert.Equal(t, ModeExplore, s.Mode())
	assert.Equal(t, "town", s.Player.CurrentLocationID)
}

func TestCombatVictoryReturnsToExplore(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.AttackPower = 12
	s.HandleLine("go east")

	out := s.HandleLine("attack goblin:0")
	assert.Contains(t, out, "You have defeated the Goblin!")
	assert.Contains(t, out, "Victory! You have cleared the Goblin Cave.")
	assert.Equal(t, ModeExplore, s.Mode())
}

func TestCombatKillCompletesQuest(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.HandleLine("talk elder")
	s.Player.AttackPower = 12
	s.HandleLine("go east")

	s.HandleLine("attack goblin:0")
	state, ok := s.Player.QuestState("slay_goblin")
	require.True(t, ok)
	assert.Equal(t, condition.QuestCompleted, state)
}

func TestLevelUpOpensMenuAndReturnsToExplore(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.AttackPower = 12
	s.Player.XP = 90
	s.HandleLine("go east")

	out := s.HandleLine("attack goblin:0")
	assert.Contains(t, out, "**LEVEL UP!** You are now level 2!")
	assert.Contains(t, out, "You have 1 skill point(s) to spend!")
	assert.Contains(t, out, "- hp: Increase Max HP by 10")
	assert.Equal(t, ModeLevelUp, s.Mode())

	out = s.HandleLine("choose hp")
	assert.Equal(t, 65, s.Player.BaseMaxHP)
	assert.Equal(t, 0, s.Player.SkillPoints)
	assert.Equal(t, ModeExplore, s.Mode())
	assert.NotContains(t, out, "skill point(s) to spend")
}

func TestLevelUpMenuRejectsUnknownChoice(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.AttackPower = 12
	s.Player.XP = 90
	s.HandleLine("go east")
	s.HandleLine("attack goblin:0")
	require.Equal(t, ModeLevelUp, s.Mode())

	assert.Equal(t, "That's not one of your options.", s.HandleLine("choose charisma"))
	assert.Equal(t, ModeLevelUp, s.Mode())
}

func TestLevelUpDeferKeepsPoint(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.AttackPower = 12
	s.Player.XP = 90
	s.HandleLine("go east")
	s.HandleLine("attack goblin:0")
	require.Equal(t, ModeLevelUp, s.Mode())

	out := s.HandleLine("exit")
	assert.Equal(t, "You decided to save your skill point for later.", out)
	assert.Equal(t, 1, s.Player.SkillPoints)
	assert.Equal(t, ModeExplore, s.Mode())
}

func TestLevelUpReturnsToCombatWhenMonstersSurvive(t *testing.T) {
	cat := newCatalog(t)
	second, err := cat.Spawner.Spawn("goblin")
	require.NoError(t, err)
	cave := cat.Locations["cave"]
	cave.Monsters = append(cave.Monsters, second)

	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	s.Player.AttackPower = 12
	s.Player.XP = 90
	s.HandleLine("go east")

	s.HandleLine("attack goblin:0")
	require.Equal(t, ModeLevelUp, s.Mode())

	// 5 base, +1 from the level, +2 from the upgrade.
	s.HandleLine("choose attack")
	assert.Equal(t, ModeCombat, s.Mode())
	assert.Equal(t, 8, s.Player.BaseAttackPower)
}

func TestClassChoiceAtLevelTen(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.AttackPower = 12
	s.Player.Level = 9
	s.Player.XP = 90
	s.Player.XPToNextLevel = 100
	s.HandleLine("go east")

	out := s.HandleLine("attack goblin:0")
	assert.Contains(t, out, "It is time to choose your class!")
	assert.Contains(t, out, "- mage: Mage. Thinks hard")
	assert.Contains(t, out, "- warrior: Warrior. Hits hard")
	assert.Equal(t, ModeClassChoice, s.Mode())

	// The menu cannot be left without choosing.
	assert.Equal(t, "You can't do that right now.", s.HandleLine("exit"))
	assert.Equal(t, ModeClassChoice, s.Mode())
	assert.Equal(t, "That's not one of your options.", s.HandleLine("choose bard"))

	out = s.HandleLine("choose warrior")
	assert.Contains(t, out, "You have chosen the path of the Warrior! Your journey continues.")
	assert.Equal(t, "warrior", s.Player.ClassID)
	assert.Equal(t, ModeExplore, s.Mode())
}

func TestGameOverStopsModeTransitions(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Player.HP = 2
	s.HandleLine("go east")

	s.HandleLine("attack goblin:0")
	assert.True(t, s.GameOver())
	assert.Equal(t, ModeCombat, s.Mode())
}

func TestExploreActions(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))

	choices := s.Actions()
	texts := make([]string, len(choices))
	lines := make([]string, len(choices))
	for i, c := range choices {
		texts[i] = c.Text
		lines[i] = c.Line
	}

	assert.Equal(t, []string{
		"Look around",
		"Go east -> Goblin Cave",
		"Pick up Lantern",
		"Talk to Sister Ana",
		"Talk to Elder Bram",
		"Use Healing Potion",
		"Inventory",
		"World Map",
		"Skill Tree",
		"Save",
		"Save and Quit",
	}, texts)
	assert.Equal(t, []string{
		"look",
		"go east",
		"get lantern",
		"talk sister_ana",
		"talk elder",
		"use healing_potion",
		"inventory",
		"map",
		"skills",
		"save",
		"quit",
	}, lines)
}

func TestCombatActions(t *testing.T) {
	s := newTestSession(t, dice.NewSequenceSource(0))
	s.Progression.UnlockSkill(s.Player, "power_strike", true)
	s.HandleLine("go east")
	// Keep the goblin standing through the ability hit below.
	s.Location().Monsters[0].CurrentHP = 40

	choices := s.Actions()
	texts := make([]string, len(choices))
	for i, c := range choices {
		texts[i] = c.Text
	}
	assert.Equal(t, []string{
		"Attack Goblin",
		"Use Ability: Power Strike",
		"Use Healing Potion",
		"Retreat",
	}, texts)

	// After firing, the ability advertises its cooldown.
	s.HandleLine("ability power_strike")
	choices = s.Actions()
	found := false
	for _, c := range choices {
		if c.Line == "ability power_strike" {
			found = true
			assert.Contains(t, c.Text, "(CD:")
		}
	}
	assert.True(t, found)
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	cat := newCatalog(t)
	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)

	s.HandleLine("talk elder")
	s.HandleLine("get lantern")
	s.Player.SkillPoints = 2
	s.HandleLine("skills")
	s.HandleLine("unlock toughness")
	s.HandleLine("unlock power_strike")
	s.HandleLine("exit")
	s.Player.HP = 30
	s.Player.XP = 40

	snap := Capture(s.Player)
	restored, err := Restore(cat, snap, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	p := restored.Player

	assert.Equal(t, s.Player.Name, p.Name)
	assert.Equal(t, 30, p.HP)
	assert.Equal(t, 60, p.MaxHP)
	assert.Equal(t, s.Player.Level, p.Level)
	assert.Equal(t, 40, p.XP)
	assert.Equal(t, 0, p.SkillPoints)
	assert.ElementsMatch(t, []string{"toughness", "power_strike"}, p.UnlockedSkills)
	require.Len(t, p.ActiveAbilities, 1)
	assert.Equal(t, "power_strike", p.ActiveAbilities[0].SkillID)
	assert.True(t, p.ActiveAbilities[0].Ready())
	assert.True(t, p.HasItemNamed("Lantern"))
	state, ok := p.QuestState("slay_goblin")
	require.True(t, ok)
	assert.Equal(t, condition.QuestActive, state)
	assert.Equal(t, ModeExplore, restored.Mode())
}

func TestRestoreClampsHPToRecalculatedMax(t *testing.T) {
	cat := newCatalog(t)
	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)

	snap := Capture(s.Player)
	snap.HP = 500

	restored, err := Restore(cat, snap, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, restored.Player.MaxHP, restored.Player.HP)
}

func TestRestoreRejectsCorruptSaves(t *testing.T) {
	cat := newCatalog(t)
	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)

	badLoc := Capture(s.Player)
	badLoc.CurrentLocationID = "atlantis"
	_, err = Restore(cat, badLoc, zap.NewNop(), dice.NewSequenceSource(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown location")

	badSkill := Capture(s.Player)
	badSkill.UnlockedSkills = []string{"telekinesis"}
	_, err = Restore(cat, badSkill, zap.NewNop(), dice.NewSequenceSource(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown skill")

	// A zero xp threshold would stall the level-up loop on the next kill.
	badXP := Capture(s.Player)
	badXP.XPToNextLevel = 0
	_, err = Restore(cat, badXP, zap.NewNop(), dice.NewSequenceSource(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid xp threshold")

	badLevel := Capture(s.Player)
	badLevel.Level = 0
	_, err = Restore(cat, badLevel, zap.NewNop(), dice.NewSequenceSource(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")
}

func TestRestoreResumesCombatInHostileLocation(t *testing.T) {
	cat := newCatalog(t)
	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)

	snap := Capture(s.Player)
	snap.CurrentLocationID = "cave"

	restored, err := Restore(cat, snap, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, ModeCombat, restored.Mode())
}

func TestRetreatAfterRestoreStaysAtLocation(t *testing.T) {
	cat := newCatalog(t)
	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)

	snap := Capture(s.Player)
	snap.CurrentLocationID = "cave"

	// Draw of 1 makes the goblin's free hit miss.
	restored, err := Restore(cat, snap, zap.NewNop(), dice.NewSequenceSource(1))
	require.NoError(t, err)
	require.Equal(t, ModeCombat, restored.Mode())

	out := restored.HandleLine("retreat")
	assert.Contains(t, out, "You flee from combat!")
	assert.Equal(t, "cave", restored.Player.CurrentLocationID)
	assert.Equal(t, ModeExplore, restored.Mode())

	out = restored.HandleLine("look")
	assert.Contains(t, out, "**Goblin Cave**")
}

func TestOnEnterHookAppendsText(t *testing.T) {
	cat := newCatalog(t)
	cat.Locations["cave"].Monsters = nil
	cat.Locations["cave"].Script.OnEnter = `return "A cold draft rolls past you."`

	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	s.AttachScripts(scripting.NewRunner(zap.NewNop(), 100000))

	out := s.HandleLine("go east")
	assert.Contains(t, out, "You go east.")
	assert.Contains(t, out, "A cold draft rolls past you.")
	assert.Equal(t, ModeExplore, s.Mode())
}

func TestOnDefeatHookAppendsText(t *testing.T) {
	cat := newCatalog(t)
	cat.Locations["cave"].Script.OnDefeat = `return "The cave falls silent."`

	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	s.AttachScripts(scripting.NewRunner(zap.NewNop(), 100000))
	s.Player.AttackPower = 12
	s.HandleLine("go east")

	out := s.HandleLine("attack goblin:0")
	assert.Contains(t, out, "The cave falls silent.")
}

func TestScriptCallbacksGrantItemsAndQuests(t *testing.T) {
	cat := newCatalog(t)
	cat.Locations["cave"].Monsters = nil
	cat.Locations["cave"].Script.OnEnter = `
engine.give_item("lantern")
engine.grant_quest("slay_goblin")
return "Something stirs in your pack."
`

	s, err := New(cat, zap.NewNop(), dice.NewSequenceSource(0))
	require.NoError(t, err)
	s.AttachScripts(scripting.NewRunner(zap.NewNop(), 100000))

	s.HandleLine("go east")
	assert.True(t, s.Player.HasItemNamed("Lantern"))
	state, ok := s.Player.QuestState("slay_goblin")
	require.True(t, ok)
	assert.Equal(t, condition.QuestActive, state)
}
