package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/wayfarer/internal/game/condition"
	"github.com/oakhaven/wayfarer/internal/game/item"
)

func newTestPlayer() *Player {
	return New("Tester", 50, 50, 5, 0.1, "town")
}

func basicItem(id, name string) *item.Item {
	return &item.Item{Def: &item.Def{ID: id, Name: name, Kind: item.KindBasic}}
}

func TestNewDefaults(t *testing.T) {
	p := newTestPlayer()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.XPToNextLevel)
	assert.Equal(t, 50, p.BaseMaxHP)
	assert.Equal(t, "town", p.PreviousLocationID)
	assert.True(t, p.Discovered["town"])
	assert.True(t, p.Alive())
}

func TestRetreatBeforeAnyMoveStaysPut(t *testing.T) {
	p := newTestPlayer()
	p.Retreat()
	assert.Equal(t, "town", p.CurrentLocationID)
	assert.Equal(t, "town", p.PreviousLocationID)
}

func TestTakeDamageAllowsNegativeHP(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(60)
	assert.Equal(t, -10, p.HP)
	assert.False(t, p.Alive())
}

func TestInventory(t *testing.T) {
	p := newTestPlayer()
	p.GiveItem(basicItem("lantern", "Lantern"))
	p.GiveItem(basicItem("rope", "Rope"))

	assert.True(t, p.HasItem("lantern"))
	assert.True(t, p.HasItemNamed("Lantern"))
	assert.False(t, p.HasItem("sword"))

	removed, ok := p.RemoveItem("lantern")
	require.True(t, ok)
	assert.Equal(t, "lantern", removed.ID())
	assert.False(t, p.HasItem("lantern"))
	assert.Len(t, p.Inventory, 1)

	_, ok = p.RemoveItem("lantern")
	assert.False(t, ok)
}

func TestGrantQuestIdempotent(t *testing.T) {
	p := newTestPlayer()
	assert.True(t, p.GrantQuest("slay_wolf", "Slay the Wolf"))
	assert.False(t, p.GrantQuest("slay_wolf", "Slay the Wolf"))

	state, ok := p.QuestState("slay_wolf")
	require.True(t, ok)
	assert.Equal(t, condition.QuestActive, state)
}

func TestCompleteQuestExactlyOnce(t *testing.T) {
	p := newTestPlayer()
	assert.False(t, p.CompleteQuest("slay_wolf"))

	p.GrantQuest("slay_wolf", "Slay the Wolf")
	assert.True(t, p.CompleteQuest("slay_wolf"))
	assert.False(t, p.CompleteQuest("slay_wolf"))

	state, _ := p.QuestState("slay_wolf")
	assert.Equal(t, condition.QuestCompleted, state)
}

func TestMoveToAndRetreat(t *testing.T) {
	p := newTestPlayer()
	p.MoveTo("forest")
	assert.Equal(t, "forest", p.CurrentLocationID)
	assert.Equal(t, "town", p.PreviousLocationID)
	assert.True(t, p.Discovered["forest"])

	p.Retreat()
	assert.Equal(t, "town", p.CurrentLocationID)
	assert.Equal(t, "forest", p.PreviousLocationID)
}

func TestApplyStatusEffect(t *testing.T) {
	p := newTestPlayer()
	p.ApplyStatusEffect("fire_resistance", 5)
	assert.True(t, p.Status.Has("fire_resistance"))
}

func TestHasSkill(t *testing.T) {
	p := newTestPlayer()
	assert.False(t, p.HasSkill("toughness"))
	p.UnlockedSkills = append(p.UnlockedSkills, "toughness")
	assert.True(t, p.HasSkill("toughness"))
}
