package combat

import (
	"fmt"
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/dice"
	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/progression"
	"github.com/oakhaven/wayfarer/internal/game/world"
)

// FireproofArmorName is the item name that negates volcanic heat.
const FireproofArmorName = "Fireproof Armor"

// FireResistanceEffect is the status effect that negates volcanic heat.
const FireResistanceEffect = "fire_resistance"

// volcanicDamage is the fixed per-turn heat damage in volcanic locations.
const volcanicDamage = 3

// Result is the outcome of one resolved combat turn.
type Result struct {
	// Message is the full narrative for the turn.
	Message string
	// TurnTaken reports whether the action consumed the player's turn and
	// so ran the end-of-turn chain. Retreats and validation failures do
	// not take the turn.
	TurnTaken bool
	// Retreated reports a successful escape; combat ends either way.
	Retreated bool
	// Victory reports that no monsters remain at the location.
	Victory bool
	// PendingClassChoice and PendingLevelUp request mode transitions;
	// class choice takes priority when both are set.
	PendingClassChoice bool
	PendingLevelUp     bool
}

// Engine resolves combat turns against the loaded world.
type Engine struct {
	Catalog     *world.Catalog
	Progression *progression.Controller
	// Rand drives the retreat rolls.
	Rand dice.Source
	// OnDefeat, when non-nil, runs after each monster death and its
	// return value is appended to the turn narrative.
	OnDefeat func(loc *world.Location, m *monster.Instance) string
}

// NewEngine creates an Engine over the given world and progression
// controller.
func NewEngine(cat *world.Catalog, prog *progression.Controller, src dice.Source) *Engine {
	return &Engine{Catalog: cat, Progression: prog, Rand: src}
}

// ResolveTurn applies one player action and, when it consumed the turn, the
// full end-of-turn chain: defeat processing, pruning, counterattacks,
// environmental damage, status decay, and cooldown ticks.
//
// Precondition: loc is the player's current location.
// Postcondition: All chained effects are fully applied before returning;
// player death is reported through p.Alive, never as an error.
func (e *Engine) ResolveTurn(p *player.Player, loc *world.Location, action Action) Result {
	var res Result

	switch action.Type {
	case ActionAttack:
		res = e.attack(p, loc, action.TargetID)
	case ActionAbility:
		res = e.useAbility(p, loc, action.AbilityID, action.TargetID)
	case ActionUseItem:
		res = e.useItem(p, loc, action.ItemID, action.TargetID)
	case ActionRetreat:
		return e.retreat(p, loc)
	default:
		return Result{Message: "You hesitate, unsure of what to do."}
	}

	if !res.TurnTaken {
		return res
	}

	e.resolveDefeats(p, loc, &res)
	loc.PruneDead()

	if !loc.LivingMonsters() {
		res.Message += fmt.Sprintf("\n\nVictory! You have cleared the %s.", loc.Name)
		res.Victory = true
	} else if !res.PendingClassChoice && !res.PendingLevelUp {
		// Surviving monsters all strike at once; there is no mitigation
		// order to worry about.
		for _, m := range loc.Monsters {
			p.TakeDamage(m.AttackPower)
			res.Message += fmt.Sprintf("\nThe %s attacks you, dealing %d damage.", m.Name, m.AttackPower)
		}
	}

	if p.Alive() {
		e.endOfTurn(p, loc, &res)
	}
	return res
}

func (e *Engine) attack(p *player.Player, loc *world.Location, targetID string) Result {
	target, ok := loc.MonsterByID(targetID)
	if !ok || !target.Alive() {
		return Result{Message: "That monster isn't here."}
	}
	target.TakeDamage(p.AttackPower)
	return Result{
		Message:   fmt.Sprintf("You attack the %s, dealing %d damage.", target.Name, p.AttackPower),
		TurnTaken: true,
	}
}

func (e *Engine) useAbility(p *player.Player, loc *world.Location, abilityID, targetID string) Result {
	ability, ok := p.AbilityByID(abilityID)
	if !ok {
		return Result{Message: "You don't have that ability."}
	}
	if !ability.Ready() {
		return Result{Message: fmt.Sprintf("%s is on cooldown for %d more turns.", ability.Name, ability.Cooldown)}
	}
	target, ok := loc.MonsterByID(targetID)
	if !ok || !target.Alive() {
		return Result{Message: "That monster isn't here."}
	}
	total := p.AttackPower + ability.DamageBonus
	target.TakeDamage(total)
	ability.Trigger()
	return Result{
		Message:   fmt.Sprintf("You use %s on %s, dealing %d damage!", ability.Name, target.Name, total),
		TurnTaken: true,
	}
}

func (e *Engine) useItem(p *player.Player, loc *world.Location, itemID, targetID string) Result {
	it, ok := p.ItemByID(itemID)
	if !ok {
		return Result{Message: "You don't have that item."}
	}
	if !it.UsableInCombat() {
		return Result{Message: fmt.Sprintf("You can't use %s in combat.", it.Name())}
	}

	var message string
	switch it.Kind() {
	case item.KindOffensive:
		target, ok := loc.MonsterByID(targetID)
		if !ok || !target.Alive() {
			return Result{Message: "That monster isn't here."}
		}
		message = it.Strike(target)
	case item.KindPotion:
		message = it.Heal(p)
	case item.KindEffectPotion:
		message = it.ApplyEffect(p)
	}
	p.RemoveItem(itemID)
	return Result{Message: message, TurnTaken: true}
}

// retreat gives every monster an independent coin-flip free hit, then moves
// the survivor back one location. Combat ends regardless of the outcome, and
// the escape does not consume a turn.
func (e *Engine) retreat(p *player.Player, loc *world.Location) Result {
	message := "You flee from combat!"
	for _, m := range loc.Monsters {
		if dice.CoinFlip(e.Rand) {
			p.TakeDamage(m.AttackPower)
			message += fmt.Sprintf("\nThe %s strikes you for %d damage as you escape!", m.Name, m.AttackPower)
		} else {
			message += fmt.Sprintf("\nThe %s swipes at you but misses!", m.Name)
		}
	}
	if p.Alive() {
		p.Retreat()
		if dest, ok := e.Catalog.Location(p.CurrentLocationID); ok {
			message += fmt.Sprintf("\n\nYou escaped back to %s.", dest.Name)
		}
	}
	return Result{Message: message, Retreated: true}
}

// resolveDefeats runs the full chain for every monster that died this turn:
// defeat message, XP, quest completion, drops, and replacement spawns.
func (e *Engine) resolveDefeats(p *player.Player, loc *world.Location, res *Result) {
	for _, m := range loc.Monsters {
		if m.Alive() {
			continue
		}
		res.Message += fmt.Sprintf("\nYou have defeated the %s!", m.Name)

		xpMessage, leveledUp, classChoice := e.Progression.AddXP(p, m.XPReward)
		res.Message += "\n  " + xpMessage
		if classChoice {
			res.PendingClassChoice = true
		} else if leveledUp {
			res.PendingLevelUp = true
		}

		templateID := monster.TemplateIDOf(m.ID)
		if quest, ok := e.Catalog.QuestCompletedBy(templateID); ok {
			if p.CompleteQuest(quest.ID) {
				res.Message += fmt.Sprintf("\n  Quest Completed: %s!", p.Quests[quest.ID].Name)
			}
		}

		e.dropLoot(p, loc, m, res)

		if spawn, ok := loc.SpawnsOnDefeat[templateID]; ok {
			replacement, err := e.Catalog.Spawner.Spawn(spawn.SpawnTemplateID)
			if err == nil {
				loc.Monsters = append(loc.Monsters, replacement)
				res.Message += "\n" + spawn.Message
			}
		}

		if e.OnDefeat != nil {
			if extra := e.OnDefeat(loc, m); extra != "" {
				res.Message += "\n" + extra
			}
		}
	}
}

// dropLoot appends the monster's drops to the ground, suppressing unique
// items the player already owns or that already lie here.
func (e *Engine) dropLoot(p *player.Player, loc *world.Location, m *monster.Instance, res *Result) {
	for _, itemID := range m.Drops {
		def, ok := e.Catalog.Items.Def(itemID)
		if !ok {
			continue
		}
		if def.IsUnique && (p.HasItem(itemID) || groundHasItem(loc, itemID)) {
			continue
		}
		dropped, err := e.Catalog.Items.Instantiate(itemID)
		if err != nil {
			continue
		}
		loc.Items = append(loc.Items, dropped)
		res.Message += fmt.Sprintf("\n  It dropped a %s.", dropped.Name())
	}
}

func groundHasItem(loc *world.Location, itemID string) bool {
	for _, it := range loc.Items {
		if it.ID() == itemID {
			return true
		}
	}
	return false
}

// endOfTurn applies environmental damage, status-effect decay, and ability
// cooldown ticks. Runs only after a consumed turn with the player alive.
func (e *Engine) endOfTurn(p *player.Player, loc *world.Location, res *Result) {
	if loc.Kind == world.KindVolcanic && !p.HasItemNamed(FireproofArmorName) && !p.Status.Has(FireResistanceEffect) {
		p.TakeDamage(volcanicDamage)
		res.Message += fmt.Sprintf("\nThe searing heat of the volcano burns you for %d damage!", volcanicDamage)
	}

	for _, effect := range p.Status.Tick() {
		res.Message += fmt.Sprintf("\nThe effect of %s has worn off.", strings.ReplaceAll(effect, "_", " "))
	}

	p.TickCooldowns()
}
