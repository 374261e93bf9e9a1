package session

import (
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/combat"
)

// handleCombat translates a combat verb into an engine action, resolves it,
// and applies the resulting mode transitions.
func (s *Session) handleCombat(verb, arg string) string {
	loc := s.Location()

	var action combat.Action
	switch verb {
	case "attack":
		action = combat.Action{Type: combat.ActionAttack, TargetID: s.resolveTarget(arg)}
	case "ability":
		abilityID, target := splitTarget(arg)
		action = combat.Action{Type: combat.ActionAbility, AbilityID: abilityID, TargetID: s.resolveTarget(target)}
	case "use":
		itemID, target := splitTarget(arg)
		action = combat.Action{Type: combat.ActionUseItem, ItemID: itemID, TargetID: s.resolveTarget(target)}
	case "retreat":
		action = combat.Action{Type: combat.ActionRetreat}
	case "quit":
		s.QuitRequested = true
		return ""
	default:
		return "You can't do that right now."
	}

	res := s.Engine.ResolveTurn(s.Player, loc, action)
	message := res.Message

	if s.GameOver() {
		return message
	}

	switch {
	case res.Retreated:
		s.mode = ModeExplore
	case res.PendingClassChoice:
		s.setReturnMode(res)
		s.mode = ModeClassChoice
		message += "\n\n" + s.ClassMenu()
	case res.PendingLevelUp:
		s.setReturnMode(res)
		s.mode = ModeLevelUp
		message += "\n\n" + s.LevelUpMenu()
	case res.Victory:
		s.mode = ModeExplore
	}
	return message
}

// setReturnMode records where a progression menu should hand back to.
// Combat resumes only when monsters survived the triggering turn.
func (s *Session) setReturnMode(res combat.Result) {
	if res.Victory {
		s.returnMode = ModeExplore
	} else {
		s.returnMode = ModeCombat
	}
}

// resolveTarget defaults an empty target to the only living monster here.
func (s *Session) resolveTarget(target string) string {
	if target != "" {
		return target
	}
	for _, m := range s.Location().Monsters {
		if m.Alive() {
			return m.ID
		}
	}
	return ""
}

// splitTarget separates "<id> <target>" arguments. The target is optional;
// ids never contain spaces.
func splitTarget(arg string) (string, string) {
	fields := strings.Fields(arg)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}
