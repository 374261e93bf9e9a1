package session

import (
	"fmt"
	"sort"

	"github.com/oakhaven/wayfarer/internal/game/progression"
)

// ActionChoice is one entry in the numbered menu the console presents. Line
// is the command fed back through HandleLine when the entry is picked.
type ActionChoice struct {
	Text string
	Line string
}

// Actions enumerates everything the player can do right now, in
// presentation order.
func (s *Session) Actions() []ActionChoice {
	switch s.mode {
	case ModeCombat:
		return s.combatActions()
	case ModeSkillsMenu:
		return s.skillsMenuActions()
	case ModeLevelUp:
		return s.levelUpActions()
	case ModeClassChoice:
		return s.classChoiceActions()
	default:
		return s.exploreActions()
	}
}

func (s *Session) exploreActions() []ActionChoice {
	loc := s.Location()
	choices := []ActionChoice{{Text: "Look around", Line: "look"}}

	exits := loc.AvailableExits(s.Player)
	dirs := make([]string, 0, len(exits))
	for dir := range exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		destName := exits[dir]
		if dest, ok := s.Catalog.Location(exits[dir]); ok {
			destName = dest.Name
		}
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("Go %s -> %s", dir, destName),
			Line: "go " + dir,
		})
	}

	for _, it := range loc.Items {
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("Pick up %s", it.Name()),
			Line: "get " + it.ID(),
		})
	}
	for _, n := range loc.NPCs {
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("Talk to %s", n.Name),
			Line: "talk " + n.ID,
		})
	}
	for _, it := range s.Player.Inventory {
		if it.UsableInField() {
			choices = append(choices, ActionChoice{
				Text: fmt.Sprintf("Use %s", it.Name()),
				Line: "use " + it.ID(),
			})
		}
	}

	choices = append(choices,
		ActionChoice{Text: "Inventory", Line: "inventory"},
		ActionChoice{Text: "World Map", Line: "map"},
		ActionChoice{Text: "Skill Tree", Line: "skills"},
		ActionChoice{Text: "Save", Line: "save"},
		ActionChoice{Text: "Save and Quit", Line: "quit"},
	)
	return choices
}

func (s *Session) combatActions() []ActionChoice {
	loc := s.Location()
	var choices []ActionChoice

	for _, m := range loc.Monsters {
		if !m.Alive() {
			continue
		}
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("Attack %s", m.Name),
			Line: "attack " + m.ID,
		})
	}
	for _, a := range s.Player.ActiveAbilities {
		if a.Ready() {
			choices = append(choices, ActionChoice{
				Text: fmt.Sprintf("Use Ability: %s", a.Name),
				Line: "ability " + a.SkillID,
			})
		} else {
			choices = append(choices, ActionChoice{
				Text: fmt.Sprintf("Use Ability: %s (CD: %d)", a.Name, a.Cooldown),
				Line: "ability " + a.SkillID,
			})
		}
	}
	for _, it := range s.Player.Inventory {
		if it.UsableInCombat() {
			choices = append(choices, ActionChoice{
				Text: fmt.Sprintf("Use %s", it.Name()),
				Line: "use " + it.ID(),
			})
		}
	}
	choices = append(choices, ActionChoice{Text: "Retreat", Line: "retreat"})
	return choices
}

func (s *Session) skillsMenuActions() []ActionChoice {
	available := s.Progression.AvailableSkills(s.Player)
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	choices := make([]ActionChoice, 0, len(available)+1)
	for _, def := range available {
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("Unlock %s (Cost: %d)", def.Name, def.Cost),
			Line: "unlock " + def.ID,
		})
	}
	choices = append(choices, ActionChoice{Text: "Exit", Line: "exit"})
	return choices
}

func (s *Session) levelUpActions() []ActionChoice {
	upgrades := progression.Upgrades()
	choices := make([]ActionChoice, 0, len(upgrades)+1)
	for _, u := range upgrades {
		choices = append(choices, ActionChoice{Text: u.Text, Line: "choose " + u.ID})
	}
	choices = append(choices, ActionChoice{Text: "Save your skill point for later", Line: "exit"})
	return choices
}

func (s *Session) classChoiceActions() []ActionChoice {
	classes := s.Catalog.Classes.All()
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	choices := make([]ActionChoice, 0, len(classes))
	for _, def := range classes {
		choices = append(choices, ActionChoice{
			Text: fmt.Sprintf("%s: %s", def.Name, def.ShortDescription),
			Line: "choose " + def.ID,
		})
	}
	return choices
}
