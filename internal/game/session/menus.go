package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/progression"
	"github.com/oakhaven/wayfarer/internal/game/stats"
)

// handleSkillsMenu resolves one skill-tree command.
func (s *Session) handleSkillsMenu(verb, arg string) string {
	switch verb {
	case "unlock":
		message := s.Progression.UnlockSkill(s.Player, arg, false)
		stats.Recalculate(s.Player, s.Catalog.Skills, s.Catalog.Classes)
		return message + "\n\n" + s.SkillsMenu()
	case "exit":
		s.mode = ModeExplore
		return "You return to your senses."
	default:
		return "You can't do that right now."
	}
}

// handleLevelUp resolves one level-up stat choice. The menu closes when the
// points run out or the player defers.
func (s *Session) handleLevelUp(verb, arg string) string {
	switch verb {
	case "choose":
		message, err := s.Progression.ApplyUpgrade(s.Player, arg)
		if err != nil {
			return "That's not one of your options."
		}
		if s.Player.SkillPoints > 0 {
			return message + "\n\n" + s.LevelUpMenu()
		}
		s.mode = s.returnMode
		return message
	case "exit":
		s.mode = s.returnMode
		return "You decided to save your skill point for later."
	default:
		return "You can't do that right now."
	}
}

// handleClassChoice resolves the mandatory level-10 class selection. The
// menu cannot be exited without choosing.
func (s *Session) handleClassChoice(verb, arg string) string {
	if verb != "choose" {
		return "You can't do that right now."
	}
	message, err := s.Progression.ChooseClass(s.Player, arg)
	if err != nil {
		return "That's not one of your options."
	}
	s.mode = s.returnMode
	return message
}

// SkillsMenu renders the skill tree: points on hand and every skill the
// player could unlock right now.
func (s *Session) SkillsMenu() string {
	var b strings.Builder
	b.WriteString("--- Skill Tree ---\n")
	fmt.Fprintf(&b, "Skill Points: %d\n", s.Player.SkillPoints)

	available := s.Progression.AvailableSkills(s.Player)
	if len(available) == 0 {
		b.WriteString("No skills are available to unlock right now.")
		return b.String()
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	b.WriteString("Available skills:")
	for _, def := range available {
		fmt.Fprintf(&b, "\n- %s: %s (Cost: %d) %s", def.ID, def.Name, def.Cost, def.Description)
	}
	return b.String()
}

// LevelUpMenu renders the stat-upgrade choices.
func (s *Session) LevelUpMenu() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d skill point(s) to spend!", s.Player.SkillPoints)
	for _, u := range progression.Upgrades() {
		fmt.Fprintf(&b, "\n- %s: %s", u.ID, u.Text)
	}
	return b.String()
}

// ClassMenu renders the class-selection choices.
func (s *Session) ClassMenu() string {
	var b strings.Builder
	b.WriteString("It is time to choose your class!")
	classes := s.Catalog.Classes.All()
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	for _, def := range classes {
		fmt.Fprintf(&b, "\n- %s: %s. %s", def.ID, def.Name, def.ShortDescription)
	}
	return b.String()
}
