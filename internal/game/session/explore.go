package session

import (
	"fmt"
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/item"
	"github.com/oakhaven/wayfarer/internal/game/worldmap"
)

// handleExplore resolves one explore-mode command.
func (s *Session) handleExplore(verb, arg string) string {
	switch verb {
	case "look":
		return s.Location().Describe(s.Player)
	case "map":
		return worldmap.Render(s.Catalog, s.Player)
	case "skills":
		s.mode = ModeSkillsMenu
		return s.SkillsMenu()
	case "go":
		return s.travel(arg)
	case "get":
		return s.pickUp(arg)
	case "inventory":
		return s.inventoryText()
	case "talk":
		return s.talk(arg)
	case "use":
		return s.useInField(arg)
	case "save":
		return "" // persisted by the enclosing loop
	case "quit":
		s.QuitRequested = true
		return ""
	default:
		return "You can't do that right now."
	}
}

func (s *Session) travel(direction string) string {
	loc := s.Location()
	dest, ok := loc.Destination(direction, s.Player)
	if !ok {
		return "You can't go that way."
	}
	s.Player.MoveTo(dest)
	message := fmt.Sprintf("You go %s.", direction)

	arrived := s.Location()
	if extra := s.runEnterHook(arrived); extra != "" {
		message += "\n" + extra
	}
	if alarm := s.enterCombatIfHostile(); alarm != "" {
		message += "\n\n" + alarm
	}
	return message
}

func (s *Session) pickUp(itemID string) string {
	it, ok := s.Location().TakeItem(itemID)
	if !ok {
		return "You don't see that here."
	}
	s.Player.GiveItem(it)
	return fmt.Sprintf("You pick up the %s.", it.Name())
}

func (s *Session) inventoryText() string {
	if len(s.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}
	lines := make([]string, len(s.Player.Inventory))
	for i, it := range s.Player.Inventory {
		lines[i] = "- " + it.Name()
	}
	return "You are carrying:\n" + strings.Join(lines, "\n")
}

// talk resolves one conversation: healers heal, otherwise the first dialogue
// entry whose conditions hold is spoken and may grant a quest and its items.
func (s *Session) talk(npcID string) string {
	n, ok := s.Location().NPCByID(npcID)
	if !ok {
		return "There is no one here by that name."
	}

	if n.HealingDialogue != nil {
		if s.Player.HP < s.Player.MaxHP {
			message := fmt.Sprintf("**%s says:** %q", n.Name, n.HealingDialogue.PreHeal)
			s.Player.HP = s.Player.MaxHP
			message += fmt.Sprintf("\n\n**%s says:** %q", n.Name, n.HealingDialogue.PostHeal)
			return message
		}
		return fmt.Sprintf("**%s says:** %q", n.Name, n.HealingDialogue.Default)
	}

	entry := n.SelectDialogue(s.Player)
	if entry == nil {
		return fmt.Sprintf("%s has nothing to say to you right now.", n.Name)
	}
	message := fmt.Sprintf("**%s says:** %q", n.Name, entry.Text)

	if entry.GivesQuestID == "" {
		return message
	}
	quest, ok := s.Catalog.Quest(entry.GivesQuestID)
	if !ok || !s.Player.GrantQuest(quest.ID, quest.Name) {
		return message
	}
	message += fmt.Sprintf("\n\n  New Quest: %s", quest.Name)

	var given []string
	for _, itemID := range entry.GivesItems {
		it, err := s.Catalog.Items.Instantiate(itemID)
		if err != nil {
			continue
		}
		s.Player.GiveItem(it)
		given = append(given, it.Name())
	}
	if len(given) > 0 {
		message += fmt.Sprintf("\n  You received: %s!", strings.Join(given, ", "))
	}
	return message
}

// useInField applies an item outside combat. Offensive items are rejected;
// containers open; potions drink.
func (s *Session) useInField(itemID string) string {
	it, ok := s.Player.ItemByID(itemID)
	if !ok {
		return "You don't have that item."
	}
	if !it.UsableInField() {
		return fmt.Sprintf("You can't use the %s right now.", it.Name())
	}

	var message string
	switch it.Kind() {
	case item.KindPotion:
		message = it.Heal(s.Player)
	case item.KindEffectPotion:
		message = it.ApplyEffect(s.Player)
	case item.KindContainer:
		message = it.Open(s.Player)
	}
	s.Player.RemoveItem(itemID)
	return message
}
