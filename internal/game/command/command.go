// Package command provides the command registry, parser, and built-in
// command definitions.
package command

import "fmt"

// Categories for organizing commands.
const (
	CategoryMovement    = "movement"
	CategoryWorld       = "world"
	CategoryCombat      = "combat"
	CategoryProgression = "progression"
	CategorySystem      = "system"
)

// Game modes a command may be available in.
const (
	ModeExplore     = "explore"
	ModeCombat      = "combat"
	ModeSkillsMenu  = "skills_menu"
	ModeLevelUp     = "level_up"
	ModeClassChoice = "class_choice"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command verb.
	Name string
	// Aliases are alternate verbs for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for display.
	Category string
	// Modes lists the game modes in which the command is valid.
	Modes []string
	// TakesArg reports whether the command requires an argument.
	TakesArg bool
}

// AvailableIn reports whether the command is valid in the given mode.
func (c *Command) AvailableIn(mode string) bool {
	for _, m := range c.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Builtins returns all built-in commands for the game.
func Builtins() []Command {
	return []Command{
		{
			Name:     "look",
			Aliases:  []string{"l"},
			Help:     "Describe your surroundings",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore},
		},
		{
			Name:     "go",
			Aliases:  []string{"move", "walk"},
			Help:     "Travel in a direction",
			Category: CategoryMovement,
			Modes:    []string{ModeExplore},
			TakesArg: true,
		},
		{
			Name:     "get",
			Aliases:  []string{"take", "pick"},
			Help:     "Pick up an item from the ground",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore},
			TakesArg: true,
		},
		{
			Name:     "inventory",
			Aliases:  []string{"i", "inv"},
			Help:     "List what you are carrying",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore},
		},
		{
			Name:     "talk",
			Help:     "Talk to someone here",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore},
			TakesArg: true,
		},
		{
			Name:     "use",
			Help:     "Use an item from your inventory",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore, ModeCombat},
			TakesArg: true,
		},
		{
			Name:     "map",
			Aliases:  []string{"m"},
			Help:     "Show the world map",
			Category: CategoryWorld,
			Modes:    []string{ModeExplore},
		},
		{
			Name:     "skills",
			Help:     "Open the skill tree",
			Category: CategoryProgression,
			Modes:    []string{ModeExplore},
		},
		{
			Name:     "attack",
			Aliases:  []string{"a", "hit"},
			Help:     "Attack a monster",
			Category: CategoryCombat,
			Modes:    []string{ModeCombat},
			TakesArg: true,
		},
		{
			Name:     "ability",
			Help:     "Use an active ability on a monster",
			Category: CategoryCombat,
			Modes:    []string{ModeCombat},
			TakesArg: true,
		},
		{
			Name:     "retreat",
			Aliases:  []string{"flee", "run"},
			Help:     "Flee back the way you came",
			Category: CategoryCombat,
			Modes:    []string{ModeCombat},
		},
		{
			Name:     "unlock",
			Help:     "Unlock a skill",
			Category: CategoryProgression,
			Modes:    []string{ModeSkillsMenu},
			TakesArg: true,
		},
		{
			Name:     "exit",
			Aliases:  []string{"back"},
			Help:     "Leave the current menu",
			Category: CategorySystem,
			Modes:    []string{ModeSkillsMenu, ModeLevelUp},
		},
		{
			Name:     "choose",
			Help:     "Make the pending choice",
			Category: CategoryProgression,
			Modes:    []string{ModeLevelUp, ModeClassChoice},
			TakesArg: true,
		},
		{
			Name:     "save",
			Help:     "Save your progress",
			Category: CategorySystem,
			Modes:    []string{ModeExplore},
		},
		{
			Name:     "quit",
			Aliases:  []string{"q"},
			Help:     "Save and quit",
			Category: CategorySystem,
			Modes:    []string{ModeExplore, ModeCombat},
		},
	}
}

// Registry maps command verbs and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}
	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by verb or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(verb string) (*Command, bool) {
	if cmd, ok := r.commands[verb]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[verb]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Commands returns all registered commands in no particular order.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	return result
}
