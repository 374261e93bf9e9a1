// Package session drives the game: it owns the mode state machine, dispatches
// parsed commands into explore handlers or the combat engine, and derives the
// action menu for the UI.
package session

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/oakhaven/wayfarer/internal/game/combat"
	"github.com/oakhaven/wayfarer/internal/game/command"
	"github.com/oakhaven/wayfarer/internal/game/dice"
	"github.com/oakhaven/wayfarer/internal/game/monster"
	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/progression"
	"github.com/oakhaven/wayfarer/internal/game/world"
	"github.com/oakhaven/wayfarer/internal/scripting"
)

// Mode is the game's top-level state.
type Mode string

// Game modes.
const (
	ModeExplore     Mode = command.ModeExplore
	ModeCombat      Mode = command.ModeCombat
	ModeSkillsMenu  Mode = command.ModeSkillsMenu
	ModeLevelUp     Mode = command.ModeLevelUp
	ModeClassChoice Mode = command.ModeClassChoice
)

// Session is one single-player game in progress. It is not safe for
// concurrent use; every command is fully resolved before the next.
type Session struct {
	Player      *player.Player
	Catalog     *world.Catalog
	Progression *progression.Controller
	Engine      *combat.Engine
	Commands    *command.Registry

	logger  *zap.Logger
	scripts *scripting.Runner

	mode Mode
	// returnMode is where a level-up menu hands back to; combat resumes
	// if monsters survived the turn that triggered the level.
	returnMode Mode

	// QuitRequested is set by the quit command; the enclosing loop saves
	// and exits.
	QuitRequested bool
}

// New starts a fresh game from the catalog's start state.
//
// Postcondition: The player stands at the start location with its starting
// inventory instantiated; mode is explore unless monsters are present.
func New(cat *world.Catalog, logger *zap.Logger, src dice.Source) (*Session, error) {
	start := cat.Start
	p := player.New(start.Name, start.HP, start.MaxHP, start.AttackPower, start.CriticalChance, start.StartLocationID)
	for _, id := range start.InventoryIDs {
		it, err := cat.Items.Instantiate(id)
		if err != nil {
			return nil, fmt.Errorf("session: starting inventory: %w", err)
		}
		p.GiveItem(it)
	}
	return newSession(cat, p, logger, src), nil
}

func newSession(cat *world.Catalog, p *player.Player, logger *zap.Logger, src dice.Source) *Session {
	prog := progression.NewController(cat.Skills, cat.Classes)
	s := &Session{
		Player:      p,
		Catalog:     cat,
		Progression: prog,
		Engine:      combat.NewEngine(cat, prog, src),
		Commands:    command.DefaultRegistry(),
		logger:      logger,
		mode:        ModeExplore,
	}
	if loc, ok := cat.Location(p.CurrentLocationID); ok && loc.LivingMonsters() {
		s.mode = ModeCombat
	}
	return s
}

// AttachScripts wires the Lua hook runner into the session and the combat
// engine's defeat chain.
func (s *Session) AttachScripts(r *scripting.Runner) {
	r.GiveItem = func(itemID string) bool {
		it, err := s.Catalog.Items.Instantiate(itemID)
		if err != nil {
			return false
		}
		s.Player.GiveItem(it)
		return true
	}
	r.GrantQuest = func(questID string) bool {
		quest, ok := s.Catalog.Quest(questID)
		if !ok {
			return false
		}
		return s.Player.GrantQuest(quest.ID, quest.Name)
	}
	s.scripts = r
	s.Engine.OnDefeat = s.runDefeatHook
}

// Mode returns the current game mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// GameOver reports whether the player has been defeated.
func (s *Session) GameOver() bool {
	return !s.Player.Alive()
}

// Location returns the player's current location.
//
// Precondition: The catalog validated every location reference, so a miss
// means corrupted state.
func (s *Session) Location() *world.Location {
	loc, ok := s.Catalog.Location(s.Player.CurrentLocationID)
	if !ok {
		panic(fmt.Sprintf("session: player at unknown location %q", s.Player.CurrentLocationID))
	}
	return loc
}

// HandleLine parses and resolves one command line, returning the narrative
// message for the turn.
func (s *Session) HandleLine(line string) string {
	in := command.Parse(line)
	if in.Verb == "" {
		return ""
	}
	cmd, ok := s.Commands.Resolve(in.Verb)
	if !ok {
		return fmt.Sprintf("Unknown command %q.", in.Verb)
	}
	if !cmd.AvailableIn(string(s.mode)) {
		return "You can't do that right now."
	}
	if cmd.TakesArg && in.Arg == "" {
		return fmt.Sprintf("%s what?", cmd.Name)
	}

	s.logger.Debug("command",
		zap.String("verb", cmd.Name),
		zap.String("arg", in.Arg),
		zap.String("mode", string(s.mode)),
	)

	switch s.mode {
	case ModeExplore:
		return s.handleExplore(cmd.Name, in.Arg)
	case ModeCombat:
		return s.handleCombat(cmd.Name, in.Arg)
	case ModeSkillsMenu:
		return s.handleSkillsMenu(cmd.Name, in.Arg)
	case ModeLevelUp:
		return s.handleLevelUp(cmd.Name, in.Arg)
	case ModeClassChoice:
		return s.handleClassChoice(cmd.Name, in.Arg)
	default:
		return "You can't do that right now."
	}
}

// enterCombatIfHostile flips the session into combat when living monsters
// occupy the player's location, returning the alarm text.
func (s *Session) enterCombatIfHostile() string {
	loc := s.Location()
	if !loc.LivingMonsters() {
		return ""
	}
	s.mode = ModeCombat
	names := make([]string, len(loc.Monsters))
	for i, m := range loc.Monsters {
		names[i] = m.Name
	}
	return fmt.Sprintf("You step into the %s... %s block(s) your way!", loc.Name, strings.Join(names, " and a "))
}

// runDefeatHook runs the location's on_defeat Lua hook, if any.
func (s *Session) runDefeatHook(loc *world.Location, m *monster.Instance) string {
	if s.scripts == nil || loc.Script.OnDefeat == "" {
		return ""
	}
	extra, err := s.scripts.Run(loc.Script.OnDefeat, s.scriptEnv(loc, m))
	if err != nil {
		return ""
	}
	return extra
}

// runEnterHook runs the location's on_enter Lua hook, if any.
func (s *Session) runEnterHook(loc *world.Location) string {
	if s.scripts == nil || loc.Script.OnEnter == "" {
		return ""
	}
	extra, err := s.scripts.Run(loc.Script.OnEnter, s.scriptEnv(loc, nil))
	if err != nil {
		return ""
	}
	return extra
}

func (s *Session) scriptEnv(loc *world.Location, m *monster.Instance) scripting.Env {
	env := scripting.Env{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		PlayerName:   s.Player.Name,
		PlayerHP:     s.Player.HP,
		PlayerLevel:  s.Player.Level,
	}
	if m != nil {
		env.MonsterID = m.ID
		env.MonsterName = m.Name
	}
	return env
}
