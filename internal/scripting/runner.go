package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Env is the read-only game snapshot exposed to a hook as the `game` table.
type Env struct {
	LocationID   string
	LocationName string
	PlayerName   string
	PlayerHP     int
	PlayerLevel  int
	// MonsterID and MonsterName are set for on_defeat hooks only.
	MonsterID   string
	MonsterName string
}

// Runner executes location hook chunks. Each hook runs in a fresh sandboxed
// VM with its own instruction budget, so a runaway script cannot poison
// later hooks.
type Runner struct {
	logger    *zap.Logger
	instLimit int

	// Injected after construction. nil = the corresponding engine.*
	// function is a no-op returning false.
	GiveItem   func(itemID string) bool
	GrantQuest func(questID string) bool
}

// NewRunner creates a Runner.
//
// Precondition: logger must be non-nil.
func NewRunner(logger *zap.Logger, instLimit int) *Runner {
	return &Runner{logger: logger, instLimit: instLimit}
}

// Run executes source as a Lua chunk with env bound to the `game` global and
// the engine.* callbacks registered. The chunk's string return value, if
// any, becomes extra narrative text.
//
// Postcondition: Lua runtime errors are logged at Warn level and returned;
// the caller treats them as "no extra text". An empty source returns "".
func (r *Runner) Run(source string, env Env) (string, error) {
	if source == "" {
		return "", nil
	}

	L, cancel := newSandboxedState(r.instLimit)
	defer cancel()
	defer L.Close()

	r.registerModules(L, env)

	if err := L.DoString(source); err != nil {
		r.logger.Warn("scripting: Lua runtime error",
			zap.String("location", env.LocationID),
			zap.Error(err),
		)
		return "", fmt.Errorf("scripting: hook in %q: %w", env.LocationID, err)
	}

	ret := L.Get(-1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), nil
	}
	return "", nil
}

// registerModules binds the `game` snapshot table and the `engine` callback
// table into L.
func (r *Runner) registerModules(L *lua.LState, env Env) {
	game := L.NewTable()
	L.SetField(game, "location_id", lua.LString(env.LocationID))
	L.SetField(game, "location_name", lua.LString(env.LocationName))
	L.SetField(game, "player_name", lua.LString(env.PlayerName))
	L.SetField(game, "player_hp", lua.LNumber(env.PlayerHP))
	L.SetField(game, "player_level", lua.LNumber(env.PlayerLevel))
	L.SetField(game, "monster_id", lua.LString(env.MonsterID))
	L.SetField(game, "monster_name", lua.LString(env.MonsterName))
	L.SetGlobal("game", game)

	engine := L.NewTable()
	L.SetField(engine, "give_item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		ok := r.GiveItem != nil && r.GiveItem(id)
		L.Push(lua.LBool(ok))
		return 1
	}))
	L.SetField(engine, "grant_quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		ok := r.GrantQuest != nil && r.GrantQuest(id)
		L.Push(lua.LBool(ok))
		return 1
	}))
	L.SetGlobal("engine", engine)
}
