package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want Input
	}{
		{"look", Input{Verb: "look"}},
		{"  LOOK  ", Input{Verb: "look"}},
		{"go north", Input{Verb: "go", Arg: "north"}},
		{"talk village elder", Input{Verb: "talk", Arg: "village elder"}},
		{"USE healing_potion", Input{Verb: "use", Arg: "healing_potion"}},
		{"", Input{}},
		{"   ", Input{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.line), "parsing %q", tc.line)
	}
}

func TestDefaultRegistryResolvesAliases(t *testing.T) {
	r := DefaultRegistry()

	cases := map[string]string{
		"look": "look",
		"l":    "look",
		"go":   "go",
		"move": "go",
		"walk": "go",
		"a":    "attack",
		"hit":  "attack",
		"flee": "retreat",
		"run":  "retreat",
		"i":    "inventory",
		"q":    "quit",
		"back": "exit",
	}
	for verb, want := range cases {
		cmd, ok := r.Resolve(verb)
		require.True(t, ok, "verb %q should resolve", verb)
		assert.Equal(t, want, cmd.Name)
	}

	_, ok := r.Resolve("dance")
	assert.False(t, ok)
}

func TestAvailableIn(t *testing.T) {
	r := DefaultRegistry()

	look, _ := r.Resolve("look")
	assert.True(t, look.AvailableIn(ModeExplore))
	assert.False(t, look.AvailableIn(ModeCombat))

	attack, _ := r.Resolve("attack")
	assert.True(t, attack.AvailableIn(ModeCombat))
	assert.False(t, attack.AvailableIn(ModeExplore))

	use, _ := r.Resolve("use")
	assert.True(t, use.AvailableIn(ModeExplore))
	assert.True(t, use.AvailableIn(ModeCombat))

	choose, _ := r.Resolve("choose")
	assert.True(t, choose.AvailableIn(ModeLevelUp))
	assert.True(t, choose.AvailableIn(ModeClassChoice))
	assert.False(t, choose.AvailableIn(ModeExplore))
}

func TestNewRegistryRejectsCollisions(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "look", Modes: []string{ModeExplore}},
		{Name: "look", Modes: []string{ModeExplore}},
	})
	assert.Error(t, err)

	_, err = NewRegistry([]Command{
		{Name: "look", Modes: []string{ModeExplore}},
		{Name: "list", Aliases: []string{"look"}, Modes: []string{ModeExplore}},
	})
	assert.Error(t, err)
}

func TestCommandsSnapshot(t *testing.T) {
	r := DefaultRegistry()
	assert.NotEmpty(t, r.Commands())
}
