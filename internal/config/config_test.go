package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir: "content",
		},
		Save: SaveConfig{
			Path: "wayfarer.db",
			Slot: "default",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Scripting: ScriptingConfig{
			InstructionLimit: 100000,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "content", cfg.Content.Dir)
	assert.Equal(t, "default", cfg.Save.Slot)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
content:
  dir: world-data
save:
  path: saves.db
  slot: hero
logging:
  level: debug
  format: console
scripting:
  instruction_limit: 5000
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "world-data", cfg.Content.Dir)
	assert.Equal(t, "saves.db", cfg.Save.Path)
	assert.Equal(t, "hero", cfg.Save.Slot)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
content:
  dir: world-data
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wayfarer.db", cfg.Save.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 100000, cfg.Scripting.InstructionLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateEmptyContentDir(t *testing.T) {
	cfg := validConfig()
	cfg.Content.Dir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.dir")
}

func TestValidateEmptySave(t *testing.T) {
	cfg := validConfig()
	cfg.Save.Path = ""
	cfg.Save.Slot = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save.path")
	assert.Contains(t, err.Error(), "save.slot")
}

func TestValidateInvalidLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateInstructionLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = rapid.IntRange(-1000, 1000).Draw(t, "limit")
		err := cfg.Validate()
		if cfg.Scripting.InstructionLimit >= 1 {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	})
}
