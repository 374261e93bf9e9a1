// Package testutil provides test helpers for building throwaway world
// content trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ContentTree builds a world content directory under dir from the given
// files. Keys are paths relative to the content root ("items/potion.yaml",
// "quests.yaml"); values are raw YAML.
//
// Postcondition: Every content subdirectory the loader expects exists, even
// when no file was written into it.
func ContentTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for _, sub := range []string{"items", "skills", "classes", "monsters", "npcs", "locations"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatalf("creating content dir %s: %v", sub, err)
		}
	}
	for rel, body := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
	return root
}

// MinimalWorld returns a ContentTree file set describing the smallest world
// the loader accepts: one town, one player start, and nothing hostile.
// Callers overlay extra files or replace entries before building.
func MinimalWorld() map[string]string {
	return map[string]string{
		"locations/town.yaml": `
id: town
name: Town Square
description: A quiet square.
kind: city
`,
		"quests.yaml": `[]
`,
		"player.yaml": `
name: Tester
hp: 50
max_hp: 50
attack_power: 5
critical_chance: 0.1
start_location_id: town
inventory_ids: []
`,
	}
}

// Merge overlays additional files onto a base file set, replacing
// duplicates.
func Merge(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
