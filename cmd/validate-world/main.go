// Package main provides a content validation tool for world data trees.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oakhaven/wayfarer/internal/game/world"
)

func main() {
	contentDir := flag.String("content", "content", "path to the world content directory")
	flag.Parse()

	start := time.Now()
	cat, err := world.Load(*contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
	if err := cat.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ok: %d locations, %d items, %d monsters, %d npcs, %d skills, %d classes, %d quests [%s]\n",
		len(cat.Locations),
		len(cat.Items.All()),
		len(cat.Monsters.All()),
		len(cat.NPCs.All()),
		len(cat.Skills.All()),
		len(cat.Classes.All()),
		len(cat.Quests),
		time.Since(start).Round(time.Millisecond),
	)
}
