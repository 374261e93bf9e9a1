// Package worldmap renders an ASCII overworld map centered on the player.
package worldmap

import (
	"sort"
	"strings"

	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/world"
)

type point struct {
	x, y int
}

// symbolFor maps a location to its map glyph. Undiscovered locations render
// as '?' regardless of kind.
func symbolFor(loc *world.Location, p *player.Player) byte {
	if !p.Discovered[loc.ID] {
		return '?'
	}
	if loc.ID == p.CurrentLocationID {
		return 'P'
	}
	switch loc.Kind {
	case world.KindCity:
		return 'C'
	case world.KindDungeon:
		return 'D'
	case world.KindWilderness, world.KindSwamp, world.KindVolcanic:
		return 'W'
	default:
		return 'R'
	}
}

// allExits merges unconditional and conditional exits; the map shows the
// topology without evaluating travel predicates. Directions are sorted for
// stable output.
func allExits(loc *world.Location) [][2]string {
	merged := make(map[string]string, len(loc.Exits)+len(loc.ConditionalExits))
	for dir, dest := range loc.Exits {
		merged[dir] = dest
	}
	for _, ce := range loc.ConditionalExits {
		merged[ce.Direction] = ce.Destination
	}
	dirs := make([]string, 0, len(merged))
	for dir := range merged {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	out := make([][2]string, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, [2]string{dir, merged[dir]})
	}
	return out
}

// Render draws the discovered world as an ASCII grid, placing locations by
// breadth-first walk over the four compass directions from the player's
// position.
func Render(cat *world.Catalog, p *player.Player) string {
	start, ok := cat.Location(p.CurrentLocationID)
	if !ok {
		return "Map data is not available."
	}

	grid := map[point]*world.Location{{0, 0}: start}
	placed := map[string]point{start.ID: {0, 0}}
	queue := []point{{0, 0}}
	minX, maxX, minY, maxY := 0, 0, 0, 0

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		loc := grid[pos]

		if pos.x < minX {
			minX = pos.x
		}
		if pos.x > maxX {
			maxX = pos.x
		}
		if pos.y < minY {
			minY = pos.y
		}
		if pos.y > maxY {
			maxY = pos.y
		}

		for _, exit := range allExits(loc) {
			dir, destID := exit[0], exit[1]
			dest, ok := cat.Location(destID)
			if !ok {
				continue
			}
			if _, seen := placed[destID]; seen {
				continue
			}
			next := pos
			switch dir {
			case "north":
				next.y--
			case "south":
				next.y++
			case "east":
				next.x++
			case "west":
				next.x--
			default:
				continue
			}
			if _, occupied := grid[next]; occupied {
				continue
			}
			grid[next] = dest
			placed[destID] = next
			queue = append(queue, next)
		}
	}

	width := maxX - minX + 1
	height := maxY - minY + 1
	canvas := make([][]byte, height*2)
	for i := range canvas {
		canvas[i] = []byte(strings.Repeat(" ", width*4))
	}

	for pos, loc := range grid {
		gx := (pos.x - minX) * 4
		gy := (pos.y - minY) * 2
		canvas[gy][gx] = '['
		canvas[gy][gx+1] = symbolFor(loc, p)
		canvas[gy][gx+2] = ']'

		for _, exit := range allExits(loc) {
			neighbor, ok := placed[exit[1]]
			if !ok {
				continue
			}
			switch {
			case neighbor.y < pos.y && neighbor.x == pos.x:
				if gy > 0 && canvas[gy-1][gx+1] == ' ' {
					canvas[gy-1][gx+1] = '|'
				}
			case neighbor.y > pos.y && neighbor.x == pos.x:
				if gy+1 < len(canvas) && canvas[gy+1][gx+1] == ' ' {
					canvas[gy+1][gx+1] = '|'
				}
			case neighbor.x > pos.x && neighbor.y == pos.y:
				if canvas[gy][gx+3] == ' ' {
					canvas[gy][gx+3] = '-'
				}
			case neighbor.x < pos.x && neighbor.y == pos.y:
				if gx > 0 && canvas[gy][gx-1] == ' ' {
					canvas[gy][gx-1] = '-'
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString("\n--- World Map ---\n")
	for _, row := range canvas {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	b.WriteString("\n[P]layer, [C]ity, [W]ilderness, [D]ungeon, [R]oom, ? Undiscovered\n")
	return b.String()
}
