package progression

import (
	"fmt"

	"github.com/oakhaven/wayfarer/internal/game/player"
	"github.com/oakhaven/wayfarer/internal/game/stats"
)

// Upgrade is one level-up stat choice, costing a single skill point.
type Upgrade struct {
	ID    string
	Text  string
	apply func(*player.Player)
}

// Upgrades returns the level-up stat choices in presentation order.
func Upgrades() []Upgrade {
	return []Upgrade{
		{
			ID:   "hp",
			Text: "Increase Max HP by 10",
			apply: func(p *player.Player) {
				p.BaseMaxHP += 10
			},
		},
		{
			ID:   "attack",
			Text: "Increase Attack Power by 2",
			apply: func(p *player.Player) {
				p.BaseAttackPower += 2
			},
		},
		{
			ID:   "crit",
			Text: "Increase Critical Chance by 5%",
			apply: func(p *player.Player) {
				p.BaseCriticalChance += 0.05
			},
		},
	}
}

// ApplyUpgrade spends one skill point on the named upgrade and recalculates
// stats.
//
// Precondition: p.SkillPoints must be >= 1.
// Postcondition: On an unknown upgrade ID the player is unchanged and an
// error is returned.
func (c *Controller) ApplyUpgrade(p *player.Player, upgradeID string) (string, error) {
	for _, u := range Upgrades() {
		if u.ID != upgradeID {
			continue
		}
		u.apply(p)
		p.SkillPoints--
		stats.Recalculate(p, c.Skills, c.Classes)
		return fmt.Sprintf("You chose: %s. Your power grows!", u.Text), nil
	}
	return "", fmt.Errorf("progression: unknown upgrade %q", upgradeID)
}
