package skill

// ActiveAbility is the runtime cooldown tracker derived from an active skill.
// One is created when its backing skill is unlocked and it persists for the
// player's lifetime; it is never destroyed or re-created mid-game.
//
// Invariant: 0 <= Cooldown <= MaxCooldown.
type ActiveAbility struct {
	// SkillID is the backing skill's ID.
	SkillID string
	// Name is copied from the skill for display.
	Name string
	// DamageBonus is copied from the skill's combat ability.
	DamageBonus int
	// Cooldown is the number of turns remaining before the ability is ready.
	Cooldown int
	// MaxCooldown is the cooldown applied each time the ability fires.
	MaxCooldown int
}

// NewActiveAbility creates a ready-to-fire ability tracker for def.
//
// Precondition: def.Type == TypeActive and def.Ability is non-nil.
// Postcondition: Ready() is true.
func NewActiveAbility(def *Def) *ActiveAbility {
	return &ActiveAbility{
		SkillID:     def.ID,
		Name:        def.Name,
		DamageBonus: def.Ability.DamageBonus,
		MaxCooldown: def.Ability.Cooldown,
	}
}

// Ready reports whether the ability can fire this turn.
func (a *ActiveAbility) Ready() bool { return a.Cooldown == 0 }

// Trigger puts the ability on full cooldown.
//
// Postcondition: Cooldown == MaxCooldown.
func (a *ActiveAbility) Trigger() { a.Cooldown = a.MaxCooldown }

// TickCooldown decrements the cooldown by one turn, flooring at zero.
func (a *ActiveAbility) TickCooldown() {
	if a.Cooldown > 0 {
		a.Cooldown--
	}
}
