package stats

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Hit is the outcome of one basic attack
type Hit struct {
	Roll     int
	Critical bool
	Damage   float64
	Healed   float64
}

// RollHit resolves one basic attack from derived stats. A d100 at or under
// CritRate*100 is a critical hit dealing AD*CritDamage; lifesteal heals a
// share of the damage dealt.
func RollHit(roller dice.Roller, d DerivedStats) (*Hit, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("dice roller is required")
	}

	roll, err := roller.Roll(100)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll crit check")
	}

	hit := &Hit{
		Roll:   roll,
		Damage: d.AD,
	}
	if float64(roll) <= d.CritRate*100 {
		hit.Critical = true
		hit.Damage = d.AD * d.CritDamage
	}
	hit.Healed = hit.Damage * d.Lifesteal

	return hit, nil
}
