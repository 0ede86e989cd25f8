package entities

// Stat names a derived stat. Item bonuses are keyed by the same enumeration,
// so every bonus category maps onto exactly one derived stat.
type Stat string

// Derived stats
const (
	StatAD          Stat = "ad"
	StatAP          Stat = "ap"
	StatMaxHP       Stat = "max_hp"
	StatDefense     Stat = "defense"
	StatAttackSpeed Stat = "attack_speed"
	StatCritRate    Stat = "crit_rate"
	StatCritDamage  Stat = "crit_damage"
	StatEvasion     Stat = "evasion"
	StatTenacity    Stat = "tenacity"
	StatLethality   Stat = "lethality"
	StatPenetration Stat = "penetration"
	StatLifesteal   Stat = "lifesteal"
)

// AllStats returns every stat in display order
func AllStats() []Stat {
	return []Stat{
		StatAD,
		StatAP,
		StatMaxHP,
		StatDefense,
		StatAttackSpeed,
		StatCritRate,
		StatCritDamage,
		StatEvasion,
		StatTenacity,
		StatLethality,
		StatPenetration,
		StatLifesteal,
	}
}

// IsValid checks if the stat belongs to the closed enumeration
func (s Stat) IsValid() bool {
	switch s {
	case StatAD, StatAP, StatMaxHP, StatDefense, StatAttackSpeed, StatCritRate,
		StatCritDamage, StatEvasion, StatTenacity, StatLethality, StatPenetration, StatLifesteal:
		return true
	default:
		return false
	}
}

// IsPercentage reports whether the stat is a ratio clamped to a configured cap
func (s Stat) IsPercentage() bool {
	switch s {
	case StatCritRate, StatEvasion, StatTenacity, StatPenetration, StatLifesteal:
		return true
	default:
		return false
	}
}
