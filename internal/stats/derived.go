// Package stats turns raw attributes, level, item bonuses and the equipped
// weapon into the derived combat stats of a character.
package stats

import (
	"math"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

// DerivedStats is the fully recomputed combat profile of a character
type DerivedStats struct {
	AD          float64 `json:"ad"`
	AP          float64 `json:"ap"`
	MaxHP       float64 `json:"max_hp"`
	Defense     float64 `json:"defense"`
	AttackSpeed float64 `json:"attack_speed"`
	CritRate    float64 `json:"crit_rate"`
	CritDamage  float64 `json:"crit_damage"`
	Evasion     float64 `json:"evasion"`
	Tenacity    float64 `json:"tenacity"`
	Lethality   float64 `json:"lethality"`
	Penetration float64 `json:"penetration"`
	Lifesteal   float64 `json:"lifesteal"`
}

// Get returns one derived stat by name
func (d DerivedStats) Get(stat entities.Stat) float64 {
	switch stat {
	case entities.StatAD:
		return d.AD
	case entities.StatAP:
		return d.AP
	case entities.StatMaxHP:
		return d.MaxHP
	case entities.StatDefense:
		return d.Defense
	case entities.StatAttackSpeed:
		return d.AttackSpeed
	case entities.StatCritRate:
		return d.CritRate
	case entities.StatCritDamage:
		return d.CritDamage
	case entities.StatEvasion:
		return d.Evasion
	case entities.StatTenacity:
		return d.Tenacity
	case entities.StatLethality:
		return d.Lethality
	case entities.StatPenetration:
		return d.Penetration
	case entities.StatLifesteal:
		return d.Lifesteal
	default:
		return 0
	}
}

// SoftCap returns v unchanged up to the cap; above it each extra point counts
// for efficiency of a point.
func SoftCap(value, limit, efficiency float64) float64 {
	if value <= limit {
		return value
	}
	return limit + (value-limit)*efficiency
}

func clamp(value, upper float64) float64 {
	return math.Max(0, math.Min(value, upper))
}

// Recalculate derives every stat from its inputs. A nil weapon or nil item
// stats contribute nothing. Levels below 1 are treated as level 1.
func Recalculate(
	cfg Config,
	level int,
	attrs entities.AttributeSet,
	items *ItemStats,
	weapon *entities.WeaponProfile,
) DerivedStats {
	if level < 1 {
		level = 1
	}
	if weapon == nil {
		weapon = &entities.WeaponProfile{}
	}

	str := SoftCap(float64(attrs.STR), cfg.SoftCap, cfg.SoftCapEfficiency)
	intel := SoftCap(float64(attrs.INT), cfg.SoftCap, cfg.SoftCapEfficiency)
	agi := SoftCap(float64(attrs.AGI), cfg.SoftCap, cfg.SoftCapEfficiency)
	end := SoftCap(float64(attrs.END), cfg.SoftCap, cfg.SoftCapEfficiency)
	wis := SoftCap(float64(attrs.WIS), cfg.SoftCap, cfg.SoftCapEfficiency)

	levels := float64(level - 1)

	var d DerivedStats

	d.AD = cfg.BaseAD + levels*cfg.ADPerLevel + str*cfg.STRToAD +
		weapon.AD + str*weapon.STRScaling + agi*weapon.AGIScaling +
		items.GetStat(entities.StatAD)

	d.AP = cfg.BaseAP + levels*cfg.APPerLevel + intel*cfg.INTToAP + wis*cfg.WISToAP +
		weapon.AP + intel*weapon.INTScaling +
		items.GetStat(entities.StatAP)

	d.MaxHP = cfg.BaseHP + levels*cfg.HPPerLevel + end*cfg.ENDToHP +
		items.GetStat(entities.StatMaxHP)

	d.Defense = cfg.BaseDefense + levels*cfg.DefensePerLevel + end*cfg.ENDToDefense +
		items.GetStat(entities.StatDefense)

	d.AttackSpeed = cfg.BaseAttackSpeed + agi*cfg.AGIToAttackSpeed + weapon.AttackSpeed +
		items.GetStat(entities.StatAttackSpeed)

	baseCrit := math.Min(cfg.BaseCritRate+agi*cfg.AGIToCritRate, cfg.CritRateBaseCap)
	d.CritRate = clamp(baseCrit+weapon.CritRate+items.GetStat(entities.StatCritRate), cfg.CritRateCap)

	d.CritDamage = cfg.BaseCritDamage + items.GetStat(entities.StatCritDamage)

	baseEvasion := math.Min(cfg.BaseEvasion+agi*cfg.AGIToEvasion, cfg.EvasionBaseCap)
	d.Evasion = clamp(baseEvasion+items.GetStat(entities.StatEvasion), cfg.EvasionCap)

	baseTenacity := math.Min(cfg.BaseTenacity+wis*cfg.WISToTenacity, cfg.TenacityBaseCap)
	d.Tenacity = clamp(baseTenacity+items.GetStat(entities.StatTenacity), cfg.TenacityCap)

	d.Lethality = items.GetStat(entities.StatLethality)
	d.Penetration = clamp(items.GetStat(entities.StatPenetration), cfg.PenetrationCap)
	d.Lifesteal = clamp(items.GetStat(entities.StatLifesteal), cfg.LifestealCap)

	return d
}
