package stats

import "github.com/KirkDiggler/rpg-progression/internal/errors"

// Config holds the read-only tuning constants for derived stats
type Config struct {
	SoftCap           float64 `yaml:"soft_cap"`
	SoftCapEfficiency float64 `yaml:"soft_cap_efficiency"`

	BaseAD     float64 `yaml:"base_ad"`
	ADPerLevel float64 `yaml:"ad_per_level"`
	STRToAD    float64 `yaml:"str_to_ad"`

	BaseAP     float64 `yaml:"base_ap"`
	APPerLevel float64 `yaml:"ap_per_level"`
	INTToAP    float64 `yaml:"int_to_ap"`
	WISToAP    float64 `yaml:"wis_to_ap"`

	BaseHP     float64 `yaml:"base_hp"`
	HPPerLevel float64 `yaml:"hp_per_level"`
	ENDToHP    float64 `yaml:"end_to_hp"`

	BaseDefense     float64 `yaml:"base_defense"`
	DefensePerLevel float64 `yaml:"defense_per_level"`
	ENDToDefense    float64 `yaml:"end_to_defense"`

	BaseAttackSpeed  float64 `yaml:"base_attack_speed"`
	AGIToAttackSpeed float64 `yaml:"agi_to_attack_speed"`

	BaseCritRate    float64 `yaml:"base_crit_rate"`
	AGIToCritRate   float64 `yaml:"agi_to_crit_rate"`
	CritRateBaseCap float64 `yaml:"crit_rate_base_cap"`
	CritRateCap     float64 `yaml:"crit_rate_cap"`

	BaseCritDamage float64 `yaml:"base_crit_damage"`

	BaseEvasion    float64 `yaml:"base_evasion"`
	AGIToEvasion   float64 `yaml:"agi_to_evasion"`
	EvasionBaseCap float64 `yaml:"evasion_base_cap"`
	EvasionCap     float64 `yaml:"evasion_cap"`

	BaseTenacity    float64 `yaml:"base_tenacity"`
	WISToTenacity   float64 `yaml:"wis_to_tenacity"`
	TenacityBaseCap float64 `yaml:"tenacity_base_cap"`
	TenacityCap     float64 `yaml:"tenacity_cap"`

	PenetrationCap float64 `yaml:"penetration_cap"`
	LifestealCap   float64 `yaml:"lifesteal_cap"`
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		SoftCap:           300,
		SoftCapEfficiency: 0.5,

		BaseAD:     10,
		ADPerLevel: 2,
		STRToAD:    2,

		BaseAP:     10,
		APPerLevel: 2,
		INTToAP:    2,
		WISToAP:    0.5,

		BaseHP:     100,
		HPPerLevel: 10,
		ENDToHP:    10,

		BaseDefense:     5,
		DefensePerLevel: 1,
		ENDToDefense:    0.5,

		BaseAttackSpeed:  1.0,
		AGIToAttackSpeed: 0.01,

		BaseCritRate:    0.05,
		AGIToCritRate:   0.002,
		CritRateBaseCap: 0.5,
		CritRateCap:     0.8,

		BaseCritDamage: 1.5,

		BaseEvasion:    0,
		AGIToEvasion:   0.001,
		EvasionBaseCap: 0.3,
		EvasionCap:     0.6,

		BaseTenacity:    0,
		WISToTenacity:   0.002,
		TenacityBaseCap: 0.4,
		TenacityCap:     0.8,

		PenetrationCap: 0.7,
		LifestealCap:   0.5,
	}
}

// Validate ensures every coefficient is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SoftCap <= 0 {
		vb.Field("soft_cap", "must be positive")
	}
	errors.ValidateFraction("soft_cap_efficiency", c.SoftCapEfficiency, vb)

	for field, value := range map[string]float64{
		"base_ad":             c.BaseAD,
		"ad_per_level":        c.ADPerLevel,
		"str_to_ad":           c.STRToAD,
		"base_ap":             c.BaseAP,
		"ap_per_level":        c.APPerLevel,
		"int_to_ap":           c.INTToAP,
		"wis_to_ap":           c.WISToAP,
		"base_hp":             c.BaseHP,
		"hp_per_level":        c.HPPerLevel,
		"end_to_hp":           c.ENDToHP,
		"base_defense":        c.BaseDefense,
		"defense_per_level":   c.DefensePerLevel,
		"end_to_defense":      c.ENDToDefense,
		"base_attack_speed":   c.BaseAttackSpeed,
		"agi_to_attack_speed": c.AGIToAttackSpeed,
		"agi_to_crit_rate":    c.AGIToCritRate,
		"base_crit_damage":    c.BaseCritDamage,
		"agi_to_evasion":      c.AGIToEvasion,
		"wis_to_tenacity":     c.WISToTenacity,
	} {
		errors.ValidateNonNegative(field, value, vb)
	}

	for field, value := range map[string]float64{
		"base_crit_rate":     c.BaseCritRate,
		"crit_rate_base_cap": c.CritRateBaseCap,
		"crit_rate_cap":      c.CritRateCap,
		"base_evasion":       c.BaseEvasion,
		"evasion_base_cap":   c.EvasionBaseCap,
		"evasion_cap":        c.EvasionCap,
		"base_tenacity":      c.BaseTenacity,
		"tenacity_base_cap":  c.TenacityBaseCap,
		"tenacity_cap":       c.TenacityCap,
		"penetration_cap":    c.PenetrationCap,
		"lifesteal_cap":      c.LifestealCap,
	} {
		errors.ValidateFraction(field, value, vb)
	}

	if c.CritRateBaseCap > c.CritRateCap {
		vb.Field("crit_rate_base_cap", "must not exceed crit_rate_cap")
	}
	if c.EvasionBaseCap > c.EvasionCap {
		vb.Field("evasion_base_cap", "must not exceed evasion_cap")
	}
	if c.TenacityBaseCap > c.TenacityCap {
		vb.Field("tenacity_base_cap", "must not exceed tenacity_cap")
	}

	return vb.Build()
}
