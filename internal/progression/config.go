package progression

import "github.com/KirkDiggler/rpg-progression/internal/errors"

// MaxLevelUpsPerGain bounds the level-up loop of a single AddExperience call
const MaxLevelUpsPerGain = 100

// Config holds the experience curve and level limits
type Config struct {
	MaxLevel                int     `yaml:"max_level"`
	MaxTranscendenceLevel   int     `yaml:"max_transcendence_level"`
	PointsPerLevel          int     `yaml:"points_per_level"`
	BaseRequirement         float64 `yaml:"base_requirement"`
	LinearGrowth            float64 `yaml:"linear_growth"`
	ExponentGrowth          float64 `yaml:"exponent_growth"`
	TranscendenceMultiplier float64 `yaml:"transcendence_multiplier"`
}

// DefaultConfig returns the reference curve: level 1 needs 151 EXP
func DefaultConfig() Config {
	return Config{
		MaxLevel:                50,
		MaxTranscendenceLevel:   10,
		PointsPerLevel:          5,
		BaseRequirement:         100,
		LinearGrowth:            50,
		ExponentGrowth:          1.2,
		TranscendenceMultiplier: 1.5,
	}
}

// Validate ensures the curve always produces positive thresholds
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("max_level", c.MaxLevel, vb)
	if c.MaxTranscendenceLevel < 0 {
		vb.Field("max_transcendence_level", "must not be negative")
	}
	if c.PointsPerLevel < 0 {
		vb.Field("points_per_level", "must not be negative")
	}
	errors.ValidateNonNegative("base_requirement", c.BaseRequirement, vb)
	errors.ValidateNonNegative("linear_growth", c.LinearGrowth, vb)
	errors.ValidateNonNegative("exponent_growth", c.ExponentGrowth, vb)
	if c.TranscendenceMultiplier <= 0 {
		vb.Field("transcendence_multiplier", "must be positive")
	}

	return vb.Build()
}
