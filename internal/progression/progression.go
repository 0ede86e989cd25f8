// Package progression implements the experience curve, level-ups with the
// optional transcendence tier, and attribute point allocation.
package progression

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// LevelUpResult summarizes one AddExperience call
type LevelUpResult struct {
	LevelsGained        int
	PointsGranted       int
	NewLevel            int
	TranscendenceGained int
	Capped              bool
}

// Progression owns the level state of one character
type Progression struct {
	cfg                  Config
	state                entities.LevelState
	transcendenceEnabled bool
}

// New creates a level 1 progression
func New(cfg *Config) (*Progression, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Progression{cfg: *cfg}
	p.state = entities.LevelState{Level: 1}
	p.state.ExpToNextLevel = p.Requirement(1)
	return p, nil
}

// Restore rebuilds a progression from saved state, re-deriving the threshold
func Restore(cfg *Config, state entities.LevelState, transcendenceEnabled bool) (*Progression, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	if state.Level < 1 {
		vb.Field("level", "must be at least 1")
	}
	if state.CurrentEXP < 0 {
		vb.Field("current_exp", "must not be negative")
	}
	if state.UnallocatedPoints < 0 {
		vb.Field("unallocated_points", "must not be negative")
	}
	if state.TranscendenceLevel < 0 {
		vb.Field("transcendence_level", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	p.transcendenceEnabled = transcendenceEnabled
	if state.Level > p.MaxAchievableLevel() {
		return nil, errors.InvalidArgumentf("level %d exceeds max achievable level %d", state.Level, p.MaxAchievableLevel())
	}

	p.state = state
	p.state.ExpToNextLevel = p.Requirement(state.Level)
	if p.atCap() {
		p.state.CurrentEXP = 0
	} else if p.state.CurrentEXP >= p.state.ExpToNextLevel {
		p.state.CurrentEXP = p.state.ExpToNextLevel - 1
	}
	return p, nil
}

// State returns a copy of the current level state
func (p *Progression) State() entities.LevelState {
	return p.state
}

// Level returns the current level
func (p *Progression) Level() int {
	return p.state.Level
}

// UnallocatedPoints returns the points available for allocation
func (p *Progression) UnallocatedPoints() int {
	return p.state.UnallocatedPoints
}

// TranscendenceEnabled reports whether the overflow tier is unlocked
func (p *Progression) TranscendenceEnabled() bool {
	return p.transcendenceEnabled
}

// MaxAchievableLevel is MaxLevel, plus the transcendence levels when unlocked
func (p *Progression) MaxAchievableLevel() int {
	if p.transcendenceEnabled {
		return p.cfg.MaxLevel + p.cfg.MaxTranscendenceLevel
	}
	return p.cfg.MaxLevel
}

// EnableTranscendence unlocks the overflow tier
func (p *Progression) EnableTranscendence() {
	if p.transcendenceEnabled {
		return
	}
	p.transcendenceEnabled = true
	p.state.ExpToNextLevel = p.Requirement(p.state.Level)

	slog.Info("transcendence unlocked",
		"level", p.state.Level,
		"max_achievable_level", p.MaxAchievableLevel())
}

// Requirement returns the EXP needed to advance from level to level+1
func (p *Progression) Requirement(level int) int {
	if level >= p.cfg.MaxLevel {
		t := float64(level - p.cfg.MaxLevel + 1)
		req := math.Floor(float64(p.normalRequirement(p.cfg.MaxLevel)) * p.cfg.TranscendenceMultiplier * t)
		return max(int(req), 1)
	}
	return p.normalRequirement(level)
}

func (p *Progression) normalRequirement(level int) int {
	l := float64(level)
	req := math.Floor(p.cfg.BaseRequirement + l*p.cfg.LinearGrowth + math.Pow(l, p.cfg.ExponentGrowth))
	return max(int(req), 1)
}

func (p *Progression) atCap() bool {
	return p.state.Level >= p.MaxAchievableLevel()
}

// AddExperience adds EXP and performs every level-up it pays for
func (p *Progression) AddExperience(amount int) (*LevelUpResult, error) {
	if amount <= 0 {
		return nil, errors.InvalidOperationf("experience amount must be positive, got %d", amount).
			WithMeta("amount", amount)
	}

	result := &LevelUpResult{}

	if p.atCap() {
		p.state.CurrentEXP = 0
		result.NewLevel = p.state.Level
		result.Capped = true
		return result, nil
	}

	p.state.CurrentEXP += amount

	iterations := 0
	for p.state.CurrentEXP >= p.state.ExpToNextLevel && !p.atCap() {
		if iterations >= MaxLevelUpsPerGain {
			slog.Warn("level-up loop ceiling reached",
				"level", p.state.Level,
				"current_exp", p.state.CurrentEXP,
				"exp_to_next_level", p.state.ExpToNextLevel,
				"iterations", iterations)
			p.state.CurrentEXP = p.state.ExpToNextLevel - 1
			break
		}
		iterations++

		p.state.CurrentEXP -= p.state.ExpToNextLevel
		p.state.Level++
		p.state.UnallocatedPoints += p.cfg.PointsPerLevel
		p.state.ExpToNextLevel = p.Requirement(p.state.Level)

		result.LevelsGained++
		result.PointsGranted += p.cfg.PointsPerLevel

		if p.transcendenceEnabled && p.state.Level > p.cfg.MaxLevel {
			p.state.TranscendenceLevel++
			p.state.IsTranscended = true
			result.TranscendenceGained++
		}
	}

	if p.atCap() {
		p.state.CurrentEXP = 0
		result.Capped = true
	}
	result.NewLevel = p.state.Level

	if result.LevelsGained > 0 {
		slog.Info("level up",
			"new_level", p.state.Level,
			"levels_gained", result.LevelsGained,
			"points_granted", result.PointsGranted,
			"transcendence_level", p.state.TranscendenceLevel)
	}

	return result, nil
}

func (p *Progression) spendPoints(points int) error {
	if points > p.state.UnallocatedPoints {
		return errors.InsufficientQuantityf("requested %d points but only %d are unallocated",
			points, p.state.UnallocatedPoints).
			WithMeta("requested", points).
			WithMeta("available", p.state.UnallocatedPoints)
	}
	p.state.UnallocatedPoints -= points
	return nil
}

func (p *Progression) refundPoints(points int) {
	p.state.UnallocatedPoints += points
}
