package stats

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

// Input is everything a recalculation reads
type Input struct {
	Level      int
	Attributes entities.AttributeSet
	Items      *ItemStats
	Weapon     *entities.WeaponProfile
}

// Calculator memoizes derived stats behind a version stamp. Callers bump the
// version with MarkDirty whenever an input changes; Calculate only recomputes
// when the cached version is stale.
type Calculator struct {
	cfg            Config
	version        uint64
	cachedVersion  uint64
	cached         DerivedStats
	recalculations int
}

// NewCalculator creates a calculator that starts dirty
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{
		cfg:     cfg,
		version: 1,
	}
}

// Config returns the tuning the calculator was built with
func (c *Calculator) Config() Config {
	return c.cfg
}

// MarkDirty invalidates the cached stats
func (c *Calculator) MarkDirty() {
	c.version++
}

// IsDirty reports whether the next Calculate will recompute
func (c *Calculator) IsDirty() bool {
	return c.version != c.cachedVersion
}

// Calculate returns the cached stats, recomputing first if the cache is stale
func (c *Calculator) Calculate(in Input) DerivedStats {
	if !c.IsDirty() {
		return c.cached
	}

	c.cached = Recalculate(c.cfg, in.Level, in.Attributes, in.Items, in.Weapon)
	c.cachedVersion = c.version
	c.recalculations++

	slog.Debug("derived stats recalculated",
		"level", in.Level,
		"ad", c.cached.AD,
		"max_hp", c.cached.MaxHP,
		"recalculations", c.recalculations)

	return c.cached
}

// Cached returns the last computed stats without recomputing
func (c *Calculator) Cached() DerivedStats {
	return c.cached
}

// Recalculations reports how many times Calculate actually recomputed
func (c *Calculator) Recalculations() int {
	return c.recalculations
}
