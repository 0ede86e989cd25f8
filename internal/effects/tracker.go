// Package effects tracks timed effects on a character. The tracker only
// reacts to ticks handed to it; scheduling ticks is the caller's job.
package effects

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/stats"
)

// Kind identifies an effect variant
type Kind string

// Effect kinds
const (
	KindHealOverTime Kind = "heal_over_time"
	KindStatBuff     Kind = "stat_buff"
)

// Effect is a timed effect. HealOverTime and StatBuff are the variants.
type Effect interface {
	Kind() Kind
	Duration() int
	validate(vb *errors.ValidationBuilder)
}

// HealOverTime restores Total hit points spread across Turns ticks
type HealOverTime struct {
	Total int
	Turns int
}

// Kind implements Effect
func (h HealOverTime) Kind() Kind { return KindHealOverTime }

// Duration implements Effect
func (h HealOverTime) Duration() int { return h.Turns }

func (h HealOverTime) validate(vb *errors.ValidationBuilder) {
	errors.ValidatePositive("total", h.Total, vb)
	errors.ValidatePositive("turns", h.Turns, vb)
}

// PerTurn returns the amount healed on a tick with remaining ticks left
// (counting the current one). The final tick absorbs the remainder.
func (h HealOverTime) PerTurn(healedSoFar, remaining int) int {
	if remaining <= 1 {
		return h.Total - healedSoFar
	}
	return h.Total / h.Turns
}

// StatBuff adds Value to Stat for Turns ticks
type StatBuff struct {
	Stat  entities.Stat
	Value float64
	Turns int
}

// Kind implements Effect
func (b StatBuff) Kind() Kind { return KindStatBuff }

// Duration implements Effect
func (b StatBuff) Duration() int { return b.Turns }

func (b StatBuff) validate(vb *errors.ValidationBuilder) {
	if !b.Stat.IsValid() {
		vb.InvalidField("stat", "unknown stat "+string(b.Stat))
	}
	errors.ValidatePositive("turns", b.Turns, vb)
}

// Active is an applied effect and its progress
type Active struct {
	ID        string
	Effect    Effect
	Remaining int
	Healed    int
}

// TickResult reports what one tick did
type TickResult struct {
	Turn    int64
	Healed  int
	Expired []string
	// Skipped is true when the turn was already processed
	Skipped bool
}

// Config holds the dependencies for a Tracker
type Config struct {
	IDGenerator idgen.Generator
	// OnBuffChange runs when a stat buff is applied or expires
	OnBuffChange func()
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Tracker holds the active effects of one character
type Tracker struct {
	idGen        idgen.Generator
	onBuffChange func()
	active       []*Active
	lastTurn     int64
	ticked       bool
}

// NewTracker creates a tracker with no active effects
func NewTracker(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Tracker{
		idGen:        cfg.IDGenerator,
		onBuffChange: cfg.OnBuffChange,
	}, nil
}

// Apply starts an effect and returns its ID
func (t *Tracker) Apply(effect Effect) (string, error) {
	if effect == nil {
		return "", errors.InvalidArgument("effect is required")
	}
	vb := errors.NewValidationBuilder()
	effect.validate(vb)
	if err := vb.Build(); err != nil {
		return "", errors.Wrapf(err, "invalid %s effect", effect.Kind())
	}

	a := &Active{
		ID:        t.idGen.Generate(),
		Effect:    effect,
		Remaining: effect.Duration(),
	}
	t.active = append(t.active, a)

	slog.Debug("effect applied",
		"effect_id", a.ID,
		"kind", effect.Kind(),
		"turns", effect.Duration())

	if effect.Kind() == KindStatBuff {
		t.buffsChanged()
	}
	return a.ID, nil
}

// Tick advances every active effect by one turn. A turn at or before the
// last processed turn is ignored.
func (t *Tracker) Tick(turn int64) *TickResult {
	result := &TickResult{Turn: turn}
	if t.ticked && turn <= t.lastTurn {
		result.Skipped = true
		return result
	}
	t.ticked = true
	t.lastTurn = turn

	buffExpired := false
	kept := t.active[:0]
	for _, a := range t.active {
		if hot, ok := a.Effect.(HealOverTime); ok {
			amount := hot.PerTurn(a.Healed, a.Remaining)
			a.Healed += amount
			result.Healed += amount
		}

		a.Remaining--
		if a.Remaining > 0 {
			kept = append(kept, a)
			continue
		}

		result.Expired = append(result.Expired, a.ID)
		if a.Effect.Kind() == KindStatBuff {
			buffExpired = true
		}
	}
	for i := len(kept); i < len(t.active); i++ {
		t.active[i] = nil
	}
	t.active = kept

	if buffExpired {
		t.buffsChanged()
	}
	if len(result.Expired) > 0 {
		slog.Debug("effects expired",
			"turn", turn,
			"expired", len(result.Expired))
	}
	return result
}

// BuffStats sums the active stat buffs as an extra item-stat source
func (t *Tracker) BuffStats() *stats.ItemStats {
	out := stats.NewItemStats()
	for _, a := range t.active {
		if buff, ok := a.Effect.(StatBuff); ok {
			// validated on Apply
			_ = out.AddStat(buff.Stat, buff.Value)
		}
	}
	return out
}

// Active returns copies of the active effects
func (t *Tracker) Active() []Active {
	out := make([]Active, 0, len(t.active))
	for _, a := range t.active {
		out = append(out, *a)
	}
	return out
}

// Clear drops every active effect
func (t *Tracker) Clear() {
	hadBuffs := false
	for _, a := range t.active {
		if a.Effect.Kind() == KindStatBuff {
			hadBuffs = true
		}
	}
	t.active = nil
	if hadBuffs {
		t.buffsChanged()
	}
}

func (t *Tracker) buffsChanged() {
	if t.onBuffChange != nil {
		t.onBuffChange()
	}
}
