// Package character wires the progression core together for one player
// character: attributes and level progression, the inventory store, the
// equipment coordinator, timed effects and the derived stat calculator.
//
// Every mutating call returns a Result built from the typed error of the
// component that handled it. Derived stats are recomputed lazily on the next
// read after any change.
package character

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/effects"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/inventory"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
	"github.com/KirkDiggler/rpg-progression/internal/stats"
)

// Config holds the dependencies for a Character
type Config struct {
	ID       string
	PlayerID string
	Name     string

	// Attributes are the starting attributes and the initial floor
	Attributes entities.AttributeSet

	Tuning *config.Config
	// Catalog may be nil; item operations then fail with DatabaseMissing
	Catalog     catalog.Catalog
	IDGenerator idgen.Generator
	Notifier    notify.Notifier
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	for _, attr := range entities.AllAttributes() {
		if c.Attributes.Get(attr) < 0 {
			vb.Field(string(attr), "must not be negative")
		}
	}

	return vb.Build()
}

// Character is the single-writer owner of one character's state
type Character struct {
	id       string
	playerID string
	name     string
	tuning   *config.Config
	catalog  catalog.Catalog
	notifier notify.Notifier
	clock    clock.Clock

	attrs       entities.AttributeSet
	progression *progression.Progression
	allocator   *progression.Allocator
	capacity    *inventory.CapacityManager
	inventory   *inventory.Store
	equipment   *equipment.Coordinator
	effects     *effects.Tracker
	calculator  *stats.Calculator

	currentHP float64
}

// New creates a level 1 character at full health
func New(cfg *Config) (*Character, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, err
	}

	prog, err := progression.New(&cfg.Tuning.Progression)
	if err != nil {
		return nil, err
	}
	capCfg := cfg.Tuning.Capacity
	capacity, err := inventory.NewCapacityManager(&capCfg)
	if err != nil {
		return nil, err
	}

	c, err := assemble(cfg, prog, capacity, cfg.Attributes, cfg.Attributes)
	if err != nil {
		return nil, err
	}
	c.currentHP = c.Stats().MaxHP

	slog.Info("character created",
		"character_id", c.id,
		"name", c.name,
		"level", c.progression.Level())

	return c, nil
}

// assemble builds the components around an existing progression and capacity
func assemble(
	cfg *Config,
	prog *progression.Progression,
	capacity *inventory.CapacityManager,
	attrs, floor entities.AttributeSet,
) (*Character, error) {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	c := &Character{
		id:          cfg.ID,
		playerID:    cfg.PlayerID,
		name:        cfg.Name,
		tuning:      cfg.Tuning,
		catalog:     cfg.Catalog,
		notifier:    notifier,
		clock:       clk,
		attrs:       attrs,
		progression: prog,
		capacity:    capacity,
		calculator:  stats.NewCalculator(cfg.Tuning.Stats),
	}

	var err error
	c.allocator, err = progression.NewAllocator(&progression.AllocatorConfig{
		Attributes:  &c.attrs,
		Floor:       floor,
		Progression: prog,
		OnChange:    c.calculator.MarkDirty,
	})
	if err != nil {
		return nil, err
	}

	c.inventory, err = inventory.NewStore(&inventory.Config{
		Catalog:     cfg.Catalog,
		Capacity:    capacity,
		IDGenerator: cfg.IDGenerator,
		Notifier:    notifier,
	})
	if err != nil {
		return nil, err
	}

	c.equipment, err = equipment.New(&equipment.Config{
		Inventory: c.inventory,
		Catalog:   cfg.Catalog,
		Notifier:  notifier,
		OnChange:  c.calculator.MarkDirty,
	})
	if err != nil {
		return nil, err
	}

	c.effects, err = effects.NewTracker(&effects.Config{
		IDGenerator:  cfg.IDGenerator,
		OnBuffChange: c.calculator.MarkDirty,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// ID returns the character ID
func (c *Character) ID() string {
	return c.id
}

// Name returns the character name
func (c *Character) Name() string {
	return c.name
}

// Attributes returns the current attributes
func (c *Character) Attributes() entities.AttributeSet {
	return c.attrs
}

// LevelState returns the progression state
func (c *Character) LevelState() entities.LevelState {
	return c.progression.State()
}

// Inventory exposes the inventory store for queries
func (c *Character) Inventory() *inventory.Store {
	return c.inventory
}

// Equipment exposes the equipment coordinator for queries
func (c *Character) Equipment() *equipment.Coordinator {
	return c.equipment
}

// Capacity exposes the capacity manager for queries
func (c *Character) Capacity() *inventory.CapacityManager {
	return c.capacity
}

// Effects exposes the timed effect tracker
func (c *Character) Effects() *effects.Tracker {
	return c.effects
}

// Calculator exposes the derived stat calculator
func (c *Character) Calculator() *stats.Calculator {
	return c.calculator
}

// SetCatalog attaches or replaces the item catalog on every component
func (c *Character) SetCatalog(cat catalog.Catalog) {
	c.catalog = cat
	c.inventory.SetCatalog(cat)
	c.equipment.SetCatalog(cat)
	c.calculator.MarkDirty()
}

// CurrentHP returns the current hit points
func (c *Character) CurrentHP() float64 {
	return c.currentHP
}

// Stats returns the derived stats, recomputing them if any input changed
// since the last read. A recompute publishes stats.recalculated.
func (c *Character) Stats() stats.DerivedStats {
	if !c.calculator.IsDirty() {
		return c.calculator.Cached()
	}

	items := c.equipment.ItemStats()
	items.Merge(c.effects.BuffStats())

	derived := c.calculator.Calculate(stats.Input{
		Level:      c.progression.Level(),
		Attributes: c.attrs,
		Items:      items,
		Weapon:     c.equipment.Weapon(),
	})
	if c.currentHP > derived.MaxHP {
		c.currentHP = derived.MaxHP
	}

	c.notifier.Notify(notify.EventStatsRecalculated, notify.Payload{
		"ad":     derived.AD,
		"ap":     derived.AP,
		"max_hp": derived.MaxHP,
	})
	return derived
}

// Heal restores hit points up to MaxHP and returns the amount applied
func (c *Character) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	maxHP := c.Stats().MaxHP
	before := c.currentHP
	c.currentHP = min(c.currentHP+amount, maxHP)
	return c.currentHP - before
}

// TakeDamage lowers hit points, never below zero, and returns the amount taken
func (c *Character) TakeDamage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := c.currentHP
	c.currentHP = max(c.currentHP-amount, 0)
	return before - c.currentHP
}

// Attack resolves one basic attack with the current stats and applies the
// lifesteal heal
func (c *Character) Attack(roller dice.Roller) (*stats.Hit, error) {
	hit, err := stats.RollHit(roller, c.Stats())
	if err != nil {
		return nil, err
	}
	hit.Healed = c.Heal(hit.Healed)
	return hit, nil
}
