package character

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/inventory"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Snapshot exports the character as plain data. Pending allocation is kept
// as the difference between Attributes and AttributeFloor.
func (c *Character) Snapshot() *entities.CharacterSnapshot {
	return &entities.CharacterSnapshot{
		ID:                   c.id,
		PlayerID:             c.playerID,
		Name:                 c.name,
		Attributes:           c.attrs,
		AttributeFloor:       c.allocator.Floor(),
		Level:                c.progression.State(),
		TranscendenceEnabled: c.progression.TranscendenceEnabled(),
		ItemStats:            c.equipment.ItemStats().ToMap(),
		Inventory:            c.inventory.All(),
		Equipped:             c.equipment.Slots(),
		Capacity:             c.capacity.Limits(),
		CurrentHP:            c.currentHP,
		SavedAt:              c.clock.Now(),
	}
}

// Restore rebuilds a character from a snapshot. The identity fields of cfg
// are taken from the snapshot; every cache is re-derived rather than read.
func Restore(cfg *Config, snap *entities.CharacterSnapshot) (*Character, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if snap == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	restoreCfg := *cfg
	restoreCfg.ID = snap.ID
	restoreCfg.PlayerID = snap.PlayerID
	restoreCfg.Name = snap.Name
	restoreCfg.Attributes = snap.Attributes
	if err := restoreCfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := restoreCfg.Tuning.Validate(); err != nil {
		return nil, err
	}
	if snap.CurrentHP < 0 {
		return nil, errors.InvalidArgument("current hp must not be negative")
	}

	prog, err := progression.Restore(&restoreCfg.Tuning.Progression, snap.Level, snap.TranscendenceEnabled)
	if err != nil {
		return nil, errors.Wrap(err, "invalid level state")
	}

	capCfg := restoreCfg.Tuning.Capacity
	if len(snap.Capacity) > 0 {
		capCfg = inventory.CapacityConfigFromLimits(snap.Capacity)
	}
	capacity, err := inventory.NewCapacityManager(&capCfg)
	if err != nil {
		return nil, err
	}

	c, err := assemble(&restoreCfg, prog, capacity, snap.Attributes, snap.AttributeFloor)
	if err != nil {
		return nil, err
	}
	if err := c.inventory.Restore(snap.Inventory); err != nil {
		return nil, err
	}
	if err := c.equipment.Restore(snap.Equipped); err != nil {
		return nil, err
	}

	c.currentHP = min(snap.CurrentHP, c.Stats().MaxHP)

	slog.Info("character restored",
		"character_id", c.id,
		"level", c.progression.Level(),
		"items", len(snap.Inventory))

	return c, nil
}
