// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

// SnapshotBuilder provides a fluent interface for building CharacterSnapshot
// values. The result is plain data and is not checked against a catalog.
type SnapshotBuilder struct {
	snap *entities.CharacterSnapshot
}

// NewSnapshotBuilder starts from a level 1 character with default capacity
func NewSnapshotBuilder() *SnapshotBuilder {
	attrs := entities.AttributeSet{STR: 10, INT: 10, AGI: 10, END: 10, WIS: 10}
	return &SnapshotBuilder{
		snap: &entities.CharacterSnapshot{
			ID:             "char-test-123",
			Name:           "Test Character",
			Attributes:     attrs,
			AttributeFloor: attrs,
			Level:          entities.LevelState{Level: 1, ExpToNextLevel: 100},
			Inventory:      []entities.ItemInstance{},
			Capacity: map[entities.Location]int{
				entities.LocationStorage:  100,
				entities.LocationBag:      20,
				entities.LocationPocket:   4,
				entities.LocationEquipped: 7,
			},
			CurrentHP: 100,
			SavedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithID sets the character ID
func (b *SnapshotBuilder) WithID(id string) *SnapshotBuilder {
	b.snap.ID = id
	return b
}

// WithPlayerID sets the owning player
func (b *SnapshotBuilder) WithPlayerID(playerID string) *SnapshotBuilder {
	b.snap.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *SnapshotBuilder) WithName(name string) *SnapshotBuilder {
	b.snap.Name = name
	return b
}

// WithAttributes sets attributes and the allocation floor
func (b *SnapshotBuilder) WithAttributes(attrs, floor entities.AttributeSet) *SnapshotBuilder {
	b.snap.Attributes = attrs
	b.snap.AttributeFloor = floor
	return b
}

// WithLevel sets the level state
func (b *SnapshotBuilder) WithLevel(level entities.LevelState) *SnapshotBuilder {
	b.snap.Level = level
	return b
}

// WithItem adds an inventory instance
func (b *SnapshotBuilder) WithItem(id, itemID string, quantity int, loc entities.Location) *SnapshotBuilder {
	b.snap.Inventory = append(b.snap.Inventory, entities.ItemInstance{
		ID:       id,
		ItemID:   itemID,
		Quantity: quantity,
		Location: loc,
	})
	return b
}

// WithEquipped adds an equipped instance and maps it to a slot
func (b *SnapshotBuilder) WithEquipped(slot entities.EquipmentSlot, id, itemID string) *SnapshotBuilder {
	b.WithItem(id, itemID, 1, entities.LocationEquipped)
	if b.snap.Equipped == nil {
		b.snap.Equipped = make(map[entities.EquipmentSlot]string)
	}
	b.snap.Equipped[slot] = id
	return b
}

// WithItemStats sets the cached equipment bonuses
func (b *SnapshotBuilder) WithItemStats(itemStats map[entities.Stat]float64) *SnapshotBuilder {
	b.snap.ItemStats = itemStats
	return b
}

// WithCurrentHP sets current hit points
func (b *SnapshotBuilder) WithCurrentHP(hp float64) *SnapshotBuilder {
	b.snap.CurrentHP = hp
	return b
}

// WithSavedAt sets the save timestamp
func (b *SnapshotBuilder) WithSavedAt(t time.Time) *SnapshotBuilder {
	b.snap.SavedAt = t
	return b
}

// Build returns the snapshot. Each call returns the same pointer.
func (b *SnapshotBuilder) Build() *entities.CharacterSnapshot {
	return b.snap
}
