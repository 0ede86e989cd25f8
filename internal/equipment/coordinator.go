// Package equipment maps equipped item instances to the seven equipment
// slots. Every equip and unequip runs inside a rollback scope so a failed
// step leaves the inventory and the slot mapping exactly as they were.
package equipment

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rollback"
	"github.com/KirkDiggler/rpg-progression/internal/stats"
)

//go:generate mockgen -destination=mock/mock_inventory.go -package=equipmentmock github.com/KirkDiggler/rpg-progression/internal/equipment Inventory

// Inventory is the part of the inventory store the coordinator drives
type Inventory interface {
	Get(instanceID string) (*entities.ItemInstance, bool)
	Items(loc entities.Location) []entities.ItemInstance
	FindFirst(itemID string, locs ...entities.Location) (*entities.ItemInstance, bool)
	EquipInstance(instanceID string) (*entities.ItemInstance, error)
	UnequipInstance(instanceID string, target entities.Location) (*entities.ItemInstance, error)
}

// searchOrder is where EquipItem looks for an unequipped instance
var searchOrder = []entities.Location{
	entities.LocationBag,
	entities.LocationPocket,
	entities.LocationStorage,
}

// Config holds the dependencies for a Coordinator
type Config struct {
	Inventory Inventory
	// Catalog may be nil at construction; equip calls then fail with DatabaseMissing
	Catalog  catalog.Catalog
	Notifier notify.Notifier
	// OnChange runs after every committed change, typically Calculator.MarkDirty
	OnChange func()
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Inventory == nil {
		vb.RequiredField("Inventory")
	}

	return vb.Build()
}

// Coordinator owns the slot mapping and the equipped-item stat accumulator
type Coordinator struct {
	inventory Inventory
	catalog   catalog.Catalog
	notifier  notify.Notifier
	onChange  func()
	slots     map[entities.EquipmentSlot]string
	itemStats *stats.ItemStats
}

// New creates a coordinator with every slot empty
func New(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}

	return &Coordinator{
		inventory: cfg.Inventory,
		catalog:   cfg.Catalog,
		notifier:  notifier,
		onChange:  cfg.OnChange,
		slots:     make(map[entities.EquipmentSlot]string),
		itemStats: stats.NewItemStats(),
	}, nil
}

// SetCatalog attaches or replaces the item catalog
func (c *Coordinator) SetCatalog(cat catalog.Catalog) {
	c.catalog = cat
}

func (c *Coordinator) lookup(itemID string) (*entities.ItemDefinition, error) {
	if c.catalog == nil {
		slog.Error("equipment change without item catalog", "item_id", itemID)
		return nil, errors.DatabaseMissing("item catalog is not available")
	}
	def, ok := c.catalog.GetItem(itemID)
	if !ok || def == nil {
		return nil, errors.ItemNotFoundf("item %s not found in catalog", itemID).WithMeta("item_id", itemID)
	}
	return def, nil
}

// ResolveSlot picks the slot an item goes to. Accessories take the first
// empty accessory slot and fall back to swapping Accessory1.
func (c *Coordinator) ResolveSlot(def *entities.ItemDefinition) (entities.EquipmentSlot, error) {
	switch def.Category {
	case entities.CategoryWeapon:
		return entities.SlotWeapon, nil
	case entities.CategoryGear:
		if def.Gear == nil || !def.Gear.Slot.IsValid() {
			return "", errors.SlotIncompatiblef("gear %s has no slot", def.ID).WithMeta("item_id", def.ID)
		}
		return def.Gear.Slot.EquipmentSlot(), nil
	case entities.CategoryAccessory:
		if c.slots[entities.SlotAccessory1] == "" {
			return entities.SlotAccessory1, nil
		}
		if c.slots[entities.SlotAccessory2] == "" {
			return entities.SlotAccessory2, nil
		}
		return entities.SlotAccessory1, nil
	default:
		return "", errors.SlotIncompatiblef("%s items cannot be equipped", def.Category).
			WithMeta("item_id", def.ID).
			WithMeta("category", string(def.Category))
	}
}

// EquipItem equips the first unequipped instance of an item, searching the
// bag, then the pocket, then storage
func (c *Coordinator) EquipItem(itemID string) (*entities.ItemInstance, error) {
	def, err := c.lookup(itemID)
	if err != nil {
		return nil, err
	}
	slot, err := c.ResolveSlot(def)
	if err != nil {
		return nil, err
	}
	inst, ok := c.inventory.FindFirst(itemID, searchOrder...)
	if !ok {
		return nil, errors.ItemNotFoundf("no unequipped %s in inventory", itemID).WithMeta("item_id", itemID)
	}
	return c.EquipToSlot(inst.ID, slot)
}

// EquipToSlot equips an instance into an explicit slot, swapping out the
// current occupant
func (c *Coordinator) EquipToSlot(instanceID string, slot entities.EquipmentSlot) (*entities.ItemInstance, error) {
	if !slot.IsValid() {
		return nil, errors.InvalidOperationf("unknown equipment slot %q", slot)
	}
	inst, ok := c.inventory.Get(instanceID)
	if !ok {
		return nil, errors.ItemNotFoundf("instance %s not found", instanceID).WithMeta("instance_id", instanceID)
	}
	if inst.Location == entities.LocationEquipped {
		return nil, errors.AlreadyInLocationf("instance %s is already equipped", instanceID).
			WithMeta("instance_id", instanceID)
	}
	def, err := c.lookup(inst.ItemID)
	if err != nil {
		return nil, err
	}
	if !def.Category.IsEquippable() || !def.CanEquipToSlot(slot) {
		return nil, errors.SlotIncompatiblef("%s cannot be equipped to %s", def.ID, slot).
			WithMeta("item_id", def.ID).
			WithMeta("slot", string(slot))
	}

	scope := rollback.Begin("equip")
	defer scope.Close()

	previous := c.slots[slot]
	if previous != "" {
		if _, err := c.unequipToFreeLocation(previous); err != nil {
			return nil, errors.Wrapf(err, "failed to unequip %s from %s", previous, slot)
		}
		scope.OnRollback("re-equip previous occupant", func() error {
			_, err := c.inventory.EquipInstance(previous)
			return err
		})
	}

	source := inst.Location
	equipped, err := c.inventory.EquipInstance(instanceID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to equip %s", instanceID)
	}
	scope.OnRollback("return instance to "+string(source), func() error {
		_, err := c.inventory.UnequipInstance(equipped.ID, source)
		return err
	})

	c.slots[slot] = equipped.ID
	scope.OnRollback("restore slot mapping", func() error {
		if previous == "" {
			delete(c.slots, slot)
		} else {
			c.slots[slot] = previous
		}
		return nil
	})

	if err := c.rebuildItemStats(); err != nil {
		return nil, err
	}

	scope.Commit()
	c.changed("equip", slot, equipped.ID, previous)

	slog.Info("item equipped",
		"slot", slot,
		"instance_id", equipped.ID,
		"item_id", equipped.ItemID,
		"replaced", previous)

	return equipped, nil
}

// UnequipSlot empties a slot, sending the item to the bag or, when the bag
// is full, to storage
func (c *Coordinator) UnequipSlot(slot entities.EquipmentSlot) (*entities.ItemInstance, error) {
	if !slot.IsValid() {
		return nil, errors.InvalidOperationf("unknown equipment slot %q", slot)
	}
	instanceID := c.slots[slot]
	if instanceID == "" {
		return nil, errors.InvalidOperationf("slot %s is empty", slot).WithMeta("slot", string(slot))
	}

	scope := rollback.Begin("unequip")
	defer scope.Close()

	moved, err := c.unequipToFreeLocation(instanceID)
	if err != nil {
		return nil, err
	}
	scope.OnRollback("re-equip instance", func() error {
		_, err := c.inventory.EquipInstance(instanceID)
		return err
	})

	delete(c.slots, slot)
	scope.OnRollback("restore slot mapping", func() error {
		c.slots[slot] = instanceID
		return nil
	})

	if err := c.rebuildItemStats(); err != nil {
		return nil, err
	}

	scope.Commit()
	c.changed("unequip", slot, "", instanceID)

	slog.Info("item unequipped",
		"slot", slot,
		"instance_id", instanceID,
		"location", moved.Location)

	return moved, nil
}

// unequipToFreeLocation moves an equipped instance to the bag, falling back
// to storage. When neither has room the bag error is returned.
func (c *Coordinator) unequipToFreeLocation(instanceID string) (*entities.ItemInstance, error) {
	moved, err := c.inventory.UnequipInstance(instanceID, entities.LocationBag)
	if err == nil {
		return moved, nil
	}
	if !errors.IsCapacityFull(err) {
		return nil, err
	}

	moved, storageErr := c.inventory.UnequipInstance(instanceID, entities.LocationStorage)
	if storageErr != nil {
		if errors.IsCapacityFull(storageErr) {
			return nil, err
		}
		return nil, storageErr
	}
	return moved, nil
}

// rebuildItemStats sums the bonuses of every equipped item except the
// weapon, whose contribution enters through its weapon profile
func (c *Coordinator) rebuildItemStats() error {
	rebuilt := stats.NewItemStats()
	for _, slot := range entities.AllEquipmentSlots() {
		instanceID := c.slots[slot]
		if instanceID == "" || slot == entities.SlotWeapon {
			continue
		}
		inst, ok := c.inventory.Get(instanceID)
		if !ok {
			return errors.Internalf("slot %s references missing instance %s", slot, instanceID)
		}
		def, err := c.lookup(inst.ItemID)
		if err != nil {
			return err
		}
		if err := rebuilt.AddBonuses(def.Bonuses); err != nil {
			return errors.Wrapf(err, "invalid bonuses on %s", def.ID)
		}
	}
	c.itemStats = rebuilt
	return nil
}

func (c *Coordinator) changed(action string, slot entities.EquipmentSlot, equipped, removed string) {
	if c.onChange != nil {
		c.onChange()
	}
	c.notifier.Notify(notify.EventEquipmentChanged, notify.Payload{
		"action":   action,
		"slot":     string(slot),
		"equipped": equipped,
		"removed":  removed,
	})
}

// Slots exports the slot mapping as slot to instance ID
func (c *Coordinator) Slots() map[entities.EquipmentSlot]string {
	out := make(map[entities.EquipmentSlot]string, len(c.slots))
	for slot, id := range c.slots {
		out[slot] = id
	}
	return out
}

// InstanceIn returns the instance ID in a slot, empty when the slot is free
func (c *Coordinator) InstanceIn(slot entities.EquipmentSlot) string {
	return c.slots[slot]
}

// ItemIn returns the catalog definition of the item in a slot
func (c *Coordinator) ItemIn(slot entities.EquipmentSlot) (*entities.ItemDefinition, bool) {
	instanceID := c.slots[slot]
	if instanceID == "" || c.catalog == nil {
		return nil, false
	}
	inst, ok := c.inventory.Get(instanceID)
	if !ok {
		return nil, false
	}
	return c.catalog.GetItem(inst.ItemID)
}

// Weapon returns the profile of the equipped weapon, nil when none
func (c *Coordinator) Weapon() *entities.WeaponProfile {
	def, ok := c.ItemIn(entities.SlotWeapon)
	if !ok {
		return nil
	}
	return def.Weapon
}

// IsEquipped reports whether an instance occupies any slot
func (c *Coordinator) IsEquipped(instanceID string) bool {
	for _, id := range c.slots {
		if id == instanceID {
			return true
		}
	}
	return false
}

// ItemStats returns a copy of the accumulated non-weapon bonuses
func (c *Coordinator) ItemStats() *stats.ItemStats {
	return c.itemStats.Clone()
}

// Restore re-binds slots from a snapshot. Every referenced instance must be
// equipped and fit its slot, and every equipped instance must be referenced
// exactly once.
func (c *Coordinator) Restore(slots map[entities.EquipmentSlot]string) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]entities.EquipmentSlot, len(slots))

	for slot, instanceID := range slots {
		field := "equipped[" + string(slot) + "]"
		if !slot.IsValid() {
			vb.InvalidField(field, "unknown slot")
			continue
		}
		if instanceID == "" {
			continue
		}
		if other, dup := seen[instanceID]; dup {
			vb.Fieldf(field, "instance %s already bound to %s", instanceID, other)
			continue
		}
		seen[instanceID] = slot

		inst, ok := c.inventory.Get(instanceID)
		if !ok {
			vb.Fieldf(field, "unknown instance %s", instanceID)
			continue
		}
		if inst.Location != entities.LocationEquipped {
			vb.Fieldf(field, "instance %s is in %s", instanceID, inst.Location)
			continue
		}
		def, err := c.lookup(inst.ItemID)
		if err != nil {
			if errors.IsDatabaseMissing(err) {
				return err
			}
			vb.Fieldf(field, "unknown item %s", inst.ItemID)
			continue
		}
		if !def.CanEquipToSlot(slot) {
			vb.Fieldf(field, "%s does not fit the slot", def.ID)
		}
	}
	for _, inst := range c.inventory.Items(entities.LocationEquipped) {
		if _, ok := seen[inst.ID]; !ok {
			vb.Fieldf("equipped", "instance %s is equipped but not in a slot", inst.ID)
		}
	}
	if err := vb.Build(); err != nil {
		return errors.Wrap(err, "invalid equipment snapshot")
	}

	previous := c.slots
	c.slots = make(map[entities.EquipmentSlot]string, len(slots))
	for slot, instanceID := range slots {
		if instanceID != "" {
			c.slots[slot] = instanceID
		}
	}
	if err := c.rebuildItemStats(); err != nil {
		c.slots = previous
		return err
	}
	if c.onChange != nil {
		c.onChange()
	}
	return nil
}
