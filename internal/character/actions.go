package character

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/effects"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/inventory"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Result is the outcome of a mutating call. Code is errors.CodeOK on success.
type Result struct {
	Success  bool
	Message  string
	Code     errors.Code
	Instance *entities.ItemInstance
	LevelUp  *progression.LevelUpResult
}

// Err returns the failure as a typed error, nil on success
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Code, r.Message)
}

func succeeded(message string) Result {
	return Result{Success: true, Message: message, Code: errors.CodeOK}
}

func failed(err error) Result {
	return Result{
		Success: false,
		Message: errors.GetMessage(err),
		Code:    errors.GetCode(err),
	}
}

// AddItem puts items into a location
func (c *Character) AddItem(itemID string, quantity int, loc entities.Location) Result {
	added, err := c.inventory.AddToLocation(itemID, quantity, loc)
	if err != nil {
		return failed(err)
	}
	r := succeeded(fmt.Sprintf("added %d %s to %s", quantity, itemID, loc))
	r.Instance = &added[len(added)-1]
	return r
}

// RemoveItem takes units from one instance
func (c *Character) RemoveItem(instanceID string, quantity int) Result {
	if err := c.inventory.RemoveItem(instanceID, quantity); err != nil {
		return failed(err)
	}
	return succeeded(fmt.Sprintf("removed %d from %s", quantity, instanceID))
}

// ConsumeItem uses up units of an item from a location
func (c *Character) ConsumeItem(itemID string, quantity int, loc entities.Location) Result {
	if err := c.inventory.RemoveByItemID(itemID, quantity, loc); err != nil {
		return failed(err)
	}
	return succeeded(fmt.Sprintf("consumed %d %s", quantity, itemID))
}

// MoveItem transfers units of an instance to another location
func (c *Character) MoveItem(instanceID string, quantity int, target entities.Location) Result {
	moved, err := c.inventory.MoveToLocation(instanceID, quantity, target)
	if err != nil {
		return failed(err)
	}
	r := succeeded(fmt.Sprintf("moved %d to %s", quantity, target))
	r.Instance = moved
	return r
}

// StoreAllItems moves every unequipped bag item to storage
func (c *Character) StoreAllItems() *inventory.StoreAllResult {
	return c.inventory.StoreAllItems(c.equipment.IsEquipped)
}

// EquipItem equips the first unequipped instance of an item
func (c *Character) EquipItem(itemID string) Result {
	equipped, err := c.equipment.EquipItem(itemID)
	if err != nil {
		return failed(err)
	}
	r := succeeded("equipped " + itemID)
	r.Instance = equipped
	return r
}

// EquipToSlot equips an instance into an explicit slot
func (c *Character) EquipToSlot(instanceID string, slot entities.EquipmentSlot) Result {
	equipped, err := c.equipment.EquipToSlot(instanceID, slot)
	if err != nil {
		return failed(err)
	}
	r := succeeded(fmt.Sprintf("equipped %s to %s", equipped.ItemID, slot))
	r.Instance = equipped
	return r
}

// UnequipSlot empties a slot
func (c *Character) UnequipSlot(slot entities.EquipmentSlot) Result {
	moved, err := c.equipment.UnequipSlot(slot)
	if err != nil {
		return failed(err)
	}
	r := succeeded(fmt.Sprintf("unequipped %s to %s", slot, moved.Location))
	r.Instance = moved
	return r
}

// UpgradeCapacity raises the slot ceiling of the bag, pocket or storage
func (c *Character) UpgradeCapacity(loc entities.Location, slots int) Result {
	var err error
	switch loc {
	case entities.LocationBag:
		err = c.capacity.UpgradeBag(slots)
	case entities.LocationPocket:
		err = c.capacity.UpgradePocket(slots)
	case entities.LocationStorage:
		err = c.capacity.UpgradeStorage(slots)
	default:
		err = errors.InvalidOperationf("%s capacity cannot be upgraded", loc)
	}
	if err != nil {
		return failed(err)
	}
	if c.capacity.IsUnlimited(loc) {
		return succeeded(fmt.Sprintf("%s is already unlimited", loc))
	}
	return succeeded(fmt.Sprintf("%s now holds %d slots", loc, c.capacity.MaxSlots(loc)))
}

// AllocatePoints spends unallocated points on an attribute
func (c *Character) AllocatePoints(attr entities.Attribute, points int) Result {
	if err := c.allocator.Allocate(attr, points); err != nil {
		return failed(err)
	}
	return succeeded(fmt.Sprintf("allocated %d to %s", points, attr))
}

// DeallocatePoints takes pending points back from an attribute
func (c *Character) DeallocatePoints(attr entities.Attribute, points int) Result {
	if err := c.allocator.Deallocate(attr, points); err != nil {
		return failed(err)
	}
	return succeeded(fmt.Sprintf("deallocated %d from %s", points, attr))
}

// ConfirmAllocation locks in pending points
func (c *Character) ConfirmAllocation() Result {
	pending := c.allocator.Pending()
	c.allocator.Confirm()
	return succeeded(fmt.Sprintf("confirmed %d points", pending))
}

// CancelAllocation refunds pending points
func (c *Character) CancelAllocation() Result {
	pending := c.allocator.Pending()
	c.allocator.Cancel()
	return succeeded(fmt.Sprintf("refunded %d points", pending))
}

// PendingPoints returns the points allocated since the last confirm
func (c *Character) PendingPoints() int {
	return c.allocator.Pending()
}

// GainExperience adds EXP. Levelling up refills hit points and publishes
// progression.level_up.
func (c *Character) GainExperience(amount int) Result {
	levelUp, err := c.progression.AddExperience(amount)
	if err != nil {
		return failed(err)
	}

	r := succeeded(fmt.Sprintf("gained %d experience", amount))
	r.LevelUp = levelUp
	if levelUp.LevelsGained == 0 {
		if levelUp.Capped {
			r.Message = fmt.Sprintf("level %d is the cap, %d experience discarded", levelUp.NewLevel, amount)
		}
		return r
	}

	c.calculator.MarkDirty()
	c.currentHP = c.Stats().MaxHP

	c.notifier.Notify(notify.EventLevelUp, notify.Payload{
		"new_level":            levelUp.NewLevel,
		"levels_gained":        levelUp.LevelsGained,
		"points_granted":       levelUp.PointsGranted,
		"transcendence_gained": levelUp.TranscendenceGained,
	})
	r.Message = fmt.Sprintf("reached level %d", levelUp.NewLevel)
	return r
}

// EnableTranscendence unlocks the levels past the normal cap
func (c *Character) EnableTranscendence() Result {
	if c.progression.TranscendenceEnabled() {
		return succeeded("transcendence already enabled")
	}
	c.progression.EnableTranscendence()
	return succeeded("transcendence enabled")
}

// ApplyEffect starts a timed effect
func (c *Character) ApplyEffect(effect effects.Effect) Result {
	id, err := c.effects.Apply(effect)
	if err != nil {
		return failed(err)
	}
	return succeeded("applied effect " + id)
}

// Tick advances timed effects by one turn and applies their healing
func (c *Character) Tick(turn int64) *effects.TickResult {
	result := c.effects.Tick(turn)
	if result.Healed > 0 {
		healed := c.Heal(float64(result.Healed))
		slog.Debug("heal over time",
			"character_id", c.id,
			"turn", turn,
			"healed", healed)
	}
	return result
}
