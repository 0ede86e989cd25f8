package entities

// EquipmentSlot represents one of the fixed equipment slots
type EquipmentSlot string

// Define all available equipment slots
const (
	SlotWeapon     EquipmentSlot = "weapon"
	SlotHelmet     EquipmentSlot = "helmet"
	SlotChest      EquipmentSlot = "chest"
	SlotGloves     EquipmentSlot = "gloves"
	SlotBoots      EquipmentSlot = "boots"
	SlotAccessory1 EquipmentSlot = "accessory1"
	SlotAccessory2 EquipmentSlot = "accessory2"
)

// String returns the string representation of the equipment slot
func (s EquipmentSlot) String() string {
	return string(s)
}

// IsValid checks if the equipment slot is valid
func (s EquipmentSlot) IsValid() bool {
	switch s {
	case SlotWeapon, SlotHelmet, SlotChest, SlotGloves, SlotBoots, SlotAccessory1, SlotAccessory2:
		return true
	default:
		return false
	}
}

// IsAccessory reports whether the slot is one of the two accessory slots
func (s EquipmentSlot) IsAccessory() bool {
	return s == SlotAccessory1 || s == SlotAccessory2
}

// AllEquipmentSlots returns a slice of all valid equipment slots
func AllEquipmentSlots() []EquipmentSlot {
	return []EquipmentSlot{
		SlotWeapon,
		SlotHelmet,
		SlotChest,
		SlotGloves,
		SlotBoots,
		SlotAccessory1,
		SlotAccessory2,
	}
}

// EquipmentSlotFromString converts a string to an EquipmentSlot
// Returns the slot and true if valid, empty slot and false if invalid
func EquipmentSlotFromString(s string) (EquipmentSlot, bool) {
	slot := EquipmentSlot(s)
	if slot.IsValid() {
		return slot, true
	}
	return "", false
}

// GearSlot is the subset of slots armor pieces can occupy
type GearSlot string

// Gear slots
const (
	GearSlotHelmet GearSlot = "helmet"
	GearSlotChest  GearSlot = "chest"
	GearSlotGloves GearSlot = "gloves"
	GearSlotBoots  GearSlot = "boots"
)

// IsValid checks if the gear slot is valid
func (g GearSlot) IsValid() bool {
	switch g {
	case GearSlotHelmet, GearSlotChest, GearSlotGloves, GearSlotBoots:
		return true
	default:
		return false
	}
}

// EquipmentSlot returns the equipment slot matching this gear slot
func (g GearSlot) EquipmentSlot() EquipmentSlot {
	switch g {
	case GearSlotHelmet:
		return SlotHelmet
	case GearSlotChest:
		return SlotChest
	case GearSlotGloves:
		return SlotGloves
	case GearSlotBoots:
		return SlotBoots
	default:
		return ""
	}
}
