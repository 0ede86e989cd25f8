package entities

// Location is where an item instance currently lives
type Location string

// Item locations
const (
	LocationStorage  Location = "storage"
	LocationBag      Location = "bag"
	LocationPocket   Location = "pocket"
	LocationEquipped Location = "equipped"
)

// String returns the string representation of the location
func (l Location) String() string {
	return string(l)
}

// IsValid checks if the location is one of the four known locations
func (l Location) IsValid() bool {
	switch l {
	case LocationStorage, LocationBag, LocationPocket, LocationEquipped:
		return true
	default:
		return false
	}
}

// AllLocations returns every location
func AllLocations() []Location {
	return []Location{LocationStorage, LocationBag, LocationPocket, LocationEquipped}
}

// LocationFromString converts a string to a Location
func LocationFromString(s string) (Location, bool) {
	loc := Location(s)
	if loc.IsValid() {
		return loc, true
	}
	return "", false
}

// ItemCategory is the closed set of item kinds
type ItemCategory string

// Item categories
const (
	CategoryWeapon     ItemCategory = "weapon"
	CategoryGear       ItemCategory = "gear"
	CategoryAccessory  ItemCategory = "accessory"
	CategoryConsumable ItemCategory = "consumable"
	CategoryMaterial   ItemCategory = "material"
	CategoryQuest      ItemCategory = "quest"
)

// IsValid checks if the category is known
func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryWeapon, CategoryGear, CategoryAccessory, CategoryConsumable, CategoryMaterial, CategoryQuest:
		return true
	default:
		return false
	}
}

// IsEquippable reports whether items of this category go into an equipment slot
func (c ItemCategory) IsEquippable() bool {
	return c == CategoryWeapon || c == CategoryGear || c == CategoryAccessory
}

// WeaponProfile carries the weapon-specific contributions to derived stats
type WeaponProfile struct {
	AD          float64 `json:"ad" yaml:"ad"`
	AP          float64 `json:"ap" yaml:"ap"`
	AttackSpeed float64 `json:"attack_speed" yaml:"attack_speed"`
	CritRate    float64 `json:"crit_rate" yaml:"crit_rate"`
	STRScaling  float64 `json:"str_scaling" yaml:"str_scaling"`
	INTScaling  float64 `json:"int_scaling" yaml:"int_scaling"`
	AGIScaling  float64 `json:"agi_scaling" yaml:"agi_scaling"`
}

// GearProfile names the slot an armor piece occupies
type GearProfile struct {
	Slot GearSlot `json:"slot" yaml:"slot"`
}

// ItemDefinition is a read-only catalog record
type ItemDefinition struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Category  ItemCategory     `json:"category" yaml:"category"`
	Stackable bool             `json:"stackable" yaml:"stackable"`
	MaxStack  int              `json:"max_stack,omitempty" yaml:"max_stack,omitempty"`
	Bonuses   map[Stat]float64 `json:"bonuses,omitempty" yaml:"bonuses,omitempty"`
	Weapon    *WeaponProfile   `json:"weapon,omitempty" yaml:"weapon,omitempty"`
	Gear      *GearProfile     `json:"gear,omitempty" yaml:"gear,omitempty"`
}

// StackLimit returns how many units fit in one instance
func (d *ItemDefinition) StackLimit() int {
	if !d.Stackable {
		return 1
	}
	if d.MaxStack <= 0 {
		return 1
	}
	return d.MaxStack
}

// CanEquipToSlot checks if this item can be equipped to the given slot
func (d *ItemDefinition) CanEquipToSlot(slot EquipmentSlot) bool {
	switch d.Category {
	case CategoryWeapon:
		return slot == SlotWeapon
	case CategoryGear:
		return d.Gear != nil && d.Gear.Slot.EquipmentSlot() == slot
	case CategoryAccessory:
		return slot.IsAccessory()
	default:
		return false
	}
}

// ItemInstance is a concrete stack of an item at one location
type ItemInstance struct {
	ID       string   `json:"id"`
	ItemID   string   `json:"item_id"`
	Quantity int      `json:"quantity"`
	Location Location `json:"location"`
}
