// Package catalog provides read-only item definitions to the inventory.
// The character core consumes a Catalog; it never owns or mutates one.
package catalog

//go:generate mockgen -destination=mock/mock_catalog.go -package=catalogmock github.com/KirkDiggler/rpg-progression/internal/catalog Catalog

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Catalog looks up item definitions by id
type Catalog interface {
	// GetItem returns the definition and true, or nil and false when unknown
	GetItem(id string) (*entities.ItemDefinition, bool)
}

// ValidateDefinition checks that a definition is internally consistent
func ValidateDefinition(def *entities.ItemDefinition) error {
	if def == nil {
		return errors.InvalidArgument("item definition is required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", def.ID, vb)
	if !def.Category.IsValid() {
		vb.InvalidField("category", "unknown category "+string(def.Category))
	}
	if def.Stackable && def.MaxStack < 1 {
		vb.Field("max_stack", "must be at least 1 for stackable items")
	}
	if def.Stackable && def.Category.IsEquippable() {
		vb.Field("stackable", "equippable items cannot stack")
	}
	for stat := range def.Bonuses {
		if !stat.IsValid() {
			vb.Fieldf("bonuses", "unknown stat %s", stat)
		}
	}

	switch def.Category {
	case entities.CategoryWeapon:
		if def.Weapon == nil {
			vb.RequiredField("weapon")
		}
	case entities.CategoryGear:
		if def.Gear == nil {
			vb.RequiredField("gear")
		} else if !def.Gear.Slot.IsValid() {
			vb.InvalidField("gear.slot", "unknown gear slot "+string(def.Gear.Slot))
		}
	}
	if def.Category != entities.CategoryWeapon && def.Weapon != nil {
		vb.Field("weapon", "only weapons carry a weapon profile")
	}
	if def.Category != entities.CategoryGear && def.Gear != nil {
		vb.Field("gear", "only gear carries a gear profile")
	}

	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid item %q", def.ID)
	}
	return nil
}
