package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestValidateDefinition() {
	testCases := []struct {
		name  string
		def   *entities.ItemDefinition
		valid bool
	}{
		{
			name:  "valid stackable material",
			def:   &entities.ItemDefinition{ID: "ore", Category: entities.CategoryMaterial, Stackable: true, MaxStack: 99},
			valid: true,
		},
		{
			name: "valid weapon",
			def: &entities.ItemDefinition{
				ID:       "sword",
				Category: entities.CategoryWeapon,
				Weapon:   &entities.WeaponProfile{AD: 10},
			},
			valid: true,
		},
		{
			name:  "nil definition",
			def:   nil,
			valid: false,
		},
		{
			name:  "missing id",
			def:   &entities.ItemDefinition{Category: entities.CategoryQuest},
			valid: false,
		},
		{
			name:  "unknown category",
			def:   &entities.ItemDefinition{ID: "x", Category: "relic"},
			valid: false,
		},
		{
			name:  "stackable without max stack",
			def:   &entities.ItemDefinition{ID: "x", Category: entities.CategoryConsumable, Stackable: true},
			valid: false,
		},
		{
			name:  "weapon without profile",
			def:   &entities.ItemDefinition{ID: "x", Category: entities.CategoryWeapon},
			valid: false,
		},
		{
			name: "gear with bad slot",
			def: &entities.ItemDefinition{
				ID:       "x",
				Category: entities.CategoryGear,
				Gear:     &entities.GearProfile{Slot: "cape"},
			},
			valid: false,
		},
		{
			name: "stackable accessory",
			def: &entities.ItemDefinition{
				ID:        "x",
				Category:  entities.CategoryAccessory,
				Stackable: true,
				MaxStack:  5,
			},
			valid: false,
		},
		{
			name: "unknown bonus stat",
			def: &entities.ItemDefinition{
				ID:       "x",
				Category: entities.CategoryAccessory,
				Bonuses:  map[entities.Stat]float64{"luck": 1},
			},
			valid: false,
		},
		{
			name: "consumable with weapon profile",
			def: &entities.ItemDefinition{
				ID:       "x",
				Category: entities.CategoryConsumable,
				Weapon:   &entities.WeaponProfile{},
			},
			valid: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := catalog.ValidateDefinition(tc.def)
			if tc.valid {
				s.NoError(err)
			} else {
				s.True(errors.IsInvalidArgument(err))
			}
		})
	}
}

func (s *CatalogTestSuite) TestStaticRejectsDuplicates() {
	def := &entities.ItemDefinition{ID: "ore", Category: entities.CategoryMaterial, Stackable: true, MaxStack: 10}
	_, err := catalog.NewStatic(def, def)
	s.True(errors.IsAlreadyExists(err))
}

func (s *CatalogTestSuite) TestLoadYAML() {
	doc := `
items:
  - id: ruby_ring
    name: Ruby Ring
    category: accessory
    bonuses:
      ad: 5
  - id: leather_cap
    name: Leather Cap
    category: gear
    gear:
      slot: helmet
`
	c, err := catalog.LoadYAML(strings.NewReader(doc))
	s.Require().NoError(err)
	s.Equal(2, c.Len())

	ring, ok := c.GetItem("ruby_ring")
	s.Require().True(ok)
	s.Equal(entities.CategoryAccessory, ring.Category)
	s.InDelta(5, ring.Bonuses[entities.StatAD], 1e-9)

	helmet, ok := c.GetItem("leather_cap")
	s.Require().True(ok)
	s.Equal(entities.GearSlotHelmet, helmet.Gear.Slot)

	_, ok = c.GetItem("missing")
	s.False(ok)

	items := c.Items()
	s.Equal("leather_cap", items[0].ID)
	s.Equal("ruby_ring", items[1].ID)
}

func (s *CatalogTestSuite) TestLoadYAMLErrors() {
	_, err := catalog.LoadYAML(strings.NewReader("items: [this is: broken"))
	s.True(errors.IsInvalidArgument(err))

	_, err = catalog.LoadYAML(strings.NewReader("items:\n  - id: x\n    category: relic\n"))
	s.True(errors.IsInvalidArgument(err))

	empty, err := catalog.LoadYAML(strings.NewReader(""))
	s.Require().NoError(err)
	s.Equal(0, empty.Len())
}

func (s *CatalogTestSuite) TestDefaultCatalog() {
	c, err := catalog.Default()
	s.Require().NoError(err)

	sword, ok := c.GetItem("iron_sword")
	s.Require().True(ok)
	s.Require().NotNil(sword.Weapon)
	s.True(sword.CanEquipToSlot(entities.SlotWeapon))

	potion, ok := c.GetItem("small_potion")
	s.Require().True(ok)
	s.Equal(20, potion.StackLimit())

	ring, ok := c.GetItem("ruby_ring")
	s.Require().True(ok)
	s.True(ring.CanEquipToSlot(entities.SlotAccessory2))
	s.False(ring.CanEquipToSlot(entities.SlotHelmet))
}
