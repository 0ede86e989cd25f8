package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	catalogmock "github.com/KirkDiggler/rpg-progression/internal/catalog/mock"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/inventory"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/testutils/mocks"
)

func testCatalog() *catalog.Static {
	static, err := catalog.NewStatic(
		&entities.ItemDefinition{
			ID: "potion", Name: "Potion", Category: entities.CategoryConsumable,
			Stackable: true, MaxStack: 5,
		},
		&entities.ItemDefinition{
			ID: "ore", Name: "Ore", Category: entities.CategoryMaterial,
			Stackable: true, MaxStack: 10,
		},
		&entities.ItemDefinition{
			ID: "sword", Name: "Sword", Category: entities.CategoryWeapon,
			Weapon: &entities.WeaponProfile{AD: 10},
		},
		&entities.ItemDefinition{
			ID: "ring", Name: "Ring", Category: entities.CategoryAccessory,
			Bonuses: map[entities.Stat]float64{entities.StatAD: 3},
		},
		&entities.ItemDefinition{
			ID: "helmet", Name: "Helmet", Category: entities.CategoryGear,
			Gear: &entities.GearProfile{Slot: entities.GearSlotHelmet},
		},
		&entities.ItemDefinition{
			ID: "map", Name: "Map", Category: entities.CategoryQuest,
		},
	)
	if err != nil {
		panic(err)
	}
	return static
}

type StoreTestSuite struct {
	suite.Suite
	store    *inventory.Store
	capacity *inventory.CapacityManager
	recorder *notify.Recorder
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) newStore(capCfg inventory.CapacityConfig) *inventory.Store {
	var err error
	s.capacity, err = inventory.NewCapacityManager(&capCfg)
	s.Require().NoError(err)

	s.recorder = &notify.Recorder{}
	store, err := inventory.NewStore(&inventory.Config{
		Catalog:     testCatalog(),
		Capacity:    s.capacity,
		IDGenerator: idgen.NewSequential("inst"),
		Notifier:    s.recorder,
	})
	s.Require().NoError(err)
	return store
}

func (s *StoreTestSuite) SetupTest() {
	s.store = s.newStore(inventory.CapacityConfig{
		Storage:  inventory.Unlimited,
		Bag:      3,
		Pocket:   2,
		Equipped: 7,
	})
}

func (s *StoreTestSuite) assertWithinCapacity() {
	for _, loc := range entities.AllLocations() {
		s.True(s.capacity.CanAddItems(loc, s.store.Count(loc), 0))
		if !s.capacity.IsUnlimited(loc) {
			s.LessOrEqual(s.store.Count(loc), s.capacity.MaxSlots(loc), "location %s", loc)
		}
	}
}

func (s *StoreTestSuite) TestNewStoreValidation() {
	_, err := inventory.NewStore(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = inventory.NewStore(&inventory.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestAddStackableMergesThenSpills() {
	added, err := s.store.AddToLocation("potion", 3, entities.LocationBag)
	s.Require().NoError(err)
	s.Require().Len(added, 1)
	s.Equal("inst_1", added[0].ID)
	s.Equal(3, added[0].Quantity)

	added, err = s.store.AddToLocation("potion", 4, entities.LocationBag)
	s.Require().NoError(err)
	s.Require().Len(added, 2)
	s.Equal("inst_1", added[0].ID)
	s.Equal(5, added[0].Quantity)
	s.Equal(2, added[1].Quantity)

	s.Equal(2, s.store.Count(entities.LocationBag))
	s.Equal(7, s.store.Quantity("potion", entities.LocationBag))
	s.Equal(2, s.recorder.Count(notify.EventItemAdded))
	s.assertWithinCapacity()
}

func (s *StoreTestSuite) TestAddNonStackableCreatesSingletons() {
	added, err := s.store.AddToLocation("sword", 2, entities.LocationBag)
	s.Require().NoError(err)
	s.Require().Len(added, 2)
	s.NotEqual(added[0].ID, added[1].ID)
	for _, inst := range added {
		s.Equal(1, inst.Quantity)
	}
	s.Equal(2, s.store.Count(entities.LocationBag))
}

func (s *StoreTestSuite) TestAddIsAllOrNothing() {
	_, err := s.store.AddToLocation("ore", 5, entities.LocationBag)
	s.Require().NoError(err)

	// 5 fits into the existing stack, the other 21 need three new stacks
	_, err = s.store.AddToLocation("ore", 26, entities.LocationBag)
	s.Require().Error(err)
	s.Equal(errors.CodeBagFull, errors.GetCode(err))
	s.Equal(5, s.store.Quantity("ore", entities.LocationBag))
	s.Equal(1, s.store.Count(entities.LocationBag))

	_, err = s.store.AddToLocation("sword", 4, entities.LocationBag)
	s.Equal(errors.CodeBagFull, errors.GetCode(err))
	s.Equal(0, s.store.Quantity("sword", entities.LocationBag))
	s.Equal(1, s.recorder.Count(notify.EventItemAdded))
	s.assertWithinCapacity()
}

func (s *StoreTestSuite) TestAddRejections() {
	testCases := []struct {
		name     string
		itemID   string
		quantity int
		loc      entities.Location
		check    func(error) bool
	}{
		{name: "unknown item", itemID: "dragon", quantity: 1, loc: entities.LocationBag, check: errors.IsItemNotFound},
		{name: "zero quantity", itemID: "potion", quantity: 0, loc: entities.LocationBag, check: errors.IsInvalidOperation},
		{name: "negative quantity", itemID: "potion", quantity: -2, loc: entities.LocationBag, check: errors.IsInvalidOperation},
		{name: "equipped target", itemID: "sword", quantity: 1, loc: entities.LocationEquipped, check: errors.IsInvalidOperation},
		{name: "weapon in pocket", itemID: "sword", quantity: 1, loc: entities.LocationPocket, check: errors.IsInvalidOperation},
		{name: "accessory in pocket", itemID: "ring", quantity: 1, loc: entities.LocationPocket, check: errors.IsInvalidOperation},
		{name: "gear in pocket", itemID: "helmet", quantity: 1, loc: entities.LocationPocket, check: errors.IsInvalidOperation},
		{name: "unknown location", itemID: "potion", quantity: 1, loc: entities.Location("attic"), check: errors.IsInvalidOperation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.store.AddToLocation(tc.itemID, tc.quantity, tc.loc)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error %v", err)
		})
	}
	s.Empty(s.store.All())
}

func (s *StoreTestSuite) TestAddHugeQuantityIsRejected() {
	testCases := []struct {
		name   string
		itemID string
	}{
		{name: "stackable", itemID: "potion"},
		{name: "non-stackable", itemID: "sword"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var added []entities.ItemInstance
			var err error
			s.NotPanics(func() {
				added, err = s.store.AddToLocation(tc.itemID, math.MaxInt-3, entities.LocationBag)
			})
			s.Require().Error(err)
			s.Equal(errors.CodeBagFull, errors.GetCode(err))
			s.Nil(added)
		})
	}
	s.Equal(0, s.store.Count(entities.LocationBag))
	s.Equal(0, s.recorder.Count(notify.EventItemAdded))
}

func (s *StoreTestSuite) TestAddHugeQuantityLeavesStacksAlone() {
	_, err := s.store.AddToLocation("potion", 5, entities.LocationBag)
	s.Require().NoError(err)

	_, err = s.store.AddToLocation("potion", math.MaxInt, entities.LocationPocket)
	s.Equal(errors.CodePocketFull, errors.GetCode(err))
	s.Equal(5, s.store.Quantity("potion", entities.LocationBag))
	s.Equal(0, s.store.Count(entities.LocationPocket))
}

func (s *StoreTestSuite) TestPocketRejectsGear() {
	s.Require().Equal(0, s.store.Count(entities.LocationPocket))

	_, err := s.store.AddToLocation("helmet", 1, entities.LocationPocket)
	s.Require().Error(err)
	s.True(errors.IsInvalidOperation(err))
	s.Equal(string(entities.CategoryGear), errors.GetMeta(err)["category"])

	added, err := s.store.AddToLocation("helmet", 1, entities.LocationBag)
	s.Require().NoError(err)
	_, err = s.store.MoveToLocation(added[0].ID, 1, entities.LocationPocket)
	s.Require().Error(err)
	s.True(errors.IsInvalidOperation(err))

	inst, ok := s.store.Get(added[0].ID)
	s.Require().True(ok)
	s.Equal(entities.LocationBag, inst.Location)
	s.Equal(0, s.store.Count(entities.LocationPocket))
}

func (s *StoreTestSuite) TestPocketRestrictionIgnoresCapacity() {
	s.Require().NoError(s.capacity.UpgradePocket(50))

	_, err := s.store.AddToLocation("sword", 1, entities.LocationPocket)
	s.True(errors.IsInvalidOperation(err))

	added, err := s.store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	_, err = s.store.MoveToLocation(added[0].ID, 1, entities.LocationPocket)
	s.True(errors.IsInvalidOperation(err))

	_, err = s.store.AddToLocation("potion", 2, entities.LocationPocket)
	s.NoError(err)
}

func (s *StoreTestSuite) TestMissingCatalog() {
	s.store.SetCatalog(nil)

	_, err := s.store.AddToLocation("potion", 1, entities.LocationBag)
	s.True(errors.IsDatabaseMissing(err))
	s.Nil(s.store.ItemsByCategory(entities.LocationBag, entities.CategoryConsumable))

	s.store.SetCatalog(testCatalog())
	_, err = s.store.AddToLocation("potion", 1, entities.LocationBag)
	s.NoError(err)
}

func (s *StoreTestSuite) TestCatalogMock() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mockCatalog := catalogmock.NewMockCatalog(ctrl)
	s.store.SetCatalog(mockCatalog)

	mocks.ExpectCatalogMiss(mockCatalog, "ghost")
	_, err := s.store.AddToLocation("ghost", 1, entities.LocationBag)
	s.True(errors.IsItemNotFound(err))
	s.Equal("ghost", errors.GetMeta(err)["item_id"])

	mockCatalog.EXPECT().GetItem("ore").Return(&entities.ItemDefinition{
		ID: "ore", Category: entities.CategoryMaterial, Stackable: true, MaxStack: 10,
	}, true)
	added, err := s.store.AddToLocation("ore", 4, entities.LocationStorage)
	s.Require().NoError(err)
	s.Equal(4, added[0].Quantity)
}

func (s *StoreTestSuite) TestCatalogMockLookupsPerOperation() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mockCatalog := catalogmock.NewMockCatalog(ctrl)
	mocks.ExpectCatalog(mockCatalog,
		&entities.ItemDefinition{ID: "elixir", Category: entities.CategoryConsumable, Stackable: true, MaxStack: 3},
		&entities.ItemDefinition{ID: "charm", Category: entities.CategoryAccessory},
	)
	s.store.SetCatalog(mockCatalog)

	added, err := s.store.AddToLocation("elixir", 4, entities.LocationPocket)
	s.Require().NoError(err)
	s.Len(added, 2)
	_, err = s.store.AddToLocation("charm", 1, entities.LocationPocket)
	s.True(errors.IsInvalidOperation(err))
	_, err = s.store.AddToLocation("potion", 1, entities.LocationBag)
	s.True(errors.IsItemNotFound(err))

	s.Len(s.store.ItemsByCategory(entities.LocationPocket, entities.CategoryConsumable), 2)
}

func (s *StoreTestSuite) TestRemoveItem() {
	added, err := s.store.AddToLocation("potion", 5, entities.LocationBag)
	s.Require().NoError(err)
	id := added[0].ID

	s.Require().NoError(s.store.RemoveItem(id, 2))
	inst, ok := s.store.Get(id)
	s.Require().True(ok)
	s.Equal(3, inst.Quantity)

	err = s.store.RemoveItem(id, 4)
	s.True(errors.IsInsufficientQuantity(err))
	err = s.store.RemoveItem(id, 0)
	s.True(errors.IsInvalidOperation(err))
	err = s.store.RemoveItem("missing", 1)
	s.True(errors.IsItemNotFound(err))

	s.Require().NoError(s.store.RemoveItem(id, 3))
	_, ok = s.store.Get(id)
	s.False(ok)
	s.Equal(2, s.recorder.Count(notify.EventItemRemoved))
}

func (s *StoreTestSuite) TestRemoveByItemID() {
	_, err := s.store.AddToLocation("potion", 12, entities.LocationStorage)
	s.Require().NoError(err)
	s.Equal(3, s.store.Count(entities.LocationStorage))

	s.Require().NoError(s.store.RemoveByItemID("potion", 4, entities.LocationStorage))
	s.Equal(8, s.store.Quantity("potion", entities.LocationStorage))
	s.Equal(2, s.store.Count(entities.LocationStorage))

	first, ok := s.store.FindFirst("potion", entities.LocationStorage)
	s.Require().True(ok)
	s.Equal(5, first.Quantity)

	err = s.store.RemoveByItemID("potion", 9, entities.LocationStorage)
	s.True(errors.IsInsufficientQuantity(err))
	s.Equal(8, s.store.Quantity("potion", entities.LocationStorage))
}

func (s *StoreTestSuite) TestMoveRoundTripPreservesIdentity() {
	added, err := s.store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	id := added[0].ID

	moved, err := s.store.MoveToLocation(id, 1, entities.LocationStorage)
	s.Require().NoError(err)
	s.Equal(id, moved.ID)
	s.Equal(entities.LocationStorage, moved.Location)

	moved, err = s.store.MoveToLocation(id, 1, entities.LocationBag)
	s.Require().NoError(err)
	s.Equal(id, moved.ID)
	s.Equal(entities.LocationBag, moved.Location)
	s.Equal(1, s.store.TotalQuantity("sword"))

	s.Equal([]string{notify.EventItemAdded, notify.EventItemMoved, notify.EventItemMoved}, s.recorder.Types())
	from, _ := notify.Value[string](s.recorder.Notifications[2], "from")
	to, _ := notify.Value[string](s.recorder.Notifications[2], "to")
	s.Equal("storage", from)
	s.Equal("bag", to)
}

func (s *StoreTestSuite) TestPartialMoveThenMerge() {
	added, err := s.store.AddToLocation("potion", 5, entities.LocationBag)
	s.Require().NoError(err)
	bagID := added[0].ID

	moved, err := s.store.MoveToLocation(bagID, 2, entities.LocationStorage)
	s.Require().NoError(err)
	s.NotEqual(bagID, moved.ID)
	s.Equal(2, moved.Quantity)
	storageID := moved.ID

	remaining, ok := s.store.Get(bagID)
	s.Require().True(ok)
	s.Equal(3, remaining.Quantity)

	moved, err = s.store.MoveToLocation(bagID, 3, entities.LocationStorage)
	s.Require().NoError(err)
	s.Equal(storageID, moved.ID)
	s.Equal(5, moved.Quantity)

	_, ok = s.store.Get(bagID)
	s.False(ok)
	s.Equal(5, s.store.TotalQuantity("potion"))
}

func (s *StoreTestSuite) TestMoveRejections() {
	added, err := s.store.AddToLocation("potion", 3, entities.LocationBag)
	s.Require().NoError(err)
	id := added[0].ID

	_, err = s.store.MoveToLocation(id, 1, entities.LocationBag)
	s.True(errors.IsAlreadyInLocation(err))

	_, err = s.store.MoveToLocation(id, 1, entities.LocationEquipped)
	s.True(errors.IsInvalidOperation(err))

	_, err = s.store.MoveToLocation(id, 4, entities.LocationStorage)
	s.True(errors.IsInsufficientQuantity(err))

	_, err = s.store.MoveToLocation(id, 0, entities.LocationStorage)
	s.True(errors.IsInvalidOperation(err))

	_, err = s.store.MoveToLocation("missing", 1, entities.LocationStorage)
	s.True(errors.IsItemNotFound(err))
}

func (s *StoreTestSuite) TestMoveIntoFullDestination() {
	_, err := s.store.AddToLocation("ore", 1, entities.LocationPocket)
	s.Require().NoError(err)
	_, err = s.store.AddToLocation("map", 1, entities.LocationPocket)
	s.Require().NoError(err)

	added, err := s.store.AddToLocation("potion", 1, entities.LocationBag)
	s.Require().NoError(err)

	_, err = s.store.MoveToLocation(added[0].ID, 1, entities.LocationPocket)
	s.Equal(errors.CodePocketFull, errors.GetCode(err))

	inst, ok := s.store.Get(added[0].ID)
	s.Require().True(ok)
	s.Equal(entities.LocationBag, inst.Location)

	// merging into an existing stack needs no free slot
	ore, err := s.store.AddToLocation("ore", 3, entities.LocationBag)
	s.Require().NoError(err)
	merged, err := s.store.MoveToLocation(ore[0].ID, 3, entities.LocationPocket)
	s.Require().NoError(err)
	s.Equal(4, merged.Quantity)
	s.assertWithinCapacity()
}

func (s *StoreTestSuite) TestEquipAndUnequipInstance() {
	added, err := s.store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	id := added[0].ID

	equipped, err := s.store.EquipInstance(id)
	s.Require().NoError(err)
	s.Equal(id, equipped.ID)
	s.Equal(entities.LocationEquipped, equipped.Location)

	_, err = s.store.EquipInstance(id)
	s.True(errors.IsAlreadyInLocation(err))

	err = s.store.RemoveItem(id, 1)
	s.True(errors.IsInvalidOperation(err))

	_, err = s.store.MoveToLocation(id, 1, entities.LocationBag)
	s.True(errors.IsInvalidOperation(err))

	_, err = s.store.UnequipInstance(id, entities.LocationPocket)
	s.True(errors.IsInvalidOperation(err))

	unequipped, err := s.store.UnequipInstance(id, entities.LocationStorage)
	s.Require().NoError(err)
	s.Equal(id, unequipped.ID)
	s.Equal(entities.LocationStorage, unequipped.Location)

	_, err = s.store.UnequipInstance(id, entities.LocationBag)
	s.True(errors.IsInvalidOperation(err))
}

func (s *StoreTestSuite) TestEquipHonorsEquippedCapacity() {
	store := s.newStore(inventory.CapacityConfig{
		Storage:  inventory.Unlimited,
		Bag:      5,
		Pocket:   2,
		Equipped: 1,
	})
	added, err := store.AddToLocation("sword", 2, entities.LocationBag)
	s.Require().NoError(err)

	_, err = store.EquipInstance(added[0].ID)
	s.Require().NoError(err)

	_, err = store.EquipInstance(added[1].ID)
	s.Equal(errors.CodeEquipmentFull, errors.GetCode(err))
}

func (s *StoreTestSuite) TestStoreAllItems() {
	store := s.newStore(inventory.CapacityConfig{
		Storage:  1,
		Bag:      5,
		Pocket:   2,
		Equipped: 7,
	})
	swords, err := store.AddToLocation("sword", 2, entities.LocationBag)
	s.Require().NoError(err)
	_, err = store.AddToLocation("ring", 1, entities.LocationBag)
	s.Require().NoError(err)
	_, err = store.AddToLocation("potion", 2, entities.LocationPocket)
	s.Require().NoError(err)
	s.recorder.Reset()

	skip := swords[1].ID
	result := store.StoreAllItems(func(instanceID string) bool {
		return instanceID == skip
	})

	s.Equal(1, result.Moved)
	s.Require().Len(result.Failed, 1)
	s.Equal("ring", result.Failed[0].ItemID)
	s.Equal(errors.CodeStorageFull, errors.GetCode(result.Failed[0].Err))

	s.Equal(1, store.Count(entities.LocationStorage))
	s.Equal(2, store.Count(entities.LocationBag))
	s.Equal(1, store.Count(entities.LocationPocket))

	s.Equal([]string{notify.EventBulkStored}, s.recorder.Types())
	moved, _ := notify.Value[int](s.recorder.Notifications[0], "moved")
	s.Equal(1, moved)

	_, err = store.AddToLocation("map", 1, entities.LocationBag)
	s.Require().NoError(err)
	s.Equal(notify.EventItemAdded, s.recorder.Types()[1], "notifier restored after bulk store")
}

func (s *StoreTestSuite) TestQueries() {
	_, err := s.store.AddToLocation("potion", 7, entities.LocationBag)
	s.Require().NoError(err)
	_, err = s.store.AddToLocation("potion", 1, entities.LocationPocket)
	s.Require().NoError(err)
	_, err = s.store.AddToLocation("sword", 1, entities.LocationStorage)
	s.Require().NoError(err)

	s.Equal(8, s.store.TotalQuantity("potion"))
	s.True(s.store.Has("potion", 8))
	s.False(s.store.Has("potion", 9))
	s.Len(s.store.Items(entities.LocationBag), 2)
	s.Len(s.store.All(), 4)

	consumables := s.store.ItemsByCategory(entities.LocationBag, entities.CategoryConsumable)
	s.Len(consumables, 2)
	s.Empty(s.store.ItemsByCategory(entities.LocationBag, entities.CategoryWeapon))
	s.Len(s.store.ItemsByCategory(entities.LocationStorage, entities.CategoryWeapon), 1)

	found, ok := s.store.FindFirst("potion", entities.LocationStorage, entities.LocationPocket, entities.LocationBag)
	s.Require().True(ok)
	s.Equal(entities.LocationPocket, found.Location)

	_, ok = s.store.FindFirst("sword", entities.LocationBag)
	s.False(ok)

	// returned copies do not alias store state
	items := s.store.Items(entities.LocationBag)
	items[0].Quantity = 99
	s.Equal(7, s.store.Quantity("potion", entities.LocationBag))
}

func (s *StoreTestSuite) TestRestore() {
	valid := []entities.ItemInstance{
		{ID: "a", ItemID: "potion", Quantity: 4, Location: entities.LocationBag},
		{ID: "b", ItemID: "sword", Quantity: 1, Location: entities.LocationEquipped},
		{ID: "c", ItemID: "ore", Quantity: 2, Location: entities.LocationPocket},
	}
	s.Require().NoError(s.store.Restore(valid))
	s.Len(s.store.All(), 3)
	s.Equal("a", s.store.All()[0].ID)

	testCases := []struct {
		name      string
		instances []entities.ItemInstance
	}{
		{name: "unknown item", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "dragon", Quantity: 1, Location: entities.LocationBag},
		}},
		{name: "over stack limit", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "potion", Quantity: 6, Location: entities.LocationBag},
		}},
		{name: "weapon in pocket", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "sword", Quantity: 1, Location: entities.LocationPocket},
		}},
		{name: "duplicate id", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "map", Quantity: 1, Location: entities.LocationBag},
			{ID: "x", ItemID: "map", Quantity: 1, Location: entities.LocationBag},
		}},
		{name: "over capacity", instances: []entities.ItemInstance{
			{ID: "p1", ItemID: "map", Quantity: 1, Location: entities.LocationPocket},
			{ID: "p2", ItemID: "map", Quantity: 1, Location: entities.LocationPocket},
			{ID: "p3", ItemID: "map", Quantity: 1, Location: entities.LocationPocket},
		}},
		{name: "zero quantity", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "map", Quantity: 0, Location: entities.LocationBag},
		}},
		{name: "bad location", instances: []entities.ItemInstance{
			{ID: "x", ItemID: "map", Quantity: 1, Location: entities.Location("attic")},
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.store.Restore(tc.instances)
			s.True(errors.IsInvalidArgument(err), "unexpected error %v", err)
			s.Len(s.store.All(), 3, "failed restore leaves state untouched")
		})
	}
}

func (s *StoreTestSuite) TestNewIDsSkipRestoredOnes() {
	s.Require().NoError(s.store.Restore([]entities.ItemInstance{
		{ID: "inst_1", ItemID: "map", Quantity: 1, Location: entities.LocationBag},
	}))

	added, err := s.store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	s.Equal("inst_2", added[0].ID)
	s.Len(s.store.All(), 2)
}

func (s *StoreTestSuite) TestRestoreAdvancesSequence() {
	s.Require().NoError(s.store.Restore([]entities.ItemInstance{
		{ID: "inst_5", ItemID: "map", Quantity: 1, Location: entities.LocationStorage},
	}))

	added, err := s.store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	s.Equal("inst_6", added[0].ID)
}

type replayGenerator struct {
	ids []string
}

func (g *replayGenerator) Generate() string {
	id := g.ids[0]
	g.ids = g.ids[1:]
	return id
}

func (s *StoreTestSuite) TestInsertSkipsTakenIDs() {
	capacity, err := inventory.NewCapacityManager(&inventory.CapacityConfig{
		Storage: inventory.Unlimited, Bag: 3, Pocket: 2, Equipped: 7,
	})
	s.Require().NoError(err)
	store, err := inventory.NewStore(&inventory.Config{
		Catalog:     testCatalog(),
		Capacity:    capacity,
		IDGenerator: &replayGenerator{ids: []string{"x", "x", "y"}},
	})
	s.Require().NoError(err)
	s.Require().NoError(store.Restore([]entities.ItemInstance{
		{ID: "x", ItemID: "map", Quantity: 1, Location: entities.LocationBag},
	}))

	added, err := store.AddToLocation("sword", 1, entities.LocationBag)
	s.Require().NoError(err)
	s.Equal("y", added[0].ID)
}
