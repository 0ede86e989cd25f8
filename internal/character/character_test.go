package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/character"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/effects"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
)

type fixedRoller struct {
	value int
}

func (r *fixedRoller) Roll(_ int) (int, error) {
	return r.value, nil
}

func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.value
	}
	return out, nil
}

func tens() entities.AttributeSet {
	return entities.AttributeSet{STR: 10, INT: 10, AGI: 10, END: 10, WIS: 10}
}

type CharacterTestSuite struct {
	suite.Suite
	catalog   *catalog.Static
	tuning    *config.Config
	recorder  *notify.Recorder
	clock     *clock.Fixed
	character *character.Character
}

func TestCharacterSuite(t *testing.T) {
	suite.Run(t, new(CharacterTestSuite))
}

func (s *CharacterTestSuite) config(attrs entities.AttributeSet) *character.Config {
	return &character.Config{
		ID:          "char_1",
		PlayerID:    "player_1",
		Name:        "Aria",
		Attributes:  attrs,
		Tuning:      s.tuning,
		Catalog:     s.catalog,
		IDGenerator: idgen.NewSequential("inst"),
		Notifier:    s.recorder,
		Clock:       s.clock,
	}
}

func (s *CharacterTestSuite) SetupTest() {
	var err error
	s.catalog, err = catalog.Default()
	s.Require().NoError(err)

	s.tuning = config.Default()
	s.recorder = &notify.Recorder{}
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	s.character, err = character.New(s.config(tens()))
	s.Require().NoError(err)
}

func (s *CharacterTestSuite) TestNewCharacter() {
	derived := s.character.Stats()
	s.Equal(30.0, derived.AD)
	s.Equal(200.0, derived.MaxHP)
	s.Equal(200.0, s.character.CurrentHP())

	state := s.character.LevelState()
	s.Equal(1, state.Level)
	s.Equal(151, state.ExpToNextLevel)
}

func (s *CharacterTestSuite) TestConfigValidation() {
	_, err := character.New(nil)
	s.True(errors.IsInvalidArgument(err))

	cfg := s.config(tens())
	cfg.ID = ""
	_, err = character.New(cfg)
	s.True(errors.IsInvalidArgument(err))

	cfg = s.config(entities.AttributeSet{STR: -1})
	_, err = character.New(cfg)
	s.True(errors.IsInvalidArgument(err))

	cfg = s.config(tens())
	cfg.Tuning = &config.Config{}
	_, err = character.New(cfg)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestLevelUpScenario() {
	r := s.character.GainExperience(151)
	s.Require().True(r.Success, r.Message)
	s.Require().NotNil(r.LevelUp)
	s.Equal(1, r.LevelUp.LevelsGained)

	state := s.character.LevelState()
	s.Equal(2, state.Level)
	s.Equal(0, state.CurrentEXP)
	s.Equal(5, state.UnallocatedPoints)

	s.Equal(1, s.recorder.Count(notify.EventLevelUp))
	s.Equal(210.0, s.character.CurrentHP(), "level up refills hit points")

	r = s.character.GainExperience(0)
	s.False(r.Success)
	s.Equal(errors.CodeInvalidOperation, r.Code)
	s.True(errors.IsInvalidOperation(r.Err()))
}

func (s *CharacterTestSuite) TestExperienceAtLevelCap() {
	s.tuning.Progression.MaxLevel = 2
	c, err := character.New(s.config(tens()))
	s.Require().NoError(err)

	r := c.GainExperience(151)
	s.Require().True(r.Success, r.Message)
	s.Equal("reached level 2", r.Message)

	r = c.GainExperience(500)
	s.Require().True(r.Success, r.Message)
	s.True(r.LevelUp.Capped)
	s.Zero(r.LevelUp.LevelsGained)
	s.Equal("level 2 is the cap, 500 experience discarded", r.Message)
	s.Equal(0, c.LevelState().CurrentEXP)
}

func (s *CharacterTestSuite) TestAllocationScenario() {
	s.tuning.Progression.PointsPerLevel = 99
	c, err := character.New(s.config(entities.AttributeSet{STR: 1, INT: 1, AGI: 1, END: 1, WIS: 1}))
	s.Require().NoError(err)

	s.Require().True(c.GainExperience(151).Success)
	s.Require().True(c.AddItem("ruby_ring", 1, entities.LocationBag).Success)
	s.Require().True(c.EquipItem("ruby_ring").Success)
	c.Stats()
	before := c.Calculator().Recalculations()

	s.Require().True(c.AllocatePoints(entities.AttributeSTR, 50).Success)
	s.Require().True(c.AllocatePoints(entities.AttributeAGI, 49).Success)
	s.Equal(99, c.PendingPoints())

	r := c.AllocatePoints(entities.AttributeEND, 1)
	s.Equal(errors.CodeInsufficientQuantity, r.Code)

	s.Require().True(c.ConfirmAllocation().Success)
	s.Equal(51, c.Attributes().STR)
	s.Equal(0, c.PendingPoints())

	// level 2: BaseAD + ADPerLevel + 51*STRToAD + ring
	s.Equal(10.0+2+51*2+5, c.Stats().AD)
	c.Stats()
	s.Equal(before+1, c.Calculator().Recalculations())

	r = c.DeallocatePoints(entities.AttributeSTR, 1)
	s.Equal(errors.CodeInvalidOperation, r.Code)
}

func (s *CharacterTestSuite) TestCancelAllocation() {
	s.Require().True(s.character.GainExperience(151).Success)
	s.Require().True(s.character.AllocatePoints(entities.AttributeINT, 3).Success)
	s.Equal(13, s.character.Attributes().INT)

	s.Require().True(s.character.DeallocatePoints(entities.AttributeINT, 1).Success)
	s.Require().True(s.character.CancelAllocation().Success)

	s.Equal(10, s.character.Attributes().INT)
	s.Equal(5, s.character.LevelState().UnallocatedPoints)
}

func (s *CharacterTestSuite) TestEquipmentFeedsStats() {
	s.Require().True(s.character.AddItem("iron_sword", 1, entities.LocationBag).Success)
	s.Require().True(s.character.AddItem("chain_mail", 1, entities.LocationBag).Success)

	r := s.character.EquipItem("iron_sword")
	s.Require().True(r.Success, r.Message)
	s.Equal(entities.LocationEquipped, r.Instance.Location)
	r = s.character.EquipItem("chain_mail")
	s.Require().True(r.Success, r.Message)

	derived := s.character.Stats()
	s.Equal(30.0+12+10*0.5, derived.AD)
	s.Equal(10.0+12, derived.Defense)
	s.Equal(260.0, derived.MaxHP)
	s.InDelta(1.2, derived.AttackSpeed, 1e-9)

	r = s.character.UnequipSlot(entities.SlotWeapon)
	s.Require().True(r.Success, r.Message)
	s.Equal(entities.LocationBag, r.Instance.Location)
	s.Equal(30.0, s.character.Stats().AD)

	r = s.character.UnequipSlot(entities.SlotWeapon)
	s.Equal(errors.CodeInvalidOperation, r.Code)
}

func (s *CharacterTestSuite) TestInventoryResults() {
	r := s.character.AddItem("excalibur", 1, entities.LocationBag)
	s.False(r.Success)
	s.Equal(errors.CodeItemNotFound, r.Code)
	s.Nil(r.Instance)

	r = s.character.AddItem("small_potion", 3, entities.LocationPocket)
	s.Require().True(r.Success)
	id := r.Instance.ID

	r = s.character.MoveItem(id, 1, entities.LocationPocket)
	s.Equal(errors.CodeAlreadyInLocation, r.Code)

	r = s.character.MoveItem(id, 2, entities.LocationBag)
	s.Require().True(r.Success)
	s.Equal(entities.LocationBag, r.Instance.Location)

	s.True(s.character.ConsumeItem("small_potion", 1, entities.LocationPocket).Success)
	s.Equal(errors.CodeInsufficientQuantity, s.character.ConsumeItem("small_potion", 5, entities.LocationBag).Code)
	s.True(s.character.RemoveItem(r.Instance.ID, 2).Success)
	s.Zero(s.character.Inventory().TotalQuantity("small_potion"))

	r = s.character.AddItem("iron_sword", 1, entities.LocationPocket)
	s.Equal(errors.CodeInvalidOperation, r.Code)

	s.Require().True(s.character.UpgradeCapacity(entities.LocationBag, 5).Success)
	s.Equal(25, s.character.Capacity().MaxSlots(entities.LocationBag))
	s.Equal(errors.CodeInvalidOperation, s.character.UpgradeCapacity(entities.LocationEquipped, 1).Code)

	r = s.character.UpgradeCapacity(entities.LocationStorage, 10)
	s.Require().True(r.Success)
	s.Equal("storage is already unlimited", r.Message)
	s.True(s.character.Capacity().IsUnlimited(entities.LocationStorage))

	s.character.SetCatalog(nil)
	r = s.character.AddItem("small_potion", 1, entities.LocationBag)
	s.Equal(errors.CodeDatabaseMissing, r.Code)
}

func (s *CharacterTestSuite) TestStoreAllSkipsEquipped() {
	s.Require().True(s.character.AddItem("iron_sword", 1, entities.LocationBag).Success)
	s.Require().True(s.character.AddItem("iron_ore", 30, entities.LocationBag).Success)
	s.Require().True(s.character.EquipItem("iron_sword").Success)

	result := s.character.StoreAllItems()
	s.Equal(1, result.Moved)
	s.Empty(result.Failed)
	s.Equal(30, s.character.Inventory().Quantity("iron_ore", entities.LocationStorage))
	s.Equal(1, s.character.Inventory().Count(entities.LocationEquipped))
}

func (s *CharacterTestSuite) TestEffects() {
	r := s.character.ApplyEffect(effects.StatBuff{Stat: entities.StatAD, Value: 10, Turns: 2})
	s.Require().True(r.Success)
	s.Equal(40.0, s.character.Stats().AD)

	s.character.TakeDamage(50)
	s.Require().True(s.character.ApplyEffect(effects.HealOverTime{Total: 10, Turns: 3}).Success)

	s.character.Tick(1)
	s.Equal(153.0, s.character.CurrentHP())
	s.Equal(40.0, s.character.Stats().AD)

	s.character.Tick(2)
	s.Equal(156.0, s.character.CurrentHP())
	s.Equal(30.0, s.character.Stats().AD)

	tick := s.character.Tick(2)
	s.True(tick.Skipped)

	s.character.Tick(3)
	s.Equal(160.0, s.character.CurrentHP())

	r = s.character.ApplyEffect(effects.HealOverTime{Total: 0, Turns: 2})
	s.Equal(errors.CodeInvalidArgument, r.Code)
}

func (s *CharacterTestSuite) TestHealCapsAtMaxHP() {
	s.Equal(0.0, s.character.Heal(50))
	s.Equal(30.0, s.character.TakeDamage(30))
	s.Equal(30.0, s.character.Heal(100))
	s.Equal(200.0, s.character.TakeDamage(500))
	s.Equal(0.0, s.character.CurrentHP())
}

func (s *CharacterTestSuite) TestAttack() {
	s.Require().True(s.character.AddItem("ruby_ring", 1, entities.LocationBag).Success)
	s.Require().True(s.character.EquipItem("ruby_ring").Success)
	s.character.TakeDamage(100)

	hit, err := s.character.Attack(&fixedRoller{value: 1})
	s.Require().NoError(err)
	s.True(hit.Critical)
	s.Equal(35.0*1.5, hit.Damage)
	s.InDelta(35.0*1.5*0.05, hit.Healed, 1e-9)
	s.InDelta(100+35.0*1.5*0.05, s.character.CurrentHP(), 1e-9)

	hit, err = s.character.Attack(&fixedRoller{value: 100})
	s.Require().NoError(err)
	s.False(hit.Critical)
	s.Equal(35.0, hit.Damage)

	_, err = s.character.Attack(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestSnapshotRoundTrip() {
	s.Require().True(s.character.GainExperience(200).Success)
	s.Require().True(s.character.AllocatePoints(entities.AttributeSTR, 2).Success)
	s.Require().True(s.character.ConfirmAllocation().Success)
	s.Require().True(s.character.AllocatePoints(entities.AttributeAGI, 1).Success)
	s.Require().True(s.character.EnableTranscendence().Success)

	sword := s.character.AddItem("iron_sword", 1, entities.LocationBag)
	s.Require().True(sword.Success)
	s.Require().True(s.character.AddItem("jade_amulet", 1, entities.LocationStorage).Success)
	s.Require().True(s.character.AddItem("small_potion", 7, entities.LocationPocket).Success)
	s.Require().True(s.character.EquipItem("iron_sword").Success)
	s.Require().True(s.character.EquipItem("jade_amulet").Success)
	s.Require().True(s.character.UpgradeCapacity(entities.LocationBag, 4).Success)
	s.character.TakeDamage(12)

	snap := s.character.Snapshot()
	s.Equal(s.clock.Now(), snap.SavedAt)
	s.Equal(12, snap.AttributeFloor.STR)
	s.Equal(11, snap.Attributes.AGI)
	s.Equal(24, snap.Capacity[entities.LocationBag])
	s.InDelta(0.1, snap.ItemStats[entities.StatTenacity], 1e-9)

	restored, err := character.Restore(s.config(entities.AttributeSet{}), snap)
	s.Require().NoError(err)

	s.Equal(s.character.ID(), restored.ID())
	s.Equal(s.character.Name(), restored.Name())
	s.Equal(s.character.Attributes(), restored.Attributes())
	s.Equal(s.character.LevelState(), restored.LevelState())
	s.Equal(s.character.Stats(), restored.Stats())
	s.Equal(s.character.CurrentHP(), restored.CurrentHP())
	s.ElementsMatch(s.character.Inventory().All(), restored.Inventory().All())
	s.Equal(s.character.Equipment().Slots(), restored.Equipment().Slots())
	s.Equal(sword.Instance.ID, restored.Equipment().InstanceIn(entities.SlotWeapon))
	s.Equal(1, restored.PendingPoints())

	r := restored.DeallocatePoints(entities.AttributeSTR, 1)
	s.Equal(errors.CodeInvalidOperation, r.Code, "restored floor still applies")
}

func (s *CharacterTestSuite) TestRestoreRejectsInvalidSnapshots() {
	s.Require().True(s.character.AddItem("iron_sword", 1, entities.LocationBag).Success)
	s.Require().True(s.character.EquipItem("iron_sword").Success)

	testCases := []struct {
		name   string
		mutate func(snap *entities.CharacterSnapshot)
	}{
		{name: "equipped but unbound", mutate: func(snap *entities.CharacterSnapshot) {
			snap.Equipped = nil
		}},
		{name: "level too high", mutate: func(snap *entities.CharacterSnapshot) {
			snap.Level.Level = 99
		}},
		{name: "attributes below floor", mutate: func(snap *entities.CharacterSnapshot) {
			snap.AttributeFloor.STR = 20
		}},
		{name: "negative hp", mutate: func(snap *entities.CharacterSnapshot) {
			snap.CurrentHP = -1
		}},
		{name: "missing id", mutate: func(snap *entities.CharacterSnapshot) {
			snap.ID = ""
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			snap := s.character.Snapshot()
			tc.mutate(snap)
			_, err := character.Restore(s.config(tens()), snap)
			s.True(errors.IsInvalidArgument(err), "unexpected error %v", err)
		})
	}

	_, err := character.Restore(s.config(tens()), nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestPublishesOnEventBus() {
	publisher, err := notify.NewPublisher(&notify.Config{
		EventBus: events.NewBus(),
		Source:   &notify.CharacterEntity{ID: "char_1"},
	})
	s.Require().NoError(err)

	var levels []int
	sub := publisher.Subscribe(notify.EventLevelUp, func(_ context.Context, n notify.Notification) error {
		level, _ := notify.Value[int](n, "new_level")
		levels = append(levels, level)
		return nil
	})
	defer func() {
		_ = sub.Cancel()
	}()

	cfg := s.config(tens())
	cfg.Notifier = notify.Fanout{publisher, s.recorder}
	c, err := character.New(cfg)
	s.Require().NoError(err)

	s.Require().True(c.GainExperience(151 + 202).Success)
	s.Equal([]int{3}, levels)
	s.Equal(1, s.recorder.Count(notify.EventLevelUp))
	s.GreaterOrEqual(s.recorder.Count(notify.EventStatsRecalculated), 2)
}
