package inventory

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Unlimited marks a location without a slot ceiling
const Unlimited = -1

// DefaultEquippedSlots is the number of equipment slots
const DefaultEquippedSlots = 7

// CapacityConfig holds the slot ceiling of each location
type CapacityConfig struct {
	Storage  int `yaml:"storage"`
	Bag      int `yaml:"bag"`
	Pocket   int `yaml:"pocket"`
	Equipped int `yaml:"equipped"`
}

// DefaultCapacityConfig returns the reference limits: unlimited storage
func DefaultCapacityConfig() CapacityConfig {
	return CapacityConfig{
		Storage:  Unlimited,
		Bag:      20,
		Pocket:   4,
		Equipped: DefaultEquippedSlots,
	}
}

// CapacityConfigFromLimits rebuilds a config from exported limits
func CapacityConfigFromLimits(limits map[entities.Location]int) CapacityConfig {
	return CapacityConfig{
		Storage:  limits[entities.LocationStorage],
		Bag:      limits[entities.LocationBag],
		Pocket:   limits[entities.LocationPocket],
		Equipped: limits[entities.LocationEquipped],
	}
}

// Validate ensures every ceiling is positive or Unlimited
func (c *CapacityConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	for field, value := range map[string]int{
		"storage": c.Storage,
		"bag":     c.Bag,
		"pocket":  c.Pocket,
	} {
		if value != Unlimited && value <= 0 {
			vb.Fieldf(field, "must be positive or %d for unlimited", Unlimited)
		}
	}
	if c.Equipped < 1 || c.Equipped > DefaultEquippedSlots {
		vb.Fieldf("equipped", "must be between 1 and %d", DefaultEquippedSlots)
	}

	return vb.Build()
}

// CapacityManager tracks per-location slot ceilings. It knows nothing about
// item categories; location rules live in the Store.
type CapacityManager struct {
	limits map[entities.Location]int
}

// NewCapacityManager creates a manager from config
func NewCapacityManager(cfg *CapacityConfig) (*CapacityManager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid capacity config")
	}

	return &CapacityManager{
		limits: map[entities.Location]int{
			entities.LocationStorage:  cfg.Storage,
			entities.LocationBag:      cfg.Bag,
			entities.LocationPocket:   cfg.Pocket,
			entities.LocationEquipped: cfg.Equipped,
		},
	}, nil
}

// MaxSlots returns the ceiling of a location, Unlimited when there is none
func (m *CapacityManager) MaxSlots(loc entities.Location) int {
	limit, ok := m.limits[loc]
	if !ok {
		return 0
	}
	return limit
}

// IsUnlimited reports whether a location has no ceiling
func (m *CapacityManager) IsUnlimited(loc entities.Location) bool {
	return m.MaxSlots(loc) == Unlimited
}

// HasSpace reports whether one more slot fits
func (m *CapacityManager) HasSpace(loc entities.Location, current int) bool {
	return m.CanAddItems(loc, current, 1)
}

// EmptySlots returns the free slots; math.MaxInt for unlimited locations
func (m *CapacityManager) EmptySlots(loc entities.Location, current int) int {
	if m.IsUnlimited(loc) {
		return math.MaxInt
	}
	return max(m.MaxSlots(loc)-current, 0)
}

// CanAddItems reports whether toAdd more slots fit
func (m *CapacityManager) CanAddItems(loc entities.Location, current, toAdd int) bool {
	if toAdd <= 0 {
		return true
	}
	if m.IsUnlimited(loc) {
		return true
	}
	return toAdd <= m.MaxSlots(loc)-current
}

// UpgradeBag raises the bag ceiling by n slots
func (m *CapacityManager) UpgradeBag(n int) error {
	return m.upgrade(entities.LocationBag, n)
}

// UpgradePocket raises the pocket ceiling by n slots
func (m *CapacityManager) UpgradePocket(n int) error {
	return m.upgrade(entities.LocationPocket, n)
}

// UpgradeStorage raises the storage ceiling by n slots
func (m *CapacityManager) UpgradeStorage(n int) error {
	return m.upgrade(entities.LocationStorage, n)
}

func (m *CapacityManager) upgrade(loc entities.Location, n int) error {
	if n <= 0 {
		return errors.InvalidOperationf("upgrade amount must be positive, got %d", n).
			WithMeta("location", string(loc))
	}
	if m.IsUnlimited(loc) {
		return nil
	}

	m.limits[loc] += n
	slog.Info("capacity upgraded",
		"location", loc,
		"added", n,
		"max_slots", m.limits[loc])
	return nil
}

// Limits exports the ceilings as plain data
func (m *CapacityManager) Limits() map[entities.Location]int {
	out := make(map[entities.Location]int, len(m.limits))
	for loc, limit := range m.limits {
		out[loc] = limit
	}
	return out
}

// FullCode returns the capacity error code of a location
func FullCode(loc entities.Location) errors.Code {
	switch loc {
	case entities.LocationBag:
		return errors.CodeBagFull
	case entities.LocationPocket:
		return errors.CodePocketFull
	case entities.LocationStorage:
		return errors.CodeStorageFull
	case entities.LocationEquipped:
		return errors.CodeEquipmentFull
	default:
		return errors.CodeInternal
	}
}
