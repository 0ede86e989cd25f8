// Package inventory is the authoritative collection of a character's item
// instances. It enforces per-location capacity, stack merging and the
// pocket category restriction on every add and move.
package inventory

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
)

// Config holds the dependencies for a Store
type Config struct {
	// Catalog may be nil at construction; mutations then fail with DatabaseMissing
	Catalog     catalog.Catalog
	Capacity    *CapacityManager
	IDGenerator idgen.Generator
	Notifier    notify.Notifier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Capacity == nil {
		vb.RequiredField("Capacity")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Store owns every item instance of one character
type Store struct {
	catalog   catalog.Catalog
	capacity  *CapacityManager
	idGen     idgen.Generator
	notifier  notify.Notifier
	instances map[string]*entities.ItemInstance
	// order keeps instances in creation order so "first stack" is stable
	order []string
}

// NewStore creates an empty store
func NewStore(cfg *Config) (*Store, error) {
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

	return &Store{
		catalog:   cfg.Catalog,
		capacity:  cfg.Capacity,
		idGen:     cfg.IDGenerator,
		notifier:  notifier,
		instances: make(map[string]*entities.ItemInstance),
	}, nil
}

// SetCatalog attaches or replaces the item catalog
func (s *Store) SetCatalog(c catalog.Catalog) {
	s.catalog = c
}

// Capacity returns the capacity manager
func (s *Store) Capacity() *CapacityManager {
	return s.capacity
}

// lookup resolves an item definition, distinguishing a missing catalog from a missing item
func (s *Store) lookup(itemID string) (*entities.ItemDefinition, error) {
	if s.catalog == nil {
		slog.Error("inventory mutation without item catalog", "item_id", itemID)
		return nil, errors.DatabaseMissing("item catalog is not available")
	}
	def, ok := s.catalog.GetItem(itemID)
	if !ok || def == nil {
		return nil, errors.ItemNotFoundf("item %s not found in catalog", itemID).WithMeta("item_id", itemID)
	}
	return def, nil
}

func checkPocket(def *entities.ItemDefinition, loc entities.Location) error {
	if loc == entities.LocationPocket && def.Category.IsEquippable() {
		return errors.InvalidOperationf("%s items cannot be kept in the pocket", def.Category).
			WithMeta("item_id", def.ID).
			WithMeta("category", string(def.Category))
	}
	return nil
}

func (s *Store) fullError(loc entities.Location) error {
	return errors.CapacityFullf(FullCode(loc), "%s is full", loc).
		WithMeta("location", string(loc)).
		WithMeta("max_slots", s.capacity.MaxSlots(loc))
}

func validStorageLocation(loc entities.Location) error {
	if !loc.IsValid() {
		return errors.InvalidOperationf("unknown location %q", loc)
	}
	if loc == entities.LocationEquipped {
		return errors.InvalidOperation("items are equipped through the equipment coordinator")
	}
	return nil
}

// stacksAt returns the instances of itemID at loc in creation order
func (s *Store) stacksAt(itemID string, loc entities.Location) []*entities.ItemInstance {
	var out []*entities.ItemInstance
	for _, id := range s.order {
		inst := s.instances[id]
		if inst.ItemID == itemID && inst.Location == loc {
			out = append(out, inst)
		}
	}
	return out
}

// mergePlan describes how quantity lands at a location
type mergePlan struct {
	merges    map[string]int
	mergeIDs  []string
	leftover  int
	newStacks int
}

// planPlacement computes merges into existing stacks and the new stacks needed.
// skipID excludes one instance from merging (the one being moved).
func (s *Store) planPlacement(def *entities.ItemDefinition, quantity int, loc entities.Location, skipID string) mergePlan {
	plan := mergePlan{merges: make(map[string]int), leftover: quantity}
	limit := def.StackLimit()

	if def.Stackable {
		for _, stack := range s.stacksAt(def.ID, loc) {
			if plan.leftover == 0 {
				break
			}
			if stack.ID == skipID {
				continue
			}
			room := limit - stack.Quantity
			if room <= 0 {
				continue
			}
			take := min(room, plan.leftover)
			plan.merges[stack.ID] = take
			plan.mergeIDs = append(plan.mergeIDs, stack.ID)
			plan.leftover -= take
		}
	}

	plan.newStacks = plan.leftover / limit
	if plan.leftover%limit != 0 {
		plan.newStacks++
	}
	return plan
}

func (s *Store) insert(itemID string, quantity int, loc entities.Location) *entities.ItemInstance {
	id := s.idGen.Generate()
	// restored instances may already hold IDs the generator hands out again
	for _, taken := s.instances[id]; taken; _, taken = s.instances[id] {
		id = s.idGen.Generate()
	}

	inst := &entities.ItemInstance{
		ID:       id,
		ItemID:   itemID,
		Quantity: quantity,
		Location: loc,
	}
	s.instances[inst.ID] = inst
	s.order = append(s.order, inst.ID)
	return inst
}

func (s *Store) delete(instanceID string) {
	delete(s.instances, instanceID)
	for i, id := range s.order {
		if id == instanceID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// AddToLocation adds quantity units of an item at a location. Stackable items
// fill existing stacks first and spill into new ones; non-stackable items
// become one instance per unit. Nothing changes unless everything fits.
func (s *Store) AddToLocation(itemID string, quantity int, loc entities.Location) ([]entities.ItemInstance, error) {
	def, err := s.lookup(itemID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errors.InvalidOperationf("quantity must be positive, got %d", quantity).
			WithMeta("item_id", itemID)
	}
	if err := validStorageLocation(loc); err != nil {
		return nil, err
	}
	if err := checkPocket(def, loc); err != nil {
		return nil, err
	}

	plan := s.planPlacement(def, quantity, loc, "")
	if !s.capacity.CanAddItems(loc, s.Count(loc), plan.newStacks) {
		return nil, s.fullError(loc)
	}

	var touched []entities.ItemInstance
	for _, id := range plan.mergeIDs {
		inst := s.instances[id]
		inst.Quantity += plan.merges[id]
		touched = append(touched, *inst)
	}
	limit := def.StackLimit()
	for remaining := plan.leftover; remaining > 0; {
		take := min(limit, remaining)
		inst := s.insert(itemID, take, loc)
		touched = append(touched, *inst)
		remaining -= take
	}

	s.notifier.Notify(notify.EventItemAdded, notify.Payload{
		"item_id":  itemID,
		"quantity": quantity,
		"location": string(loc),
	})

	return touched, nil
}

// RemoveItem takes quantity units from one instance, deleting it at zero
func (s *Store) RemoveItem(instanceID string, quantity int) error {
	inst, ok := s.instances[instanceID]
	if !ok {
		return errors.ItemNotFoundf("instance %s not found", instanceID).WithMeta("instance_id", instanceID)
	}
	if quantity <= 0 {
		return errors.InvalidOperationf("quantity must be positive, got %d", quantity).
			WithMeta("instance_id", instanceID)
	}
	if inst.Location == entities.LocationEquipped {
		return errors.InvalidOperation("equipped items must be unequipped before removal").
			WithMeta("instance_id", instanceID)
	}
	if quantity > inst.Quantity {
		return errors.InsufficientQuantityf("instance %s holds %d, cannot remove %d",
			instanceID, inst.Quantity, quantity).
			WithMeta("instance_id", instanceID)
	}

	inst.Quantity -= quantity
	itemID, loc := inst.ItemID, inst.Location
	if inst.Quantity == 0 {
		s.delete(instanceID)
	}

	s.notifier.Notify(notify.EventItemRemoved, notify.Payload{
		"instance_id": instanceID,
		"item_id":     itemID,
		"quantity":    quantity,
		"location":    string(loc),
	})
	return nil
}

// RemoveByItemID consumes quantity units of an item across the stacks at a
// location, newest stacks first
func (s *Store) RemoveByItemID(itemID string, quantity int, loc entities.Location) error {
	if quantity <= 0 {
		return errors.InvalidOperationf("quantity must be positive, got %d", quantity).
			WithMeta("item_id", itemID)
	}
	if err := validStorageLocation(loc); err != nil {
		return err
	}
	held := s.Quantity(itemID, loc)
	if held < quantity {
		return errors.InsufficientQuantityf("%s holds %d of %s, cannot remove %d", loc, held, itemID, quantity).
			WithMeta("item_id", itemID).
			WithMeta("location", string(loc))
	}

	stacks := s.stacksAt(itemID, loc)
	remaining := quantity
	for i := len(stacks) - 1; i >= 0 && remaining > 0; i-- {
		stack := stacks[i]
		take := min(stack.Quantity, remaining)
		stack.Quantity -= take
		remaining -= take
		if stack.Quantity == 0 {
			s.delete(stack.ID)
		}
	}

	s.notifier.Notify(notify.EventItemRemoved, notify.Payload{
		"item_id":  itemID,
		"quantity": quantity,
		"location": string(loc),
	})
	return nil
}

// MoveToLocation transfers quantity units of an instance to another location.
// A full move that does not merge completely keeps the instance identity.
func (s *Store) MoveToLocation(instanceID string, quantity int, target entities.Location) (*entities.ItemInstance, error) {
	inst, ok := s.instances[instanceID]
	if !ok {
		return nil, errors.ItemNotFoundf("instance %s not found", instanceID).WithMeta("instance_id", instanceID)
	}
	if !target.IsValid() {
		return nil, errors.InvalidOperationf("unknown location %q", target)
	}
	if inst.Location == target {
		return nil, errors.AlreadyInLocationf("instance %s is already in %s", instanceID, target).
			WithMeta("instance_id", instanceID).
			WithMeta("location", string(target))
	}
	if inst.Location == entities.LocationEquipped || target == entities.LocationEquipped {
		return nil, errors.InvalidOperation("items are equipped through the equipment coordinator")
	}

	moved, err := s.transfer(inst, quantity, target)
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// transfer validates and performs a move without the equipped-location guard
func (s *Store) transfer(inst *entities.ItemInstance, quantity int, target entities.Location) (*entities.ItemInstance, error) {
	def, err := s.lookup(inst.ItemID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errors.InvalidOperationf("quantity must be positive, got %d", quantity).
			WithMeta("instance_id", inst.ID)
	}
	if quantity > inst.Quantity {
		return nil, errors.InsufficientQuantityf("instance %s holds %d, cannot move %d",
			inst.ID, inst.Quantity, quantity).
			WithMeta("instance_id", inst.ID)
	}
	if err := checkPocket(def, target); err != nil {
		return nil, err
	}

	plan := s.planPlacement(def, quantity, target, inst.ID)
	if !s.capacity.CanAddItems(target, s.Count(target), plan.newStacks) {
		return nil, s.fullError(target)
	}

	from := inst.Location
	var dest *entities.ItemInstance
	for _, id := range plan.mergeIDs {
		stack := s.instances[id]
		stack.Quantity += plan.merges[id]
		dest = stack
	}

	fullMove := quantity == inst.Quantity
	switch {
	case plan.leftover > 0 && fullMove:
		inst.Location = target
		inst.Quantity = plan.leftover
		dest = inst
	case plan.leftover > 0:
		inst.Quantity -= quantity
		dest = s.insert(inst.ItemID, plan.leftover, target)
	case fullMove:
		s.delete(inst.ID)
	default:
		inst.Quantity -= quantity
	}

	s.notifier.Notify(notify.EventItemMoved, notify.Payload{
		"instance_id": inst.ID,
		"item_id":     inst.ItemID,
		"quantity":    quantity,
		"from":        string(from),
		"to":          string(target),
	})

	out := *dest
	return &out, nil
}

// EquipInstance moves one unit of an instance into the Equipped location.
// Only the equipment coordinator calls this; it keeps the slot mapping.
func (s *Store) EquipInstance(instanceID string) (*entities.ItemInstance, error) {
	inst, ok := s.instances[instanceID]
	if !ok {
		return nil, errors.ItemNotFoundf("instance %s not found", instanceID).WithMeta("instance_id", instanceID)
	}
	if inst.Location == entities.LocationEquipped {
		return nil, errors.AlreadyInLocationf("instance %s is already equipped", instanceID).
			WithMeta("instance_id", instanceID)
	}
	return s.transfer(inst, 1, entities.LocationEquipped)
}

// UnequipInstance moves an equipped instance to target
func (s *Store) UnequipInstance(instanceID string, target entities.Location) (*entities.ItemInstance, error) {
	inst, ok := s.instances[instanceID]
	if !ok {
		return nil, errors.ItemNotFoundf("instance %s not found", instanceID).WithMeta("instance_id", instanceID)
	}
	if inst.Location != entities.LocationEquipped {
		return nil, errors.InvalidOperationf("instance %s is not equipped", instanceID).
			WithMeta("instance_id", instanceID)
	}
	if err := validStorageLocation(target); err != nil {
		return nil, err
	}
	return s.transfer(inst, inst.Quantity, target)
}

// StoreFailure records one item StoreAllItems could not move
type StoreFailure struct {
	InstanceID string
	ItemID     string
	Err        error
}

// StoreAllResult summarizes a bulk store
type StoreAllResult struct {
	Moved  int
	Failed []StoreFailure
}

// StoreAllItems moves every bag item that isEquipped does not claim into
// storage. Failures are logged and reported; one aggregate notification is
// published.
func (s *Store) StoreAllItems(isEquipped func(instanceID string) bool) *StoreAllResult {
	result := &StoreAllResult{}

	quiet := s.notifier
	s.notifier = notify.Discard{}
	defer func() {
		s.notifier = quiet
	}()

	for _, item := range s.Items(entities.LocationBag) {
		if isEquipped != nil && isEquipped(item.ID) {
			continue
		}
		inst, ok := s.instances[item.ID]
		if !ok {
			continue
		}
		if _, err := s.transfer(inst, inst.Quantity, entities.LocationStorage); err != nil {
			slog.Warn("failed to store item",
				"instance_id", item.ID,
				"item_id", item.ItemID,
				"error", err)
			result.Failed = append(result.Failed, StoreFailure{
				InstanceID: item.ID,
				ItemID:     item.ItemID,
				Err:        err,
			})
			continue
		}
		result.Moved++
	}

	quiet.Notify(notify.EventBulkStored, notify.Payload{
		"moved":  result.Moved,
		"failed": len(result.Failed),
	})
	return result
}

// Restore replaces the store contents with saved instances. Every instance
// must reference a known item and the capacity invariant must hold.
func (s *Store) Restore(instances []entities.ItemInstance) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(instances))
	counts := make(map[entities.Location]int)

	for i, inst := range instances {
		field := "inventory[" + inst.ID + "]"
		if inst.ID == "" {
			vb.Fieldf("inventory", "instance %d has no id", i)
			continue
		}
		if seen[inst.ID] {
			vb.Field(field, "duplicate instance id")
		}
		seen[inst.ID] = true
		if inst.Quantity <= 0 {
			vb.Field(field, "quantity must be positive")
		}
		if !inst.Location.IsValid() {
			vb.InvalidField(field, "unknown location "+string(inst.Location))
			continue
		}
		counts[inst.Location]++

		def, err := s.lookup(inst.ItemID)
		if err != nil {
			if errors.IsDatabaseMissing(err) {
				return err
			}
			vb.Field(field, "unknown item "+inst.ItemID)
			continue
		}
		if inst.Quantity > def.StackLimit() {
			vb.Fieldf(field, "quantity %d exceeds stack limit %d", inst.Quantity, def.StackLimit())
		}
		if err := checkPocket(def, inst.Location); err != nil {
			vb.Field(field, "not allowed in the pocket")
		}
	}
	for loc, count := range counts {
		if !s.capacity.CanAddItems(loc, 0, count) {
			vb.Fieldf(string(loc), "%d instances exceed %d slots", count, s.capacity.MaxSlots(loc))
		}
	}
	if err := vb.Build(); err != nil {
		return errors.Wrap(err, "invalid inventory snapshot")
	}

	observer, _ := s.idGen.(idObserver)
	s.instances = make(map[string]*entities.ItemInstance, len(instances))
	s.order = make([]string, 0, len(instances))
	for _, inst := range instances {
		copied := inst
		s.instances[copied.ID] = &copied
		s.order = append(s.order, copied.ID)
		if observer != nil {
			observer.Observe(copied.ID)
		}
	}
	return nil
}

// idObserver is implemented by generators that can skip IDs already in use
type idObserver interface {
	Observe(id string)
}
