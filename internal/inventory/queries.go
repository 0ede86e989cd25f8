package inventory

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

// Get returns a copy of one instance
func (s *Store) Get(instanceID string) (*entities.ItemInstance, bool) {
	inst, ok := s.instances[instanceID]
	if !ok {
		return nil, false
	}
	out := *inst
	return &out, true
}

// Items returns copies of the instances at a location in creation order
func (s *Store) Items(loc entities.Location) []entities.ItemInstance {
	var out []entities.ItemInstance
	for _, id := range s.order {
		if inst := s.instances[id]; inst.Location == loc {
			out = append(out, *inst)
		}
	}
	return out
}

// All returns copies of every instance in creation order
func (s *Store) All() []entities.ItemInstance {
	out := make([]entities.ItemInstance, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.instances[id])
	}
	return out
}

// Count returns the number of occupied slots at a location
func (s *Store) Count(loc entities.Location) int {
	count := 0
	for _, inst := range s.instances {
		if inst.Location == loc {
			count++
		}
	}
	return count
}

// Quantity sums the units of an item at a location
func (s *Store) Quantity(itemID string, loc entities.Location) int {
	total := 0
	for _, inst := range s.instances {
		if inst.ItemID == itemID && inst.Location == loc {
			total += inst.Quantity
		}
	}
	return total
}

// TotalQuantity sums the units of an item across every location
func (s *Store) TotalQuantity(itemID string) int {
	total := 0
	for _, inst := range s.instances {
		if inst.ItemID == itemID {
			total += inst.Quantity
		}
	}
	return total
}

// Has reports whether at least quantity units of an item are held anywhere
func (s *Store) Has(itemID string, quantity int) bool {
	return s.TotalQuantity(itemID) >= quantity
}

// ItemsByCategory returns the instances at a location whose definition has
// the category. Instances whose item is missing from the catalog are skipped.
func (s *Store) ItemsByCategory(loc entities.Location, category entities.ItemCategory) []entities.ItemInstance {
	if s.catalog == nil {
		return nil
	}
	var out []entities.ItemInstance
	for _, id := range s.order {
		inst := s.instances[id]
		if inst.Location != loc {
			continue
		}
		def, ok := s.catalog.GetItem(inst.ItemID)
		if ok && def.Category == category {
			out = append(out, *inst)
		}
	}
	return out
}

// FindFirst returns the oldest instance of an item, searching the locations in order
func (s *Store) FindFirst(itemID string, locs ...entities.Location) (*entities.ItemInstance, bool) {
	for _, loc := range locs {
		stacks := s.stacksAt(itemID, loc)
		if len(stacks) == 0 {
			continue
		}
		out := *stacks[0]
		return &out, true
	}
	return nil, false
}
