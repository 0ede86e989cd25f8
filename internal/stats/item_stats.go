package stats

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// ItemStats accumulates flat bonuses from equipped items, one value per stat.
// The zero value is ready to use.
type ItemStats struct {
	values map[entities.Stat]float64
}

// NewItemStats creates an empty accumulator
func NewItemStats() *ItemStats {
	return &ItemStats{values: make(map[entities.Stat]float64)}
}

// ItemStatsFromMap builds an accumulator from exported plain data.
// Unknown stat keys are rejected.
func ItemStatsFromMap(m map[entities.Stat]float64) (*ItemStats, error) {
	is := NewItemStats()
	if err := is.AddBonuses(m); err != nil {
		return nil, err
	}
	return is, nil
}

// AddStat adds value to one stat. Negative values are allowed.
func (is *ItemStats) AddStat(stat entities.Stat, value float64) error {
	if !stat.IsValid() {
		return errors.InvalidOperationf("unknown stat %q", stat).WithMeta("stat", string(stat))
	}
	if is.values == nil {
		is.values = make(map[entities.Stat]float64)
	}
	is.values[stat] += value
	return nil
}

// AddBonuses adds every entry of a bonus map; nothing is applied if any key is unknown
func (is *ItemStats) AddBonuses(bonuses map[entities.Stat]float64) error {
	for stat := range bonuses {
		if !stat.IsValid() {
			return errors.InvalidOperationf("unknown stat %q", stat).WithMeta("stat", string(stat))
		}
	}
	for stat, value := range bonuses {
		if err := is.AddStat(stat, value); err != nil {
			return err
		}
	}
	return nil
}

// Merge adds every value from other
func (is *ItemStats) Merge(other *ItemStats) {
	if other == nil {
		return
	}
	for stat, value := range other.values {
		// values in other were validated on the way in
		_ = is.AddStat(stat, value)
	}
}

// GetStat returns the accumulated value, 0 if nothing was added
func (is *ItemStats) GetStat(stat entities.Stat) float64 {
	if is == nil {
		return 0
	}
	return is.values[stat]
}

// Clone returns an independent copy
func (is *ItemStats) Clone() *ItemStats {
	out := NewItemStats()
	if is == nil {
		return out
	}
	for stat, value := range is.values {
		out.values[stat] = value
	}
	return out
}

// Reset clears every accumulated value
func (is *ItemStats) Reset() {
	is.values = make(map[entities.Stat]float64)
}

// IsEmpty reports whether no non-zero value is held
func (is *ItemStats) IsEmpty() bool {
	if is == nil {
		return true
	}
	for _, value := range is.values {
		if value != 0 {
			return false
		}
	}
	return true
}

// ToMap exports the non-zero values as plain data
func (is *ItemStats) ToMap() map[entities.Stat]float64 {
	out := make(map[entities.Stat]float64)
	if is == nil {
		return out
	}
	for stat, value := range is.values {
		if value != 0 {
			out[stat] = value
		}
	}
	return out
}
