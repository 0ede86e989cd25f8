// Package entities holds the plain data types shared by the character core:
// attributes, level state, item definitions and instances, equipment slots
// and the save snapshot.
package entities

import "time"

// Attribute names one of the five raw character attributes
type Attribute string

// Raw attributes
const (
	AttributeSTR Attribute = "str"
	AttributeINT Attribute = "int"
	AttributeAGI Attribute = "agi"
	AttributeEND Attribute = "end"
	AttributeWIS Attribute = "wis"
)

// AllAttributes returns the attributes in display order
func AllAttributes() []Attribute {
	return []Attribute{AttributeSTR, AttributeINT, AttributeAGI, AttributeEND, AttributeWIS}
}

// IsValid checks if the attribute is one of the five known attributes
func (a Attribute) IsValid() bool {
	switch a {
	case AttributeSTR, AttributeINT, AttributeAGI, AttributeEND, AttributeWIS:
		return true
	default:
		return false
	}
}

// AttributeSet holds the five raw integer attributes
type AttributeSet struct {
	STR int `json:"str" yaml:"str"`
	INT int `json:"int" yaml:"int"`
	AGI int `json:"agi" yaml:"agi"`
	END int `json:"end" yaml:"end"`
	WIS int `json:"wis" yaml:"wis"`
}

// Get returns the value of one attribute
func (a AttributeSet) Get(attr Attribute) int {
	switch attr {
	case AttributeSTR:
		return a.STR
	case AttributeINT:
		return a.INT
	case AttributeAGI:
		return a.AGI
	case AttributeEND:
		return a.END
	case AttributeWIS:
		return a.WIS
	default:
		return 0
	}
}

// Add adjusts one attribute by delta
func (a *AttributeSet) Add(attr Attribute, delta int) {
	switch attr {
	case AttributeSTR:
		a.STR += delta
	case AttributeINT:
		a.INT += delta
	case AttributeAGI:
		a.AGI += delta
	case AttributeEND:
		a.END += delta
	case AttributeWIS:
		a.WIS += delta
	}
}

// Total returns the sum of all attributes
func (a AttributeSet) Total() int {
	return a.STR + a.INT + a.AGI + a.END + a.WIS
}

// LevelState tracks experience and level progression
type LevelState struct {
	Level              int  `json:"level"`
	CurrentEXP         int  `json:"current_exp"`
	ExpToNextLevel     int  `json:"exp_to_next_level"`
	UnallocatedPoints  int  `json:"unallocated_points"`
	TranscendenceLevel int  `json:"transcendence_level"`
	IsTranscended      bool `json:"is_transcended"`
}

// CharacterSnapshot is the plain-data export of a character used by save layers.
// Derived stats are not stored; they are re-derived on restore.
type CharacterSnapshot struct {
	ID                   string                   `json:"id"`
	PlayerID             string                   `json:"player_id,omitempty"`
	Name                 string                   `json:"name"`
	Attributes           AttributeSet             `json:"attributes"`
	AttributeFloor       AttributeSet             `json:"attribute_floor"`
	Level                LevelState               `json:"level"`
	TranscendenceEnabled bool                     `json:"transcendence_enabled"`
	ItemStats            map[Stat]float64         `json:"item_stats,omitempty"`
	Inventory            []ItemInstance           `json:"inventory"`
	Equipped             map[EquipmentSlot]string `json:"equipped,omitempty"`
	Capacity             map[Location]int         `json:"capacity"`
	CurrentHP            float64                  `json:"current_hp"`
	SavedAt              time.Time                `json:"saved_at"`
}
