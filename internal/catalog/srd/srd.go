// Package srd builds an item catalog from the D&D 5e SRD equipment list
// served by the dnd5e-api. Weapons, armor and shields become equippable
// items; everything else becomes a stackable material.
package srd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apientities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Regex for damage dice notation like "1d8" or "2d6"
var damageDiceRegex = regexp.MustCompile(`^(\d+)d(\d+)`)

// Source is the slice of the dnd5e-api client the loader needs
type Source interface {
	ListEquipment() ([]*apientities.ReferenceItem, error)
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
}

// SourceConfig contains configuration options for the SRD API client
type SourceConfig struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate sets defaults for anything not provided
func (cfg *SourceConfig) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// NewSource creates a cached dnd5e-api client
func NewSource(cfg *SourceConfig) (Source, error) {
	if cfg == nil {
		cfg = &SourceConfig{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return dnd5e.NewCachedClient(baseClient, cfg.CacheTTL), nil
}

// LoadConfig controls a catalog preload
type LoadConfig struct {
	Source Source
	// Limit caps how many equipment entries are fetched; 0 means all
	Limit int
}

// Validate ensures all required dependencies are provided
func (c *LoadConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.Limit < 0 {
		vb.Field("Limit", "must not be negative")
	}

	return vb.Build()
}

// Load fetches the SRD equipment list and converts every entry into a
// static catalog. Details are fetched concurrently.
func Load(ctx context.Context, cfg *LoadConfig) (*catalog.Static, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	refs, err := cfg.Source.ListEquipment()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list equipment from D&D 5e API")
	}
	if cfg.Limit > 0 && len(refs) > cfg.Limit {
		refs = refs[:cfg.Limit]
	}

	slog.InfoContext(ctx, "Loading SRD equipment details", "count", len(refs))

	defs := make([]*entities.ItemDefinition, len(refs))
	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errChan <- err
				return
			}

			item, err := cfg.Source.GetEquipment(key)
			if err != nil {
				slog.Error("Failed to get equipment details", "equipment", key, "error", err)
				errChan <- fmt.Errorf("failed to get equipment %s: %w", key, err)
				return
			}

			defs[idx] = Convert(item)
		}(i, ref.Key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load SRD equipment")
		}
	}

	out := make([]*entities.ItemDefinition, 0, len(defs))
	for _, def := range defs {
		if def != nil {
			out = append(out, def)
		}
	}

	return catalog.NewStatic(out...)
}

// Convert maps one SRD equipment entry onto an item definition.
// It returns nil for a nil entry.
func Convert(item dnd5e.EquipmentInterface) *entities.ItemDefinition {
	if item == nil {
		return nil
	}

	switch eq := item.(type) {
	case *apientities.Weapon:
		if eq == nil {
			return nil
		}
		return convertWeapon(eq)
	case *apientities.Armor:
		if eq == nil {
			return nil
		}
		return convertArmor(eq)
	case *apientities.Equipment:
		if eq == nil {
			return nil
		}
		return &entities.ItemDefinition{
			ID:        eq.Key,
			Name:      eq.Name,
			Category:  entities.CategoryMaterial,
			Stackable: true,
			MaxStack:  stackSizeFor(categoryKey(eq.EquipmentCategory)),
		}
	default:
		return nil
	}
}

func convertWeapon(w *apientities.Weapon) *entities.ItemDefinition {
	profile := &entities.WeaponProfile{}

	if w.Damage != nil {
		profile.AD = maxDamage(w.Damage.DamageDice)
	}
	if strings.EqualFold(w.WeaponCategory, "Martial") {
		profile.CritRate = 0.05
	}

	ranged := strings.EqualFold(w.WeaponRange, "Ranged")
	finesse := false
	for _, prop := range w.Properties {
		if prop == nil {
			continue
		}
		switch strings.ToLower(prop.Name) {
		case "finesse":
			finesse = true
		case "light":
			profile.AttackSpeed += 0.1
		case "heavy":
			profile.AttackSpeed -= 0.1
		}
	}

	switch {
	case ranged:
		profile.AGIScaling = 0.5
	case finesse:
		profile.STRScaling = 0.25
		profile.AGIScaling = 0.25
	default:
		profile.STRScaling = 0.5
	}

	return &entities.ItemDefinition{
		ID:       w.Key,
		Name:     w.Name,
		Category: entities.CategoryWeapon,
		Weapon:   profile,
	}
}

func convertArmor(a *apientities.Armor) *entities.ItemDefinition {
	def := &entities.ItemDefinition{
		ID:      a.Key,
		Name:    a.Name,
		Bonuses: map[entities.Stat]float64{},
	}
	if a.ArmorClass != nil {
		def.Bonuses[entities.StatDefense] = float64(a.ArmorClass.Base)
	}

	if strings.EqualFold(a.ArmorCategory, "Shield") {
		def.Category = entities.CategoryAccessory
		return def
	}

	def.Category = entities.CategoryGear
	def.Gear = &entities.GearProfile{Slot: entities.GearSlotChest}

	switch strings.ToLower(a.ArmorCategory) {
	case "light":
		if a.ArmorClass != nil && a.ArmorClass.DexBonus {
			def.Bonuses[entities.StatEvasion] = 0.02
		}
	case "heavy":
		def.Bonuses[entities.StatMaxHP] = float64(a.StrMinimum) * 5
		def.Bonuses[entities.StatTenacity] = 0.05
	}

	return def
}

// maxDamage returns the highest total of a damage dice expression, 0 if unparsable
func maxDamage(notation string) float64 {
	matches := damageDiceRegex.FindStringSubmatch(strings.TrimSpace(strings.ToLower(notation)))
	if len(matches) != 3 {
		return 0
	}
	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0
	}
	return float64(count * size)
}

func categoryKey(ref *apientities.ReferenceItem) string {
	if ref == nil {
		return ""
	}
	return ref.Key
}

func stackSizeFor(category string) int {
	switch category {
	case "ammunition":
		return 99
	case "adventuring-gear":
		return 20
	default:
		return 10
	}
}
