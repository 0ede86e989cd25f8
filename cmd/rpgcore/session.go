package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/character"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/effects"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/notify"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	charrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
)

// sessionConfig holds everything a scripted session needs
type sessionConfig struct {
	CharacterID string
	PlayerID    string
	Name        string
	Attributes  entities.AttributeSet
	Experience  int
	Allocate    entities.Attribute
	Turns       int

	Tuning      *config.Config
	Catalog     catalog.Catalog
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Roller      dice.Roller
	// Repository is optional; when set the final snapshot is saved
	Repository charrepo.Repository
	Out        io.Writer
}

func (c *sessionConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("CharacterID", c.CharacterID, vb)
	errors.ValidateNonNegative("Experience", float64(c.Experience), vb)
	errors.ValidateNonNegative("Turns", float64(c.Turns), vb)
	if !c.Allocate.IsValid() {
		vb.InvalidField("Allocate", "unknown attribute "+string(c.Allocate))
	}
	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Out == nil {
		vb.RequiredField("Out")
	}

	return vb.Build()
}

// loot is what the scripted session picks up
var loot = []struct {
	itemID   string
	quantity int
	loc      entities.Location
}{
	{"iron_sword", 1, entities.LocationBag},
	{"leather_cap", 1, entities.LocationBag},
	{"ruby_ring", 1, entities.LocationBag},
	{"small_potion", 5, entities.LocationPocket},
	{"iron_ore", 12, entities.LocationBag},
}

// runSession plays loot, equip, level, allocate, heal and attack on a fresh
// character and prints what happened.
func runSession(ctx context.Context, cfg *sessionConfig) (*character.Character, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session config")
	}

	publisher, err := notify.NewPublisher(&notify.Config{
		EventBus: events.NewBus(),
		Source:   &notify.CharacterEntity{ID: cfg.CharacterID},
	})
	if err != nil {
		return nil, err
	}
	levelUps := publisher.Subscribe(notify.EventLevelUp, func(_ context.Context, n notify.Notification) error {
		level, _ := notify.Value[int](n, "new_level")
		fmt.Fprintf(cfg.Out, "* %s reached level %d\n", n.SourceID, level)
		return nil
	})
	defer cancel(levelUps)
	equipChanges := publisher.Subscribe(notify.EventEquipmentChanged, func(_ context.Context, n notify.Notification) error {
		action, _ := notify.Value[string](n, "action")
		slot, _ := notify.Value[string](n, "slot")
		fmt.Fprintf(cfg.Out, "* %s %s\n", action, slot)
		return nil
	})
	defer cancel(equipChanges)

	c, err := character.New(&character.Config{
		ID:          cfg.CharacterID,
		PlayerID:    cfg.PlayerID,
		Name:        cfg.Name,
		Attributes:  cfg.Attributes,
		Tuning:      cfg.Tuning,
		Catalog:     cfg.Catalog,
		IDGenerator: cfg.IDGenerator,
		Notifier:    publisher,
		Clock:       cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	for _, l := range loot {
		report(cfg.Out, c.AddItem(l.itemID, l.quantity, l.loc))
	}
	for _, itemID := range []string{"iron_sword", "leather_cap", "ruby_ring"} {
		report(cfg.Out, c.EquipItem(itemID))
	}

	report(cfg.Out, c.GainExperience(cfg.Experience))
	if points := c.LevelState().UnallocatedPoints; points > 0 {
		report(cfg.Out, c.AllocatePoints(cfg.Allocate, points))
		report(cfg.Out, c.ConfirmAllocation())
	}

	taken := c.TakeDamage(c.Stats().MaxHP / 2)
	fmt.Fprintf(cfg.Out, "took %.1f damage\n", taken)
	report(cfg.Out, c.ConsumeItem("small_potion", 1, entities.LocationPocket))
	report(cfg.Out, c.ApplyEffect(effects.HealOverTime{Total: int(taken / 2), Turns: max(cfg.Turns, 1)}))
	for turn := 1; turn <= cfg.Turns; turn++ {
		c.Tick(int64(turn))
	}

	hit, err := c.Attack(cfg.Roller)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cfg.Out, "attack rolled %d: %.1f damage (critical %t, healed %.1f)\n",
		hit.Roll, hit.Damage, hit.Critical, hit.Healed)

	stored := c.StoreAllItems()
	fmt.Fprintf(cfg.Out, "stored %d items, %d failed\n", stored.Moved, len(stored.Failed))

	printCharacter(cfg.Out, c)

	if cfg.Repository != nil {
		out, err := cfg.Repository.Save(ctx, charrepo.SaveInput{Snapshot: c.Snapshot()})
		if err != nil {
			return nil, errors.Wrap(err, "failed to save snapshot")
		}
		slog.InfoContext(ctx, "snapshot saved",
			"character_id", c.ID(),
			"created", out.Created)
		fmt.Fprintf(cfg.Out, "saved snapshot %s\n", c.ID())
	}

	return c, nil
}

func cancel(sub *notify.Subscription) {
	if err := sub.Cancel(); err != nil {
		slog.Warn("failed to cancel subscription", "subscription_id", sub.ID(), "error", err)
	}
}

func report(w io.Writer, r character.Result) {
	if r.Success {
		fmt.Fprintf(w, "ok   %s\n", r.Message)
		return
	}
	fmt.Fprintf(w, "fail %s: %s\n", r.Code, r.Message)
}

// printCharacter writes level, hit points, stats, equipment and inventory
func printCharacter(w io.Writer, c *character.Character) {
	level := c.LevelState()
	derived := c.Stats()

	fmt.Fprintf(w, "\n%s (%s) level %d", c.Name(), c.ID(), level.Level)
	if level.IsTranscended {
		fmt.Fprintf(w, " transcendence %d", level.TranscendenceLevel)
	}
	fmt.Fprintf(w, "\nexp %d/%d, unallocated %d, hp %.1f/%.1f\n",
		level.CurrentEXP, level.ExpToNextLevel, level.UnallocatedPoints, c.CurrentHP(), derived.MaxHP)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	attrs := c.Attributes()
	for _, attr := range entities.AllAttributes() {
		fmt.Fprintf(tw, "%s\t%d\n", attr, attrs.Get(attr))
	}
	for _, stat := range entities.AllStats() {
		fmt.Fprintf(tw, "%s\t%.2f\n", stat, derived.Get(stat))
	}
	_ = tw.Flush()

	fmt.Fprintln(w, "\nequipment:")
	for _, slot := range entities.AllEquipmentSlots() {
		name := "-"
		if def, ok := c.Equipment().ItemIn(slot); ok {
			name = def.Name
		}
		fmt.Fprintf(w, "  %-11s %s\n", slot, name)
	}

	fmt.Fprintln(w, "inventory:")
	for _, inst := range c.Inventory().All() {
		fmt.Fprintf(w, "  %-9s %-14s x%d (%s)\n", inst.Location, inst.ItemID, inst.Quantity, inst.ID)
	}
}
