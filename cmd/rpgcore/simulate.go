package main

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	charrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
)

var simulateFlags struct {
	id         string
	player     string
	name       string
	experience int
	allocate   string
	turns      int
	redisURL   string
	attrs      entities.AttributeSet
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted session and print the resulting character",
	Long: `simulate creates a character, loots and equips starter gear, gains
experience, spends the granted points, heals over a few turns and attacks once.
With --redis the final snapshot is saved.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.id, "id", "hero", "character id")
	f.StringVar(&simulateFlags.player, "player", "", "owning player id")
	f.StringVar(&simulateFlags.name, "name", "Hero", "character name")
	f.IntVar(&simulateFlags.experience, "exp", 500, "experience to gain")
	f.StringVar(&simulateFlags.allocate, "allocate", string(entities.AttributeSTR), "attribute receiving the granted points")
	f.IntVar(&simulateFlags.turns, "turns", 3, "turns of heal over time to tick")
	f.StringVar(&simulateFlags.redisURL, "redis", "", "redis url to save the snapshot to, e.g. redis://localhost:6379/0")
	f.IntVar(&simulateFlags.attrs.STR, "str", 10, "starting strength")
	f.IntVar(&simulateFlags.attrs.INT, "int", 10, "starting intelligence")
	f.IntVar(&simulateFlags.attrs.AGI, "agi", 10, "starting agility")
	f.IntVar(&simulateFlags.attrs.END, "end", 10, "starting endurance")
	f.IntVar(&simulateFlags.attrs.WIS, "wis", 10, "starting wisdom")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	items, err := catalog.Default()
	if err != nil {
		return err
	}

	var repo charrepo.Repository
	if simulateFlags.redisURL != "" {
		repo, err = openRepository(cmd.Context(), simulateFlags.redisURL)
		if err != nil {
			return err
		}
	}

	_, err = runSession(cmd.Context(), &sessionConfig{
		CharacterID: simulateFlags.id,
		PlayerID:    simulateFlags.player,
		Name:        simulateFlags.name,
		Attributes:  simulateFlags.attrs,
		Experience:  simulateFlags.experience,
		Allocate:    entities.Attribute(simulateFlags.allocate),
		Turns:       simulateFlags.turns,
		Tuning:      tuning,
		Catalog:     items,
		IDGenerator: idgen.NewUUID("inst"),
		Clock:       clock.New(),
		Roller:      dice.DefaultRoller,
		Repository:  repo,
		Out:         cmd.OutOrStdout(),
	})
	return err
}
