package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/character"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
	charrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
)

var showRedisURL string

var showCmd = &cobra.Command{
	Use:   "show <character-id>",
	Short: "Load a saved snapshot, restore it and print the character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tuning, err := loadTuning()
		if err != nil {
			return err
		}
		items, err := catalog.Default()
		if err != nil {
			return err
		}
		repo, err := openRepository(cmd.Context(), showRedisURL)
		if err != nil {
			return err
		}
		return showCharacter(cmd.Context(), cmd.OutOrStdout(), repo, tuning, items, args[0])
	},
}

func init() {
	showCmd.Flags().StringVar(&showRedisURL, "redis", "redis://localhost:6379/0", "redis url holding the snapshots")
}

func showCharacter(
	ctx context.Context,
	w io.Writer,
	repo charrepo.Repository,
	tuning *config.Config,
	items catalog.Catalog,
	id string,
) error {
	out, err := repo.Get(ctx, charrepo.GetInput{ID: id})
	if err != nil {
		return err
	}

	c, err := character.Restore(&character.Config{
		ID:          id,
		Tuning:      tuning,
		Catalog:     items,
		IDGenerator: idgen.NewUUID("inst"),
	}, out.Snapshot)
	if err != nil {
		return err
	}

	printCharacter(w, c)
	return nil
}

func openRepository(ctx context.Context, url string) (charrepo.Repository, error) {
	client, err := redis.NewClient(&redis.Config{URL: url})
	if err != nil {
		return nil, err
	}
	if err := redis.Ping(ctx, client); err != nil {
		return nil, err
	}
	return charrepo.NewRedis(&charrepo.RedisConfig{Client: client})
}
