package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/character"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
	charrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
)

const (
	snapshotPattern = "character:*"
	snapshotPrefix  = "character:"
	indexPrefix     = "character:player:"
)

var verifyFlags struct {
	redisURL string
	delete   bool
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every stored snapshot restores cleanly",
	Long: `verify scans all character snapshots in Redis and restores each one
against the current tuning and catalog. With --delete, snapshots that fail are
removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tuning, err := loadTuning()
		if err != nil {
			return err
		}
		items, err := catalog.Default()
		if err != nil {
			return err
		}
		client, err := redis.NewClient(&redis.Config{URL: verifyFlags.redisURL})
		if err != nil {
			return err
		}
		if err := redis.Ping(cmd.Context(), client); err != nil {
			return err
		}
		repo, err := charrepo.NewRedis(&charrepo.RedisConfig{Client: client})
		if err != nil {
			return err
		}

		report, err := verifySnapshots(cmd.Context(), &verifyConfig{
			Client:     client,
			Repository: repo,
			Tuning:     tuning,
			Catalog:    items,
			Delete:     verifyFlags.delete,
			Out:        cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		return report.Err()
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFlags.redisURL, "redis", "redis://localhost:6379/0", "redis url holding the snapshots")
	verifyCmd.Flags().BoolVar(&verifyFlags.delete, "delete", false, "delete snapshots that fail to restore")
}

type verifyConfig struct {
	Client     redis.Client
	Repository charrepo.Repository
	Tuning     *config.Config
	Catalog    catalog.Catalog
	Delete     bool
	Out        io.Writer
}

// brokenSnapshot is a stored snapshot that failed to load or restore
type brokenSnapshot struct {
	ID  string
	Err error
}

type verifyReport struct {
	Checked int
	Broken  []brokenSnapshot
	Deleted int
}

// Err fails the run while broken snapshots remain in the store
func (r *verifyReport) Err() error {
	remaining := len(r.Broken) - r.Deleted
	if remaining <= 0 {
		return nil
	}
	return errors.FailedPrecondition(fmt.Sprintf("%d broken snapshots", remaining))
}

func verifySnapshots(ctx context.Context, cfg *verifyConfig) (*verifyReport, error) {
	report := &verifyReport{}

	iter := cfg.Client.Scan(ctx, 0, snapshotPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, indexPrefix) {
			continue
		}
		id := strings.TrimPrefix(key, snapshotPrefix)
		report.Checked++

		if err := checkSnapshot(ctx, cfg, id); err != nil {
			report.Broken = append(report.Broken, brokenSnapshot{ID: id, Err: err})
			fmt.Fprintf(cfg.Out, "broken %s: %v\n", id, err)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan snapshots")
	}

	if cfg.Delete {
		for _, b := range report.Broken {
			if err := cfg.Client.Del(ctx, snapshotPrefix+b.ID).Err(); err != nil {
				slog.ErrorContext(ctx, "failed to delete snapshot",
					"character_id", b.ID,
					"error", err.Error())
				continue
			}
			report.Deleted++
			fmt.Fprintf(cfg.Out, "deleted %s\n", b.ID)
		}
	}

	fmt.Fprintf(cfg.Out, "checked %d snapshots, %d broken, %d deleted\n",
		report.Checked, len(report.Broken), report.Deleted)
	return report, nil
}

func checkSnapshot(ctx context.Context, cfg *verifyConfig, id string) error {
	out, err := cfg.Repository.Get(ctx, charrepo.GetInput{ID: id})
	if err != nil {
		return err
	}
	_, err = character.Restore(&character.Config{
		ID:          id,
		Tuning:      cfg.Tuning,
		Catalog:     cfg.Catalog,
		IDGenerator: idgen.NewSequential("inst"),
	}, out.Snapshot)
	return err
}
