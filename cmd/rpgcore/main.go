// Package main is the rpgcore command line: it drives a character through a
// scripted session, stores snapshots in Redis and inspects item catalogs.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

var (
	logLevel   string
	tuningPath string
)

var rootCmd = &cobra.Command{
	Use:   "rpgcore",
	Short: "RPG character progression core",
	Long: `rpgcore runs the character progression core from the command line:
derived stats, levelling, inventory and equipment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&tuningPath, "config", "", "tuning YAML file layered over the defaults")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(verifyCmd)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.InvalidArgumentf("unknown log level %q", s)
	}
}

func loadTuning() (*config.Config, error) {
	if tuningPath == "" {
		return config.Default(), nil
	}
	return config.LoadFile(tuningPath)
}
