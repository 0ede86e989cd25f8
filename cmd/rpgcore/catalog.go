package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/catalog/srd"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect item catalogs",
}

var catalogFile string

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in catalog or a YAML catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			items *catalog.Static
			err   error
		)
		if catalogFile != "" {
			items, err = catalog.LoadFile(catalogFile)
		} else {
			items, err = catalog.Default()
		}
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), items.Items())
		return nil
	},
}

var srdFlags struct {
	baseURL string
	limit   int
}

var catalogSRDCmd = &cobra.Command{
	Use:   "srd",
	Short: "Preload the D&D 5e SRD equipment list as a catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := srd.NewSource(&srd.SourceConfig{BaseURL: srdFlags.baseURL})
		if err != nil {
			return err
		}
		items, err := srd.Load(cmd.Context(), &srd.LoadConfig{
			Source: source,
			Limit:  srdFlags.limit,
		})
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), items.Items())
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVar(&catalogFile, "file", "", "YAML catalog file")
	catalogSRDCmd.Flags().StringVar(&srdFlags.baseURL, "base-url", "", "dnd5e-api base url")
	catalogSRDCmd.Flags().IntVar(&srdFlags.limit, "limit", 0, "maximum entries to fetch, 0 for all")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSRDCmd)
}

func printCatalog(w io.Writer, defs []*entities.ItemDefinition) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSTACK\tBONUSES")
	for _, def := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", def.ID, def.Name, def.Category, def.StackLimit(), bonusList(def))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d items\n", len(defs))
}

func bonusList(def *entities.ItemDefinition) string {
	parts := make([]string, 0, len(def.Bonuses)+1)
	if def.Weapon != nil {
		parts = append(parts, fmt.Sprintf("weapon ad %.0f", def.Weapon.AD))
	}
	for _, stat := range entities.AllStats() {
		if v, ok := def.Bonuses[stat]; ok {
			parts = append(parts, fmt.Sprintf("%s %+g", stat, v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
