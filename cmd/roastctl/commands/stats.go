package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venturegrill/api/internal/models"
	"gopkg.in/yaml.v3"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show roast counters",
		Long:  "Show the total roast count and the per-level breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			stats, ok := store.GetStats(context.Background())
			if !ok {
				return fmt.Errorf("stats unavailable: one or more count queries failed")
			}

			if output == "yaml" {
				out, err := yaml.Marshal(stats)
				if err != nil {
					return fmt.Errorf("failed to marshal stats: %w", err)
				}
				fmt.Print(string(out))
				return nil
			}

			fmt.Printf("Total roasts: %d\n", stats.TotalRoasts)
			for _, level := range models.RoastLevels() {
				fmt.Printf("  %-8s %d\n", level, stats.RoastLevels[level])
			}
			fmt.Printf("As of: %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05 MST"))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text or yaml)")

	return cmd
}
