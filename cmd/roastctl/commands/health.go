package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe database health",
		Long:  "Run the same minimal read probe the API's extended health check uses",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			if !store.HealthCheck(context.Background()) {
				return fmt.Errorf("database is unhealthy")
			}

			fmt.Println("Database is healthy")
			return nil
		},
	}

	return cmd
}
