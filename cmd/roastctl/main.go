package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/venturegrill/api/cmd/roastctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "roastctl",
		Short: "Operations tool for the Venture Grill API",
		Long:  "CLI tool for inspecting roast statistics, users and database health",
	}

	rootCmd.AddCommand(commands.NewStatsCmd())
	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewUserCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
