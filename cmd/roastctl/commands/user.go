package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewUserCmd creates the user command
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user <email>",
		Short: "Look up a user by email",
		Long:  "Look up a user row by email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			user, ok := store.GetUserByEmail(context.Background(), args[0])
			if !ok {
				return fmt.Errorf("user not found: %s", args[0])
			}

			fmt.Printf("ID:          %s\n", user.ID)
			fmt.Printf("Email:       %s\n", user.Email)
			if user.Name != nil {
				fmt.Printf("Name:        %s\n", *user.Name)
			}
			fmt.Printf("Provider:    %s\n", user.Provider)
			fmt.Printf("Provider ID: %s\n", user.ProviderID)
			fmt.Printf("Last login:  %s\n", user.LastLogin.Format("2006-01-02 15:04:05 MST"))

			return nil
		},
	}

	return cmd
}
