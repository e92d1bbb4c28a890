package commands

import (
	"fmt"
	"os"

	"github.com/venturegrill/api/internal/config"
	"github.com/venturegrill/api/internal/database"
)

// openStore connects to the database and returns the gateway plus a cleanup
// function. Commands fail fast when the connection cannot be established.
func openStore() (database.Gateway, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
	}

	return database.NewStore(db, nil), cleanup, nil
}
