package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmc/inventory/internal/db"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the local database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Open(app.cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(database); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", app.cfg.DBPath)
			return nil
		},
	}
}
