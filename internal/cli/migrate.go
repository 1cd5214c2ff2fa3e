package cli

import (
	"fmt"

	"addrbook/internal/infra/persistence/gormdb"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the address schema",
		Long:  "Create the addresses table if it does not exist. Running it again is a no-op.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, closeDB, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := gormdb.Migrate(ctx, db); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", a.cfg.Storage.Driver)

			return nil
		},
	}
}
